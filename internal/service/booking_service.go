package service

import (
	"context"
	"errors"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

// CheckoutFare is the flat amount charged on manual checkout. It is a
// placeholder, not a computed fare.
var CheckoutFare = domain.USD(5.00)

// Confirmer shows a blocking yes/no prompt to the user.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(ctx context.Context, title, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, title, message string) (bool, error) {
	return f(ctx, title, message)
}

// BookingForm is the add/edit form input. Date contributes only its calendar
// day; StartTime and EndTime contribute only their clock time.
type BookingForm struct {
	ID          domain.ID
	ParkingName string
	Address     string
	Date        time.Time
	StartTime   time.Time
	EndTime     *time.Time
	Price       string
	Status      domain.BookingStatus
	Duration    string
}

// FormFromBooking pre-fills the edit form from a stored booking.
func FormFromBooking(b domain.Booking, loc *time.Location) BookingForm {
	form := BookingForm{
		ID:          b.ID,
		ParkingName: b.ParkingName,
		Address:     b.Address,
		Status:      b.Status,
		Duration:    b.Duration,
	}
	if d, err := time.ParseInLocation(domain.DateLayout, b.Date, loc); err == nil {
		form.Date = d
	}
	if !b.StartTime.IsZero() {
		form.StartTime = b.StartTime.In(loc)
		if form.Date.IsZero() {
			form.Date = form.StartTime
		}
	}
	if b.EndTime.Valid {
		end := b.EndTime.Time.In(loc)
		form.EndTime = &end
	}
	if b.Price.Present() {
		form.Price = b.Price.Fixed()
	}
	return form
}

// SanitizePrice keeps digits and a single decimal point with at most two
// decimals, the way the price field filters keystrokes.
func SanitizePrice(text string) string {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	parts := strings.Split(cleaned, ".")
	switch {
	case len(parts) > 2:
		return parts[0] + "." + strings.Join(parts[1:], "")
	case len(parts) == 2 && len(parts[1]) > 2:
		return parts[0] + "." + parts[1][:2]
	default:
		return cleaned
	}
}

// combine puts the clock time of clock on the calendar day of day.
func combine(day, clock time.Time, loc *time.Location) time.Time {
	day = day.In(loc)
	clock = clock.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), loc)
}

// BuildBooking validates a form against now and produces the record to send.
func BuildBooking(form BookingForm, now time.Time, loc *time.Location) (*domain.Booking, error) {
	price := SanitizePrice(form.Price)
	if strings.TrimSpace(form.ParkingName) == "" || strings.TrimSpace(form.Address) == "" ||
		form.Date.IsZero() || form.StartTime.IsZero() || price == "" {
		return nil, newValidationError("Missing Information", "Please fill in all required fields.")
	}

	status := form.Status
	if status == "" {
		status = domain.BookingUpcoming
	}
	if !status.Valid() {
		return nil, newValidationError("Invalid Status", fmt.Sprintf("Unknown booking status %q.", status))
	}

	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	day := form.Date.In(loc)
	selectedDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	if selectedDay.Before(today) {
		return nil, newValidationError("Invalid Date", "The selected date cannot be in the past.")
	}

	start := combine(form.Date, form.StartTime, loc)
	if status != domain.BookingCompleted && start.Before(now) {
		return nil, newValidationError("Invalid Start Time", "Start time cannot be in the past for active or upcoming bookings.")
	}

	var end null.Time
	if form.EndTime != nil {
		e := combine(form.Date, *form.EndTime, loc)
		if !e.After(start) {
			return nil, newValidationError("Invalid End Time", "End time must be after start time.")
		}
		end = null.TimeFrom(e)
	}

	amount, _, err := domain.ParseMoney(strings.TrimSuffix(price, "."))
	if err != nil {
		return nil, newValidationError("Invalid Price", fmt.Sprintf("%q is not a valid amount.", form.Price))
	}

	booking := &domain.Booking{
		ID:          form.ID,
		ParkingName: strings.TrimSpace(form.ParkingName),
		Address:     strings.TrimSpace(form.Address),
		Date:        selectedDay.Format(domain.DateLayout),
		StartTime:   start,
		EndTime:     end,
		Price:       amount,
		Status:      status,
	}
	if status == domain.BookingActive && form.Duration != "" {
		booking.Duration = form.Duration
	}
	return booking, nil
}

// BookingController owns the in-memory ticket list of the tickets screen and
// keeps it in step with the remote store. The server response is the source of
// truth: a successful write overwrites the local entry, a failed one leaves the
// list untouched. Concurrent writes to the same booking are not coordinated;
// the last response to arrive wins.
type BookingController struct {
	repo   repository.BookingRepository
	cache  Invalidator
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location

	mu      sync.RWMutex
	tickets []domain.Booking
}

func NewBookingController(repo repository.BookingRepository, cache Invalidator, logger *zap.Logger) *BookingController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingController{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
		loc:     time.Local,
		tickets: []domain.Booking{},
	}
}

// SetClock overrides the time source and zone used for validation.
func (c *BookingController) SetClock(now func() time.Time, loc *time.Location) {
	c.now = now
	if loc != nil {
		c.loc = loc
	}
}

func (c *BookingController) Location() *time.Location { return c.loc }

// Tickets returns a copy of the in-memory list.
func (c *BookingController) Tickets() []domain.Booking {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Booking(nil), c.tickets...)
}

func (c *BookingController) Find(id domain.ID) (domain.Booking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Booking{}, false
}

// List replaces the in-memory list with the remote collection. On failure the
// list falls back to empty, not to stale data.
func (c *BookingController) List(ctx context.Context, refresh bool) ([]domain.Booking, error) {
	if refresh && c.cache != nil {
		c.cache.Invalidate(repository.CollectionBookings)
	}
	bookings, err := c.repo.FindAll(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.tickets = []domain.Booking{}
		c.logger.Error("fetch bookings failed", zap.Error(err))
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	c.tickets = append([]domain.Booking(nil), bookings...)
	return append([]domain.Booking(nil), bookings...), nil
}

// Save creates the booking when the form has no id and updates it otherwise.
func (c *BookingController) Save(ctx context.Context, form BookingForm) (*domain.Booking, error) {
	if form.ID.IsZero() {
		return c.Create(ctx, form)
	}
	return c.Update(ctx, form)
}

func (c *BookingController) Create(ctx context.Context, form BookingForm) (*domain.Booking, error) {
	form.ID = ""
	booking, err := BuildBooking(form, c.now(), c.loc)
	if err != nil {
		return nil, err
	}
	created, err := c.repo.Create(ctx, booking)
	if err != nil {
		c.logger.Error("create booking failed", zap.String("parking", booking.ParkingName), zap.Error(err))
		return nil, fmt.Errorf("failed to add booking: %w", err)
	}

	c.mu.Lock()
	c.tickets = append([]domain.Booking{*created}, c.tickets...)
	c.mu.Unlock()
	return created, nil
}

func (c *BookingController) Update(ctx context.Context, form BookingForm) (*domain.Booking, error) {
	if form.ID.IsZero() {
		return nil, newValidationError("Missing Information", "No booking selected.")
	}
	booking, err := BuildBooking(form, c.now(), c.loc)
	if err != nil {
		return nil, err
	}

	current, err := c.lookup(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	if current.Status.Valid() && !current.Status.CanTransitionTo(booking.Status) {
		return nil, newValidationError("Invalid Status",
			fmt.Sprintf("A %s booking cannot be changed to %s.", current.Status, booking.Status))
	}
	booking.ParkingID = current.ParkingID

	updated, err := c.repo.Update(ctx, booking)
	if err != nil {
		c.logger.Error("update booking failed", zap.String("booking_id", form.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	c.replace(*updated)
	return updated, nil
}

// Checkout closes a booking now at the flat checkout fare and returns the bill.
func (c *BookingController) Checkout(ctx context.Context, id domain.ID) (*domain.Booking, *domain.Bill, error) {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	now := c.now()
	closing := current
	closing.Status = domain.BookingCompleted
	closing.EndTime = null.TimeFrom(now)
	closing.Price = CheckoutFare

	updated, err := c.repo.Update(ctx, &closing)
	if err != nil {
		c.logger.Error("checkout failed", zap.String("booking_id", id.String()), zap.Error(err))
		return nil, nil, fmt.Errorf("failed to complete checkout: %w", err)
	}
	c.replace(*updated)

	bill := &domain.Bill{
		ParkingName: updated.ParkingName,
		Date:        updated.Date,
		StartTime:   updated.StartTime,
		EndTime:     now,
		Duration:    updated.ElapsedDuration(),
		Amount:      updated.Price,
	}
	if updated.EndTime.Valid {
		bill.EndTime = updated.EndTime.Time
	}
	return updated, bill, nil
}

// Delete asks confirmer first; a declined prompt sends nothing. The entry is
// removed from the list only after the store confirms the delete.
func (c *BookingController) Delete(ctx context.Context, id domain.ID, confirmer Confirmer) error {
	if confirmer != nil {
		ok, err := confirmer.Confirm(ctx, "Delete Booking", "Are you sure you want to delete this parking booking?")
		if err != nil {
			return fmt.Errorf("confirm delete: %w", err)
		}
		if !ok {
			return ErrDeleteCancelled
		}
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		c.logger.Error("delete booking failed", zap.String("booking_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tickets {
		if t.ID == id {
			c.tickets = append(c.tickets[:i:i], c.tickets[i+1:]...)
			break
		}
	}
	return nil
}

// lookup prefers the loaded list and falls back to the store.
func (c *BookingController) lookup(ctx context.Context, id domain.ID) (domain.Booking, error) {
	if t, ok := c.Find(id); ok {
		return t, nil
	}
	b, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("booking %s: %w", id, ErrBookingNotLoaded)
		}
		return domain.Booking{}, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return *b, nil
}

func (c *BookingController) replace(updated domain.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tickets {
		if c.tickets[i].ID == updated.ID {
			c.tickets[i] = updated
		}
	}
}
