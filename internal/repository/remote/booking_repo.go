package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"
)

// isoLayout matches the millisecond UTC instants the store already holds.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var instantLayouts = []string{time.RFC3339Nano, time.RFC3339, isoLayout, "2006-01-02T15:04:05"}

// bookingRecord is the wire shape of /bookings. Fields are kept loose so one
// malformed record does not fail the whole list; it is rendered as stored.
type bookingRecord struct {
	ID          domain.ID       `json:"id,omitempty"`
	ParkingID   domain.ID       `json:"parkingId,omitempty"`
	ParkingName string          `json:"parkingName"`
	Address     string          `json:"address"`
	Date        string          `json:"date"`
	StartTime   string          `json:"startTime"`
	EndTime     *string         `json:"endTime"`
	Price       json.RawMessage `json:"price,omitempty"`
	Status      string          `json:"status"`
	Duration    string          `json:"duration,omitempty"`
}

func parseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func (r bookingRecord) toDomain() domain.Booking {
	b := domain.Booking{
		ID:          r.ID,
		ParkingID:   r.ParkingID,
		ParkingName: r.ParkingName,
		Address:     r.Address,
		Date:        r.Date,
		Status:      domain.BookingStatus(r.Status),
		Duration:    r.Duration,
	}
	if start, ok := parseInstant(r.StartTime); ok {
		b.StartTime = start
	}
	if r.EndTime != nil {
		if end, ok := parseInstant(*r.EndTime); ok {
			b.EndTime = null.TimeFrom(end)
		}
	}
	if len(r.Price) > 0 {
		var price domain.Money
		if err := json.Unmarshal(r.Price, &price); err == nil {
			b.Price = price
		}
	}
	return b
}

func fromDomain(b domain.Booking) bookingRecord {
	r := bookingRecord{
		ID:          b.ID,
		ParkingID:   b.ParkingID,
		ParkingName: b.ParkingName,
		Address:     b.Address,
		Date:        b.Date,
		Status:      string(b.Status),
		Duration:    b.Duration,
	}
	if !b.StartTime.IsZero() {
		r.StartTime = formatInstant(b.StartTime)
	}
	if b.EndTime.Valid {
		end := formatInstant(b.EndTime.Time)
		r.EndTime = &end
	}
	if price, err := json.Marshal(b.Price); err == nil {
		r.Price = price
	}
	return r
}

type remoteBookingRepository struct {
	client *Client
}

func NewBookingRepository(client *Client) repository.BookingRepository {
	return &remoteBookingRepository{client: client}
}

func (r *remoteBookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	var records []bookingRecord
	if err := r.client.doJSON(ctx, http.MethodGet, collectionPath(repository.CollectionBookings), nil, &records); err != nil {
		return nil, fmt.Errorf("BookingRepository.FindAll: %w", err)
	}
	bookings := make([]domain.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, rec.toDomain())
	}
	return bookings, nil
}

func (r *remoteBookingRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	var rec bookingRecord
	if err := r.client.doJSON(ctx, http.MethodGet, documentPath(repository.CollectionBookings, id.String()), nil, &rec); err != nil {
		return nil, fmt.Errorf("BookingRepository.FindByID: %w", err)
	}
	b := rec.toDomain()
	return &b, nil
}

func (r *remoteBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	payload := fromDomain(*booking)
	payload.ID = ""
	var rec bookingRecord
	if err := r.client.doJSON(ctx, http.MethodPost, collectionPath(repository.CollectionBookings), payload, &rec); err != nil {
		return nil, fmt.Errorf("BookingRepository.Create: %w", err)
	}
	created := rec.toDomain()
	return &created, nil
}

func (r *remoteBookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ID.IsZero() {
		return nil, fmt.Errorf("BookingRepository.Update: missing id: %w", repository.ErrNotFound)
	}
	var rec bookingRecord
	path := documentPath(repository.CollectionBookings, booking.ID.String())
	if err := r.client.doJSON(ctx, http.MethodPut, path, fromDomain(*booking), &rec); err != nil {
		return nil, fmt.Errorf("BookingRepository.Update: %w", err)
	}
	updated := rec.toDomain()
	if updated.ID.IsZero() {
		updated.ID = booking.ID
	}
	return &updated, nil
}

func (r *remoteBookingRepository) Delete(ctx context.Context, id domain.ID) error {
	if _, err := r.client.Do(ctx, http.MethodDelete, documentPath(repository.CollectionBookings, id.String()), nil); err != nil {
		return fmt.Errorf("BookingRepository.Delete: %w", err)
	}
	return nil
}

func (r *remoteBookingRepository) Reserve(ctx context.Context, reservation domain.QuickReservation) (*domain.Booking, error) {
	var rec bookingRecord
	if err := r.client.doJSON(ctx, http.MethodPost, collectionPath(repository.CollectionBookings), reservation, &rec); err != nil {
		return nil, fmt.Errorf("BookingRepository.Reserve: %w", err)
	}
	b := rec.toDomain()
	return &b, nil
}
