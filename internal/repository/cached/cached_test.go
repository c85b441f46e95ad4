package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking_app/internal/cache"
	"parking_app/internal/domain"
)

type countingBookings struct {
	finds    int
	bookings []domain.Booking
	writeErr error
}

func (r *countingBookings) FindAll(ctx context.Context) ([]domain.Booking, error) {
	r.finds++
	return append([]domain.Booking(nil), r.bookings...), nil
}

func (r *countingBookings) FindByID(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *countingBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	created := *b
	created.ID = domain.ID("new")
	r.bookings = append(r.bookings, created)
	return &created, nil
}

func (r *countingBookings) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	return b, nil
}

func (r *countingBookings) Delete(ctx context.Context, id domain.ID) error {
	return r.writeErr
}

func (r *countingBookings) Reserve(ctx context.Context, q domain.QuickReservation) (*domain.Booking, error) {
	return &domain.Booking{ID: "q", ParkingID: q.ParkingID, Status: q.Status}, r.writeErr
}

func TestReadsAreServedFromCache(t *testing.T) {
	ctx := context.Background()
	next := &countingBookings{bookings: []domain.Booking{{ID: "1"}}}
	repo := NewBookingRepository(next, cache.New(time.Minute))

	repo.FindAll(ctx)
	repo.FindAll(ctx)
	if next.finds != 1 {
		t.Errorf("remote FindAll called %d times, want 1", next.finds)
	}
}

func TestWritesInvalidateBookings(t *testing.T) {
	ctx := context.Background()
	next := &countingBookings{bookings: []domain.Booking{{ID: "1"}}}
	repo := NewBookingRepository(next, cache.New(0))

	writes := map[string]func() error{
		"create": func() error { _, err := repo.Create(ctx, &domain.Booking{}); return err },
		"update": func() error { _, err := repo.Update(ctx, &domain.Booking{ID: "1"}); return err },
		"delete": func() error { return repo.Delete(ctx, "1") },
		"reserve": func() error {
			_, err := repo.Reserve(ctx, domain.QuickReservation{ParkingID: "p"})
			return err
		},
	}
	for name, write := range writes {
		repo.FindAll(ctx)
		before := next.finds
		if err := write(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		repo.FindAll(ctx)
		if next.finds != before+1 {
			t.Errorf("%s did not invalidate the bookings key", name)
		}
	}
}

func TestFailedWriteStillInvalidates(t *testing.T) {
	ctx := context.Background()
	next := &countingBookings{writeErr: errors.New("offline")}
	repo := NewBookingRepository(next, cache.New(0))

	repo.FindAll(ctx)
	if _, err := repo.Update(ctx, &domain.Booking{ID: "1"}); err == nil {
		t.Fatal("expected the write error")
	}
	repo.FindAll(ctx)
	if next.finds != 2 {
		t.Errorf("remote FindAll called %d times, want 2", next.finds)
	}
}

type staticParking struct{ calls int }

func (r *staticParking) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	r.calls++
	return []domain.ParkingSpot{{ID: "1", Name: "Central"}}, nil
}

func TestParkingCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	c := cache.New(0)
	next := &staticParking{}
	repo := NewParkingRepository(next, c)

	repo.FindAll(ctx)
	repo.FindAll(ctx)
	c.Invalidate("parking")
	spots, _ := repo.FindAll(ctx)
	if next.calls != 2 || len(spots) != 1 {
		t.Errorf("calls = %d spots = %v", next.calls, spots)
	}
}
