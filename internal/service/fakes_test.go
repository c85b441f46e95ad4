package service

import (
	"context"
	"fmt"
	"sync"

	"parking_app/internal/domain"
	"parking_app/internal/repository"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []domain.Booking
	nextID   int
	calls    map[string]int

	findErr   error
	createErr error
	updateErr error
	deleteErr error

	lastReserve *domain.QuickReservation
}

func newFakeBookingRepo(bookings ...domain.Booking) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: bookings, nextID: 100, calls: map[string]int{}}
}

func (r *fakeBookingRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakeBookingRepo) FindAll(ctx context.Context) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["FindAll"]++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return append([]domain.Booking(nil), r.bookings...), nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["FindByID"]++
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Create"]++
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *b
	r.nextID++
	created.ID = domain.ID(fmt.Sprint(r.nextID))
	r.bookings = append(r.bookings, created)
	return &created, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Update"]++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	updated := *b
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			r.bookings[i] = updated
		}
	}
	return &updated, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Delete"]++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeBookingRepo) Reserve(ctx context.Context, q domain.QuickReservation) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Reserve"]++
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.lastReserve = &q
	return &domain.Booking{ID: "q1", ParkingID: q.ParkingID, Status: q.Status}, nil
}

type fakeUserRepo struct {
	users []domain.User
	err   error
	calls int
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	r.calls++
	return r.users, r.err
}

type fakeParkingRepo struct {
	spots []domain.ParkingSpot
	err   error
}

func (r *fakeParkingRepo) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	return r.spots, r.err
}

type recordingInvalidator struct {
	keys []string
}

func (i *recordingInvalidator) Invalidate(keys ...string) {
	i.keys = append(i.keys, keys...)
}

type stubConfirmer struct {
	answer bool
	asked  int
}

func (c *stubConfirmer) Confirm(ctx context.Context, title, message string) (bool, error) {
	c.asked++
	return c.answer, nil
}
