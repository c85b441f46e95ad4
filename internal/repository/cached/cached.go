// Package cached decorates the remote repositories with the shared
// collection cache. Reads fill the cache; every booking write invalidates the
// bookings key.
package cached

import (
	"context"
	"parking_app/internal/cache"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
)

type userRepository struct {
	next  repository.UserRepository
	cache *cache.Collections
}

func NewUserRepository(next repository.UserRepository, c *cache.Collections) repository.UserRepository {
	return &userRepository{next: next, cache: c}
}

func (r *userRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if users, ok := cache.GetSlice[domain.User](r.cache, repository.CollectionUsers); ok {
		return users, nil
	}
	users, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cache.PutSlice(r.cache, repository.CollectionUsers, users)
	return users, nil
}

type parkingRepository struct {
	next  repository.ParkingRepository
	cache *cache.Collections
}

func NewParkingRepository(next repository.ParkingRepository, c *cache.Collections) repository.ParkingRepository {
	return &parkingRepository{next: next, cache: c}
}

func (r *parkingRepository) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	if spots, ok := cache.GetSlice[domain.ParkingSpot](r.cache, repository.CollectionParking); ok {
		return spots, nil
	}
	spots, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cache.PutSlice(r.cache, repository.CollectionParking, spots)
	return spots, nil
}

type bookingRepository struct {
	next  repository.BookingRepository
	cache *cache.Collections
}

func NewBookingRepository(next repository.BookingRepository, c *cache.Collections) repository.BookingRepository {
	return &bookingRepository{next: next, cache: c}
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	if bookings, ok := cache.GetSlice[domain.Booking](r.cache, repository.CollectionBookings); ok {
		return bookings, nil
	}
	bookings, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cache.PutSlice(r.cache, repository.CollectionBookings, bookings)
	return bookings, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	return r.next.FindByID(ctx, id)
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created, err := r.next.Create(ctx, booking)
	r.cache.Invalidate(repository.CollectionBookings)
	return created, err
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	updated, err := r.next.Update(ctx, booking)
	r.cache.Invalidate(repository.CollectionBookings)
	return updated, err
}

func (r *bookingRepository) Delete(ctx context.Context, id domain.ID) error {
	err := r.next.Delete(ctx, id)
	r.cache.Invalidate(repository.CollectionBookings)
	return err
}

func (r *bookingRepository) Reserve(ctx context.Context, reservation domain.QuickReservation) (*domain.Booking, error) {
	created, err := r.next.Reserve(ctx, reservation)
	r.cache.Invalidate(repository.CollectionBookings)
	return created, err
}
