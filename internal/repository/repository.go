package repository

import (
	"context"
	"errors"
	"parking_app/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrUnknownCollection = errors.New("unknown collection")

// Collection names served by the remote store.
const (
	CollectionUsers    = "users"
	CollectionParking  = "parking"
	CollectionBookings = "bookings"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type ParkingRepository interface {
	FindAll(ctx context.Context) ([]domain.ParkingSpot, error)
}

type BookingRepository interface {
	FindAll(ctx context.Context) ([]domain.Booking, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id domain.ID) error
	// Reserve posts the minimal "book now" payload.
	Reserve(ctx context.Context, reservation domain.QuickReservation) (*domain.Booking, error)
}

// Document is one schemaless record of the JSON collection store.
type Document map[string]any

// DocumentStore is the storage behind the mock store server.
type DocumentStore interface {
	Collections() []string
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	Replace(ctx context.Context, collection, id string, doc Document) (Document, error)
	Merge(ctx context.Context, collection, id string, patch Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}
