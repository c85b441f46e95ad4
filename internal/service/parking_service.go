package service

import (
	"context"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Invalidator drops cached collections; pull-to-refresh goes through it.
type Invalidator interface {
	Invalidate(keys ...string)
}

type ParkingService struct {
	parkingRepo repository.ParkingRepository
	bookingRepo repository.BookingRepository
	cache       Invalidator
	logger      *zap.Logger
	now         func() time.Time
}

func NewParkingService(parkingRepo repository.ParkingRepository, bookingRepo repository.BookingRepository, cache Invalidator, logger *zap.Logger) *ParkingService {
	return &ParkingService{
		parkingRepo: parkingRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// ListSpots returns every parking spot. refresh bypasses the shared cache.
func (s *ParkingService) ListSpots(ctx context.Context, refresh bool) ([]domain.ParkingSpot, error) {
	if refresh && s.cache != nil {
		s.cache.Invalidate(repository.CollectionParking)
	}
	spots, err := s.parkingRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("fetch parking spots failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch parking spots: %w", err)
	}
	return spots, nil
}

// BookNow posts a quick reservation that starts now and is already active.
func (s *ParkingService) BookNow(ctx context.Context, spotID domain.ID) (*domain.Booking, error) {
	if spotID.IsZero() {
		return nil, newValidationError("Missing Information", "No parking spot selected.")
	}
	reservation := domain.QuickReservation{
		ParkingID: spotID,
		StartTime: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Status:    domain.BookingActive,
	}
	booking, err := s.bookingRepo.Reserve(ctx, reservation)
	if err != nil {
		s.logger.Error("quick reservation failed", zap.String("parking_id", spotID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	return booking, nil
}

// SearchResult is the explore screen view of a query.
type SearchResult struct {
	Query     string
	BestMatch *domain.ParkingSpot
	Results   []domain.ParkingSpot
	// NoResults is set only for a non-blank query that matched nothing.
	NoResults bool
}

// FilterSpots does a case-insensitive substring match against name, address
// and keywords. A blank query returns spots unchanged; any other query is
// matched as typed, surrounding spaces included.
func FilterSpots(spots []domain.ParkingSpot, query string) SearchResult {
	result := SearchResult{Query: query}
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		result.Results = spots
	} else {
		result.Results = make([]domain.ParkingSpot, 0, len(spots))
		for _, spot := range spots {
			if spotMatches(spot, q) {
				result.Results = append(result.Results, spot)
			}
		}
		result.NoResults = len(result.Results) == 0
	}
	if len(result.Results) > 0 {
		best := result.Results[0]
		result.BestMatch = &best
	}
	return result
}

func spotMatches(spot domain.ParkingSpot, q string) bool {
	if strings.Contains(strings.ToLower(spot.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(spot.Address), q) {
		return true
	}
	for _, keyword := range spot.Keywords {
		if strings.Contains(strings.ToLower(keyword), q) {
			return true
		}
	}
	return false
}
