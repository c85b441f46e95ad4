package service

import (
	"context"
	"errors"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/storage"
	"sync"

	"go.uber.org/zap"
)

// BookmarksKey is the device storage key holding saved spots.
const BookmarksKey = "bookmarks"

// BookmarkService keeps a snapshot of each saved spot on the device, in the
// order they were saved.
type BookmarkService struct {
	kv     storage.KV
	logger *zap.Logger
	mu     sync.Mutex
}

func NewBookmarkService(kv storage.KV, logger *zap.Logger) *BookmarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookmarkService{kv: kv, logger: logger}
}

func (s *BookmarkService) load(ctx context.Context) ([]domain.ParkingSpot, error) {
	var spots []domain.ParkingSpot
	if err := storage.GetJSON(ctx, s.kv, BookmarksKey, &spots); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.ParkingSpot{}, nil
		}
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}
	return spots, nil
}

func (s *BookmarkService) List(ctx context.Context) ([]domain.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, id domain.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spots, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return indexOfSpot(spots, id) >= 0, nil
}

// Toggle saves spot if it is not bookmarked and removes it otherwise. It
// reports whether spot is bookmarked afterwards.
func (s *BookmarkService) Toggle(ctx context.Context, spot domain.ParkingSpot) (bool, error) {
	if spot.ID.IsZero() {
		return false, newValidationError("Missing Information", "No parking spot selected.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	spots, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	saved := true
	if i := indexOfSpot(spots, spot.ID); i >= 0 {
		spots = append(spots[:i:i], spots[i+1:]...)
		saved = false
	} else {
		spots = append(spots, spot)
	}
	if err := storage.SetJSON(ctx, s.kv, BookmarksKey, spots); err != nil {
		s.logger.Error("save bookmarks failed", zap.Error(err))
		return false, fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return saved, nil
}

func indexOfSpot(spots []domain.ParkingSpot, id domain.ID) int {
	for i, s := range spots {
		if s.ID == id {
			return i
		}
	}
	return -1
}
