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

// NotificationsKey is the device storage key for the read state of the feed.
const NotificationsKey = "notifications"

// SeedNotifications is the feed shown until a notification source exists.
func SeedNotifications() []domain.Notification {
	return []domain.Notification{
		{
			ID:      "1",
			Title:   "Parking session started",
			Message: "Your parking session at Central City Parking has begun.",
			Time:    "10 min ago",
			Type:    domain.NotificationInfo,
		},
		{
			ID:      "2",
			Title:   "Time almost up",
			Message: "Your parking session ends in 15 minutes. Consider extending.",
			Time:    "1 hour ago",
			Type:    domain.NotificationWarning,
		},
		{
			ID:      "3",
			Title:   "Payment successful",
			Message: "Your payment of $12.50 for Harbor View Parking was successful.",
			Time:    "3 hours ago",
			Type:    domain.NotificationPayment,
			Read:    true,
		},
	}
}

// NotificationService serves the local feed. Nothing is sent to the remote
// store; the feed is kept on the device so read state survives restarts.
type NotificationService struct {
	kv     storage.KV
	logger *zap.Logger
	mu     sync.Mutex
}

func NewNotificationService(kv storage.KV, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{kv: kv, logger: logger}
}

func (s *NotificationService) load(ctx context.Context) ([]domain.Notification, error) {
	var items []domain.Notification
	err := storage.GetJSON(ctx, s.kv, NotificationsKey, &items)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return SeedNotifications(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// MarkAllRead flags every notification as read and returns the updated feed.
func (s *NotificationService) MarkAllRead(ctx context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Read = true
	}
	if err := storage.SetJSON(ctx, s.kv, NotificationsKey, items); err != nil {
		s.logger.Error("save notifications failed", zap.Error(err))
		return nil, fmt.Errorf("failed to save notifications: %w", err)
	}
	return items, nil
}

func UnreadCount(items []domain.Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}
