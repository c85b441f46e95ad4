package screen

import (
	"context"
	"parking_app/internal/domain"
	"parking_app/internal/service"
)

type NotificationsScreen struct {
	svc    *service.NotificationService
	toasts Notifier

	Items      []domain.Notification
	Refreshing bool
}

func NewNotificationsScreen(svc *service.NotificationService, toasts Notifier) *NotificationsScreen {
	return &NotificationsScreen{svc: svc, toasts: toasts}
}

func (s *NotificationsScreen) Load(ctx context.Context) error {
	items, err := s.svc.List(ctx)
	if err != nil {
		showError(s.toasts, "Failed to load notifications.")
		return err
	}
	s.Items = items
	return nil
}

// Refresh has no source to pull from yet; it only acknowledges.
func (s *NotificationsScreen) Refresh(ctx context.Context) error {
	s.Refreshing = true
	defer func() { s.Refreshing = false }()
	show(s.toasts, ToastSuccess, "Refreshed!", "Notifications updated.")
	return nil
}

func (s *NotificationsScreen) MarkAllRead(ctx context.Context) error {
	items, err := s.svc.MarkAllRead(ctx)
	if err != nil {
		showError(s.toasts, "Failed to update notifications.")
		return err
	}
	s.Items = items
	show(s.toasts, ToastInfo, "All notifications marked as read", "")
	return nil
}

func (s *NotificationsScreen) Unread() int {
	return service.UnreadCount(s.Items)
}
