package screen

import (
	"context"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/service"
)

type BookmarksScreen struct {
	svc    *service.BookmarkService
	toasts Notifier

	Items []domain.ParkingSpot
}

func NewBookmarksScreen(svc *service.BookmarkService, toasts Notifier) *BookmarksScreen {
	return &BookmarksScreen{svc: svc, toasts: toasts}
}

func (s *BookmarksScreen) Load(ctx context.Context) error {
	items, err := s.svc.List(ctx)
	if err != nil {
		showError(s.toasts, "Failed to load bookmarks.")
		return err
	}
	s.Items = items
	return nil
}

// Toggle flips spot and reloads the list.
func (s *BookmarksScreen) Toggle(ctx context.Context, spot domain.ParkingSpot) (bool, error) {
	saved, err := s.svc.Toggle(ctx, spot)
	if err != nil {
		showError(s.toasts, "Failed to update bookmarks.")
		return false, err
	}
	bookmarkToast(s.toasts, spot, saved)
	return saved, s.Load(ctx)
}

func bookmarkToast(n Notifier, spot domain.ParkingSpot, saved bool) {
	if saved {
		show(n, ToastSuccess, "Bookmark Added", fmt.Sprintf("%s has been added to your bookmarks.", spot.Name))
		return
	}
	show(n, ToastSuccess, "Bookmark Removed", fmt.Sprintf("%s has been removed from your bookmarks.", spot.Name))
}
