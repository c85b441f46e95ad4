package screen

import (
	"context"
	"errors"
	"parking_app/internal/domain"
	"parking_app/internal/service"
	"parking_app/internal/session"
)

type HomeScreen struct {
	session   *session.Context
	parking   *service.ParkingService
	bookmarks *service.BookmarkService
	nav       Navigator
	toasts    Notifier

	User       *domain.User
	Locations  []domain.ParkingSpot
	Loading    bool
	Refreshing bool
}

func NewHomeScreen(sess *session.Context, parking *service.ParkingService, bookmarks *service.BookmarkService, nav Navigator, toasts Notifier) *HomeScreen {
	return &HomeScreen{session: sess, parking: parking, bookmarks: bookmarks, nav: nav, toasts: toasts}
}

// Enter loads the signed-in user and the parking list. Without a session it
// redirects to login and shows nothing.
func (s *HomeScreen) Enter(ctx context.Context) error {
	s.Loading = true
	defer func() { s.Loading = false }()

	user, err := s.session.Require(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			s.nav.Replace(RouteLogin)
			return err
		}
		showError(s.toasts, "Failed to load user data.")
		return err
	}
	s.User = user
	return s.load(ctx, false)
}

func (s *HomeScreen) load(ctx context.Context, refresh bool) error {
	spots, err := s.parking.ListSpots(ctx, refresh)
	if err != nil {
		s.Locations = []domain.ParkingSpot{}
		showError(s.toasts, "Failed to fetch parking locations.")
		return err
	}
	s.Locations = spots
	return nil
}

func (s *HomeScreen) Refresh(ctx context.Context) error {
	s.Refreshing = true
	defer func() { s.Refreshing = false }()
	if err := s.load(ctx, true); err != nil {
		return err
	}
	show(s.toasts, ToastSuccess, "Refreshed", "Parking locations updated successfully.")
	return nil
}

func (s *HomeScreen) Greeting() string {
	if s.User == nil || s.User.FirstName == "" {
		return "Hello!"
	}
	return "Hello, " + s.User.FirstName + "!"
}

// ToggleBookmark flips the saved state of spot and reports the new state.
func (s *HomeScreen) ToggleBookmark(ctx context.Context, spot domain.ParkingSpot) (bool, error) {
	saved, err := s.bookmarks.Toggle(ctx, spot)
	if err != nil {
		showError(s.toasts, "Failed to update bookmarks.")
		return false, err
	}
	bookmarkToast(s.toasts, spot, saved)
	return saved, nil
}

func (s *HomeScreen) IsBookmarked(ctx context.Context, id domain.ID) bool {
	ok, err := s.bookmarks.IsBookmarked(ctx, id)
	return err == nil && ok
}

// Open navigates to one of the home shortcuts.
func (s *HomeScreen) Open(r Route) {
	s.nav.Push(r)
}
