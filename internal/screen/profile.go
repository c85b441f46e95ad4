package screen

import (
	"context"
	"errors"
	"parking_app/internal/domain"
	"parking_app/internal/service"
	"parking_app/internal/session"
)

type MenuItem struct {
	Label string
	Route Route
	// Logout items open the confirmation instead of navigating.
	Logout bool
}

var ProfileMenu = []MenuItem{
	{Label: "History", Route: RouteTickets},
	{Label: "Saved", Route: RouteBookmarks},
	{Label: "Logout", Logout: true},
}

type ProfileScreen struct {
	session *session.Context
	auth    *service.AuthService
	nav     Navigator
	toasts  Notifier

	User               *domain.User
	Loading            bool
	LogoutModalVisible bool
}

func NewProfileScreen(sess *session.Context, auth *service.AuthService, nav Navigator, toasts Notifier) *ProfileScreen {
	return &ProfileScreen{session: sess, auth: auth, nav: nav, toasts: toasts}
}

func (s *ProfileScreen) Enter(ctx context.Context) error {
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
	return nil
}

// Select acts on a menu entry.
func (s *ProfileScreen) Select(item MenuItem) {
	if item.Logout {
		s.LogoutModalVisible = true
		return
	}
	s.nav.Push(item.Route)
}

func (s *ProfileScreen) CancelLogout() {
	s.LogoutModalVisible = false
}

// ConfirmLogout clears the session and replaces the route with login.
func (s *ProfileScreen) ConfirmLogout(ctx context.Context) error {
	s.LogoutModalVisible = false
	if err := s.auth.Logout(ctx); err != nil {
		showError(s.toasts, "Failed to log out.")
		return err
	}
	s.User = nil
	s.nav.Replace(RouteLogin)
	return nil
}
