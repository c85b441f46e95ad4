package screen

import (
	"context"
	"errors"
	"parking_app/internal/domain"
	"parking_app/internal/service"
)

// CredentialsField is the error key for failures not tied to one input.
const CredentialsField = "credentials"

type LoginScreen struct {
	auth *service.AuthService
	nav  Navigator

	Email    string
	Password string
	Errors   map[string]string
	Loading  bool
}

func NewLoginScreen(auth *service.AuthService, nav Navigator) *LoginScreen {
	return &LoginScreen{auth: auth, nav: nav, Errors: map[string]string{}}
}

// Submit validates the form, signs in and navigates home. Failures land in
// Errors rather than in a toast.
func (s *LoginScreen) Submit(ctx context.Context) (*domain.User, error) {
	s.Errors = map[string]string{}
	s.Loading = true
	defer func() { s.Loading = false }()

	user, err := s.auth.Login(ctx, domain.LoginUserDTO{Email: s.Email, Password: s.Password})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			for field, msg := range ve.Fields {
				s.Errors[field] = msg
			}
		case errors.Is(err, service.ErrInvalidCredentials):
			s.Errors[CredentialsField] = "Invalid email or password"
		default:
			s.Errors[CredentialsField] = "An error occurred. Please try again."
		}
		return nil, err
	}
	s.nav.Push(RouteHome)
	return user, nil
}
