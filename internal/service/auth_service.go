package service

import (
	"context"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
	"parking_app/internal/session"
	"regexp"

	"go.uber.org/zap"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type AuthService struct {
	userRepo repository.UserRepository
	session  *session.Context
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, sess *session.Context, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, session: sess, logger: logger}
}

// ValidateLogin checks the login form before anything is fetched.
func ValidateLogin(dto domain.LoginUserDTO) error {
	fields := map[string]string{}
	switch {
	case dto.Email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(dto.Email):
		fields["email"] = "Email is invalid"
	}
	switch {
	case dto.Password == "":
		fields["password"] = "Password is required"
	case len(dto.Password) < minPasswordLength:
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Title: "Invalid form", Message: "Please correct the highlighted fields.", Fields: fields}
	}
	return nil
}

// Login succeeds iff the fetched user list holds an exact email and password
// match. The matched record is persisted as the session.
func (s *AuthService) Login(ctx context.Context, dto domain.LoginUserDTO) (*domain.User, error) {
	if err := ValidateLogin(dto); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("fetch users failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	var matched *domain.User
	for i := range users {
		if users[i].Email == dto.Email && users[i].Password == dto.Password {
			matched = &users[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.session.Login(ctx, *matched); err != nil {
		s.logger.Error("persist session failed", zap.Error(err))
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	s.logger.Info("user signed in", zap.String("user_id", matched.ID.String()))
	user := *matched
	return &user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		s.logger.Error("clear session failed", zap.Error(err))
		return err
	}
	return nil
}

// CurrentUser gates protected screens; it returns session.ErrNoSession when
// nobody is signed in.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.session.Require(ctx)
}
