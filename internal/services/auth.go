package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
	"portalempleos/internal/session"
)

// ErrInvalidUserType is wrapped when the backend returns a user whose role
// is neither candidate nor employer
var ErrInvalidUserType = errors.New("invalid user type")

// AuthService logs users in and out
type AuthService struct {
	caller
	path  string
	store *session.Store
}

// NewAuthService creates an auth service
func NewAuthService(d Deps) *AuthService {
	return &AuthService{
		caller: caller{client: d.Client, observe: d.Observer},
		path:   d.Endpoints.Login,
		store:  d.Store,
	}
}

// Login authenticates against the backend and saves the session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserData, error) {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}

	var user models.UserData
	_, err := s.do(ctx, request{
		endpoint:    errcodes.Login,
		path:        s.path,
		validate:    func() error { return validateInput(errcodes.Login, req) },
		body:        func() any { return req },
		out:         &user,
		requireData: true,
	})
	if err != nil {
		return nil, err
	}

	if !user.Role.Valid() {
		return nil, &Error{
			Kind:     KindApplication,
			Endpoint: errcodes.Login,
			Message:  errcodes.MsgInvalidUserType,
			Err:      fmt.Errorf("%w: %q", ErrInvalidUserType, user.Role),
		}
	}

	if s.store != nil {
		if err := s.store.Save(&user); err != nil {
			return nil, &Error{
				Kind:     KindTransport,
				Endpoint: errcodes.Login,
				Message:  errcodes.MsgDefault,
				Err:      fmt.Errorf("failed to persist session: %w", err),
			}
		}
	}
	return &user, nil
}

// Logout ends the current session
func (s *AuthService) Logout() error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// CurrentUser returns the logged-in user or nil
func (s *AuthService) CurrentUser() *models.UserData {
	if s.store == nil {
		return nil
	}
	return s.store.Get()
}

// IsAuthenticated reports whether a user is logged in
func (s *AuthService) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}
