package publicauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// minPasswordLength matches the backend's signup rule.
const minPasswordLength = 6

// AuthGateway is the backend surface of the public auth pages.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (backend.AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (backend.AuthResult, error)
	Logout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error)
}

// SessionResolver reports whether the browser already holds a valid session.
type SessionResolver interface {
	Resolve(ctx context.Context, cookies []*http.Cookie, handoff *session.Identity) session.Result
}

var errUnavailable = apperrors.EK(apperrors.KindUnavailable, "error.unavailable", "auth backend is not configured")

type signupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type service struct {
	auth     AuthGateway
	sessions SessionResolver
}

// signedIn is true only for a definite authenticated answer; failures keep
// the visitor on the login page.
func (s service) signedIn(ctx context.Context, cookies []*http.Cookie) (session.Identity, bool) {
	if s.sessions == nil || len(cookies) == 0 {
		return session.Identity{}, false
	}
	result := s.sessions.Resolve(ctx, cookies, nil)
	if result.Status != session.StatusAuthenticated {
		return session.Identity{}, false
	}
	return result.Identity, true
}

func (s service) login(ctx context.Context, email, password string) (backend.AuthResult, error) {
	if s.auth == nil {
		return backend.AuthResult{}, errUnavailable
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return backend.AuthResult{}, apperrors.EK(apperrors.KindInvalidInput, "login.error.credentials", "email and password are required")
	}
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		if backend.IsUnauthorized(err) && backend.DetailOf(err) == "" {
			return backend.AuthResult{}, apperrors.EK(apperrors.KindUnauthorized, "login.error.credentials", err.Error())
		}
		return backend.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	return result, nil
}

func (s service) signup(ctx context.Context, form signupForm) (backend.AuthResult, error) {
	if s.auth == nil {
		return backend.AuthResult{}, errUnavailable
	}
	if form.Password != form.ConfirmPassword {
		return backend.AuthResult{}, apperrors.EK(apperrors.KindInvalidInput, "signup.error.mismatch", "passwords do not match")
	}
	if len([]rune(form.Password)) < minPasswordLength {
		return backend.AuthResult{}, apperrors.EK(apperrors.KindInvalidInput, "signup.error.too_short", "password is too short")
	}
	result, err := s.auth.Signup(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		return backend.AuthResult{}, fmt.Errorf("signup: %w", err)
	}
	return result, nil
}

func (s service) logout(ctx context.Context, cookies []*http.Cookie) error {
	if s.auth == nil {
		return errUnavailable
	}
	if len(cookies) == 0 {
		return nil
	}
	if _, err := s.auth.Logout(ctx, cookies); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
