package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// sessionLifetime matches the backend's session cookie max-age.
const sessionLifetime = 7 * 24 * time.Hour

// AuthResult is the answer of a call that establishes a session.
type AuthResult struct {
	Identity session.Identity
	// Cookies are the backend Set-Cookie headers to relay to the browser.
	Cookies []*http.Cookie
}

type authResponse struct {
	User         *session.Identity `json:"user"`
	SessionToken string            `json:"session_token,omitempty"`
}

// FetchIdentity asks the backend who owns cookies. A 2xx answer without a
// usable user yields session.ErrNoIdentity.
func (c *Client) FetchIdentity(ctx context.Context, cookies []*http.Cookie) (session.Identity, error) {
	var identity session.Identity
	_, err := c.do(ctx, call{
		op:      "auth.me",
		method:  http.MethodGet,
		path:    "/auth/me",
		cookies: cookies,
		out:     &identity,
	})
	if err != nil {
		if errors.Is(err, errEmptyBody) || errors.Is(err, errUndecodable) {
			return session.Identity{}, fmt.Errorf("%w: %v", session.ErrNoIdentity, err)
		}
		return session.Identity{}, err
	}
	if identity.IsEmpty() {
		return session.Identity{}, session.ErrNoIdentity
	}
	return identity, nil
}

// ExchangeSession trades a one-time OAuth session id for a backend session.
func (c *Client) ExchangeSession(ctx context.Context, sessionID string, cookies []*http.Cookie) (AuthResult, error) {
	return c.authenticate(ctx, "auth.session", "/auth/session", map[string]string{
		"session_id": strings.TrimSpace(sessionID),
	}, cookies)
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, "auth.login", "/auth/login", map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}, nil)
}

// Signup creates an account; the backend signs the new user in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, "auth.signup", "/auth/signup", map[string]string{
		"name":     strings.TrimSpace(name),
		"email":    strings.TrimSpace(email),
		"password": password,
	}, nil)
}

// Logout ends the backend session and returns the cookie deletions it set.
func (c *Client) Logout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	return c.do(ctx, call{
		op:      "auth.logout",
		method:  http.MethodPost,
		path:    "/auth/logout",
		cookies: cookies,
	})
}

func (c *Client) authenticate(ctx context.Context, op, path string, body any, cookies []*http.Cookie) (AuthResult, error) {
	var resp authResponse
	set, err := c.do(ctx, call{
		op:      op,
		method:  http.MethodPost,
		path:    path,
		cookies: cookies,
		body:    body,
		out:     &resp,
	})
	if err != nil {
		return AuthResult{}, err
	}
	if resp.User == nil || resp.User.IsEmpty() {
		return AuthResult{}, fmt.Errorf("backend %s: %w", op, session.ErrNoIdentity)
	}
	return AuthResult{Identity: *resp.User, Cookies: withSessionToken(set, resp.SessionToken)}, nil
}

// withSessionToken falls back to the token echoed in the body when the
// backend answered without a Set-Cookie for the session.
func withSessionToken(set []*http.Cookie, token string) []*http.Cookie {
	token = strings.TrimSpace(token)
	if token == "" {
		return set
	}
	for _, cookie := range set {
		if cookie != nil && cookie.Name == sessioncookie.Name {
			return set
		}
	}
	return append(set, &http.Cookie{
		Name:   sessioncookie.Name,
		Value:  token,
		MaxAge: int(sessionLifetime.Seconds()),
	})
}
