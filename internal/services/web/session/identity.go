// Package session answers "who is the current user?" for a browser request
// by asking the backend, or by trusting a freshly handed-off identity.
package session

import (
	"context"
	"strings"
)

// Identity is the authenticated user as reported by the backend. It is
// decoded once and never mutated.
type Identity struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Picture   string `json:"picture,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Subject returns the stable user id, whichever field carried it.
func (i Identity) Subject() string {
	if id := strings.TrimSpace(i.UserID); id != "" {
		return id
	}
	return strings.TrimSpace(i.ID)
}

// IsEmpty reports whether the identity carries neither an id nor an email.
func (i Identity) IsEmpty() bool {
	return i.Subject() == "" && strings.TrimSpace(i.Email) == ""
}

// DisplayName returns the best label for page chrome.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return strings.TrimSpace(i.Email)
}

type identityKey struct{}

// WithIdentity attaches the authenticated identity to ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || identity.IsEmpty() {
		return Identity{}, false
	}
	return identity, true
}
