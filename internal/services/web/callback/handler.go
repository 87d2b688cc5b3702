// Package callback completes the OAuth redirect: it trades the session id
// carried in the URL fragment for a backend session exactly once per page load.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// Exchange outcomes reported to the Observer.
const (
	OutcomeSuccess      = "success"
	OutcomeFailure      = "failure"
	OutcomeMissingToken = "missing_token"
)

var (
	errMissingToken = errors.New("callback: no session id in fragment")
	errUnknownLoad  = errors.New("callback: unknown or expired page load")
)

// Exchanger trades a one-time session id for a backend session.
type Exchanger interface {
	ExchangeSession(ctx context.Context, sessionID string, cookies []*http.Cookie) (backend.AuthResult, error)
}

// Observer is notified of every exchange attempt. Nil is allowed.
type Observer interface {
	ObserveExchange(outcome string)
}

// Outcome is where the browser goes after the callback, and what it carries.
type Outcome struct {
	Location string
	// Replace asks the browser to replace the callback entry in history.
	Replace bool
	// Identity is the handoff for the next page; nil on failure.
	Identity *session.Identity
	Notice   flash.Notice
	// Cookies are backend Set-Cookie headers to relay to the browser.
	Cookies []*http.Cookie
	// HandoffKey names the stored identity handoff, if one was made.
	HandoffKey string
	Err        error
}

// Succeeded reports whether the exchange established a session.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Identity != nil
}

// Handler runs the token exchange.
type Handler struct {
	exchanger Exchanger
	observer  Observer
}

// NewHandler builds a Handler backed by exchanger.
func NewHandler(exchanger Exchanger, observer Observer) *Handler {
	return &Handler{exchanger: exchanger, observer: observer}
}

// Exchange reads the session id from fragment and trades it for a session.
// A missing id fails without contacting the backend.
func (h *Handler) Exchange(ctx context.Context, fragment string, cookies []*http.Cookie) Outcome {
	sessionID, ok := ParseFragment(fragment)
	if !ok {
		h.observe(OutcomeMissingToken)
		return failure(errMissingToken)
	}
	if h == nil || h.exchanger == nil {
		return failure(errors.New("callback: exchanger is not configured"))
	}

	result, err := h.exchanger.ExchangeSession(ctx, sessionID, cookies)
	if err != nil {
		h.observe(OutcomeFailure)
		return failure(fmt.Errorf("exchange session: %w", err))
	}
	if result.Identity.IsEmpty() {
		h.observe(OutcomeFailure)
		return failure(fmt.Errorf("exchange session: %w", session.ErrNoIdentity))
	}

	h.observe(OutcomeSuccess)
	identity := result.Identity
	return Outcome{
		Location: routepath.Dashboard,
		Replace:  true,
		Identity: &identity,
		Notice:   flash.NoticeSuccess("toast.login_success"),
		Cookies:  result.Cookies,
	}
}

func (h *Handler) observe(outcome string) {
	if h != nil && h.observer != nil {
		h.observer.ObserveExchange(outcome)
	}
}

func failure(err error) Outcome {
	return Outcome{
		Location: routepath.Login,
		Replace:  true,
		Notice:   flash.NoticeError("toast.login_failed"),
		Err:      err,
	}
}
