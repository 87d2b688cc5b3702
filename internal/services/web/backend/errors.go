package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Op     string
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.Status, e.Detail)
}

// StatusCode returns the backend HTTP status.
func (e *Error) StatusCode() int {
	return e.Status
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// StatusOf returns the backend HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Status
	}
	return 0
}

// DetailOf returns the backend's human-readable failure message, if any.
func DetailOf(err error) string {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Detail
	}
	return ""
}

// detailFromBody extracts the {"detail": ...} message from an error body. A
// string detail is returned as-is; validation error lists yield their first msg.
func detailFromBody(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		return strings.TrimSpace(items[0].Msg)
	}
	return ""
}
