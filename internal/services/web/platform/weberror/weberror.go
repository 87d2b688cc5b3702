// Package weberror turns module failures into user-safe messages and flash
// notices.
package weberror

import (
	"net/http"
	"strings"

	webi18n "github.com/louisbranch/portfolio-tracker/internal/services/web/i18n"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. The backend's
// own detail wins, then the typed error key, then fallbackKey.
func PublicMessage(loc webi18n.Localizer, err error, fallbackKey string) string {
	if err == nil {
		return ""
	}
	if detail := strings.TrimSpace(backend.DetailOf(err)); detail != "" {
		return detail
	}
	key := apperrors.LocalizationKey(err)
	if key == "" {
		key = strings.TrimSpace(fallbackKey)
	}
	if loc != nil && key != "" {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// Notice builds the error toast for a failed mutation. The backend detail,
// when present, is appended to the localized key.
func Notice(err error, key string) flash.Notice {
	notice := flash.NoticeError(key)
	if typed := apperrors.LocalizationKey(err); typed != "" {
		notice.Key = typed
	}
	notice.Detail = strings.TrimSpace(backend.DetailOf(err))
	return notice
}
