// Package observability provides request logging middleware for the web service.
package observability

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/mssola/useragent"
)

// RequestLogger logs one key=value line per request after it completes.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			logger.Printf(
				"method=%s path=%s status=%d bytes=%d latency=%s request_id=%s client=%s",
				r.Method,
				r.URL.Path,
				recorder.Status(),
				recorder.bytes,
				time.Since(start).Round(time.Microsecond),
				httpx.RequestIDFrom(r),
				clientFamily(r.UserAgent()),
			)
		})
	}
}

// clientFamily condenses a User-Agent header into "browser/version" or "bot".
func clientFamily(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		return "bot"
	}
	name, version := ua.Browser()
	if name == "" {
		return "-"
	}
	if major, _, ok := strings.Cut(version, "."); ok {
		version = major
	}
	if version == "" {
		return name
	}
	return name + "/" + version
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
