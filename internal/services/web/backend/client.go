// Package backend is the HTTP client for the portfolio REST API. Every call
// carries the browser's session cookie and returns the cookies the backend
// set, so callers can relay them to the browser.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	apiPrefix       = "/api"
	maxResponseBody = 1 << 20
	tracerName      = "portfolio-tracker/web/backend"
)

var (
	// errEmptyBody reports a 2xx answer with no JSON document.
	errEmptyBody = errors.New("backend returned an empty body")
	// errUndecodable reports a 2xx answer whose JSON does not fit the target.
	errUndecodable = errors.New("backend returned an undecodable body")
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is notified after every backend call. Status is 0 when no
// response was received.
type Observer interface {
	ObserveBackendCall(op string, status int, elapsed time.Duration)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient HTTPDoer
	Timeout    time.Duration
	Observer   Observer
	Tracer     trace.Tracer
}

// Client talks to the portfolio REST API.
type Client struct {
	baseURL  string
	http     HTTPDoer
	timeout  time.Duration
	observer Observer
	tracer   trace.Tracer
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base url %q is not absolute", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.BackendRequest
	}
	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Client{
		baseURL:  base + apiPrefix,
		http:     doer,
		timeout:  timeout,
		observer: cfg.Observer,
		tracer:   tracer,
	}, nil
}

// call describes one backend request.
type call struct {
	op      string
	method  string
	path    string
	cookies []*http.Cookie
	body    any
	out     any
}

// do executes in and returns the cookies set by the backend. Non-2xx answers
// become *Error; a 2xx answer without a body when in.out is set is errEmptyBody.
func (c *Client) do(ctx context.Context, in call) (_ []*http.Cookie, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "backend."+in.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", in.method),
			attribute.String("url.path", apiPrefix+in.path),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackendCall(in.op, status, time.Since(start))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("backend %s: encode request: %w", in.op, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend %s: build request: %w", in.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range in.cookies {
		if cookie != nil {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", in.op, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("backend %s: read response: %w", in.op, err)
	}
	set := resp.Cookies()
	if status < 200 || status > 299 {
		return set, &Error{Op: in.op, Status: status, Detail: detailFromBody(body)}
	}
	if in.out == nil {
		return set, nil
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return set, fmt.Errorf("backend %s: %w", in.op, errEmptyBody)
	}
	if err := json.Unmarshal(trimmed, in.out); err != nil {
		return set, fmt.Errorf("backend %s: %w: %w", in.op, errUndecodable, err)
	}
	return set, nil
}
