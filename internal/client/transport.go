// ABOUTME: Logging round tripper stamping each request with a correlation ID
// ABOUTME: Logs method, path, status and latency through slog

package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID to the backend
const RequestIDHeader = "X-Request-ID"

type loggingTransport struct {
	next http.RoundTripper
}

func newLoggingTransport(next http.RoundTripper) http.RoundTripper {
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	req = req.Clone(req.Context())
	req.Header.Set(RequestIDHeader, requestID)
	path := sanitizePath(req.URL.Path)

	slog.Debug("Request started",
		"request_id", requestID,
		"method", req.Method,
		"path", path,
	)

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		slog.Warn("Request failed",
			"request_id", requestID,
			"method", req.Method,
			"path", path,
			"error", err,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// sanitizePath strips control characters so paths cannot forge log lines
func sanitizePath(p string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, p)
}
