package grafana

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each outgoing request with method, path, status, and
// duration. The URL is logged without user info or query.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Warn("grafana request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get(requestIDHeader),
			"duration", time.Since(start).Round(time.Microsecond),
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("grafana request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}
