package paymentgw

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingRoundTripper logs method, path, status and duration of each request.
// Headers are never logged since they carry the API key.
type LoggingRoundTripper struct {
	Proxied http.RoundTripper
	Logger  *slog.Logger
}

func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := lrt.Proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		lrt.Logger.ErrorContext(req.Context(), "HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	lrt.Logger.DebugContext(req.Context(), "HTTP request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status_code", resp.StatusCode,
		"duration", duration,
	)
	return resp, nil
}
