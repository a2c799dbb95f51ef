package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPObserver records served requests. *metrics.Metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(method, path string, status int, seconds float64)
}

// Observability records every request with observer and logs it. The route
// pattern is used as the path label, so /deliveries/:id counts as one route.
func Observability(observer HTTPObserver, logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			observer.ObserveHTTP(c.Request().Method, path, status, elapsed.Seconds())

			logger.InfoContext(c.Request().Context(), "http request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration", elapsed,
			)
			return nil
		}
	}
}
