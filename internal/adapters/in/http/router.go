package http

import (
	"log/slog"
	"net/http"

	_ "marketplace/internal/adapters/in/http/docs" // registers the swagger spec

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP router: the REST API, health check, Prometheus
// scrape endpoint and Swagger UI.
func NewEcho(server *Server, observer HTTPObserver, gatherer prometheus.Gatherer, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)

	e.Use(middleware.Recover())
	e.Use(Observability(observer, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server.Register(e)
	return e
}
