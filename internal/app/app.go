// Package app assembles the Fiber application: middleware chain, metrics,
// API docs and the student routes.
package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"studentapi/docs"
	"studentapi/internal/config"
	handlers "studentapi/internal/http/handler"
	"studentapi/internal/http/middleware"
)

// New builds the app described by cfg. Request metrics are registered on reg
// (a fresh registry when nil) and served from /metrics.
//
// Middleware order, outermost first: request ID, tracing, request logging,
// metrics, panic recovery. A panicking handler is still logged and counted
// as a 500.
func New(cfg *config.AppConfig, log zerolog.Logger, reg *prometheus.Registry) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ErrorHandler:          handlers.ErrorHandler(),
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		CaseSensitive:         true,
		StrictRouting:         true,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(skipTracing)))
	app.Use(middleware.Logger(log))

	if cfg.MetricsEnabled {
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
		app.Use(prom.Handler())
	}

	app.Use(recover.New())

	if cfg.MetricsEnabled {
		// otelfiber skips this path; scrapes are traced as plain net/http.
		metrics := otelhttp.NewHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), "metrics")
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(metrics))
	}

	handlers.RegisterRoutes(app)

	if cfg.SwaggerEnabled {
		app.Get("/swagger/*", swaggerUI)
	}

	return app, nil
}

func skipTracing(c *fiber.Ctx) bool {
	switch c.Path() {
	case "/health", "/healthz", middleware.MetricsPath:
		return true
	}
	return false
}

// swaggerMu guards docs.SwaggerInfo, which is rewritten per request.
var swaggerMu sync.Mutex

// swaggerUI serves the swag document with host and scheme taken from the request.
func swaggerUI(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	swaggerMu.Lock()
	defer swaggerMu.Unlock()

	docs.SwaggerInfo.Host = utils.CopyString(c.Get(fiber.HeaderHost))
	docs.SwaggerInfo.Schemes = []string{utils.CopyString(scheme)}

	return swagger.HandlerDefault(c)
}
