package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"schedupload/docs"
	"schedupload/internal/config"
	handlers "schedupload/internal/http/handler"
	"schedupload/internal/http/middleware"
	"schedupload/internal/logging"
	"schedupload/internal/otel"
)

// @title Schedule Upload Page
// @version 1.0
// @BasePath /
func main() {
	logger := logging.Init()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", logging.Err(err))
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:      handlers.ErrorHandler(),
		EnablePrintRoutes: cfg.IsDevelopment(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			logger.Error("failed to register metrics", logging.Err(err))
			os.Exit(1)
		}
		app.Use(promMiddleware.Handler())
		gatherer = reg
	}

	handlers.RegisterRoutes(app, cfg, gatherer)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logger.Error("server shutdown", logging.Err(err))
		}
	}()

	logger.Info("serving upload page",
		slog.String("port", cfg.Port),
		slog.String("static_dir", cfg.Static.Dir),
		slog.String("upload_endpoint", cfg.Page.UploadEndpoint),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("failed to start server", logging.Err(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("tracing shutdown", logging.Err(err))
	}
}
