package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schedupload/internal/config"
	"schedupload/internal/page"
)

// StaticPrefix is the mount point of the WASM bundle and its loader.
const StaticPrefix = "/static"

// RegisterRoutes attaches the hosting page routes to the provided Fiber app.
// gatherer may be nil, in which case /metrics is not mounted.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, gatherer prometheus.Gatherer) {
	app.Get("/", Index(page.Data{
		Title:          cfg.Page.Title,
		SheetDefault:   cfg.Page.SheetDefault,
		UploadEndpoint: cfg.Page.UploadEndpoint,
		StaticPrefix:   StaticPrefix,
		Bundle:         cfg.Static.Bundle,
	}))
	app.Static(StaticPrefix, cfg.Static.Dir)

	app.Get("/health", HealthCheck(filepath.Join(cfg.Static.Dir, cfg.Static.Bundle)))
	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", Metrics(gatherer))
	}
}

// Index renders the upload page.
//
// @Summary     Upload page
// @Description Renders the schedule upload form and loads the WASM controller.
// @Produce     html
// @Success     200 {string} string "page"
// @Failure     500 {object} errorPayload
// @Router      / [get]
func Index(data page.Data) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := page.Render(&buf, data); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "RENDER_ERROR", "page unavailable")
		}
		return c.Type("html").Send(buf.Bytes())
	}
}

// HealthCheck reports ready only when the WASM bundle exists on disk.
//
// @Summary  Readiness probe
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorPayload
// @Router   /health [get]
func HealthCheck(bundlePath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := os.Stat(bundlePath)
		if err != nil || info.IsDir() {
			code := "SERVICE_UNAVAILABLE"
			if errors.Is(err, fs.ErrNotExist) {
				code = "BUNDLE_MISSING"
			}
			return writeError(c, fiber.StatusServiceUnavailable, code, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
//
// @Summary  Liveness probe
// @Success  200
// @Router   /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics exposes the gatherer in the Prometheus text format.
func Metrics(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
