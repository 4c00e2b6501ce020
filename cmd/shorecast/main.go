package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/cleanshores/shorecast/internal/api/http"
	"github.com/cleanshores/shorecast/internal/config"
	"github.com/cleanshores/shorecast/internal/events"
	"github.com/cleanshores/shorecast/internal/location"
	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/cleanshores/shorecast/internal/pipeline/sources"
	"github.com/cleanshores/shorecast/internal/scheduler"
	"github.com/cleanshores/shorecast/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Snapshot cache: durable when a path is configured, in-memory otherwise.
	var st store.Store
	if cfg.CachePath != "" {
		st, err = store.NewSQLite(cfg.CachePath)
		if err != nil {
			log.Fatalf("failed to open snapshot cache: %v", err)
		}
	} else {
		st = store.NewMemory()
	}
	defer st.Close()

	// Primary forecast source: the generic API when a key is configured,
	// otherwise the station-pinned open-data endpoint.
	var forecast pipeline.ForecastSource
	switch {
	case cfg.WeatherAPIKey != "":
		forecast = sources.NewWeatherAPIForecast(httpClient, cfg.WeatherAPIKey, cfg.ForecastDays)
	case cfg.OpenDataServiceKey != "" && cfg.OpenDataStationID != "":
		forecast = sources.NewCoastalOpenDataForecast(httpClient, cfg.OpenDataBaseURL, cfg.OpenDataServiceKey, cfg.OpenDataStationID)
	default:
		log.Fatalf("no forecast source configured; set WEATHERAPI_API_KEY or OPENDATA_SERVICE_KEY/OPENDATA_STATION_ID")
	}

	pl := pipeline.New(pipeline.Config{
		Forecast: forecast,
		Realtime: sources.NewOpenMeteoRealtime(httpClient),
		Cache:    st,
		Render: func(res pipeline.RenderResult) {
			if !res.OK {
				log.Printf("weather render failed: %s", res.Message)
				return
			}
			log.Printf("INFO: weather rendered: %s, %.1fC, %d forecast days",
				res.Snapshot.ConditionText, res.Snapshot.TemperatureC, len(res.Snapshot.Days))
		},
		HeatThresholdC: cfg.HeatThresholdC,
	})

	// Home-beach location: fixed coordinates win over a geocoded address.
	var locs location.Provider
	switch {
	case cfg.BeachLat != nil && cfg.BeachLon != nil:
		locs = location.NewStatic(*cfg.BeachLat, *cfg.BeachLon)
	case cfg.BeachAddress != "" && cfg.GeocoderAPIKey != "":
		locs = location.NewGeocode(cfg.GeocoderAPIKey, cfg.BeachAddress)
	}

	// Background refresh keeps the cached snapshot warm.
	sched := scheduler.New(locs, cfg.RefreshInterval, pl)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	catalog := events.DefaultCatalog(time.Now().UTC())

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "shorecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "shorecast",
			"state":   pl.State(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, pl, st, catalog)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
