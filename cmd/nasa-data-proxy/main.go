package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/earthlens/nasa-data-proxy/internal/api/http"
	"github.com/earthlens/nasa-data-proxy/internal/config"
	"github.com/earthlens/nasa-data-proxy/internal/geocode"
	"github.com/earthlens/nasa-data-proxy/internal/hydrology"
	"github.com/earthlens/nasa-data-proxy/internal/links"
	"github.com/earthlens/nasa-data-proxy/internal/observability"
	"github.com/earthlens/nasa-data-proxy/internal/scheduler"
	"github.com/earthlens/nasa-data-proxy/internal/store"
	"github.com/earthlens/nasa-data-proxy/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:    cfg.GesDiscBaseURL,
		Username:   cfg.NasaUsername,
		Password:   cfg.NasaPassword,
		HTTPClient: httpClient,
		MaxRetries: cfg.MaxRetries,
	})
	cache := store.NewPayloadCache(cfg.CacheMaxEntries, cfg.CacheTTL)
	fetcher := upstream.NewCachedFetcher(client, cache)

	// Reachability monitor feeding the advisory health gate and the gauge.
	gate := upstream.NewGate(cfg.GesDiscBaseURL, httpClient)
	monitor := scheduler.New(gate, cfg.ProbeInterval, cfg.ProbeTimeout, func(ok bool) {
		if ok {
			metrics.UpstreamReachable.Set(1)
		} else {
			metrics.UpstreamReachable.Set(0)
		}
	})

	if cfg.UseRealData {
		if err := monitor.Start(); err != nil {
			log.Fatalf("failed to start reachability monitor: %v", err)
		}
		defer monitor.Stop()
	} else {
		log.Println("real data mode disabled, serving synthetic data only")
	}

	service := hydrology.NewService(hydrology.ServiceConfig{
		Fetcher:     fetcher,
		Gate:        monitor,
		Clock:       clockwork.NewRealClock(),
		Metrics:     metrics,
		UseRealData: cfg.UseRealData,
	})

	if cfg.NasaUsername == "" {
		log.Println("WARN: NASA credentials not configured, upstream may reject or throttle requests")
	}

	app := fiber.New(fiber.Config{
		AppName:               "nasa-data-proxy",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service: service,
		Links: links.Config{
			GiovanniBaseURL:  cfg.GiovanniBaseURL,
			WorldviewBaseURL: cfg.WorldviewBaseURL,
			EarthdataBaseURL: cfg.EarthdataBaseURL,
			CptecBaseURL:     cfg.CptecBaseURL,
		},
		Geo:   geocode.NewResolver(cfg.GeocoderAPIKey),
		Clock: clockwork.NewRealClock(),
		Port:  cfg.Port,
	})

	go func() {
		log.Printf("nasa-data-proxy listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
