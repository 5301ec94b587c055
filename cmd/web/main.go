package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dashboard"
	"sales-dashboard/internal/extchart"
	"sales-dashboard/internal/loader"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
	"sales-dashboard/internal/views"
)

const pageTitle = "Dashboard de Ventas"

func newLoader(cfg *config.Config) loader.Loader {
	if cfg.UsesHTTPSource() {
		return loader.NewHTTP(cfg.Data.BaseURL, cfg.Data.Path, &http.Client{Timeout: cfg.Render.LoadTimeout})
	}
	return loader.NewFile(cfg.Data.File)
}

// newChart starts the revenue chart renderer, or returns nil when it is
// disabled.
func newChart(cfg *config.Config, logger *slog.Logger) dashboard.ChartRenderer {
	if cfg.Render.DisableChart {
		logger.Info("revenue chart disabled")
		return nil
	}
	bridge := extchart.NewBridge(logger)
	bridge.OnReady(func() {
		if err := bridge.Err(); err != nil {
			logger.Warn("revenue chart unavailable", "error", err)
			return
		}
		logger.Info("revenue chart renderer ready")
	})
	bridge.Load()
	return bridge
}

type app struct {
	handler  http.Handler
	sessions *dashboard.Sessions
}

func newApp(cfg *config.Config, logger *slog.Logger, l loader.Loader, chart dashboard.ChartRenderer) (*app, error) {
	analytics := services.NewAnalytics(logger)

	d := dashboard.New(l, analytics, chart, dashboard.Options{
		LoadTimeout: cfg.Render.LoadTimeout,
		ChartWarmup: cfg.Render.ChartWarmup,
		DefaultWidth: dashboard.Widths{
			Bar:   float64(cfg.Render.BarWidth),
			Donut: float64(cfg.Render.DonutWidth),
		},
	}, logger)

	sessions, err := dashboard.NewSessions(cfg.Session.CacheSize, views.DefaultLayout)
	if err != nil {
		return nil, err
	}

	srv := server.NewServer(server.Deps{
		Analytics: analytics,
		Dashboard: d,
		Sessions:  sessions,
		Page: templates.PageData{
			Title:      pageTitle,
			Containers: views.Containers,
			BarWidth:   cfg.Render.BarWidth,
			DonutWidth: cfg.Render.DonutWidth,
		},
		Config: cfg,
		Logger: logger,
	})

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.Compression(logger),
	)

	return &app{handler: middlewareChain(srv), sessions: sessions}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	l := newLoader(cfg)
	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"dataset", l.Source(),
	)

	a, err := newApp(cfg, logger, l, newChart(cfg, logger))
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// SSE responses stay open for a whole render pass.
	writeTimeout := cfg.Server.WriteTimeout + cfg.Render.LoadTimeout

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("dropping dashboard sessions", "sessions", a.sessions.Len())
		return nil
	})

	start := time.Now()
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully", "uptime", time.Since(start))
}
