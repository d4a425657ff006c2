package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/albionarcade/gully/internal/adapters/ai"
	"github.com/albionarcade/gully/internal/adapters/http/api"
	"github.com/albionarcade/gully/internal/adapters/http/site"
	"github.com/albionarcade/gully/internal/adapters/http/swagger"
	app "github.com/albionarcade/gully/internal/app"
	"github.com/albionarcade/gully/internal/config"
	"github.com/albionarcade/gully/pkg/logger"
	"github.com/albionarcade/gully/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second // AI endpoints can take a while
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	rolloverCheckInterval     = time.Minute
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := cfg.Location()
	if err != nil {
		os.Stderr.WriteString("invalid timezone: " + cfg.Timezone + "\n")
		return
	}

	// Optional Gemini collaborator; the game runs without it.
	aiClient, err := ai.New(ctx, cfg.GeminiAPIKey,
		ai.WithModel(cfg.GeminiModel),
		ai.WithTimeout(cfg.AITimeout()),
		ai.WithRatePerMinute(cfg.AIRatePerMinute),
	)
	if err != nil {
		loggerInstance.Warn(ctx, "AI collaborator unavailable; continuing without it", logger.Error(err))
		aiClient = nil
	}
	if aiClient != nil && !aiClient.Enabled() {
		loggerInstance.Warn(ctx, "GEMINI_API_KEY is not set; AI features will be disabled")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithPlayersFile(cfg.PlayersFile),
		app.WithRecentsFile(cfg.RecentsFile),
		app.WithWindowDays(cfg.WindowDays),
		app.WithLocation(loc),
		app.WithClubName(cfg.ClubName),
		app.WithDebug(cfg.Debug),
		app.WithAIClient(aiClient),
	)
	if err := svc.Start(ctx); err != nil {
		// Data-load failures are fatal: no table, no game.
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start day-rollover pre-selection so the first request of a new day
	// never pays the selection cost.
	go startRolloverUpdater(ctx, svc, loggerInstance)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, api.WithAdminKey(cfg.AdminKey))
	apiServer.Register(ctx, mux)

	// Register the embedded game frontend at /
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startRolloverUpdater keeps today's selection resolved across midnight.
func startRolloverUpdater(ctx context.Context, svc *app.Service, log logger.Logger) {
	ticker := time.NewTicker(rolloverCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.EnsureToday(ctx); err != nil {
				log.Error(ctx, "day rollover selection failed", logger.Error(err))
			}
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Average GC pause time across all cycles
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
