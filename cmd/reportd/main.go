// Command reportd serves the California fire-insurance report API. It loads
// the fire history, climate, and recovery datasets once at startup, then
// derives chart series and map points on demand from query parameters.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/embermetrics/fire-report-service/internal/adapter/httpapi"
	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/loader"
	"github.com/embermetrics/fire-report-service/internal/observability"
	"github.com/embermetrics/fire-report-service/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	data, err := loader.LoadAll(cfg.Data, logger)
	if err != nil {
		logger.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}
	metrics.DatasetRows.WithLabelValues("fires").Set(float64(len(data.Fires)))
	metrics.DatasetRows.WithLabelValues("climate").Set(float64(len(data.Climate)))
	metrics.DatasetRows.WithLabelValues("destroyed").Set(float64(len(data.Destroyed)))
	metrics.DatasetRows.WithLabelValues("recovered").Set(float64(len(data.Recovered)))
	metrics.DataLoaded.Set(1)

	engine := report.NewEngine(data, cfg.Report, cfg.Cache.MaxEntries, logger, metrics)
	srv := httpapi.NewServer(cfg.HTTP.Addr, engine, cfg.Report, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
