package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/cosmicweather/risk-service/internal/adapter/http"
	kafkaadapter "github.com/cosmicweather/risk-service/internal/adapter/kafka"
	"github.com/cosmicweather/risk-service/internal/adapter/omniweb"
	"github.com/cosmicweather/risk-service/internal/alert"
	"github.com/cosmicweather/risk-service/internal/config"
	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
	"github.com/cosmicweather/risk-service/internal/risk"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clk := clockwork.NewRealClock()

	// Feature source (feature-flagged via OMNIWEB_ENABLED / OMNIWEB_URL).
	var source domain.FeatureSource
	if cfg.OmniwebEnabled {
		source = omniweb.NewClient(cfg.OmniwebURL, cfg.OmniwebTimeout, logger, metrics)
		logger.Info("omniweb feed enabled", "url", cfg.OmniwebURL, "timeout", cfg.OmniwebTimeout)
	} else {
		source = omniweb.NewStaticSource()
		logger.Info("omniweb feed disabled, using synthetic features")
	}
	source = omniweb.NewCachedSource(source, cfg.FeatureCacheTTL, clk, metrics)

	// Alert fan-out (feature-flagged via ALERT_FANOUT_ENABLED / ALERT_BROKERS).
	var notifier alert.Notifier
	var kafkaNotifier *kafkaadapter.Notifier
	if cfg.AlertFanoutEnabled {
		kafkaNotifier = kafkaadapter.NewNotifier(cfg, logger)
		notifier = kafkaNotifier
		logger.Info("alert fan-out enabled", "brokers", cfg.AlertBrokers, "topic", cfg.AlertTopic)
	} else {
		notifier = alert.NewLogNotifier(logger)
		logger.Info("alert fan-out disabled, logging only")
	}

	alerts := alert.NewStore(cfg.AlertHistoryLimit, clk, notifier, logger, metrics)
	svc := risk.NewService(source, alerts, logger, metrics, cfg.RiskLoad, cfg.ConfidenceLevel)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, alerts, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			logger.Error("kafka notifier close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
