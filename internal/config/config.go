package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cosmicweather/risk-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OMNIWeb feature feed. Disabled by default; the synthetic source serves
	// the fixed snapshot instead.
	OmniwebEnabled  bool
	OmniwebURL      string
	OmniwebTimeout  time.Duration
	FeatureCacheTTL time.Duration

	// Alert store and Kafka fan-out.
	AlertHistoryLimit  int
	AlertFanoutEnabled bool
	AlertBrokers       []string
	AlertTopic         string

	// Default pricing parameters, applied when a request omits them.
	RiskLoad        float64
	ConfidenceLevel float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	omniwebTimeout, err := parsePositiveDuration("OMNIWEB_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("FEATURE_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	historyLimit, err := parsePositiveInt("ALERT_HISTORY_LIMIT", 50)
	if err != nil {
		return nil, err
	}

	riskLoad, err := parseFloat("RISK_LOAD", domain.DefaultRiskLoad)
	if err != nil {
		return nil, err
	}

	confidence, err := parseFloat("CONFIDENCE_LEVEL", domain.DefaultConfidenceLevel)
	if err != nil {
		return nil, err
	}

	omniwebURL := os.Getenv("OMNIWEB_URL")
	omniwebEnabled := omniwebURL != ""
	if v := os.Getenv("OMNIWEB_ENABLED"); v != "" {
		omniwebEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":4000"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OmniwebEnabled:  omniwebEnabled,
		OmniwebURL:      omniwebURL,
		OmniwebTimeout:  omniwebTimeout,
		FeatureCacheTTL: cacheTTL,

		AlertHistoryLimit:  historyLimit,
		AlertFanoutEnabled: os.Getenv("ALERT_FANOUT_ENABLED") == "true",
		AlertBrokers:       parseBrokers(envOrDefault("ALERT_BROKERS", "localhost:9092")),
		AlertTopic:         envOrDefault("ALERT_TOPIC", "space-weather-alerts"),

		RiskLoad:        riskLoad,
		ConfidenceLevel: confidence,
	}

	if cfg.OmniwebEnabled && cfg.OmniwebURL == "" {
		return nil, errors.New("OMNIWEB_ENABLED is true but OMNIWEB_URL is not set")
	}
	if cfg.AlertFanoutEnabled && len(cfg.AlertBrokers) == 0 {
		return nil, errors.New("ALERT_FANOUT_ENABLED is true but ALERT_BROKERS is empty")
	}
	if cfg.RiskLoad < 0 {
		return nil, errors.New("RISK_LOAD must not be negative")
	}
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel > 1 {
		return nil, errors.New("CONFIDENCE_LEVEL must be in (0, 1]")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
