// Package risk orchestrates the forecast, loss, premium, and explanation
// stages behind the REST API and the quote CLI. The math lives in
// internal/domain; this package owns fetching features, applying configured
// defaults, and recording metrics around each operation.
package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cosmicweather/risk-service/internal/alert"
	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
)

// alertKpThreshold is the latest-Kp level above which a forecast raises a
// storm alert.
const alertKpThreshold = 6.0

// Quote bundles the full pipeline output for one set of assumptions.
type Quote struct {
	Forecast    domain.Forecast         `json:"forecast"`
	Loss        domain.LossDistribution `json:"lossDistribution"`
	Premium     domain.PremiumQuote     `json:"premiumQuote"`
	Explanation domain.Explanation      `json:"explanation"`
}

// Service runs the risk pipeline against a live feature source.
type Service struct {
	source          domain.FeatureSource
	alerts          *alert.Store
	logger          *slog.Logger
	metrics         *observability.Metrics
	riskLoad        float64
	confidenceLevel float64
}

// NewService creates a Service. riskLoad and confidenceLevel are the premium
// defaults applied when a request does not override them. The alert store is
// optional; without one, forecasts never raise alerts.
func NewService(source domain.FeatureSource, alerts *alert.Store, logger *slog.Logger, metrics *observability.Metrics, riskLoad, confidenceLevel float64) *Service {
	return &Service{
		source:          source,
		alerts:          alerts,
		logger:          logger,
		metrics:         metrics,
		riskLoad:        riskLoad,
		confidenceLevel: confidenceLevel,
	}
}

// Forecast fetches the latest features and generates a storm forecast for
// the given assumptions.
func (s *Service) Forecast(ctx context.Context, assumptions domain.Assumptions) (domain.Forecast, error) {
	features, err := s.source.Fetch(ctx)
	if err != nil {
		s.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return domain.Forecast{}, fmt.Errorf("fetch features: %w", err)
	}

	forecast := domain.GenerateForecast(features, assumptions)
	s.metrics.ForecastRequests.WithLabelValues("success").Inc()
	s.maybeRaiseAlert(ctx, forecast)
	return forecast, nil
}

// Loss derives the tiered loss distribution for a forecast and asset value.
func (s *Service) Loss(forecast *domain.Forecast, assetValue float64) domain.LossDistribution {
	return domain.DeriveLossDistribution(forecast, assetValue)
}

// Premium prices a loss distribution. Nil riskLoad or confidenceLevel fall
// back to the configured defaults.
func (s *Service) Premium(dist domain.LossDistribution, riskLoad, confidenceLevel *float64) domain.PremiumQuote {
	load := s.riskLoad
	if riskLoad != nil {
		load = *riskLoad
	}
	confidence := s.confidenceLevel
	if confidenceLevel != nil {
		confidence = *confidenceLevel
	}

	quote := domain.CalculatePremium(dist, load, confidence)
	s.metrics.PremiumQuotes.Inc()
	return quote
}

// Explain attributes a forecast to its driving features.
func (s *Service) Explain(forecast *domain.Forecast) domain.Explanation {
	return domain.Explain(forecast)
}

// RunQuote executes the full chain: forecast, loss distribution at the
// assumed asset value, premium at the configured defaults, and explanation.
func (s *Service) RunQuote(ctx context.Context, assumptions domain.Assumptions) (Quote, error) {
	start := time.Now()

	forecast, err := s.Forecast(ctx, assumptions)
	if err != nil {
		return Quote{}, err
	}

	dist := s.Loss(&forecast, assumptions.AssetValue)
	premium := s.Premium(dist, nil, nil)
	explanation := s.Explain(&forecast)

	s.metrics.QuoteDuration.Observe(time.Since(start).Seconds())
	return Quote{
		Forecast:    forecast,
		Loss:        dist,
		Premium:     premium,
		Explanation: explanation,
	}, nil
}

// CheckReadiness returns nil if the feature source is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if _, err := s.source.Fetch(ctx); err != nil {
		return fmt.Errorf("feature source not reachable: %w", err)
	}
	return nil
}

// maybeRaiseAlert pushes a storm alert when the latest Kp reading crosses
// the threshold.
func (s *Service) maybeRaiseAlert(ctx context.Context, forecast domain.Forecast) {
	if s.alerts == nil {
		return
	}
	kp := forecast.Features.LatestKp()
	if kp < alertKpThreshold {
		return
	}
	s.alerts.Push(ctx, map[string]any{
		"type":           "geomagnetic-storm",
		"kp":             kp,
		"probability24h": forecast.Horizons.H24.Probability,
		"message":        fmt.Sprintf("Kp %.1f exceeds storm threshold %.0f", kp, alertKpThreshold),
	})
}
