package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk
// pipeline and alert store.
type Metrics struct {
	ForecastRequests *prometheus.CounterVec // labels: outcome={success,error}
	QuoteDuration    prometheus.Histogram
	PremiumQuotes    prometheus.Counter

	// Feature source metrics.
	FeatureFetches *prometheus.CounterVec // labels: outcome={success,error}
	FeatureCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Alert store metrics.
	AlertsPushed  prometheus.Counter
	AlertsDropped prometheus.Counter
	AlertFanout   *prometheus.CounterVec // labels: outcome={success,error}
	Subscribers   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "forecast_requests_total",
			Help:      "Forecast generations by outcome.",
		}, []string{"outcome"}),
		QuoteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "space_risk",
			Name:      "quote_duration_seconds",
			Help:      "Duration of a full forecast-loss-premium-explain quote.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PremiumQuotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "premium_quotes_total",
			Help:      "Total premium calculations served.",
		}),
		FeatureFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "feature_fetches_total",
			Help:      "Feature source fetches by outcome.",
		}, []string{"outcome"}),
		FeatureCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "feature_cache_total",
			Help:      "Feature snapshot cache lookups by result.",
		}, []string{"result"}),
		AlertsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "alerts_pushed_total",
			Help:      "Alert records appended to the in-memory store.",
		}),
		AlertsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "alerts_dropped_total",
			Help:      "Alert records truncated past the store capacity.",
		}),
		AlertFanout: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_risk",
			Name:      "alert_fanout_total",
			Help:      "Alert fan-out publishes by outcome.",
		}, []string{"outcome"}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "space_risk",
			Name:      "alert_subscribers",
			Help:      "Current number of alert subscriptions held in memory.",
		}),
	}

	prometheus.MustRegister(
		m.ForecastRequests,
		m.QuoteDuration,
		m.PremiumQuotes,
		m.FeatureFetches,
		m.FeatureCache,
		m.AlertsPushed,
		m.AlertsDropped,
		m.AlertFanout,
		m.Subscribers,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_risk", Name: "forecast_requests_total"}, []string{"outcome"}),
		QuoteDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "space_risk", Name: "quote_duration_seconds"}),
		PremiumQuotes:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "space_risk", Name: "premium_quotes_total"}),
		FeatureFetches:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_risk", Name: "feature_fetches_total"}, []string{"outcome"}),
		FeatureCache:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_risk", Name: "feature_cache_total"}, []string{"result"}),
		AlertsPushed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "space_risk", Name: "alerts_pushed_total"}),
		AlertsDropped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "space_risk", Name: "alerts_dropped_total"}),
		AlertFanout:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_risk", Name: "alert_fanout_total"}, []string{"outcome"}),
		Subscribers:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "space_risk", Name: "alert_subscribers"}),
	}
}
