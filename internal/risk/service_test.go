package risk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicweather/risk-service/internal/alert"
	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
)

type stubSource struct {
	snapshot domain.FeatureSnapshot
	err      error
}

func (s *stubSource) Fetch(_ context.Context) (domain.FeatureSnapshot, error) {
	return s.snapshot, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func demoSnapshot() domain.FeatureSnapshot {
	return domain.FeatureSnapshot{
		Kp:              []float64{3.2, 4.0, 4.5, 5.1},
		Bz:              []float64{-1.2, -3.4, -5.5, -2.1},
		SolarWindKmPerS: []float64{380, 420, 510, 600},
		ProtonFluxPfu:   []float64{1.1, 1.4, 1.0, 0.8},
	}
}

func newTestService(source domain.FeatureSource, alerts *alert.Store) *Service {
	return NewService(source, alerts, testLogger(), observability.NewMetricsForTesting(),
		domain.DefaultRiskLoad, domain.DefaultConfidenceLevel)
}

func TestService_Forecast(t *testing.T) {
	svc := newTestService(&stubSource{snapshot: demoSnapshot()}, nil)

	forecast, err := svc.Forecast(context.Background(), domain.Assumptions{
		Altitude: "LEO", ShieldingLevel: 3, AssetValue: 100_000_000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.9730, forecast.Horizons.H24.Probability, 0.0005)
	assert.Equal(t, demoSnapshot(), forecast.Features)
	assert.Equal(t, "LEO", forecast.Assumptions.Altitude)
}

func TestService_Forecast_SourceError(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("feed down")}, nil)

	_, err := svc.Forecast(context.Background(), domain.Assumptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch features")
}

func TestService_Premium_Defaults(t *testing.T) {
	svc := newTestService(&stubSource{snapshot: demoSnapshot()}, nil)
	forecast, err := svc.Forecast(context.Background(), domain.Assumptions{AssetValue: 100_000_000})
	require.NoError(t, err)
	dist := svc.Loss(&forecast, 100_000_000)

	defaulted := svc.Premium(dist, nil, nil)
	explicit := svc.Premium(dist, floatPtr(domain.DefaultRiskLoad), floatPtr(domain.DefaultConfidenceLevel))
	assert.Equal(t, explicit, defaulted, "nil overrides use the configured defaults")

	heavier := svc.Premium(dist, floatPtr(0.5), nil)
	assert.Greater(t, heavier.Premium, defaulted.Premium)
	assert.Equal(t, 0.5, heavier.Assumptions.RiskLoad)
}

func TestService_RunQuote(t *testing.T) {
	svc := newTestService(&stubSource{snapshot: demoSnapshot()}, nil)

	quote, err := svc.RunQuote(context.Background(), domain.Assumptions{
		Altitude: "LEO", ShieldingLevel: 3, AssetValue: 100_000_000,
	})
	require.NoError(t, err)

	// Each stage is consistent with running it standalone.
	assert.Equal(t, svc.Loss(&quote.Forecast, 100_000_000), quote.Loss)
	assert.Equal(t, svc.Premium(quote.Loss, nil, nil), quote.Premium)
	assert.Equal(t, svc.Explain(&quote.Forecast), quote.Explanation)
	assert.NotEmpty(t, quote.Explanation.Summary)
}

func TestService_RunQuote_SourceError(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("feed down")}, nil)

	_, err := svc.RunQuote(context.Background(), domain.Assumptions{})
	require.Error(t, err)
}

func TestService_CheckReadiness(t *testing.T) {
	healthy := newTestService(&stubSource{snapshot: demoSnapshot()}, nil)
	assert.NoError(t, healthy.CheckReadiness(context.Background()))

	broken := newTestService(&stubSource{err: errors.New("feed down")}, nil)
	err := broken.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestService_Forecast_RaisesStormAlert(t *testing.T) {
	stormy := demoSnapshot()
	stormy.Kp = []float64{5.0, 6.2, 7.4, 8.1}

	store := alert.NewStore(50, clockwork.NewFakeClock(), nil, testLogger(), observability.NewMetricsForTesting())
	svc := newTestService(&stubSource{snapshot: stormy}, store)

	_, err := svc.Forecast(context.Background(), domain.Assumptions{})
	require.NoError(t, err)

	recent := store.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "geomagnetic-storm", recent[0]["type"])
	assert.Equal(t, 8.1, recent[0]["kp"])
}

func TestService_Forecast_QuietConditionsNoAlert(t *testing.T) {
	store := alert.NewStore(50, clockwork.NewFakeClock(), nil, testLogger(), observability.NewMetricsForTesting())
	svc := newTestService(&stubSource{snapshot: demoSnapshot()}, store)

	_, err := svc.Forecast(context.Background(), domain.Assumptions{})
	require.NoError(t, err)
	assert.Empty(t, store.Recent())
}

func floatPtr(v float64) *float64 { return &v }
