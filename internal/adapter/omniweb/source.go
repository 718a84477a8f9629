// Package omniweb supplies feature snapshots: a static synthetic source for
// demo deployments and an HTTP client for an OMNIWeb-style feed, with a TTL
// cache decorator shared by both.
package omniweb

import (
	"context"

	"github.com/cosmicweather/risk-service/internal/domain"
)

// StaticSource implements domain.FeatureSource with a fixed synthetic series.
// It stands in for the real OMNIWeb integration and never fails.
type StaticSource struct{}

// NewStaticSource creates the synthetic feature source.
func NewStaticSource() StaticSource {
	return StaticSource{}
}

// Fetch returns the fixed synthetic snapshot: a moderately disturbed period
// ending on elevated Kp, southward Bz, and fast solar wind.
func (StaticSource) Fetch(_ context.Context) (domain.FeatureSnapshot, error) {
	return domain.FeatureSnapshot{
		Kp:              []float64{3.2, 4.0, 4.5, 5.1},
		Bz:              []float64{-1.2, -3.4, -5.5, -2.1},
		SolarWindKmPerS: []float64{380, 420, 510, 600},
		ProtonFluxPfu:   []float64{1.1, 1.4, 1.0, 0.8},
	}, nil
}
