package domain

import (
	"context"
	"errors"
	"fmt"
)

// FeatureSnapshot holds aligned time series of space-weather indicators, one
// value per observation, oldest first. Only the last element of each series
// is consumed by the model.
type FeatureSnapshot struct {
	Kp              []float64 `json:"kp"`
	Bz              []float64 `json:"bz"`
	SolarWindKmPerS []float64 `json:"solarWindKmPerS"`
	ProtonFluxPfu   []float64 `json:"protonFluxPfu"`
}

// ErrEmptySnapshot indicates a snapshot with no observations in any series.
var ErrEmptySnapshot = errors.New("feature snapshot has no observations")

// Validate checks that all four series are non-empty and equally long, the
// contract a production feature source must satisfy.
func (s FeatureSnapshot) Validate() error {
	n := len(s.Kp)
	if n == 0 {
		return ErrEmptySnapshot
	}
	if len(s.Bz) != n || len(s.SolarWindKmPerS) != n || len(s.ProtonFluxPfu) != n {
		return fmt.Errorf("feature series lengths differ: kp=%d bz=%d wind=%d proton=%d",
			len(s.Kp), len(s.Bz), len(s.SolarWindKmPerS), len(s.ProtonFluxPfu))
	}
	return nil
}

// LatestKp returns the newest Kp observation, or 0 when the series is empty.
func (s FeatureSnapshot) LatestKp() float64 {
	return latestOrZero(s.Kp)
}

// latestOrZero is the default policy for reading the newest observation of a
// series: an absent or empty series contributes 0 rather than an error.
func latestOrZero(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// FeatureSource supplies the latest feature snapshot. Implementations may
// reach external feeds and must surface failures instead of fabricating data.
type FeatureSource interface {
	Fetch(ctx context.Context) (FeatureSnapshot, error)
}
