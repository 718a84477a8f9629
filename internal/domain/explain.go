package domain

import (
	"fmt"
	"math"
)

// Importance normalization spans: how far each feature's latest value sits
// from its quiet baseline, scaled to a comparable unitless range.
const (
	windImportanceSpan = 300.0
	bzImportanceSpan   = 10.0
	kpImportanceSpan   = 6.0
)

// FeatureImportance is one feature's raw importance and its share of the
// total (weights sum to 1 across the tracked features).
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Weight     float64 `json:"weight"`
}

// Explanation attributes a forecast to its input features.
type Explanation struct {
	Importance []FeatureImportance `json:"importance"`
	Summary    string              `json:"summary"`
}

// Explain derives fixed-formula feature importances from the snapshot a
// forecast was computed on, independent of the horizon probabilities.
// A nil forecast explains an all-zero snapshot.
func Explain(forecast *Forecast) Explanation {
	var features FeatureSnapshot
	if forecast != nil {
		features = forecast.Features
	}

	wind := latestOrZero(features.SolarWindKmPerS)
	bz := latestOrZero(features.Bz)
	kp := latestOrZero(features.Kp)

	importance := []FeatureImportance{
		{Feature: "solarWindKmPerS", Importance: math.Abs(wind-windBaseline) / windImportanceSpan},
		{Feature: "bz", Importance: math.Abs(math.Min(0, bz)) / bzImportanceSpan},
		{Feature: "kp", Importance: math.Abs(kp-kpBaseline) / kpImportanceSpan},
	}

	// Divide by 1 when total importance is zero: weights stay raw zeros
	// instead of producing NaN.
	total := 0.0
	for _, fi := range importance {
		total += fi.Importance
	}
	if total == 0 {
		total = 1
	}
	for i := range importance {
		importance[i].Weight = importance[i].Importance / total
	}

	summary := fmt.Sprintf("Forecast driven by solar wind %.0f km/s, IMF Bz %.1f nT, Kp %.1f.", wind, bz, kp)

	return Explanation{Importance: importance, Summary: summary}
}
