package domain

import "math"

// DefaultAssetValue is assumed when the caller declares no (or a zero) asset value.
const DefaultAssetValue = 100_000_000.0

// defaultSeverity is the fallback 24h storm probability when the forecast is
// absent or carries a zero probability. An explicit policy, not an error.
const defaultSeverity = 0.2

// Tier loss fractions and probability bounds. Tier probabilities scale
// linearly with severity and are clamped per tier before normalization.
const (
	minorLossFraction    = 0.01
	moderateLossFraction = 0.10
	severeLossFraction   = 0.50

	minorProbCeil    = 0.9
	moderateProbCeil = 0.3
	severeProbFloor  = 0.05
)

// Tier is one discrete loss-severity bucket.
type Tier struct {
	Tier        string  `json:"tier"`
	Loss        float64 `json:"loss"`
	Probability float64 `json:"probability"`
}

// LossAssumptions records the asset value the distribution was derived for.
type LossAssumptions struct {
	AssetValue float64 `json:"assetValue"`
}

// LossDistribution is a three-tier discrete loss distribution, normalized so
// the tier probabilities sum to 1 (zero-sum inputs pass through untouched).
type LossDistribution struct {
	Tiers        []Tier          `json:"tiers"`
	ExpectedLoss float64         `json:"expectedLoss"`
	Assumptions  LossAssumptions `json:"assumptions"`
}

// DeriveLossDistribution maps a forecast's 24h storm probability and a
// declared asset value to the minor/moderate/severe loss distribution.
// A nil forecast or zero probability falls back to defaultSeverity; a zero
// assetValue falls back to DefaultAssetValue.
func DeriveLossDistribution(forecast *Forecast, assetValue float64) LossDistribution {
	if assetValue == 0 {
		assetValue = DefaultAssetValue
	}

	severity := defaultSeverity
	if forecast != nil && forecast.Horizons.H24.Probability != 0 {
		severity = forecast.Horizons.H24.Probability
	}

	tiers := normalizeTiers([]Tier{
		{Tier: "minor", Loss: math.Round(assetValue * minorLossFraction), Probability: math.Min(minorProbCeil, 0.6+severity*0.3)},
		{Tier: "moderate", Loss: math.Round(assetValue * moderateLossFraction), Probability: math.Min(moderateProbCeil, 0.3+severity*0.2)},
		{Tier: "severe", Loss: math.Round(assetValue * severeLossFraction), Probability: math.Max(severeProbFloor, 0.1+severity*0.1)},
	})

	var expectedLoss float64
	for _, t := range tiers {
		expectedLoss += t.Loss * t.Probability
	}

	return LossDistribution{
		Tiers:        tiers,
		ExpectedLoss: expectedLoss,
		Assumptions:  LossAssumptions{AssetValue: assetValue},
	}
}

// normalizeTiers scales tier probabilities to sum to 1. Tiers whose
// probabilities sum to exactly zero are returned unmodified; whether that
// passthrough is intended is an open product question, so the behavior is
// preserved rather than corrected.
func normalizeTiers(tiers []Tier) []Tier {
	var sum float64
	for _, t := range tiers {
		sum += t.Probability
	}
	if sum == 0 {
		return tiers
	}
	out := make([]Tier, len(tiers))
	for i, t := range tiers {
		t.Probability /= sum
		out[i] = t
	}
	return out
}
