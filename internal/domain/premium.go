package domain

import "math"

// Default pricing parameters, applied when the caller supplies none.
const (
	DefaultRiskLoad        = 0.15
	DefaultConfidenceLevel = 0.9
)

// PremiumAssumptions records the pricing parameters a quote was computed with.
type PremiumAssumptions struct {
	RiskLoad        float64 `json:"riskLoad"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
}

// PremiumQuote prices a loss distribution. PurePremium and Premium are
// rounded to whole currency units for presentation.
type PremiumQuote struct {
	ExpectedLoss float64            `json:"expectedLoss"`
	PurePremium  float64            `json:"purePremium"`
	Premium      float64            `json:"premium"`
	Assumptions  PremiumAssumptions `json:"assumptions"`
}

// CalculatePremium derives an expected loss, a variance-based uncertainty
// uplift, and a risk-loaded premium from a loss distribution. The expected
// loss is recomputed from the tiers rather than trusted from upstream.
//
// The uplift scales with confidenceLevel-0.5, so a confidence level below
// 0.5 yields a negative uplift and a premium below expected loss. That is
// documented boundary behavior, not guarded against.
func CalculatePremium(dist LossDistribution, riskLoad, confidenceLevel float64) PremiumQuote {
	var expectedLoss float64
	for _, t := range dist.Tiers {
		expectedLoss += t.Loss * t.Probability
	}

	// Probability-weighted spread of tier losses around the mean.
	var varianceProxy float64
	for _, t := range dist.Tiers {
		dev := t.Loss - expectedLoss
		varianceProxy += dev * dev * t.Probability
	}

	uncertaintyUplift := math.Sqrt(varianceProxy) * (confidenceLevel - 0.5)
	purePremium := expectedLoss + uncertaintyUplift

	return PremiumQuote{
		ExpectedLoss: expectedLoss,
		PurePremium:  math.Round(purePremium),
		Premium:      math.Round(purePremium * (1 + riskLoad)),
		Assumptions: PremiumAssumptions{
			RiskLoad:        riskLoad,
			ConfidenceLevel: confidenceLevel,
		},
	}
}
