package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDistribution() LossDistribution {
	return LossDistribution{
		Tiers: []Tier{
			{Tier: "minor", Loss: 1_000_000, Probability: 0.642},
			{Tier: "moderate", Loss: 10_000_000, Probability: 0.216},
			{Tier: "severe", Loss: 50_000_000, Probability: 0.142},
		},
		// Deliberately wrong so tests prove the recompute.
		ExpectedLoss: -1,
	}
}

func TestCalculatePremium_RecomputesExpectedLoss(t *testing.T) {
	q := CalculatePremium(testDistribution(), DefaultRiskLoad, DefaultConfidenceLevel)

	want := 1_000_000*0.642 + 10_000_000*0.216 + 50_000_000*0.142
	assert.InDelta(t, want, q.ExpectedLoss, 1e-6)
	assert.NotEqual(t, -1.0, q.ExpectedLoss)
}

func TestCalculatePremium_UncertaintyUplift(t *testing.T) {
	dist := testDistribution()
	q := CalculatePremium(dist, 0.15, 0.9)

	var el, vp float64
	for _, tier := range dist.Tiers {
		el += tier.Loss * tier.Probability
	}
	for _, tier := range dist.Tiers {
		vp += (tier.Loss - el) * (tier.Loss - el) * tier.Probability
	}
	uplift := math.Sqrt(vp) * (0.9 - 0.5)

	assert.Equal(t, math.Round(el+uplift), q.PurePremium)
	assert.Equal(t, math.Round((el+uplift)*1.15), q.Premium)
	assert.Equal(t, PremiumAssumptions{RiskLoad: 0.15, ConfidenceLevel: 0.9}, q.Assumptions)
}

func TestCalculatePremium_MonotonicInRiskLoad(t *testing.T) {
	dist := testDistribution()
	prev := math.Inf(-1)
	for _, load := range []float64{0, 0.05, 0.15, 0.3, 0.5, 1.0} {
		q := CalculatePremium(dist, load, 0.9)
		assert.GreaterOrEqual(t, q.Premium, prev, "riskLoad %v", load)
		prev = q.Premium
	}
}

func TestCalculatePremium_LowConfidenceReducesPremium(t *testing.T) {
	// Below 0.5 the uplift goes negative: documented boundary behavior.
	dist := testDistribution()
	low := CalculatePremium(dist, 0.15, 0.3)
	high := CalculatePremium(dist, 0.15, 0.9)

	assert.Less(t, low.PurePremium, low.ExpectedLoss)
	assert.Greater(t, high.PurePremium, high.ExpectedLoss)
}

func TestCalculatePremium_RoundsToWholeUnits(t *testing.T) {
	q := CalculatePremium(testDistribution(), 0.15, 0.9)
	assert.Equal(t, math.Trunc(q.PurePremium), q.PurePremium)
	assert.Equal(t, math.Trunc(q.Premium), q.Premium)
}

func TestCalculatePremium_EmptyDistribution(t *testing.T) {
	q := CalculatePremium(LossDistribution{}, 0.15, 0.9)
	assert.Zero(t, q.ExpectedLoss)
	assert.Zero(t, q.PurePremium)
	assert.Zero(t, q.Premium)
}
