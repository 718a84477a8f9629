package domain

import (
	"math"
	"time"
)

// Intensity score weights. Wind speed is measured against a 400 km/s quiet
// baseline, Kp against the quiet-time level of 3. Only southward (negative)
// Bz contributes.
const (
	windBaseline = 400.0
	windWeight   = 0.02
	bzWeight     = 0.5
	kpBaseline   = 3.0
	kpWeight     = 0.3
)

// Horizon scaling and clamping policy. The 48h and 72h probabilities are
// damped transforms of the base probability, not independently modeled.
const (
	probFloor = 0.01
	probCeil  = 0.99

	h48Scale  = 0.9
	h48Offset = 0.05
	h72Scale  = 0.8
	h72Offset = 0.08
)

// Fixed 90% confidence interval half-widths per horizon.
const (
	ci24HalfWidth = 0.10
	ci48HalfWidth = 0.12
	ci72HalfWidth = 0.15
)

// Assumptions are the caller-declared asset parameters carried through the
// pipeline unvalidated.
type Assumptions struct {
	Altitude       string  `json:"altitude"`
	ShieldingLevel float64 `json:"shieldingLevel"`
	AssetValue     float64 `json:"assetValue"`
}

// HorizonForecast is a storm probability with its 90% interval, both within [0,1].
type HorizonForecast struct {
	Probability float64    `json:"probability"`
	CI90        [2]float64 `json:"ci90"`
}

// Horizons holds the three forecast windows.
type Horizons struct {
	H24 HorizonForecast `json:"h24"`
	H48 HorizonForecast `json:"h48"`
	H72 HorizonForecast `json:"h72"`
}

// Forecast is an immutable storm-probability forecast together with the
// feature snapshot and assumptions it was derived from.
type Forecast struct {
	Horizons    Horizons        `json:"horizons"`
	Features    FeatureSnapshot `json:"features"`
	Assumptions Assumptions     `json:"assumptions"`
	IssuedAt    time.Time       `json:"issuedAt"`
}

// GenerateForecast maps the latest feature values to storm probabilities at
// the 24h/48h/72h horizons. It is pure apart from stamping IssuedAt from the
// package clock; feature-source failures are the caller's concern.
func GenerateForecast(features FeatureSnapshot, assumptions Assumptions) Forecast {
	wind := latestOrZero(features.SolarWindKmPerS)
	bz := latestOrZero(features.Bz)
	kp := latestOrZero(features.Kp)

	intensity := windWeight*(wind-windBaseline) + bzWeight*math.Min(0, bz) + kpWeight*(kp-kpBaseline)
	baseProb := sigmoid(intensity)

	p24 := clamp(baseProb, probFloor, probCeil)
	p48 := clamp(baseProb*h48Scale+h48Offset, probFloor, probCeil)
	p72 := clamp(baseProb*h72Scale+h72Offset, probFloor, probCeil)

	return Forecast{
		Horizons: Horizons{
			H24: horizonForecast(p24, ci24HalfWidth),
			H48: horizonForecast(p48, ci48HalfWidth),
			H72: horizonForecast(p72, ci72HalfWidth),
		},
		Features:    features,
		Assumptions: assumptions,
		IssuedAt:    clock.Now().UTC(),
	}
}

// horizonForecast builds a HorizonForecast with its interval clipped to [0,1].
func horizonForecast(p, halfWidth float64) HorizonForecast {
	return HorizonForecast{
		Probability: p,
		CI90: [2]float64{
			math.Max(0, p-halfWidth),
			math.Min(1, p+halfWidth),
		},
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
