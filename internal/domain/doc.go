// Package domain implements the forecast → loss → premium derivation pipeline
// for space-weather insurance quotes.
//
// # Data Source
//
// Feature snapshots carry four space-weather indicator series: the planetary
// Kp index (0–9 geomagnetic storm scale), the interplanetary magnetic field
// Bz component in nT (negative = southward, the geoeffective orientation),
// solar wind speed in km/s, and proton flux in pfu. In production these come
// from a NASA OMNIWeb-style feed; the default source serves a fixed synthetic
// series. Only the most recent observation of each series feeds the model.
//
// # Model Constants
//
// Every coefficient in this package is a fixed policy constant, not a fitted
// value. The intensity score weighs solar wind speed above a 400 km/s
// baseline, southward Bz, and Kp above the quiet-time level of 3:
//
//	intensity = 0.02*(wind-400) + 0.5*min(0, bz) + 0.3*(kp-3)
//
// A logistic squash maps intensity to a base storm probability, which the
// 48h and 72h horizons dampen with fixed scale/offset pairs. Confidence
// intervals are fixed half-widths per horizon (±0.10 / ±0.12 / ±0.15),
// clipped to [0,1].
//
// # Loss Tiers
//
// Losses are bucketed into three tiers (minor, moderate, severe) sized at
// 1%, 10%, and 50% of declared asset value. Tier probabilities scale
// linearly with the 24h storm probability, are clamped to per-tier bounds,
// and are normalized to sum to 1. A pre-normalization sum of exactly zero
// passes the tiers through unnormalized; see [normalizeTiers].
//
// # Default Policies
//
// Missing inputs are defaulted, not rejected: an absent series contributes a
// latest value of 0 ([latestOrZero]), a missing 24h
// probability falls back to [defaultSeverity], and an unset asset value to
// [DefaultAssetValue]. Each default is a named constant or function so tests
// can pin the fallback paths.
package domain
