// Package rating implements the Elo math used across the pipeline.
// All functions are pure; callers own every piece of state.
package rating

import "math"

const (
	// DefaultK is the k-factor applied to every rating update.
	DefaultK = 32.0

	// DefaultInitialRating seeds every new roster member.
	DefaultInitialRating = 1500.0

	// MarginDivisor scales the score margin into the margin-of-victory
	// multiplier. 21 is the rally-point game target, so a 21-0 sweep
	// doubles the update and a 21-20 squeaker barely moves it.
	MarginDivisor = 21.0

	// SpreadBase and SpreadDivisor shape the logistic expectation curve:
	// a player rated SpreadDivisor points above the opponent is expected
	// to win SpreadBase times as often.
	SpreadBase    = 10.0
	SpreadDivisor = 400.0

	// ScaleMin and ScaleMax bound the display rescale to the 10-point scale.
	ScaleMin = 1000.0
	ScaleMax = 2000.0
)

// ExpectedScore returns the probability-like expectation in (0,1) that a
// player (or team mean) rated rating beats one rated opponent.
func ExpectedScore(rating, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(SpreadBase, (opponent-rating)/SpreadDivisor))
}

// MarginFactor returns the margin-of-victory multiplier for a final score.
func MarginFactor(scoreA, scoreB float64) float64 {
	return 1.0 + math.Abs(scoreA-scoreB)/MarginDivisor
}

// Delta returns the signed rating adjustment for one side of a match.
// actual is 1 for the winning side and 0 for the losing side.
func Delta(k, margin, actual, expected float64) float64 {
	return k * margin * (actual - expected)
}

// Scaled rescales a raw rating from [ScaleMin, ScaleMax] onto [0, 10],
// clamped at both ends.
func Scaled(ratingValue float64) float64 {
	scaled := (ratingValue - ScaleMin) / (ScaleMax - ScaleMin) * 10.0
	return math.Min(math.Max(scaled, 0), 10)
}
