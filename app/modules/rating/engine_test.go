package rating

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		opponent float64
		want     float64
	}{
		{name: "equal ratings", rating: 1500, opponent: 1500, want: 0.5},
		{name: "full spread ahead", rating: 1900, opponent: 1500, want: 10.0 / 11.0},
		{name: "full spread behind", rating: 1500, opponent: 1900, want: 1.0 / 11.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedScore(tt.rating, tt.opponent)
			require.InDelta(t, tt.want, got, 1e-9)
			require.Greater(t, got, 0.0)
			require.Less(t, got, 1.0)
		})
	}
}

func TestExpectedScoreSymmetry(t *testing.T) {
	// The two sides' expectations always sum to 1.
	pairs := [][2]float64{{1500, 1500}, {1750, 1430}, {1000, 2000}, {1234.5, 1766.25}}
	for _, p := range pairs {
		sum := ExpectedScore(p[0], p[1]) + ExpectedScore(p[1], p[0])
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestMarginFactor(t *testing.T) {
	tests := []struct {
		name   string
		scoreA float64
		scoreB float64
		want   float64
	}{
		{name: "sweep doubles", scoreA: 21, scoreB: 0, want: 2.0},
		{name: "close game", scoreA: 21, scoreB: 19, want: 1.0 + 2.0/21.0},
		{name: "order independent", scoreA: 5, scoreB: 21, want: 1.0 + 16.0/21.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, MarginFactor(tt.scoreA, tt.scoreB), 1e-9)
		})
	}
}

func TestDelta(t *testing.T) {
	// Decisive win between equals: 32 * 2 * (1 - 0.5) = 32.
	require.InDelta(t, 32.0, Delta(DefaultK, 2.0, 1, 0.5), 1e-9)
	// The losing side of the same match loses the same amount.
	require.InDelta(t, -32.0, Delta(DefaultK, 2.0, 0, 0.5), 1e-9)
}

func TestScaled(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   float64
	}{
		{name: "floor", rating: 1000, want: 0.0},
		{name: "ceiling", rating: 2000, want: 10.0},
		{name: "midpoint", rating: 1500, want: 5.0},
		{name: "clamps high", rating: 2500, want: 10.0},
		{name: "clamps low", rating: 500, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Scaled(tt.rating), 1e-9)
		})
	}
}
