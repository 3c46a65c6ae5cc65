// Package pairing builds next-round partner suggestions from roster state.
// It reads ratings and genders; it never mutates players.
package pairing

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// Pair is a suggested partnership of two players, or a single leftover
// player when the pool has an odd count.
type Pair struct {
	Players []*league.Player
}

// Label renders the pair the way it goes on the club board: each name with
// the 10-point scaled rating in parentheses.
func (p Pair) Label() string {
	parts := make([]string, 0, len(p.Players))
	for _, member := range p.Players {
		parts = append(parts, fmt.Sprintf("%s (%.1f)", member.Name, member.ScaledRating()))
	}
	return strings.Join(parts, " & ")
}

// House is a group of pairs that share a court for the evening.
type House struct {
	Pairs []Pair
}

// AverageRating returns the mean raw rating across the house's members.
func (h House) AverageRating() float64 {
	sum, count := 0.0, 0
	for _, pair := range h.Pairs {
		for _, p := range pair.Players {
			sum += p.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// GenderCounts returns the number of male and female members in the house.
// Unspecified genders count toward neither.
func (h House) GenderCounts() (males, females int) {
	for _, pair := range h.Pairs {
		for _, p := range pair.Players {
			switch p.Gender {
			case league.GenderMale:
				males++
			case league.GenderFemale:
				females++
			}
		}
	}
	return males, females
}

// Generator produces pairings. The random source drives only the
// coin-flip in gender-balanced mode; inject a seeded source for
// reproducible output.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator over the given random source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded creates a generator with a deterministic source.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// sortByRatingDesc returns a copy sorted strongest first.
func sortByRatingDesc(players []*league.Player) []*league.Player {
	sorted := make([]*league.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	return sorted
}

// SplitPairs pairs the strongest remaining player with the weakest: rank i
// with rank n-1-i. An odd pool leaves the midpoint player as a trailing
// singleton.
func (g *Generator) SplitPairs(players []*league.Player) []Pair {
	sorted := sortByRatingDesc(players)
	n := len(sorted)

	pairs := make([]Pair, 0, (n+1)/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, Pair{Players: []*league.Player{sorted[i], sorted[n-1-i]}})
	}
	if n%2 == 1 {
		pairs = append(pairs, Pair{Players: []*league.Player{sorted[n/2]}})
	}
	return pairs
}

// Balanced builds mixed pairs: the two strongest unpaired males are matched
// with the two weakest unpaired females, a coin flip deciding which male
// gets which female so repeat evenings do not lock in the same partners.
// Once either gender pool drops below two, the leftovers are paired
// strongest-with-weakest regardless of gender; a final odd player comes out
// as a singleton.
func (g *Generator) Balanced(pool []*league.Player) []Pair {
	var males, females []*league.Player
	for _, p := range pool {
		switch p.Gender {
		case league.GenderMale:
			males = append(males, p)
		case league.GenderFemale:
			females = append(females, p)
		}
	}
	males = sortByRatingDesc(males)
	females = sortByRatingDesc(females)

	var pairs []Pair
	for len(males) >= 2 && len(females) >= 2 {
		topMales := males[:2]
		males = males[2:]

		bottomFemales := []*league.Player{females[len(females)-1], females[len(females)-2]}
		females = females[:len(females)-2]

		if g.rng.Intn(2) == 1 {
			bottomFemales[0], bottomFemales[1] = bottomFemales[1], bottomFemales[0]
		}

		pairs = append(pairs,
			Pair{Players: []*league.Player{topMales[0], bottomFemales[0]}},
			Pair{Players: []*league.Player{topMales[1], bottomFemales[1]}},
		)
	}

	remaining := make([]*league.Player, 0, len(males)+len(females))
	remaining = append(remaining, males...)
	remaining = append(remaining, females...)
	for len(remaining) >= 2 {
		first := remaining[0]
		last := remaining[len(remaining)-1]
		remaining = remaining[1 : len(remaining)-1]
		pairs = append(pairs, Pair{Players: []*league.Player{first, last}})
	}
	if len(remaining) == 1 {
		pairs = append(pairs, Pair{Players: []*league.Player{remaining[0]}})
	}

	return pairs
}

// Houses groups pairs into houses of two pairs each, dealing them out
// round-robin so the earlier (stronger-anchored) pairs spread across houses
// instead of stacking into the first one.
func Houses(pairs []Pair) []House {
	if len(pairs) == 0 {
		return nil
	}

	numHouses := (len(pairs) + 1) / 2
	houses := make([]House, numHouses)
	for i, pair := range pairs {
		idx := i % numHouses
		houses[idx].Pairs = append(houses[idx].Pairs, pair)
	}
	return houses
}
