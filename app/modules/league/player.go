// Package league holds the domain model for the club ladder: players,
// matches and the roster that owns them. Rating math lives in the rating
// package; everything here is bookkeeping around it.
package league

import (
	"math"
	"time"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/rating"
)

// Gender of a roster member, as declared in event files. The zero value
// means the club sheet never said.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

// Outcome of a single match from one player's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// RatingSnapshot is one entry of a player's rating history. A zero Event
// marks the initial seed entry; every later entry carries the event date
// that produced it.
type RatingSnapshot struct {
	Rating float64
	Event  time.Time
}

// Player is a mutable roster member. Counters and rating change only
// through RecordMatch and ApplyRatingDelta, both driven by Match.Play.
type Player struct {
	Name   string
	Gender Gender

	MatchesPlayed int
	Wins          int
	Losses        int
	Rating        float64

	initialRating float64
	history       []RatingSnapshot
}

// NewPlayer creates a player seeded at initialRating, with the seed recorded
// as the first history entry.
func NewPlayer(name string, initialRating float64, gender Gender) *Player {
	return &Player{
		Name:          name,
		Gender:        gender,
		Rating:        initialRating,
		initialRating: initialRating,
		history:       []RatingSnapshot{{Rating: initialRating}},
	}
}

// RecordMatch bumps the played counter and the win or loss tally.
func (p *Player) RecordMatch(outcome Outcome) {
	p.MatchesPlayed++
	if outcome == OutcomeWin {
		p.Wins++
	} else {
		p.Losses++
	}
}

// ApplyRatingDelta shifts the rating by delta. No clamping.
func (p *Player) ApplyRatingDelta(delta float64) {
	p.Rating += delta
}

// WinRate returns wins over matches played, rounded to two decimals for
// display. A player who has never played rates 0.
func (p *Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return math.Round(float64(p.Wins)/float64(p.MatchesPlayed)*100) / 100
}

// ScaledRating returns the rating on the club's 10-point display scale,
// one decimal place.
func (p *Player) ScaledRating() float64 {
	return math.Round(rating.Scaled(p.Rating)*10) / 10
}

// SnapshotIfChanged appends a (rating, event) history entry when the rating
// moved since the last snapshot, or when the only entry so far is the
// undated seed. Calling it again for the same state is a no-op, so an event
// in which a player sat out leaves no trace.
func (p *Player) SnapshotIfChanged(event time.Time) {
	last := p.history[len(p.history)-1]
	if last.Rating != p.Rating || last.Event.IsZero() {
		p.history = append(p.history, RatingSnapshot{Rating: p.Rating, Event: event})
	}
}

// LastEventDelta returns the rating change between the two most recent
// snapshots, or 0 when there is no prior event to compare against.
func (p *Player) LastEventDelta() float64 {
	if len(p.history) < 2 {
		return 0
	}
	return p.history[len(p.history)-1].Rating - p.history[len(p.history)-2].Rating
}

// TotalDelta returns the cumulative rating change since the initial seed.
func (p *Player) TotalDelta() float64 {
	return p.Rating - p.initialRating
}

// RatingHistory returns a copy of the append-only history. Callers cannot
// reorder or mutate the underlying log.
func (p *Player) RatingHistory() []RatingSnapshot {
	out := make([]RatingSnapshot, len(p.history))
	copy(out, p.history)
	return out
}
