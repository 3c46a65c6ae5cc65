package league

import (
	"time"

	"github.com/google/uuid"
)

// PlayerDesc identifies a participant in an event or availability file.
type PlayerDesc struct {
	Name   string
	Gender Gender
}

// MatchDesc is one match as it appears in an event file: two name lists and
// the final score. Names are resolved against the roster when the event is
// applied.
type MatchDesc struct {
	PlayersA []string
	PlayersB []string
	ScoreA   float64
	ScoreB   float64
}

// Event is one club night: the date, the players who showed up, and the
// matches they played, in order.
type Event struct {
	Date    time.Time
	Teams   [][]PlayerDesc
	Matches []MatchDesc
}

// MatchRecord is one entry of the roster's chronological match log. Applied
// is false when the match descriptor could not be turned into a played
// match; Err then carries the reason.
type MatchRecord struct {
	ID      uuid.UUID
	Desc    MatchDesc
	Applied bool
	Err     string
}
