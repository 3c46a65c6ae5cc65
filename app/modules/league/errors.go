package league

import (
	"errors"
	"fmt"
)

// Sentinel errors for match construction. These indicate malformed match
// descriptors; the event batch keeps going when one surfaces, the match is
// just recorded as unapplied.
var (
	// ErrTiedScore indicates the two final scores are equal. Rally-point
	// badminton cannot end level, so a tie is always bad data.
	ErrTiedScore = errors.New("match has tied score")

	// ErrTeamSize indicates a team is empty, larger than a doubles pair,
	// or the two sides are uneven.
	ErrTeamSize = errors.New("teams must have 1 or 2 players and equal size")
)

// UnresolvedPlayerError reports a match whose lineup references a name the
// roster does not know. Construction fails before any player state is
// touched, so a bad lookup never half-applies a rating update.
type UnresolvedPlayerError struct {
	CaptainA string
	CaptainB string
	Missing  string
}

func (e *UnresolvedPlayerError) Error() string {
	return fmt.Sprintf("match %s vs %s: unresolved player %q", e.CaptainA, e.CaptainB, e.Missing)
}
