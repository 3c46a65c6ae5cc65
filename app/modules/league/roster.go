package league

import (
	"log/slog"
	"strings"
)

// Roster owns every known player, keyed by normalized name. Matches and
// pairing generators hold references into it but never own players.
type Roster struct {
	logger        *slog.Logger
	initialRating float64

	players map[string]*Player
	order   []string // insertion order of normalized keys
	log     []MatchRecord
}

// NewRoster creates an empty roster. New players added through event
// ingestion are seeded at initialRating.
func NewRoster(logger *slog.Logger, initialRating float64) *Roster {
	return &Roster{
		logger:        logger,
		initialRating: initialRating,
		players:       make(map[string]*Player),
	}
}

// normalizeName strips zero-width characters and surrounding whitespace,
// keeping the original casing for display.
func normalizeName(name string) string {
	return strings.TrimSpace(stripInvisible(name))
}

// lookupKey is the case-insensitive form used as the map key.
func lookupKey(name string) string {
	return strings.ToLower(normalizeName(name))
}

// stripInvisible removes the zero-width characters that sneak into names
// copied out of chat apps (U+200B..U+200D and U+FEFF).
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			return -1
		}
		return r
	}, s)
}

// AddOrGetPlayer inserts a player under the normalized name, or returns the
// existing one. Re-adding never touches rating or stats; gender is filled
// in only when it was previously unspecified.
func (r *Roster) AddOrGetPlayer(name string, initialRating float64, gender Gender) *Player {
	key := lookupKey(name)
	if p, ok := r.players[key]; ok {
		if p.Gender == GenderUnspecified && gender != GenderUnspecified {
			p.Gender = gender
		}
		return p
	}

	p := NewPlayer(normalizeName(name), initialRating, gender)
	r.players[key] = p
	r.order = append(r.order, key)
	return p
}

// FindByName looks a player up under the same normalization as
// AddOrGetPlayer. It never constructs; absent names return nil.
func (r *Roster) FindByName(name string) *Player {
	return r.players[lookupKey(name)]
}

// Len returns the number of distinct players.
func (r *Roster) Len() int {
	return len(r.players)
}

// Players returns the roster members in insertion order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.players[key])
	}
	return out
}

// MatchLog returns a copy of the chronological match log.
func (r *Roster) MatchLog() []MatchRecord {
	out := make([]MatchRecord, len(r.log))
	copy(out, r.log)
	return out
}

// ApplyEvent registers every listed participant, plays every match in
// order, and snapshots each member's rating against the event date. A match
// that cannot be built (unknown name, tied score, bad team size) is logged
// against its two captains and recorded as unapplied; the batch never
// aborts and no player state is half-updated.
func (r *Roster) ApplyEvent(ev Event) {
	for _, team := range ev.Teams {
		for _, pd := range team {
			r.AddOrGetPlayer(pd.Name, r.initialRating, pd.Gender)
		}
	}

	for _, md := range ev.Matches {
		rec := MatchRecord{Desc: md}
		m, err := r.buildMatch(md)
		if err != nil {
			r.logger.Error("skipping match",
				slog.String("team_a", firstName(md.PlayersA)),
				slog.String("team_b", firstName(md.PlayersB)),
				slog.Time("event", ev.Date),
				slog.Any("error", err),
			)
			rec.Err = err.Error()
			r.log = append(r.log, rec)
			continue
		}
		m.Play()
		rec.ID = m.ID
		rec.Applied = true
		r.log = append(r.log, rec)
	}

	for _, key := range r.order {
		r.players[key].SnapshotIfChanged(ev.Date)
	}
}

// buildMatch resolves the descriptor's names and constructs the match.
func (r *Roster) buildMatch(md MatchDesc) (*Match, error) {
	resolve := func(names []string) ([]*Player, error) {
		team := make([]*Player, 0, len(names))
		for _, name := range names {
			p := r.FindByName(name)
			if p == nil {
				return nil, &UnresolvedPlayerError{
					CaptainA: firstName(md.PlayersA),
					CaptainB: firstName(md.PlayersB),
					Missing:  normalizeName(name),
				}
			}
			team = append(team, p)
		}
		return team, nil
	}

	teamA, err := resolve(md.PlayersA)
	if err != nil {
		return nil, err
	}
	teamB, err := resolve(md.PlayersB)
	if err != nil {
		return nil, err
	}
	return NewMatch(teamA, teamB, md.ScoreA, md.ScoreB)
}

func firstName(names []string) string {
	if len(names) > 0 {
		return normalizeName(names[0])
	}
	return "unknown"
}
