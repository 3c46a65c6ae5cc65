package league

import (
	"github.com/google/uuid"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/rating"
)

// Match is a single scored contest between two teams of one or two players.
// It is constructed with the final scores already known and played exactly
// once; playing is the only thing that mutates participant state.
type Match struct {
	ID     uuid.UUID
	TeamA  []*Player
	TeamB  []*Player
	ScoreA float64
	ScoreB float64

	played bool
}

// NewMatch validates the lineup and scores and returns an unplayed match.
// Every member must be resolved (non-nil), the sides must be the same size
// of 1 or 2, and the score must be decisive.
func NewMatch(teamA, teamB []*Player, scoreA, scoreB float64) (*Match, error) {
	if len(teamA) < 1 || len(teamA) > 2 || len(teamA) != len(teamB) {
		return nil, ErrTeamSize
	}
	if scoreA == scoreB {
		return nil, ErrTiedScore
	}
	for _, team := range [][]*Player{teamA, teamB} {
		for _, p := range team {
			if p == nil {
				return nil, &UnresolvedPlayerError{
					CaptainA: captainName(teamA),
					CaptainB: captainName(teamB),
					Missing:  "unknown",
				}
			}
		}
	}

	return &Match{
		ID:     uuid.New(),
		TeamA:  teamA,
		TeamB:  teamB,
		ScoreA: scoreA,
		ScoreB: scoreB,
	}, nil
}

func captainName(team []*Player) string {
	if len(team) > 0 && team[0] != nil {
		return team[0].Name
	}
	return "unknown"
}

// Winner returns the winning team.
func (m *Match) Winner() []*Player {
	if m.ScoreA > m.ScoreB {
		return m.TeamA
	}
	return m.TeamB
}

// Loser returns the losing team.
func (m *Match) Loser() []*Player {
	if m.ScoreA > m.ScoreB {
		return m.TeamB
	}
	return m.TeamA
}

// Play applies the rating update and win/loss tallies to every participant.
// Each team's rating is the mean of its members' ratings, the expectation is
// computed team versus team, and the resulting delta is applied identically
// to both partners. Calling Play again is a no-op.
func (m *Match) Play() {
	if m.played {
		return
	}
	m.played = true

	margin := rating.MarginFactor(m.ScoreA, m.ScoreB)
	meanA := teamMean(m.TeamA)
	meanB := teamMean(m.TeamB)

	actualA, actualB := 1.0, 0.0
	if m.ScoreB > m.ScoreA {
		actualA, actualB = 0.0, 1.0
	}

	deltaA := rating.Delta(rating.DefaultK, margin, actualA, rating.ExpectedScore(meanA, meanB))
	deltaB := rating.Delta(rating.DefaultK, margin, actualB, rating.ExpectedScore(meanB, meanA))

	for _, p := range m.TeamA {
		p.ApplyRatingDelta(deltaA)
		p.RecordMatch(outcomeFor(actualA))
	}
	for _, p := range m.TeamB {
		p.ApplyRatingDelta(deltaB)
		p.RecordMatch(outcomeFor(actualB))
	}
}

func teamMean(team []*Player) float64 {
	sum := 0.0
	for _, p := range team {
		sum += p.Rating
	}
	return sum / float64(len(team))
}

func outcomeFor(actual float64) Outcome {
	if actual == 1.0 {
		return OutcomeWin
	}
	return OutcomeLoss
}
