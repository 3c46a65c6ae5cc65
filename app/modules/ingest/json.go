package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// Wire structs for the club data repo's JSON files.

type jsonPlayer struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type jsonEventFile struct {
	Event struct {
		Date string `json:"date"`
	} `json:"event"`
	Teams []struct {
		Players []jsonPlayer `json:"players"`
	} `json:"teams"`
	Matches []struct {
		PlayersA []string `json:"players_a"`
		PlayersB []string `json:"players_b"`
		ScoreA   float64  `json:"score_a"`
		ScoreB   float64  `json:"score_b"`
	} `json:"matches"`
}

type jsonAvailabilityFile struct {
	AvailablePlayers []jsonPlayer `json:"available_players"`
}

// JSONParser parses the canonical JSON event format.
type JSONParser struct{}

// ParseEvent decodes and validates one JSON event file.
func (p *JSONParser) ParseEvent(data []byte) (league.Event, error) {
	var raw jsonEventFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return league.Event{}, fmt.Errorf("failed to decode event JSON: %w", err)
	}

	date, err := parseEventDate(raw.Event.Date)
	if err != nil {
		return league.Event{}, err
	}

	ev := league.Event{Date: date}
	for ti, team := range raw.Teams {
		descs := make([]league.PlayerDesc, 0, len(team.Players))
		for pi, pl := range team.Players {
			if pl.Name == "" {
				return league.Event{}, &ValidationError{
					Field:  fmt.Sprintf("teams[%d].players[%d].name", ti, pi),
					Reason: "missing",
				}
			}
			gender, err := parseGender(pl.Gender)
			if err != nil {
				return league.Event{}, &ValidationError{
					Field:  fmt.Sprintf("teams[%d].players[%d].gender", ti, pi),
					Reason: err.Error(),
				}
			}
			descs = append(descs, league.PlayerDesc{Name: pl.Name, Gender: gender})
		}
		ev.Teams = append(ev.Teams, descs)
	}

	for mi, m := range raw.Matches {
		if len(m.PlayersA) == 0 || len(m.PlayersB) == 0 {
			return league.Event{}, &ValidationError{
				Field:  fmt.Sprintf("matches[%d]", mi),
				Reason: "both sides need at least one player",
			}
		}
		ev.Matches = append(ev.Matches, league.MatchDesc{
			PlayersA: m.PlayersA,
			PlayersB: m.PlayersB,
			ScoreA:   m.ScoreA,
			ScoreB:   m.ScoreB,
		})
	}

	return ev, nil
}

// LoadAvailability reads the available-players filter file.
func LoadAvailability(path string) ([]league.PlayerDesc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read availability file %s: %w", path, err)
	}

	var raw jsonAvailabilityFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode availability JSON: %w", err)
	}

	out := make([]league.PlayerDesc, 0, len(raw.AvailablePlayers))
	for i, pl := range raw.AvailablePlayers {
		if pl.Name == "" {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("available_players[%d].name", i),
				Reason: "missing",
			}
		}
		gender, err := parseGender(pl.Gender)
		if err != nil {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("available_players[%d].gender", i),
				Reason: err.Error(),
			}
		}
		out = append(out, league.PlayerDesc{Name: pl.Name, Gender: gender})
	}
	return out, nil
}

func parseEventDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ValidationError{Field: "event.date", Reason: "missing"}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, &ValidationError{Field: "event.date", Reason: fmt.Sprintf("unparseable date %q", value)}
}

func parseGender(value string) (league.Gender, error) {
	switch value {
	case "":
		return league.GenderUnspecified, nil
	case "male":
		return league.GenderMale, nil
	case "female":
		return league.GenderFemale, nil
	default:
		return league.GenderUnspecified, fmt.Errorf("unknown gender %q", value)
	}
}
