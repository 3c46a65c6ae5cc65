package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// XLSXParser parses result sheets exported from the club spreadsheet.
//
// Expected layout of the first sheet:
//
//	A1: "Date"    B1: 2026-03-07
//	A2: "Team A"  B2: "Team B"  C2: "Score A"  D2: "Score B"
//	A3: "Ana & Bo"  B3: "Cy & Di"  C3: 21  D3: 15
//
// Partners within a team cell are separated by "&".
type XLSXParser struct{}

// ParseEvent opens the workbook and builds the same Event the JSON parser
// would produce. The sheet carries no gender column, so participants come
// out unspecified and pick their gender up from earlier events.
func (p *XLSXParser) ParseEvent(data []byte) (league.Event, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return league.Event{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return league.Event{}, &ValidationError{Field: "sheet", Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return league.Event{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return league.Event{}, &ValidationError{Field: "sheet", Reason: "missing date and header rows"}
	}

	if len(rows[0]) < 2 || !strings.EqualFold(strings.TrimSpace(cell(rows[0], 0)), "date") {
		return league.Event{}, &ValidationError{Field: "A1", Reason: `expected "Date" label`}
	}
	date, err := parseEventDate(strings.TrimSpace(cell(rows[0], 1)))
	if err != nil {
		return league.Event{}, err
	}

	ev := league.Event{Date: date}
	seen := map[string]bool{}

	// Row 1 is the column header; results start at row 2.
	for i, row := range rows[2:] {
		teamA := splitTeamCell(cell(row, 0))
		teamB := splitTeamCell(cell(row, 1))
		if len(teamA) == 0 && len(teamB) == 0 {
			continue // trailing blank row
		}
		if len(teamA) == 0 || len(teamB) == 0 {
			return league.Event{}, &ValidationError{
				Field:  fmt.Sprintf("row %d", i+3),
				Reason: "both team cells must name players",
			}
		}

		scoreA, err := parseScoreCell(cell(row, 2), i+3, "Score A")
		if err != nil {
			return league.Event{}, err
		}
		scoreB, err := parseScoreCell(cell(row, 3), i+3, "Score B")
		if err != nil {
			return league.Event{}, err
		}

		ev.Matches = append(ev.Matches, league.MatchDesc{
			PlayersA: teamA,
			PlayersB: teamB,
			ScoreA:   scoreA,
			ScoreB:   scoreB,
		})

		var descs []league.PlayerDesc
		for _, name := range append(append([]string{}, teamA...), teamB...) {
			key := strings.ToLower(name)
			if !seen[key] {
				seen[key] = true
				descs = append(descs, league.PlayerDesc{Name: name})
			}
		}
		if len(descs) > 0 {
			ev.Teams = append(ev.Teams, descs)
		}
	}

	if len(ev.Matches) == 0 {
		return league.Event{}, &ValidationError{Field: "sheet", Reason: "no result rows"}
	}
	return ev, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func splitTeamCell(value string) []string {
	var names []string
	for _, part := range strings.Split(value, "&") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func parseScoreCell(value string, rowNum int, column string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ValidationError{
			Field:  fmt.Sprintf("row %d %s", rowNum, column),
			Reason: fmt.Sprintf("not a number: %q", value),
		}
	}
	return score, nil
}
