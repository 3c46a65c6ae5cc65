// Package report turns roster state into ranked standings and the formats
// the club actually consumes: a console table, the CSV pushed to the data
// repo, and rating-history charts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// Row is one player's line in the standings. Deltas are raw rating points
// rounded to whole numbers, the way the weekly board shows them.
type Row struct {
	Rank         int
	Name         string
	Played       int
	Wins         int
	Losses       int
	ScaledRating float64
	EventDelta   float64
	TotalDelta   float64
}

// Standings ranks players by rating, strongest first. Insertion order
// breaks ties so re-running the report is stable.
func Standings(players []*league.Player) []Row {
	sorted := make([]*league.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	rows := make([]Row, 0, len(sorted))
	for i, p := range sorted {
		rows = append(rows, Row{
			Rank:         i + 1,
			Name:         p.Name,
			Played:       p.MatchesPlayed,
			Wins:         p.Wins,
			Losses:       p.Losses,
			ScaledRating: p.ScaledRating(),
			EventDelta:   p.LastEventDelta(),
			TotalDelta:   p.TotalDelta(),
		})
	}
	return rows
}

// WriteTable renders the standings as an aligned console table.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rank\tName\tPlayed\tWin\tLose\tScaled Rating\tWeekly Δ\tTotal Δ\n")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.1f\t%s\t%s\n",
			row.Rank, row.Name, row.Played, row.Wins, row.Losses,
			row.ScaledRating, signedDelta(row.EventDelta), signedDelta(row.TotalDelta))
	}
	return tw.Flush()
}

// WriteCSV writes the standings with a header row, the file the publisher
// uploads to the club data repo.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "name", "played", "wins", "losses", "scaled_rating", "weekly_delta", "total_delta"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.FormatFloat(row.ScaledRating, 'f', 1, 64),
			signedDelta(row.EventDelta),
			signedDelta(row.TotalDelta),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// signedDelta formats a delta with an explicit plus sign on gains.
func signedDelta(delta float64) string {
	if delta >= 0 {
		return fmt.Sprintf("+%.0f", delta)
	}
	return fmt.Sprintf("%.0f", delta)
}
