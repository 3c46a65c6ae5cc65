// Package app wires the pipeline together: it feeds event files into the
// roster and hands the resulting state to the report, pairing and publish
// modules.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/ingest"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/pairing"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/publish"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/report"
	"github.com/BadgerMinton/badgerminton-pipeline/config"
)

// Pipeline is one batch run over the club's event files.
type Pipeline struct {
	logger *slog.Logger
	cfg    *config.Config
	roster *league.Roster
}

// New creates a pipeline with an empty roster.
func New(logger *slog.Logger, cfg *config.Config) *Pipeline {
	return &Pipeline{
		logger: logger,
		cfg:    cfg,
		roster: league.NewRoster(logger, cfg.Rating.InitialRating),
	}
}

// Roster exposes the underlying roster, mainly for tests.
func (p *Pipeline) Roster() *league.Roster {
	return p.roster
}

// Seed loads every event file from the events directory in lexical order
// (the files are date-named, so lexical is chronological) and applies each
// to the roster. A file that fails structural validation aborts the run;
// bad individual matches inside a valid file are logged and skipped by the
// roster.
func (p *Pipeline) Seed(ctx context.Context) error {
	entries, err := os.ReadDir(p.cfg.Data.EventsDir)
	if err != nil {
		return fmt.Errorf("failed to read events dir %s: %w", p.cfg.Data.EventsDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".xlsx", ".xls":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(p.cfg.Data.EventsDir, name)
		ev, err := ingest.LoadEventFile(path)
		if err != nil {
			return err
		}
		p.roster.ApplyEvent(ev)
		p.logger.InfoContext(ctx, "applied event",
			slog.String("file", name),
			slog.Time("date", ev.Date),
			slog.Int("matches", len(ev.Matches)),
			slog.Int("roster_size", p.roster.Len()),
		)
	}

	return nil
}

// pool returns the players in report/pairing scope: the availability
// filter's players when one is configured, otherwise the whole roster.
// Available players the roster has never seen are added at the seed rating
// so they can still be paired.
func (p *Pipeline) pool() ([]*league.Player, error) {
	if p.cfg.Data.AvailabilityFile == "" {
		return p.roster.Players(), nil
	}

	descs, err := ingest.LoadAvailability(p.cfg.Data.AvailabilityFile)
	if err != nil {
		return nil, err
	}

	players := make([]*league.Player, 0, len(descs))
	for _, desc := range descs {
		players = append(players, p.roster.AddOrGetPlayer(desc.Name, p.cfg.Rating.InitialRating, desc.Gender))
	}
	return players, nil
}

// Standings returns the ranked report rows for the current scope.
func (p *Pipeline) Standings() ([]report.Row, error) {
	pool, err := p.pool()
	if err != nil {
		return nil, err
	}
	return report.Standings(pool), nil
}

// Pairings produces next-round pairs grouped into houses. balanced selects
// the gender-balanced algorithm; otherwise the simple strongest-with-
// weakest split is used.
func (p *Pipeline) Pairings(gen *pairing.Generator, balanced bool) ([]pairing.House, error) {
	pool, err := p.pool()
	if err != nil {
		return nil, err
	}

	var pairs []pairing.Pair
	if balanced {
		pairs = gen.Balanced(pool)
	} else {
		pairs = gen.SplitPairs(pool)
	}
	return pairing.Houses(pairs), nil
}

// ExportCSV writes the standings CSV to the configured path and returns
// its contents.
func (p *Pipeline) ExportCSV() ([]byte, error) {
	rows, err := p.Standings()
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := report.WriteCSV(&buf, rows); err != nil {
		return nil, err
	}

	content := []byte(buf.String())
	if dir := filepath.Dir(p.cfg.Export.CSVPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.cfg.Export.CSVPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.cfg.Export.CSVPath, err)
	}
	return content, nil
}

// Chart writes a rating-history PNG for one player and returns the file
// path.
func (p *Pipeline) Chart(name string) (string, error) {
	player := p.roster.FindByName(name)
	if player == nil {
		return "", fmt.Errorf("unknown player %q", name)
	}

	png, err := report.HistoryChart(player, p.cfg.Export.ChartWidth, p.cfg.Export.ChartHeight)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.cfg.Export.ChartDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart dir %s: %w", p.cfg.Export.ChartDir, err)
	}
	path := filepath.Join(p.cfg.Export.ChartDir, slugify(player.Name)+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return path, nil
}

// Publish exports the standings CSV and uploads it to the club data repo.
func (p *Pipeline) Publish(ctx context.Context, message string) error {
	if p.cfg.Publish.Token == "" {
		return fmt.Errorf("GITHUB_PERSONAL_ACCESS_TOKEN is not set")
	}

	content, err := p.ExportCSV()
	if err != nil {
		return err
	}

	uploader := publish.NewUploader(ctx, p.logger, p.cfg.Publish.Owner, p.cfg.Publish.Repo, p.cfg.Publish.Branch, p.cfg.Publish.Token)
	return uploader.Upload(ctx, p.cfg.Publish.Path, message, content)
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
