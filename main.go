package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/BadgerMinton/badgerminton-pipeline/app"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/pairing"
	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/report"
	"github.com/BadgerMinton/badgerminton-pipeline/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "badgerminton",
		Usage: "club rating pipeline: ratings, standings and pairings from event files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newStatsCommand(),
			newPairingsCommand(),
			newChartCommand(),
			newExportCommand(),
			newPublishCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seededPipeline loads config, builds the pipeline and replays every event
// file. Every command starts here; the pipeline is batch state, not a
// long-lived service.
func seededPipeline(c *cli.Context) (*app.Pipeline, error) {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pipeline := app.New(logger, cfg)
	if err := pipeline.Seed(c.Context); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func newStatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print the ranked standings table",
		Action: func(c *cli.Context) error {
			pipeline, err := seededPipeline(c)
			if err != nil {
				return err
			}
			rows, err := pipeline.Standings()
			if err != nil {
				return err
			}
			fmt.Printf("Standings (%d players)\n", len(rows))
			return report.WriteTable(os.Stdout, rows)
		},
	}
}

func newPairingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "pairings",
		Usage: "suggest next-round pairs grouped into houses",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "balanced",
				Usage: "gender-balanced pairing instead of the simple split",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed for the pairing coin flip (0 = time-based)",
			},
		},
		Action: func(c *cli.Context) error {
			pipeline, err := seededPipeline(c)
			if err != nil {
				return err
			}

			seed := c.Int64("seed")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			houses, err := pipeline.Pairings(pairing.NewSeeded(seed), c.Bool("balanced"))
			if err != nil {
				return err
			}

			fmt.Println("Next pairings (grouped into houses):")
			for i, house := range houses {
				males, females := house.GenderCounts()
				fmt.Printf("House %d:\n", i+1)
				fmt.Printf("Average Rating: %.0f, Males: %d, Females: %d\n", house.AverageRating(), males, females)
				for _, pair := range house.Pairs {
					fmt.Printf("  %s\n", pair.Label())
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newChartCommand() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "write a rating-history PNG for each named player",
		ArgsUsage: "PLAYER [PLAYER...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("chart needs at least one player name")
			}
			pipeline, err := seededPipeline(c)
			if err != nil {
				return err
			}
			for _, name := range c.Args().Slice() {
				path, err := pipeline.Chart(name)
				if err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", path)
			}
			return nil
		},
	}
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the standings CSV",
		Action: func(c *cli.Context) error {
			pipeline, err := seededPipeline(c)
			if err != nil {
				return err
			}
			if _, err := pipeline.ExportCSV(); err != nil {
				return err
			}
			return nil
		},
	}
}

func newPublishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "export the standings CSV and push it to the club data repo",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "message",
				Usage: "commit message for the upload",
			},
		},
		Action: func(c *cli.Context) error {
			pipeline, err := seededPipeline(c)
			if err != nil {
				return err
			}
			message := c.String("message")
			if message == "" {
				message = fmt.Sprintf("Update standings %s", time.Now().Format("2006-01-02"))
			}
			return pipeline.Publish(c.Context, message)
		},
	}
}
