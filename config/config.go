// Package config loads the pipeline configuration from a YAML file, with
// environment variables overriding individual settings.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/rating"
)

// Config holds every knob the pipeline reads.
type Config struct {
	Rating  RatingConfig  `yaml:"rating"`
	Data    DataConfig    `yaml:"data"`
	Export  ExportConfig  `yaml:"export"`
	Publish PublishConfig `yaml:"publish"`
}

// RatingConfig holds rating seed settings.
type RatingConfig struct {
	// InitialRating seeds every new player. Defaults to 1500.
	InitialRating float64 `yaml:"initial_rating"`
}

// DataConfig points at the input files.
type DataConfig struct {
	// EventsDir holds the per-event files, applied in lexical order.
	EventsDir string `yaml:"events_dir"`
	// AvailabilityFile restricts stats and pairings to the listed players.
	AvailabilityFile string `yaml:"availability_file"`
}

// ExportConfig controls the generated artifacts.
type ExportConfig struct {
	CSVPath     string `yaml:"csv_path"`
	ChartDir    string `yaml:"chart_dir"`
	ChartWidth  int    `yaml:"chart_width"`
	ChartHeight int    `yaml:"chart_height"`
}

// PublishConfig identifies the club data repository. The access token is
// only ever read from GITHUB_PERSONAL_ACCESS_TOKEN.
type PublishConfig struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
	Token  string `yaml:"-"`
}

// LoadConfig loads the configuration from a YAML file. A missing file is
// not an error; defaults plus environment variables apply.
func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("EVENTS_DIR"); v != "" {
		cfg.Data.EventsDir = v
	}
	if v := os.Getenv("AVAILABILITY_FILE"); v != "" {
		cfg.Data.AvailabilityFile = v
	}
	if v := os.Getenv("INITIAL_RATING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rating.InitialRating = f
		}
	}
	if v := os.Getenv("EXPORT_CSV_PATH"); v != "" {
		cfg.Export.CSVPath = v
	}
	if v := os.Getenv("PUBLISH_OWNER"); v != "" {
		cfg.Publish.Owner = v
	}
	if v := os.Getenv("PUBLISH_REPO"); v != "" {
		cfg.Publish.Repo = v
	}
	if v := os.Getenv("PUBLISH_BRANCH"); v != "" {
		cfg.Publish.Branch = v
	}
	cfg.Publish.Token = os.Getenv("GITHUB_PERSONAL_ACCESS_TOKEN")

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Rating.InitialRating == 0 {
		c.Rating.InitialRating = rating.DefaultInitialRating
	}
	if c.Data.EventsDir == "" {
		c.Data.EventsDir = "events"
	}
	if c.Export.CSVPath == "" {
		c.Export.CSVPath = "standings.csv"
	}
	if c.Export.ChartDir == "" {
		c.Export.ChartDir = "charts"
	}
	if c.Export.ChartWidth == 0 {
		c.Export.ChartWidth = 800
	}
	if c.Export.ChartHeight == 0 {
		c.Export.ChartHeight = 400
	}
	if c.Publish.Owner == "" {
		c.Publish.Owner = "badgerminton"
	}
	if c.Publish.Repo == "" {
		c.Publish.Repo = "badgerminton-data"
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "main"
	}
	if c.Publish.Path == "" {
		c.Publish.Path = "standings.csv"
	}
}
