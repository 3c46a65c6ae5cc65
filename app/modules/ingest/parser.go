// Package ingest turns event and availability files into league data. JSON
// is the canonical format; XLSX is accepted for clubs that keep results in
// a spreadsheet. Parsing and validation both live here so rating code never
// sees a malformed record.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// EventParser parses the raw bytes of one event file.
type EventParser interface {
	ParseEvent(data []byte) (league.Event, error)
}

// ParserFor picks a parser by file extension.
func ParserFor(filename string) (EventParser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONParser{}, nil
	case ".xlsx", ".xls":
		return &XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported event file type: %s", filename)
	}
}

// LoadEventFile reads and parses a single event file.
func LoadEventFile(path string) (league.Event, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return league.Event{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return league.Event{}, fmt.Errorf("failed to read event file %s: %w", path, err)
	}
	ev, err := parser.ParseEvent(data)
	if err != nil {
		return league.Event{}, fmt.Errorf("event file %s: %w", path, err)
	}
	return ev, nil
}

// ValidationError reports a structurally invalid record. Nothing of the
// offending file reaches the roster.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event data: %s: %s", e.Field, e.Reason)
}
