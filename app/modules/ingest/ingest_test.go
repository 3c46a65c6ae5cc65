package ingest

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

func TestParserFor(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "json file", filename: "2026-03-07.json", want: "json"},
		{name: "xlsx file", filename: "results.xlsx", want: "xlsx"},
		{name: "xls file", filename: "results.xls", want: "xlsx"},
		{name: "unsupported", filename: "results.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := ParserFor(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "json":
				_, ok := parser.(*JSONParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			}
		})
	}
}

const eventJSON = `{
  "event": {"date": "2026-03-07"},
  "teams": [
    {"players": [{"name": "Ana", "gender": "female"}, {"name": "Bo", "gender": "male"}]},
    {"players": [{"name": "Cy", "gender": "male"}, {"name": "Di", "gender": "female"}]}
  ],
  "matches": [
    {"players_a": ["Ana", "Bo"], "players_b": ["Cy", "Di"], "score_a": 21, "score_b": 15}
  ]
}`

func TestJSONParserParseEvent(t *testing.T) {
	ev, err := (&JSONParser{}).ParseEvent([]byte(eventJSON))
	require.NoError(t, err)

	require.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), ev.Date)
	require.Len(t, ev.Teams, 2)
	require.Equal(t, league.PlayerDesc{Name: "Ana", Gender: league.GenderFemale}, ev.Teams[0][0])
	require.Len(t, ev.Matches, 1)
	require.Equal(t, []string{"Cy", "Di"}, ev.Matches[0].PlayersB)
	require.InDelta(t, 21, ev.Matches[0].ScoreA, 1e-9)
}

func TestJSONParserValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing date", data: `{"event": {}, "matches": []}`},
		{name: "bad date", data: `{"event": {"date": "someday"}}`},
		{name: "empty player name", data: `{"event": {"date": "2026-03-07"}, "teams": [{"players": [{"name": ""}]}]}`},
		{name: "unknown gender", data: `{"event": {"date": "2026-03-07"}, "teams": [{"players": [{"name": "X", "gender": "robot"}]}]}`},
		{name: "one sided match", data: `{"event": {"date": "2026-03-07"}, "matches": [{"players_a": ["A"], "players_b": [], "score_a": 21, "score_b": 3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&JSONParser{}).ParseEvent([]byte(tt.data))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestJSONParserMalformed(t *testing.T) {
	_, err := (&JSONParser{}).ParseEvent([]byte("{not json"))
	require.Error(t, err)
}

func buildXLSXFixture(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]interface{}{
		"A1": "Date", "B1": "2026-03-07",
		"A2": "Team A", "B2": "Team B", "C2": "Score A", "D2": "Score B",
		"A3": "Ana & Bo", "B3": "Cy & Di", "C3": 21, "D3": 15,
	}
	for ref, value := range cells {
		require.NoError(t, f.SetCellValue(sheet, ref, value))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestXLSXParserMatchesJSONParser(t *testing.T) {
	fromSheet, err := (&XLSXParser{}).ParseEvent(buildXLSXFixture(t))
	require.NoError(t, err)

	fromJSON, err := (&JSONParser{}).ParseEvent([]byte(eventJSON))
	require.NoError(t, err)

	require.Equal(t, fromJSON.Date, fromSheet.Date)
	require.Equal(t, fromJSON.Matches, fromSheet.Matches)

	// The sheet has no gender column, so participants come out unspecified.
	names := map[string]bool{}
	for _, team := range fromSheet.Teams {
		for _, desc := range team {
			names[desc.Name] = true
			require.Equal(t, league.GenderUnspecified, desc.Gender)
		}
	}
	require.Equal(t, map[string]bool{"Ana": true, "Bo": true, "Cy": true, "Di": true}, names)
}

func TestXLSXParserRejectsGarbage(t *testing.T) {
	_, err := (&XLSXParser{}).ParseEvent([]byte("not a workbook"))
	require.Error(t, err)
}

func TestLoadAvailability(t *testing.T) {
	path := t.TempDir() + "/available.json"
	data := `{"available_players": [{"name": "Ana", "gender": "female"}, {"name": "Bo", "gender": "male"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	players, err := LoadAvailability(path)
	require.NoError(t, err)
	require.Equal(t, []league.PlayerDesc{
		{Name: "Ana", Gender: league.GenderFemale},
		{Name: "Bo", Gender: league.GenderMale},
	}, players)
}
