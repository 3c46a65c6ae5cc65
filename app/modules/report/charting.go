package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BadgerMinton/badgerminton-pipeline/app/modules/league"
)

// HistoryChart renders a player's dated rating snapshots as a PNG line
// chart. The undated seed entry is skipped; fewer than two dated points
// cannot make a line, so a placeholder chart is rendered instead.
func HistoryChart(p *league.Player, width, height int) ([]byte, error) {
	var xValues []time.Time
	var yValues []float64
	for _, snapshot := range p.RatingHistory() {
		if snapshot.Event.IsZero() {
			continue
		}
		xValues = append(xValues, snapshot.Event)
		yValues = append(yValues, snapshot.Rating)
	}

	if len(xValues) < 2 {
		return renderPlaceholder(p.Name, width, height)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s rating history", p.Name),
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:           "Event",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name: "Rating",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    p.Name,
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeWidth: 2,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render rating history chart for %s: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}

func renderPlaceholder(name string, width, height int) ([]byte, error) {
	msg := fmt.Sprintf("%s: not enough rated events yet", name)

	// Render refuses a chart with no series, so the text element rides on
	// an invisible one.
	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis:  chart.YAxis{Style: chart.Style{Hidden: true}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotColor:    drawing.ColorTransparent,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buf.Bytes(), nil
}
