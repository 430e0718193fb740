package render

import (
	"bytes"
	"fmt"
	"team-analytics/internal/domain/models"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

const axisDateFormat = "Mon 2006-01-02"

type lineRenderer struct{}

func (lineRenderer) Render(series *models.ResampledSeries) ([]byte, error) {
	const op = "render.line"

	font, err := chartFont()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	xs, review, merge := seriesValues(series)

	ch := chart.Chart{
		Title:  chartTitle(series.Team),
		Font:   font,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  dateAxis(),
		YAxis:  chart.YAxis{Name: "Duration (s)", Range: durationRange(review, merge)},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Review Time", XValues: xs, YValues: review},
			chart.TimeSeries{Name: "Merge Time", XValues: xs, YValues: merge},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

type scatterRenderer struct{}

func (scatterRenderer) Render(series *models.ResampledSeries) ([]byte, error) {
	const op = "render.scatter"

	font, err := chartFont()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	xs, review, merge := seriesValues(series)

	dotOnly := chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
	}

	ch := chart.Chart{
		Title:  chartTitle(series.Team),
		Font:   font,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  dateAxis(),
		YAxis:  chart.YAxis{Name: "Duration (s)", Range: durationRange(review, merge)},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Review Time", XValues: xs, YValues: review, Style: dotOnly},
			chart.TimeSeries{Name: "Merge Time", XValues: xs, YValues: merge, Style: dotOnly},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

type barRenderer struct{}

// Render draws one bar per day with review time stacked under merge time.
func (barRenderer) Render(series *models.ResampledSeries) ([]byte, error) {
	const op = "render.bar"

	font, err := chartFont()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bars := make([]chart.StackedBar, 0, len(series.Points))
	for _, p := range series.Points {
		bars = append(bars, chart.StackedBar{
			Name: p.Date.Format(axisDateFormat),
			Values: []chart.Value{
				{Label: "Review Time", Value: p.ReviewTime},
				{Label: "Merge Time", Value: p.MergeTime},
			},
		})
	}

	ch := chart.StackedBarChart{
		Title:      chartTitle(series.Team),
		Font:       font,
		Width:      chartWidth,
		Height:     chartHeight,
		BarSpacing: 20,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func dateAxis() chart.XAxis {
	return chart.XAxis{
		Name:           "Date",
		ValueFormatter: chart.TimeValueFormatterWithFormat(axisDateFormat),
	}
}

// seriesValues flattens the series for go-chart. A single-point series is
// padded to two X values because go-chart cannot render a zero x-range.
func seriesValues(series *models.ResampledSeries) ([]time.Time, []float64, []float64) {
	points := series.Points

	xs := make([]time.Time, len(points))
	review := make([]float64, len(points))
	merge := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		review[i] = p.ReviewTime
		merge[i] = p.MergeTime
	}

	if len(points) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		review = append(review, review[0])
		merge = append(merge, merge[0])
	}

	return xs, review, merge
}

// durationRange pads a flat value range so go-chart has a non-zero y-delta
// to draw against.
func durationRange(review, merge []float64) chart.Range {
	min := review[0]
	max := review[0]
	for _, vs := range [][]float64{review, merge} {
		for _, v := range vs {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if min == max {
		min--
		max++
	}

	return &chart.ContinuousRange{Min: min, Max: max}
}
