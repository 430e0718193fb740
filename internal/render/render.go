package render

import (
	"fmt"
	"sync"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
)

// ChartType is a closed set of rendering strategies over the same
// resampled series.
type ChartType string

const (
	Line    ChartType = "line"
	Bar     ChartType = "bar"
	Scatter ChartType = "scatter"
)

const (
	chartWidth  = 1280
	chartHeight = 640
)

func AllChartTypes() []ChartType {
	return []ChartType{Line, Bar, Scatter}
}

func ParseChartType(value string) (ChartType, error) {
	const op = "render.ParseChartType"

	switch t := ChartType(value); t {
	case Line, Bar, Scatter:
		return t, nil
	}

	return "", fmt.Errorf("%s: %w: %q", op, apperrors.ErrUnsupportedChartType, value)
}

// Renderer turns a resampled series into PNG bytes. Each call draws on its
// own chart context; nothing is shared between concurrent renders.
type Renderer interface {
	Render(series *models.ResampledSeries) ([]byte, error)
}

var (
	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
)

// chartFont loads go-chart's default typeface exactly once. The library
// initializes it lazily on first Render, which is not safe when renders run
// concurrently, so every chart here gets the font set up front instead.
func chartFont() (*truetype.Font, error) {
	const op = "render.chartFont"

	fontOnce.Do(func() {
		font, fontErr = chart.GetDefaultFont()
	})
	if fontErr != nil {
		return nil, fmt.Errorf("%s: %w", op, fontErr)
	}

	return font, nil
}

func For(chartType ChartType) (Renderer, error) {
	const op = "render.For"

	switch chartType {
	case Line:
		return lineRenderer{}, nil
	case Bar:
		return barRenderer{}, nil
	case Scatter:
		return scatterRenderer{}, nil
	}

	return nil, fmt.Errorf("%s: %w: %q", op, apperrors.ErrUnsupportedChartType, chartType)
}

func chartTitle(team string) string {
	return fmt.Sprintf("%s Review and Merge Times", team)
}
