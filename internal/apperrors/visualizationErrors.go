package apperrors

import "errors"

var (
	ErrUnsupportedChartType  = errors.New("unsupported chart type")
	ErrVisualizationNotFound = errors.New("visualization not found")
)
