package models

import "time"

type SeriesPoint struct {
	Date       time.Time
	ReviewTime float64
	MergeTime  float64
}

// ResampledSeries is one team's observations on a daily grid covering the
// full span from the earliest to the latest record date, gaps filled by
// linear interpolation. It is scoped to a single rendering request and is
// never persisted.
type ResampledSeries struct {
	Team   string
	Points []SeriesPoint
}
