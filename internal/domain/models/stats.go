package models

type MetricSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   int     `json:"mode"`
}

type TeamMetrics struct {
	ReviewTime MetricSummary `json:"review_time"`
	MergeTime  MetricSummary `json:"merge_time"`
}

// TeamStatistics maps a team name to its per-metric summaries.
type TeamStatistics map[string]TeamMetrics
