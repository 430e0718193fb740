package stats

import (
	"fmt"
	"sort"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
)

// Compute groups records by team and summarizes review and merge times with
// mean, median and mode. It is recomputed per request and never persisted.
func Compute(records []models.TeamTimeRecord) (models.TeamStatistics, error) {
	const op = "lib.stats.Compute"

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNoRecords)
	}

	byTeam := make(map[string][]models.TeamTimeRecord)
	for _, rec := range records {
		byTeam[rec.Team] = append(byTeam[rec.Team], rec)
	}

	teamStats := make(models.TeamStatistics, len(byTeam))
	for team, teamRecords := range byTeam {
		review := make([]int, len(teamRecords))
		merge := make([]int, len(teamRecords))
		for i, rec := range teamRecords {
			review[i] = rec.ReviewTime
			merge[i] = rec.MergeTime
		}

		teamStats[team] = models.TeamMetrics{
			ReviewTime: summarize(review),
			MergeTime:  summarize(merge),
		}
	}

	return teamStats, nil
}

func summarize(values []int) models.MetricSummary {
	return models.MetricSummary{
		Mean:   mean(values),
		Median: median(values),
		Mode:   mode(values),
	}
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// median averages the two middle values for even counts.
func median(values []int) float64 {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

// mode reports the smallest value among the most frequent ones, so ties
// resolve deterministically.
func mode(values []int) int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := values[0]
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}

	return best
}
