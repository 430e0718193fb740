package timeseries

import (
	"fmt"
	"sort"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"time"
)

// Resample converts one team's irregularly dated records into a daily grid
// spanning [min(date), max(date)] inclusive. Records sharing a calendar day
// are averaged first; days without an observation are filled by linear
// interpolation between the nearest earlier and later known values. Output
// is deterministic for a given input set.
func Resample(records []models.TeamTimeRecord) (*models.ResampledSeries, error) {
	const op = "lib.timeseries.Resample"

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNoRecords)
	}

	known := averageByDay(records)

	series := &models.ResampledSeries{
		Team:   records[0].Team,
		Points: make([]models.SeriesPoint, 0, len(known)),
	}

	first := known[0].Date
	last := known[len(known)-1].Date

	i := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if i+1 < len(known) && !day.Before(known[i+1].Date) {
			i++
		}

		if day.Equal(known[i].Date) {
			series.Points = append(series.Points, known[i])
			continue
		}

		series.Points = append(series.Points, interpolate(known[i], known[i+1], day))
	}

	return series, nil
}

// averageByDay collapses same-day records into one point and returns the
// points sorted by date.
func averageByDay(records []models.TeamTimeRecord) []models.SeriesPoint {
	type sums struct {
		review float64
		merge  float64
		count  float64
	}

	byDay := make(map[time.Time]*sums)
	for _, rec := range records {
		day := truncateToDay(rec.Date)
		s, ok := byDay[day]
		if !ok {
			s = &sums{}
			byDay[day] = s
		}
		s.review += float64(rec.ReviewTime)
		s.merge += float64(rec.MergeTime)
		s.count++
	}

	points := make([]models.SeriesPoint, 0, len(byDay))
	for day, s := range byDay {
		points = append(points, models.SeriesPoint{
			Date:       day,
			ReviewTime: s.review / s.count,
			MergeTime:  s.merge / s.count,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

func interpolate(prev, next models.SeriesPoint, day time.Time) models.SeriesPoint {
	span := next.Date.Sub(prev.Date).Hours() / 24
	offset := day.Sub(prev.Date).Hours() / 24
	frac := offset / span

	return models.SeriesPoint{
		Date:       day,
		ReviewTime: prev.ReviewTime + (next.ReviewTime-prev.ReviewTime)*frac,
		MergeTime:  prev.MergeTime + (next.MergeTime-prev.MergeTime)*frac,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
