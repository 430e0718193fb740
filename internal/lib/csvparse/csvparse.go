package csvparse

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"time"
)

const dateLayout = "2006-01-02"

var requiredColumns = []string{"review_time", "team", "date", "merge_time"}

// Parse reads delimited text with a header row naming exactly the columns
// review_time, team, date and merge_time (in any order) and returns one
// TeamTimeRecord per data row. It has no side effects.
func Parse(raw string) ([]models.TeamTimeRecord, error) {
	const op = "lib.csvparse.Parse"

	reader := csv.NewReader(strings.NewReader(raw))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrBadFormat, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: %w: no data rows", op, apperrors.ErrBadFormat)
	}

	columns, err := columnIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]models.TeamTimeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", op, i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndex maps each required column name to its position in the header,
// rejecting extra, missing or duplicated columns.
func columnIndex(header []string) (map[string]int, error) {
	if len(header) != len(requiredColumns) {
		return nil, fmt.Errorf("%w: expected columns %s", apperrors.ErrBadFormat,
			strings.Join(requiredColumns, ", "))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", apperrors.ErrBadFormat, name)
		}
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int) (models.TeamTimeRecord, error) {
	var rec models.TeamTimeRecord

	team := strings.TrimSpace(row[columns["team"]])
	if team == "" {
		return rec, fmt.Errorf("%w: team must not be empty", apperrors.ErrBadFormat)
	}

	reviewTime, err := parseSeconds("review_time", row[columns["review_time"]])
	if err != nil {
		return rec, err
	}

	mergeTime, err := parseSeconds("merge_time", row[columns["merge_time"]])
	if err != nil {
		return rec, err
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[columns["date"]]))
	if err != nil {
		return rec, fmt.Errorf("%w: date %q is not a valid %s date",
			apperrors.ErrBadFieldType, row[columns["date"]], dateLayout)
	}

	rec.Team = team
	rec.Date = date
	rec.ReviewTime = reviewTime
	rec.MergeTime = mergeTime

	return rec, nil
}

func parseSeconds(column, value string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", apperrors.ErrBadFieldType, column, value)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", apperrors.ErrBadFieldType, column)
	}
	return seconds, nil
}
