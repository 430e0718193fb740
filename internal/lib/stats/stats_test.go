package stats

import (
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(team string, review, merge int) models.TeamTimeRecord {
	return models.TeamTimeRecord{
		Team:       team,
		Date:       time.Date(2023, 4, 14, 0, 0, 0, 0, time.UTC),
		ReviewTime: review,
		MergeTime:  merge,
	}
}

func TestComputeTwoTeams(t *testing.T) {
	records := []models.TeamTimeRecord{
		record("Team A", 30, 10),
		record("Team B", 25, 8),
		record("Team A", 20, 7),
		record("Team B", 15, 5),
	}

	teamStats, err := Compute(records)
	require.NoError(t, err)
	require.Len(t, teamStats, 2)

	teamA := teamStats["Team A"]
	assert.Equal(t, 25.0, teamA.ReviewTime.Mean)
	assert.Equal(t, 25.0, teamA.ReviewTime.Median)
	// {20, 30} are both single-count, so the tie-break picks the lowest
	assert.Equal(t, 20, teamA.ReviewTime.Mode)
	assert.Equal(t, 8.5, teamA.MergeTime.Mean)
	assert.Equal(t, 8.5, teamA.MergeTime.Median)
	assert.Equal(t, 7, teamA.MergeTime.Mode)

	teamB := teamStats["Team B"]
	assert.Equal(t, 20.0, teamB.ReviewTime.Mean)
	assert.Equal(t, 20.0, teamB.ReviewTime.Median)
	assert.Equal(t, 15, teamB.ReviewTime.Mode)
}

func TestComputeEmptyInput(t *testing.T) {
	_, err := Compute(nil)
	require.ErrorIs(t, err, apperrors.ErrNoRecords)
}

func TestModeTieBreakIsDeterministic(t *testing.T) {
	records := []models.TeamTimeRecord{
		record("Team A", 10, 1),
		record("Team A", 10, 1),
		record("Team A", 20, 1),
		record("Team A", 20, 1),
	}

	for i := 0; i < 50; i++ {
		teamStats, err := Compute(records)
		require.NoError(t, err)
		assert.Equal(t, 10, teamStats["Team A"].ReviewTime.Mode)
	}
}

func TestModePrefersHighestCount(t *testing.T) {
	records := []models.TeamTimeRecord{
		record("Team A", 5, 1),
		record("Team A", 40, 1),
		record("Team A", 40, 1),
	}

	teamStats, err := Compute(records)
	require.NoError(t, err)
	assert.Equal(t, 40, teamStats["Team A"].ReviewTime.Mode)
}

func TestMedianOddCount(t *testing.T) {
	records := []models.TeamTimeRecord{
		record("Team A", 1, 1),
		record("Team A", 100, 1),
		record("Team A", 2, 1),
	}

	teamStats, err := Compute(records)
	require.NoError(t, err)
	assert.Equal(t, 2.0, teamStats["Team A"].ReviewTime.Median)
}
