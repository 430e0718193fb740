package service

import (
	"context"
	"errors"
	"regexp"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/render"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newVisualizationService(
	recordRepo *fakeRecordRepo,
	vizRepo *fakeVisualizationRepo,
	userRepo *fakeUserRepo,
	artifacts *fakeArtifactStore) *VisualizationService {
	return NewVisualizationService(discardLogger(), vizRepo, recordRepo, userRepo, artifacts, 4)
}

func seedRecords(t *testing.T, repo *fakeRecordRepo) {
	t.Helper()
	svc := NewRecordService(discardLogger(), repo)
	_, err := svc.Ingest(context.Background(), owner, sampleUpload)
	require.NoError(t, err)
}

func TestGenerateNotFoundBeforeAnyRendering(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	_, err := svc.Generate(context.Background(), owner, "", "")
	require.ErrorIs(t, err, apperrors.ErrNoRecords)
	assert.Empty(t, artifacts.saved)
	assert.Empty(t, vizRepo.visualizations)
}

func TestGenerateTeamFilterNotFound(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	_, err := svc.Generate(context.Background(), owner, "Team C", "line")
	require.ErrorIs(t, err, apperrors.ErrNoRecords)
	assert.Empty(t, artifacts.saved)
}

func TestGenerateLineChartPerTeam(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	outcomes, err := svc.Generate(context.Background(), owner, "", "line")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	pathPattern := regexp.MustCompile(`^/visualizations/1/line/Team_[AB]_\d{14}\.png$`)
	for _, outcome := range outcomes {
		assert.Empty(t, outcome.Error)
		assert.Equal(t, "line", outcome.ChartType)
		assert.Regexp(t, pathPattern, outcome.FilePath)
	}

	assert.Len(t, artifacts.saved, 2)
	require.Len(t, vizRepo.visualizations, 2)
	for _, v := range vizRepo.visualizations {
		assert.Equal(t, owner.ID, v.UserID)
		assert.Equal(t, "line", v.ChartType)
		assert.Len(t, v.Teams, 1)
	}
}

func TestGenerateAllChartTypesByDefault(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	outcomes, err := svc.Generate(context.Background(), owner, "", "")
	require.NoError(t, err)

	// 2 teams x 3 chart types
	require.Len(t, outcomes, 6)
	seen := make(map[string]int)
	for _, outcome := range outcomes {
		assert.Empty(t, outcome.Error)
		seen[outcome.ChartType]++
	}
	assert.Equal(t, map[string]int{"line": 2, "bar": 2, "scatter": 2}, seen)
}

// Rendering units draw in parallel goroutines, so a full Generate across
// every chart type must hold up under -race.
func TestGenerateConcurrentRendersAreSafe(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	var g errgroup.Group
	for i := 0; i < 3; i++ {
		g.Go(func() error {
			outcomes, err := svc.Generate(context.Background(), owner, "", "")
			if err != nil {
				return err
			}
			for _, outcome := range outcomes {
				if outcome.Error != "" {
					return errors.New(outcome.Error)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// 3 requests x 2 teams x 3 chart types
	assert.Len(t, vizRepo.visualizations, 18)
}

func TestGenerateUnsupportedChartType(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	_, err := svc.Generate(context.Background(), owner, "", "pie")
	require.ErrorIs(t, err, apperrors.ErrUnsupportedChartType)
	assert.Empty(t, artifacts.saved)
}

// One unit's persistence failure must not abort its siblings.
func TestGenerateUnitFailureIsIsolated(t *testing.T) {
	recordRepo := &fakeRecordRepo{}
	seedRecords(t, recordRepo)
	vizRepo := &fakeVisualizationRepo{}
	artifacts := &fakeArtifactStore{failPath: "Team_B"}
	svc := newVisualizationService(recordRepo, vizRepo, &fakeUserRepo{}, artifacts)

	outcomes, err := svc.Generate(context.Background(), owner, "", "line")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	var succeeded, failed int
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			failed++
			assert.Equal(t, "Team B", outcome.Team)
			assert.Empty(t, outcome.FilePath)
		} else {
			succeeded++
			assert.Equal(t, "Team A", outcome.Team)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	require.Len(t, vizRepo.visualizations, 1)
	assert.Equal(t, pq.StringArray{"Team A"}, vizRepo.visualizations[0].Teams)
}

func TestArtifactPath(t *testing.T) {
	now := time.Date(2023, 4, 14, 12, 30, 45, 0, time.UTC)
	path := ArtifactPath(7, render.Bar, "Team A", now)
	assert.Equal(t, "/visualizations/7/bar/Team_A_20230414123045.png", path)
}

func TestShareIsPointInTime(t *testing.T) {
	vizRepo := &fakeVisualizationRepo{}
	userRepo := &fakeUserRepo{}
	svc := newVisualizationService(&fakeRecordRepo{}, vizRepo, userRepo, &fakeArtifactStore{})

	_, err := userRepo.CreateUser("alice", "token-alice")
	require.NoError(t, err)
	bob, err := userRepo.CreateUser("bob", "token-bob")
	require.NoError(t, err)

	_, err = vizRepo.CreateVisualization(models.Visualization{
		UserID: owner.ID, ChartType: "line", FilePath: "/visualizations/1/line/Team_A_1.png",
	})
	require.NoError(t, err)

	shared, err := svc.Share(context.Background(), owner, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, shared)

	sharedList, err := svc.ListShared(context.Background(), *bob)
	require.NoError(t, err)
	require.Len(t, sharedList, 1)

	// charts generated after the grant stay private
	_, err = vizRepo.CreateVisualization(models.Visualization{
		UserID: owner.ID, ChartType: "bar", FilePath: "/visualizations/1/bar/Team_A_2.png",
	})
	require.NoError(t, err)

	sharedList, err = svc.ListShared(context.Background(), *bob)
	require.NoError(t, err)
	assert.Len(t, sharedList, 1)
}

func TestShareUnknownUser(t *testing.T) {
	svc := newVisualizationService(&fakeRecordRepo{}, &fakeVisualizationRepo{}, &fakeUserRepo{}, &fakeArtifactStore{})

	_, err := svc.Share(context.Background(), owner, "nobody")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
