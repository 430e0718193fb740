package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/lib/logger/sl"
	"team-analytics/internal/lib/timeseries"
	"team-analytics/internal/render"
	"time"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

type VisualizationService struct {
	log        *slog.Logger
	vizRepo    VisualizationProvider
	recordRepo RecordProvider
	userRepo   UserProvider
	artifacts  ArtifactStore
	workers    int
}

type VisualizationProvider interface {
	CreateVisualization(v models.Visualization) (*models.Visualization, error)
	GetVisualizations(userID int) ([]models.Visualization, error)
	GetVisualization(userID, id int) (*models.Visualization, error)
	ShareAll(ownerID, targetID int) (int, error)
	GetSharedWith(userID int) ([]models.Visualization, error)
}

// ArtifactStore persists rendered chart bytes at their served path.
type ArtifactStore interface {
	Save(path string, data []byte) error
}

func NewVisualizationService(
	log *slog.Logger,
	vizRepo VisualizationProvider,
	recordRepo RecordProvider,
	userRepo UserProvider,
	artifacts ArtifactStore,
	workers int) *VisualizationService {
	if workers < 1 {
		workers = 1
	}
	return &VisualizationService{
		log:        log,
		vizRepo:    vizRepo,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		artifacts:  artifacts,
		workers:    workers,
	}
}

// ChartOutcome reports one (team, chart type) rendering unit. Either
// FilePath or Error is set. The list order is not meaningful to callers.
type ChartOutcome struct {
	Team      string `json:"team"`
	ChartType string `json:"chart_type"`
	FilePath  string `json:"file_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Generate renders one chart per (team, chart type) combination over the
// owner's records, persisting the image bytes and metadata for each unit.
// Units run concurrently and fail independently; a failed unit appears in
// the outcome list with its error and never aborts siblings. Artifact
// creation is at-least-once: units in flight when the caller goes away may
// still persist.
func (s *VisualizationService) Generate(ctx context.Context, owner models.User, team, chartType string) ([]ChartOutcome, error) {
	const op = "service.visualization.Generate"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.String("team", team),
		slog.String("chart_type", chartType),
	)

	log.Info("attempting to generate charts")

	chartTypes := render.AllChartTypes()
	if chartType != "" {
		parsed, err := render.ParseChartType(chartType)
		if err != nil {
			log.Error("unsupported chart type", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		chartTypes = []render.ChartType{parsed}
	}

	records, err := s.recordRepo.GetRecords(owner.ID, team)
	if err != nil {
		log.Error("failed to get records", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(records) == 0 {
		log.Warn("no records matched the requested scope")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNoRecords)
	}

	byTeam := make(map[string][]models.TeamTimeRecord)
	for _, rec := range records {
		byTeam[rec.Team] = append(byTeam[rec.Team], rec)
	}

	// Resampling happens before any unit launches so a malformed team set
	// fails the whole request before artifacts are written.
	teams := make([]string, 0, len(byTeam))
	series := make(map[string]*models.ResampledSeries, len(byTeam))
	for name, teamRecords := range byTeam {
		resampled, err := timeseries.Resample(teamRecords)
		if err != nil {
			log.Error("failed to resample team records", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		teams = append(teams, name)
		series[name] = resampled
	}
	sort.Strings(teams)

	var (
		mu       sync.Mutex
		outcomes []ChartOutcome
	)

	g, unitCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, teamName := range teams {
		for _, ct := range chartTypes {
			teamName, ct := teamName, ct
			g.Go(func() error {
				outcome := s.renderUnit(unitCtx, owner, teamName, ct, series[teamName])
				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			failed++
		}
	}

	log.Info("chart generation finished",
		slog.Int("succeeded", len(outcomes)-failed),
		slog.Int("failed", failed))

	return outcomes, nil
}

func (s *VisualizationService) renderUnit(
	ctx context.Context,
	owner models.User,
	team string,
	chartType render.ChartType,
	series *models.ResampledSeries) ChartOutcome {
	const op = "service.visualization.renderUnit"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.String("team", team),
		slog.String("chart_type", string(chartType)),
	)

	outcome := ChartOutcome{Team: team, ChartType: string(chartType)}

	if err := ctx.Err(); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	renderer, err := render.For(chartType)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	data, err := renderer.Render(series)
	if err != nil {
		log.Error("failed to render chart", sl.Err(err))
		outcome.Error = err.Error()
		return outcome
	}

	path := ArtifactPath(owner.ID, chartType, team, time.Now())

	if err := s.artifacts.Save(path, data); err != nil {
		log.Error("failed to save chart artifact", sl.Err(err))
		outcome.Error = err.Error()
		return outcome
	}

	_, err = s.vizRepo.CreateVisualization(models.Visualization{
		UserID:    owner.ID,
		ChartType: string(chartType),
		FilePath:  path,
		Teams:     pq.StringArray{team},
	})
	if err != nil {
		log.Error("failed to persist visualization metadata", sl.Err(err))
		outcome.Error = err.Error()
		return outcome
	}

	outcome.FilePath = path
	return outcome
}

// ArtifactPath builds the externally served artifact location:
// /visualizations/{owner_id}/{chart_type}/{team}_{timestamp}.png where
// spaces in the team name become underscores and the timestamp sorts by
// creation time. Downstream file serving resolves URLs by this pattern.
func ArtifactPath(ownerID int, chartType render.ChartType, team string, now time.Time) string {
	return fmt.Sprintf("/visualizations/%d/%s/%s_%s.png",
		ownerID, chartType, strings.ReplaceAll(team, " ", "_"), now.Format("20060102150405"))
}

func (s *VisualizationService) ListVisualizations(ctx context.Context, owner models.User) ([]models.Visualization, error) {
	const op = "service.visualization.ListVisualizations"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
	)

	visualizations, err := s.vizRepo.GetVisualizations(owner.ID)
	if err != nil {
		log.Error("failed to get visualizations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("visualizations retrieved successfully",
		slog.Int("visualization_count", len(visualizations)))

	return visualizations, nil
}

func (s *VisualizationService) GetVisualization(ctx context.Context, owner models.User, id int) (*models.Visualization, error) {
	const op = "service.visualization.GetVisualization"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.Int("visualization_id", id),
	)

	v, err := s.vizRepo.GetVisualization(owner.ID, id)
	if err != nil {
		log.Error("failed to get visualization", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Share grants the target user read access to the owner's current
// visualizations. The grant is point-in-time: charts generated afterwards
// are not shared.
func (s *VisualizationService) Share(ctx context.Context, owner models.User, targetUsername string) (int, error) {
	const op = "service.visualization.Share"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.String("target_username", targetUsername),
	)

	log.Info("attempting to share visualizations")

	if targetUsername == "" {
		log.Error("username is required")
		return 0, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
	}

	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		log.Error("failed to get target user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	shared, err := s.vizRepo.ShareAll(owner.ID, target.ID)
	if err != nil {
		log.Error("failed to share visualizations", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("visualizations shared successfully", slog.Int("shared_count", shared))

	return shared, nil
}

func (s *VisualizationService) ListShared(ctx context.Context, viewer models.User) ([]models.Visualization, error) {
	const op = "service.visualization.ListShared"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", viewer.ID),
	)

	visualizations, err := s.vizRepo.GetSharedWith(viewer.ID)
	if err != nil {
		log.Error("failed to get shared visualizations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("shared visualizations retrieved successfully",
		slog.Int("visualization_count", len(visualizations)))

	return visualizations, nil
}
