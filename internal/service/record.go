package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/lib/csvparse"
	"team-analytics/internal/lib/logger/sl"
	"team-analytics/internal/lib/stats"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

type RecordService struct {
	log        *slog.Logger
	recordRepo RecordProvider
}

type RecordProvider interface {
	CreateRecord(rec models.TeamTimeRecord) error
	GetRecords(userID int, team string) ([]models.TeamTimeRecord, error)
	GetRecord(userID, id int) (*models.TeamTimeRecord, error)
}

func NewRecordService(
	log *slog.Logger,
	recordRepo RecordProvider) *RecordService {
	return &RecordService{
		log:        log,
		recordRepo: recordRepo,
	}
}

type IngestResult struct {
	Created   int
	RowErrors error
}

// Ingest parses the uploaded tabular text and writes one record per row.
// Each row is an independent write: a failed row does not roll back rows
// already committed, so the result carries the committed count next to the
// joined per-row failures.
func (s *RecordService) Ingest(ctx context.Context, owner models.User, raw string) (*IngestResult, error) {
	const op = "service.record.Ingest"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
	)

	log.Info("attempting to ingest uploaded data")

	records, err := csvparse.Parse(raw)
	if err != nil {
		log.Error("failed to parse upload", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		mu      sync.Mutex
		created int
		rowErrs *multierror.Error
	)

	g, _ := errgroup.WithContext(ctx)
	for i := range records {
		rec := records[i]
		rec.UserID = owner.ID

		g.Go(func() error {
			if err := s.recordRepo.CreateRecord(rec); err != nil {
				mu.Lock()
				rowErrs = multierror.Append(rowErrs, err)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			created++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	result := &IngestResult{
		Created:   created,
		RowErrors: rowErrs.ErrorOrNil(),
	}

	if result.RowErrors != nil {
		log.Warn("some rows were not committed",
			slog.Int("created", created),
			slog.Int("failed", len(records)-created),
			sl.Err(result.RowErrors))
	} else {
		log.Info("upload ingested successfully", slog.Int("created", created))
	}

	return result, nil
}

func (s *RecordService) ListRecords(ctx context.Context, owner models.User) ([]models.TeamTimeRecord, error) {
	const op = "service.record.ListRecords"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
	)

	records, err := s.recordRepo.GetRecords(owner.ID, "")
	if err != nil {
		log.Error("failed to get records", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("records retrieved successfully", slog.Int("record_count", len(records)))

	return records, nil
}

func (s *RecordService) GetRecord(ctx context.Context, owner models.User, id int) (*models.TeamTimeRecord, error) {
	const op = "service.record.GetRecord"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.Int("record_id", id),
	)

	rec, err := s.recordRepo.GetRecord(owner.ID, id)
	if err != nil {
		log.Error("failed to get record", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

// Statistics computes per-team mean/median/mode over the owner's records,
// optionally filtered to one team.
func (s *RecordService) Statistics(ctx context.Context, owner models.User, team string) (models.TeamStatistics, error) {
	const op = "service.record.Statistics"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", owner.ID),
		slog.String("team", team),
	)

	log.Info("computing team statistics")

	records, err := s.recordRepo.GetRecords(owner.ID, team)
	if err != nil {
		log.Error("failed to get records", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	teamStats, err := stats.Compute(records)
	if err != nil {
		log.Warn("no records matched the requested scope", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("statistics computed successfully", slog.Int("team_count", len(teamStats)))

	return teamStats, nil
}
