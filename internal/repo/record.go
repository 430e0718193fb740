package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
)

type RecordRepo struct {
	storage *sqlx.DB
}

func NewRecordRepo(storage *sqlx.DB) *RecordRepo {
	return &RecordRepo{storage: storage}
}

func (r *RecordRepo) CreateRecord(rec models.TeamTimeRecord) error {
	const op = "repo.record.CreateRecord"

	query := `
		INSERT INTO csv_records (user_id, team, date, review_time, merge_time)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.storage.Exec(query, rec.UserID, rec.Team, rec.Date, rec.ReviewTime, rec.MergeTime)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RecordRepo) GetRecords(userID int, team string) ([]models.TeamTimeRecord, error) {
	const op = "repo.record.GetRecords"

	query := `
		SELECT id, user_id, team, date, review_time, merge_time
		FROM csv_records
		WHERE user_id = $1
	`

	var (
		records []models.TeamTimeRecord
		err     error
	)

	if team == "" {
		err = r.storage.Select(&records, query+` ORDER BY date, id`, userID)
	} else {
		err = r.storage.Select(&records, query+` AND team = $2 ORDER BY date, id`, userID, team)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func (r *RecordRepo) GetRecord(userID, id int) (*models.TeamTimeRecord, error) {
	const op = "repo.record.GetRecord"

	query := `
		SELECT id, user_id, team, date, review_time, merge_time
		FROM csv_records
		WHERE user_id = $1 AND id = $2
	`

	var rec models.TeamTimeRecord
	if err := r.storage.Get(&rec, query, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rec, nil
}
