package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
)

type VisualizationRepo struct {
	storage *sqlx.DB
}

func NewVisualizationRepo(storage *sqlx.DB) *VisualizationRepo {
	return &VisualizationRepo{storage: storage}
}

func (r *VisualizationRepo) CreateVisualization(v models.Visualization) (*models.Visualization, error) {
	const op = "repo.visualization.CreateVisualization"

	query := `
		INSERT INTO visualizations (user_id, chart_type, file_path, teams)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.storage.QueryRowx(query, v.UserID, v.ChartType, v.FilePath, v.Teams).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}

func (r *VisualizationRepo) GetVisualizations(userID int) ([]models.Visualization, error) {
	const op = "repo.visualization.GetVisualizations"

	query := `
		SELECT id, user_id, chart_type, file_path, teams, created_at
		FROM visualizations
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	var visualizations []models.Visualization
	if err := r.storage.Select(&visualizations, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return visualizations, nil
}

func (r *VisualizationRepo) GetVisualization(userID, id int) (*models.Visualization, error) {
	const op = "repo.visualization.GetVisualization"

	query := `
		SELECT id, user_id, chart_type, file_path, teams, created_at
		FROM visualizations
		WHERE user_id = $1 AND id = $2
	`

	var v models.Visualization
	if err := r.storage.Get(&v, query, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrVisualizationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}

// ShareAll grants the target user read access to every visualization the
// owner has right now. Visualizations created later are not covered by the
// grant.
func (r *VisualizationRepo) ShareAll(ownerID, targetID int) (int, error) {
	const op = "repo.visualization.ShareAll"

	query := `
		INSERT INTO visualization_shares (visualization_id, user_id)
		SELECT id, $2 FROM visualizations WHERE user_id = $1
		ON CONFLICT DO NOTHING
	`

	result, err := r.storage.Exec(query, ownerID, targetID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(rowsAffected), nil
}

func (r *VisualizationRepo) GetSharedWith(userID int) ([]models.Visualization, error) {
	const op = "repo.visualization.GetSharedWith"

	query := `
		SELECT v.id, v.user_id, v.chart_type, v.file_path, v.teams, v.created_at
		FROM visualizations v
		JOIN visualization_shares s ON s.visualization_id = v.id
		WHERE s.user_id = $1
		ORDER BY v.created_at, v.id
	`

	var visualizations []models.Visualization
	if err := r.storage.Select(&visualizations, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return visualizations, nil
}
