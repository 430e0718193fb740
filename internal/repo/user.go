package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
)

type UserRepo struct {
	storage *sqlx.DB
}

func NewUserRepo(storage *sqlx.DB) *UserRepo {
	return &UserRepo{storage: storage}
}

func (r *UserRepo) CreateUser(username, token string) (*models.User, error) {
	const op = "repo.user.CreateUser"

	query := `
		INSERT INTO users (username, token)
		VALUES ($1, $2)
		RETURNING id, username, token, created_at
	`

	var user models.User
	if err := r.storage.Get(&user, query, username, token); err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepo) GetByToken(token string) (*models.User, error) {
	const op = "repo.user.GetByToken"

	query := `SELECT id, username, token, created_at FROM users WHERE token = $1`

	var user models.User
	if err := r.storage.Get(&user, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	const op = "repo.user.GetByUsername"

	query := `SELECT id, username, token, created_at FROM users WHERE username = $1`

	var user models.User
	if err := r.storage.Get(&user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func isDuplicateKeyError(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
