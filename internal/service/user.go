package service

import (
	"context"
	"fmt"
	"log/slog"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/lib/logger/sl"

	"github.com/google/uuid"
)

type UserService struct {
	log      *slog.Logger
	userRepo UserProvider
}

type UserProvider interface {
	CreateUser(username, token string) (*models.User, error)
	GetByToken(token string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

func NewUserService(
	log *slog.Logger,
	userRepo UserProvider) *UserService {
	return &UserService{
		log:      log,
		userRepo: userRepo,
	}
}

// Register creates a user and issues the API token used on every
// authenticated route.
func (s *UserService) Register(ctx context.Context, username string) (*models.User, error) {
	const op = "service.user.Register"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to register user")

	token := uuid.NewString()

	user, err := s.userRepo.CreateUser(username, token)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered successfully", slog.Int("user_id", user.ID))

	return user, nil
}

// Authenticate resolves the principal for an API token.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "service.user.Authenticate"

	user, err := s.userRepo.GetByToken(token)
	if err != nil {
		s.log.With(slog.String("op", op)).Warn("failed to authenticate token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
