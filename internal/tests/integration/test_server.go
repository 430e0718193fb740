package integration

import (
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"log/slog"
	"net/http/httptest"
	v1 "team-analytics/internal/http/v1"
	"team-analytics/internal/repo"
	"team-analytics/internal/service"
	"team-analytics/internal/storage/files"
)

type TestServer struct {
	DB          *sqlx.DB
	Server      *httptest.Server
	artifactDir string
}

func NewTestServer() (*TestServer, error) {
	dbURL := "host=localhost port=5432 user=postgres password=postgres dbname=analytics_db sslmode=disable"

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	artifactDir, err := os.MkdirTemp("", "charts")
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}

	userRepo := repo.NewUserRepo(db)
	recordRepo := repo.NewRecordRepo(db)
	vizRepo := repo.NewVisualizationRepo(db)

	userService := service.NewUserService(log, userRepo)
	recordService := service.NewRecordService(log, recordRepo)
	vizService := service.NewVisualizationService(
		log, vizRepo, recordRepo, userRepo, files.NewStore(artifactDir), 4)

	deps := v1.RouterDependencies{
		UserService:          userService,
		RecordService:        recordService,
		VisualizationService: vizService,
	}

	r := chi.NewRouter()
	v1.SetupRoutes(r, &deps, log)

	ts := httptest.NewServer(r)

	return &TestServer{
		DB:          db,
		Server:      ts,
		artifactDir: artifactDir,
	}, nil
}

func (s *TestServer) Close() {
	s.Server.Close()
	s.DB.Close()
	os.RemoveAll(s.artifactDir)
}

func (s *TestServer) LoadFixtures() error {
	tables := []string{"visualization_shares", "visualizations", "csv_records", "users"}
	for _, table := range tables {
		_, err := s.DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	fixtures := `
		INSERT INTO users(username, token) VALUES
			('alice', 'token-alice'),
			('bob', 'token-bob');
	`

	if _, err := s.DB.Exec(fixtures); err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	return nil
}
