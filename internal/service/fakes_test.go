package service

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRecordRepo struct {
	mu        sync.Mutex
	records   []models.TeamTimeRecord
	nextID    int
	failTeams map[string]bool
}

func (f *fakeRecordRepo) CreateRecord(rec models.TeamTimeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTeams[rec.Team] {
		return errors.New("insert failed")
	}

	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecordRepo) GetRecords(userID int, team string) ([]models.TeamTimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []models.TeamTimeRecord
	for _, rec := range f.records {
		if rec.UserID != userID {
			continue
		}
		if team != "" && rec.Team != team {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (f *fakeRecordRepo) GetRecord(userID, id int) (*models.TeamTimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.UserID == userID && rec.ID == id {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

type fakeVisualizationRepo struct {
	mu             sync.Mutex
	visualizations []models.Visualization
	shares         map[int]map[int]bool // user id -> visualization ids
	nextID         int
	failCreate     bool
}

func (f *fakeVisualizationRepo) CreateVisualization(v models.Visualization) (*models.Visualization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		return nil, errors.New("insert failed")
	}

	f.nextID++
	v.ID = f.nextID
	f.visualizations = append(f.visualizations, v)
	return &v, nil
}

func (f *fakeVisualizationRepo) GetVisualizations(userID int) ([]models.Visualization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var visualizations []models.Visualization
	for _, v := range f.visualizations {
		if v.UserID == userID {
			visualizations = append(visualizations, v)
		}
	}
	return visualizations, nil
}

func (f *fakeVisualizationRepo) GetVisualization(userID, id int) (*models.Visualization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range f.visualizations {
		if v.UserID == userID && v.ID == id {
			return &v, nil
		}
	}
	return nil, apperrors.ErrVisualizationNotFound
}

func (f *fakeVisualizationRepo) ShareAll(ownerID, targetID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.shares == nil {
		f.shares = make(map[int]map[int]bool)
	}
	if f.shares[targetID] == nil {
		f.shares[targetID] = make(map[int]bool)
	}

	shared := 0
	for _, v := range f.visualizations {
		if v.UserID == ownerID && !f.shares[targetID][v.ID] {
			f.shares[targetID][v.ID] = true
			shared++
		}
	}
	return shared, nil
}

func (f *fakeVisualizationRepo) GetSharedWith(userID int) ([]models.Visualization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var visualizations []models.Visualization
	for _, v := range f.visualizations {
		if f.shares[userID][v.ID] {
			visualizations = append(visualizations, v)
		}
	}
	return visualizations, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

func (f *fakeUserRepo) CreateUser(username, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == username {
			return nil, apperrors.ErrUserExists
		}
	}

	f.nextID++
	user := models.User{ID: f.nextID, Username: username, Token: token}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeUserRepo) GetByToken(token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Token == token {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeArtifactStore struct {
	mu       sync.Mutex
	saved    map[string][]byte
	failPath string // Save fails when the path contains this substring
}

func (f *fakeArtifactStore) Save(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPath != "" && strings.Contains(path, f.failPath) {
		return errors.New("write failed")
	}

	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[path] = data
	return nil
}
