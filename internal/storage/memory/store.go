// Package memory provides in-memory storage backends. The default driver:
// zero external dependencies, reports live for the process lifetime.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

// Manager implements interfaces.StorageManager with in-memory maps.
type Manager struct {
	reports *ReportStore
	users   *UserStore
}

// NewManager creates an in-memory storage manager.
func NewManager(logger *common.Logger) *Manager {
	logger.Info().Msg("In-memory storage initialized")
	return &Manager{
		reports: NewReportStore(),
		users:   NewUserStore(),
	}
}

func (m *Manager) ReportStore() interfaces.ReportStore { return m.reports }
func (m *Manager) UserStore() interfaces.UserStore     { return m.users }
func (m *Manager) Close() error                        { return nil }

// ReportStore is an in-memory ReportStore. Safe for concurrent use.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]models.Report
}

// NewReportStore creates an empty in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]models.Report)}
}

// Save upserts the report by id.
func (s *ReportStore) Save(_ context.Context, report *models.Report) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	saved := *report
	return &saved, nil
}

// Get returns the report with the given id, or nil if absent.
func (s *ReportStore) Get(_ context.Context, id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

// List returns all reports sorted by timestamp descending.
func (s *ReportStore) List(_ context.Context) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Report, 0, len(s.reports))
	for id := range s.reports {
		report := s.reports[id]
		out = append(out, &report)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Delete removes the report, reporting whether it existed.
func (s *ReportStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reports[id]
	delete(s.reports, id)
	return ok, nil
}

// UserStore is an in-memory UserStore. Safe for concurrent use.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.UserProfile
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.UserProfile)}
}

// Save upserts the user by id.
func (s *UserStore) Save(_ context.Context, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

// Get returns the user with the given id, or nil if absent.
func (s *UserStore) Get(_ context.Context, id string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetByUsername returns the user with the given username, or nil if absent.
func (s *UserStore) GetByUsername(_ context.Context, username string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.users {
		if strings.EqualFold(s.users[id].Username, username) {
			user := s.users[id]
			return &user, nil
		}
	}
	return nil, nil
}

// Delete removes the user, reporting whether they existed.
func (s *UserStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	delete(s.users, id)
	return ok, nil
}

// Ensure interfaces are implemented
var (
	_ interfaces.StorageManager = (*Manager)(nil)
	_ interfaces.ReportStore    = (*ReportStore)(nil)
	_ interfaces.UserStore      = (*UserStore)(nil)
)
