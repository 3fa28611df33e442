package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

// userRecord mirrors models.UserProfile with the password hash mapped to a
// persistable field. The model excludes the hash from JSON, so the store
// carries it explicitly.
type userRecord struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	PasswordHash    string `json:"password_hash"`
	DisplayName     string `json:"display_name,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	TradingGoal     string `json:"trading_goal,omitempty"`
	RiskTolerance   string `json:"risk_tolerance,omitempty"`
	Onboarded       bool   `json:"onboarded"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

const userSelectFields = `user_id as id, username, password_hash, display_name,
	experience_level, trading_goal, risk_tolerance, onboarded, created_at, updated_at`

const userTimeLayout = "2006-01-02T15:04:05Z07:00"

// UserStore implements interfaces.UserStore using SurrealDB.
type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewUserStore creates a SurrealDB-backed user store.
func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

// Save upserts the user by id.
func (s *UserStore) Save(ctx context.Context, user *models.UserProfile) error {
	sql := `UPSERT $rid SET
		user_id = $user_id, username = $username, password_hash = $password_hash,
		display_name = $display_name, experience_level = $experience_level,
		trading_goal = $trading_goal, risk_tolerance = $risk_tolerance,
		onboarded = $onboarded, created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":              surrealmodels.NewRecordID("user_profile", user.ID),
		"user_id":          user.ID,
		"username":         user.Username,
		"password_hash":    user.PasswordHash,
		"display_name":     user.DisplayName,
		"experience_level": user.ExperienceLevel,
		"trading_goal":     user.TradingGoal,
		"risk_tolerance":   user.RiskTolerance,
		"onboarded":        user.Onboarded,
		"created_at":       user.CreatedAt.Format(userTimeLayout),
		"updated_at":       user.UpdatedAt.Format(userTimeLayout),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Get returns the user with the given id, or nil if absent.
func (s *UserStore) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	sql := "SELECT " + userSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("user_profile", id),
	}

	results, err := surrealdb.Query[[]userRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return recordToUser(&(*results)[0].Result[0]), nil
}

// GetByUsername returns the user with the given username, or nil if absent.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	sql := "SELECT " + userSelectFields + " FROM user_profile WHERE username = $username LIMIT 1"
	vars := map[string]any{
		"username": strings.ToLower(username),
	}

	results, err := surrealdb.Query[[]userRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return recordToUser(&(*results)[0].Result[0]), nil
}

// Delete removes the user, reporting whether they existed.
func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if _, err := surrealdb.Delete[userRecord](ctx, s.db, surrealmodels.NewRecordID("user_profile", id)); err != nil && !isNotFoundError(err) {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return true, nil
}

func recordToUser(r *userRecord) *models.UserProfile {
	user := &models.UserProfile{
		ID:              r.ID,
		Username:        r.Username,
		PasswordHash:    r.PasswordHash,
		DisplayName:     r.DisplayName,
		ExperienceLevel: r.ExperienceLevel,
		TradingGoal:     r.TradingGoal,
		RiskTolerance:   r.RiskTolerance,
		Onboarded:       r.Onboarded,
	}
	user.CreatedAt = parseUserTime(r.CreatedAt)
	user.UpdatedAt = parseUserTime(r.UpdatedAt)
	return user
}

// parseUserTime parses a stored timestamp, zero time on failure.
func parseUserTime(s string) time.Time {
	t, err := time.Parse(userTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Ensure UserStore implements interfaces.UserStore
var _ interfaces.UserStore = (*UserStore)(nil)
