// Package users manages trader profiles.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

var (
	// ErrNotFound indicates no profile exists for the given id.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidInput indicates a missing or malformed field.
	ErrInvalidInput = errors.New("invalid input")
)

// Service implements trader profile CRUD over a UserStore. Passwords are
// hashed with bcrypt before they reach storage and never leave it.
type Service struct {
	store  interfaces.UserStore
	logger *common.Logger
	newID  func() string
	now    func() time.Time
}

// NewService creates a user profile service.
func NewService(store interfaces.UserStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
		now:    models.NowUTC,
	}
}

// CreateParams are the fields accepted when registering a profile.
type CreateParams struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	DisplayName     string `json:"display_name"`
	ExperienceLevel string `json:"experience_level"`
	TradingGoal     string `json:"trading_goal"`
	RiskTolerance   string `json:"risk_tolerance"`
}

// Create registers a new profile. Usernames are unique case-insensitively.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.UserProfile, error) {
	username := strings.ToLower(strings.TrimSpace(p.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(p.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	existing, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.UserProfile{
		ID:              s.newID(),
		Username:        username,
		PasswordHash:    string(hash),
		DisplayName:     p.DisplayName,
		ExperienceLevel: p.ExperienceLevel,
		TradingGoal:     p.TradingGoal,
		RiskTolerance:   p.RiskTolerance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("User profile created")
	return user, nil
}

// Get returns the profile with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateParams are the mutable profile fields. Nil means leave unchanged.
type UpdateParams struct {
	DisplayName     *string `json:"display_name,omitempty"`
	ExperienceLevel *string `json:"experience_level,omitempty"`
	TradingGoal     *string `json:"trading_goal,omitempty"`
	RiskTolerance   *string `json:"risk_tolerance,omitempty"`
	Onboarded       *bool   `json:"onboarded,omitempty"`
}

// Update applies a partial update to the profile.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*models.UserProfile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.DisplayName != nil {
		user.DisplayName = *p.DisplayName
	}
	if p.ExperienceLevel != nil {
		user.ExperienceLevel = *p.ExperienceLevel
	}
	if p.TradingGoal != nil {
		user.TradingGoal = *p.TradingGoal
	}
	if p.RiskTolerance != nil {
		user.RiskTolerance = *p.RiskTolerance
	}
	if p.Onboarded != nil {
		user.Onboarded = *p.Onboarded
	}
	user.UpdatedAt = s.now()

	if err := s.store.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Delete removes the profile. Returns ErrNotFound if it did not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	existed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNotFound
	}
	s.logger.Info().Str("user_id", id).Msg("User profile deleted")
	return nil
}
