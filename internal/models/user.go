package models

import "time"

// UserProfile is a trader profile. Plain CRUD; authentication is out of
// scope for this service, but passwords are still stored hashed.
type UserProfile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	DisplayName     string    `json:"display_name,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"` // Beginner|Intermediate|Advanced|Professional
	TradingGoal     string    `json:"trading_goal,omitempty"`     // Income|Growth|Preservation|Speculation
	RiskTolerance   string    `json:"risk_tolerance,omitempty"`   // Conservative|Moderate|Aggressive|Very Aggressive
	Onboarded       bool      `json:"onboarded"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
