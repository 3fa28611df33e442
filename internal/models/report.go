package models

import "time"

// Report is the persisted envelope for one completed analysis run. Created
// exactly once by the orchestrator, never mutated, deleted only by explicit
// user action. Grade is a denormalized copy of the final (post-grounding)
// grade for cheap list rendering.
type Report struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Ticker     string           `json:"ticker"`
	Strategy   string           `json:"strategy"`
	Grade      Grade            `json:"grade"`
	Bias       string           `json:"bias"`
	Data       FinalAnalysis    `json:"data"`
	Validation ValidationResult `json:"validation"`
}
