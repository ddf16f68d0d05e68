// Package jobs runs scheduled background work on asynq.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeExpirySweep = "booking:expiry_sweep"

// ExpirySweepPayload optionally pins the sweep to a date (YYYY-MM-DD).
// An empty Date means "today" in the scheduler's zone.
type ExpirySweepPayload struct {
	Date string `json:"date,omitempty"`
}

// NewExpirySweepTask builds a sweep task for date (may be empty).
func NewExpirySweepTask(date string) (*asynq.Task, error) {
	b, err := json.Marshal(ExpirySweepPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExpirySweep, b, asynq.MaxRetry(3)), nil
}
