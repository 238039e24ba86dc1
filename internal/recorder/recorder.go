package recorder

import (
	"time"

	"github.com/google/uuid"

	"PriceSentinel/internal/model"
)

// RunEvent summarizes one update run.
type RunEvent struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	Date       string
	ModelsSeen int
	Appended   int
	Replaced   int
	Unchanged  int
	Stale      int
	Skipped    int
	TrendsUp   int
	TrendsDown int
	Error      string // empty on success
}

// ObservationEvent records an observation that changed a model's history.
type ObservationEvent struct {
	RunID       uuid.UUID
	ModelID     string
	Outcome     string // "APPENDED" or "REPLACED"
	Observation model.PriceObservation
	Trend       *model.TrendSummary
}

// Recorder persists an audit log of update runs for later analysis.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecordObservation(evt *ObservationEvent) error
	Close() error
}
