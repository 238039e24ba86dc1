package history

import (
	"PriceSentinel/internal/calculator"
	"PriceSentinel/internal/model"
)

// TrendWindow is the number of most recent entries the stored trend covers.
const TrendWindow = 30

// TrendRoute is the route whose input price drives the stored trend.
const TrendRoute = model.RouteDirect

// Outcome describes what RecordObservation did with an observation.
type Outcome string

const (
	OutcomeAppended  Outcome = "APPENDED"
	OutcomeReplaced  Outcome = "REPLACED"
	OutcomeUnchanged Outcome = "UNCHANGED"
	OutcomeStale     Outcome = "STALE"
)

// ModelInfo identifies the model an observation belongs to.
type ModelInfo struct {
	ID       string
	Name     string
	Provider string
}

// Tracker applies observations to an in-memory store.
type Tracker struct {
	Store *model.Store
}

// NewTracker creates a Tracker over the given store.
func NewTracker(store *model.Store) *Tracker {
	return &Tracker{Store: store}
}

// RecordObservation upserts one observation into the model's history.
// An observation dated like the latest entry replaces it when prices differ
// and is ignored otherwise; a later date appends; an earlier date is stale and
// ignored. The model's trend is recomputed after every append or replace.
func (t *Tracker) RecordObservation(info ModelInfo, obs model.PriceObservation) Outcome {
	h, ok := t.Store.Models[info.ID]
	if !ok || h == nil {
		h = &model.ModelHistory{Name: info.Name, Provider: info.Provider}
		t.Store.Models[info.ID] = h
	}

	var outcome Outcome
	last := h.Latest()
	switch {
	case last == nil || obs.Date > last.Date:
		h.History = append(h.History, obs)
		outcome = OutcomeAppended
	case obs.Date == last.Date && !last.SameRoutes(obs):
		h.History[len(h.History)-1] = obs
		outcome = OutcomeReplaced
	case obs.Date == last.Date:
		return OutcomeUnchanged
	default:
		return OutcomeStale
	}

	trend := calculator.ComputeTrend(h.History, TrendRoute, TrendWindow)
	h.Trend = &trend
	return outcome
}
