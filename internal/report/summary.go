package report

import (
	"sort"

	"PriceSentinel/internal/model"
)

// Change is a model whose trend moved beyond the noise band.
type Change struct {
	ModelID string             `json:"modelId"`
	Name    string             `json:"name"`
	Trend   model.TrendSummary `json:"trend"`
}

// Summarize lists every model with a non-stable trend, ordered by model id.
func Summarize(store *model.Store) []Change {
	if store == nil {
		return nil
	}
	changes := make([]Change, 0)
	for id, h := range store.Models {
		if h == nil || h.Trend == nil || h.Trend.IsStable() {
			continue
		}
		changes = append(changes, Change{ModelID: id, Name: h.Name, Trend: *h.Trend})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].ModelID < changes[j].ModelID })
	return changes
}

// Counts returns how many changes point up and down.
func Counts(changes []Change) (up, down int) {
	for _, c := range changes {
		switch c.Trend.Direction {
		case model.DirectionUp:
			up++
		case model.DirectionDown:
			down++
		}
	}
	return up, down
}
