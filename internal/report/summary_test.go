package report

import (
	"testing"

	"PriceSentinel/internal/model"
)

func TestSummarize(t *testing.T) {
	store := model.NewStore("2025-03-01")
	store.Models["b-model"] = &model.ModelHistory{Name: "B", Trend: &model.TrendSummary{Direction: model.DirectionDown, Change: 12.5}}
	store.Models["a-model"] = &model.ModelHistory{Name: "A", Trend: &model.TrendSummary{Direction: model.DirectionUp, Change: 6}}
	store.Models["stable"] = &model.ModelHistory{Name: "S", Trend: &model.TrendSummary{Direction: model.DirectionStable}}
	store.Models["no-trend"] = &model.ModelHistory{Name: "N"}

	changes := Summarize(store)
	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2", len(changes))
	}
	if changes[0].ModelID != "a-model" || changes[1].ModelID != "b-model" {
		t.Errorf("order = %s, %s; want a-model, b-model", changes[0].ModelID, changes[1].ModelID)
	}
	if changes[1].Name != "B" || changes[1].Trend.Change != 12.5 {
		t.Errorf("changes[1] = %+v", changes[1])
	}

	up, down := Counts(changes)
	if up != 1 || down != 1 {
		t.Errorf("Counts = %d up, %d down; want 1, 1", up, down)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != nil {
		t.Errorf("Summarize(nil) = %v, want nil", got)
	}
	if got := Summarize(model.NewStore("2025-03-01")); len(got) != 0 {
		t.Errorf("Summarize(empty) = %v, want empty", got)
	}
}
