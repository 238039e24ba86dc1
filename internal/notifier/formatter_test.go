package notifier

import (
	"strings"
	"testing"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/report"
)

func TestFormatRunReport(t *testing.T) {
	res := &model.RunResult{Date: "2025-03-02", Appended: 4, Replaced: 1, Skipped: 2, Tracked: 9}
	changes := []report.Change{
		{ModelID: "gpt-4o", Name: "GPT-4o", Trend: model.TrendSummary{Direction: model.DirectionDown, Change: 20}},
		{ModelID: "o1", Name: "o1 <preview>", Trend: model.TrendSummary{Direction: model.DirectionUp, Change: 6.5}},
	}
	msg := FormatRunReport(res, changes)
	for _, want := range []string{
		"2025-03-02", "4 new entries", "1 updated entries", "2 models skipped", "9 models tracked",
		"📉 GPT-4o: down 20.0%", "📈 o1 &lt;preview&gt;: up 6.5%",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatTrends_NoChanges(t *testing.T) {
	if msg := FormatTrends(nil); !strings.Contains(msg, "No significant price changes") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestFormatPriceChanges(t *testing.T) {
	changes := []collector.PriceChange{
		{Name: "GPT-4o", Old: &model.RoutePricing{InputPer1M: model.Float(2.5), OutputPer1M: model.Float(10)},
			New: model.RoutePricing{InputPer1M: model.Float(2), OutputPer1M: model.Float(8)}},
		{Name: "DeepSeek V3", New: model.RoutePricing{InputPer1M: model.Float(0.27), OutputPer1M: model.Float(1.1)}},
	}
	msg := FormatPriceChanges(changes)
	if !strings.Contains(msg, "GPT-4o: $2.5/$10 → $2/$8") {
		t.Errorf("missing GPT-4o line:\n%s", msg)
	}
	if !strings.Contains(msg, "DeepSeek V3: new → $0.27/$1.1") {
		t.Errorf("missing DeepSeek line:\n%s", msg)
	}
}

func TestFormatModelHistory(t *testing.T) {
	h := &model.ModelHistory{
		Name: "GPT-4o", Provider: "OpenAI",
		History: []model.PriceObservation{
			{Date: "2025-03-01", Routes: map[string]model.RoutePrice{model.RouteDirect: {InputPer1M: 5, OutputPer1M: 15, Currency: "USD"}}},
			{Date: "2025-03-02", Routes: map[string]model.RoutePrice{model.RouteOpenRouter: {InputPer1M: 4, OutputPer1M: 12, Currency: "USD"}}},
			{Date: "2025-03-03", Routes: map[string]model.RoutePrice{model.RouteDirect: {InputPer1M: 2.5, OutputPer1M: 10, Currency: "USD"}}},
		},
		Trend: &model.TrendSummary{Direction: model.DirectionDown, Change: 50},
	}
	msg := FormatModelHistory("gpt-4o", h, 2)
	if strings.Contains(msg, "2025-03-01") {
		t.Error("only the last 2 entries should be listed")
	}
	for _, want := range []string{"2025-03-02  (no direct price)", "2025-03-03  $2.5 / $10 USD", "Trend: down 50.0%"} {
		if !strings.Contains(msg, want) {
			t.Errorf("history missing %q:\n%s", want, msg)
		}
	}
	if msg := FormatModelHistory("x", nil, 5); !strings.Contains(msg, "No price history for x") {
		t.Errorf("unexpected message: %s", msg)
	}
}
