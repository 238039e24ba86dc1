package notifier

import (
	"fmt"
	"html"
	"strings"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/report"
)

// FormatRunReport formats the result of an update run and its trend changes.
func FormatRunReport(res *model.RunResult, changes []report.Change) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Price history update</b> | %s\n\n", res.Date))
	b.WriteString(fmt.Sprintf("• %d new entries\n", res.Appended))
	b.WriteString(fmt.Sprintf("• %d updated entries\n", res.Replaced))
	if res.Skipped > 0 {
		b.WriteString(fmt.Sprintf("• %d models skipped (no valid prices)\n", res.Skipped))
	}
	b.WriteString(fmt.Sprintf("• %d models tracked\n\n", res.Tracked))

	b.WriteString(FormatTrends(changes))
	return b.String()
}

// FormatTrends lists non-stable trends, or says there are none.
func FormatTrends(changes []report.Change) string {
	if len(changes) == 0 {
		return "No significant price changes detected (30-entry trend)\n"
	}
	var b strings.Builder
	b.WriteString("<b>Price changes (30-entry trend):</b>\n")
	for _, c := range changes {
		icon := "📉"
		if c.Trend.Direction == model.DirectionUp {
			icon = "📈"
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s %.1f%%\n", icon, html.EscapeString(c.Name), c.Trend.Direction, c.Trend.Change))
	}
	return b.String()
}

// FormatPriceChanges lists aggregator prices that moved since the pricing document was written.
func FormatPriceChanges(changes []collector.PriceChange) string {
	if len(changes) == 0 {
		return "No aggregator price changes detected.\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Aggregator price updates (%d models):\n", len(changes)))
	for _, c := range changes {
		old := "new"
		if c.Old.Complete() {
			old = fmt.Sprintf("$%g/$%g", *c.Old.InputPer1M, *c.Old.OutputPer1M)
		}
		b.WriteString(fmt.Sprintf("  • %s: %s → $%g/$%g\n", c.Name, old, *c.New.InputPer1M, *c.New.OutputPer1M))
	}
	return b.String()
}

// FormatModelHistory renders the last n observations of one model.
func FormatModelHistory(modelID string, h *model.ModelHistory, n int) string {
	if h == nil {
		return fmt.Sprintf("No price history for %s", html.EscapeString(modelID))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>%s</b> (%s)\n\n", html.EscapeString(h.Name), html.EscapeString(h.Provider)))

	start := len(h.History) - n
	if start < 0 {
		start = 0
	}
	for _, o := range h.History[start:] {
		if rp, ok := o.Routes[model.RouteDirect]; ok {
			b.WriteString(fmt.Sprintf("%s  $%g / $%g %s\n", o.Date, rp.InputPer1M, rp.OutputPer1M, rp.Currency))
		} else {
			b.WriteString(fmt.Sprintf("%s  (no direct price)\n", o.Date))
		}
	}
	if h.Trend != nil {
		b.WriteString(fmt.Sprintf("\nTrend: %s %.1f%%\n", h.Trend.Direction, h.Trend.Change))
	}
	return b.String()
}
