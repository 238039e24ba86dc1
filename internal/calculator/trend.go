package calculator

import (
	"github.com/shopspring/decimal"

	"PriceSentinel/internal/model"
)

// TrendThreshold is the percent change a trend must exceed to count as up or down.
var TrendThreshold = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// ComputeTrend derives the price trend of one route from the last window entries of history.
// The window counts entries, not days. Only the input price is compared: the
// earliest and latest entries in the window that carry the route are taken as
// the endpoints. Fewer than two such entries yields a stable trend.
func ComputeTrend(history []model.PriceObservation, route string, window int) model.TrendSummary {
	if len(history) < 2 {
		return model.StableTrend()
	}

	start := 0
	if window > 0 && len(history) > window {
		start = len(history) - window
	}
	recent := history[start:]

	first, last := -1, -1
	for i := range recent {
		if recent[i].HasRoute(route) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return model.StableTrend()
	}

	from := decimal.NewFromFloat(recent[first].Routes[route].InputPer1M)
	to := decimal.NewFromFloat(recent[last].Routes[route].InputPer1M)
	if from.IsZero() {
		return model.StableTrend()
	}

	pct := PercentChange(from, to)
	switch {
	case pct.GreaterThan(TrendThreshold):
		return model.TrendSummary{Direction: model.DirectionUp, Change: roundChange(pct)}
	case pct.LessThan(TrendThreshold.Neg()):
		return model.TrendSummary{Direction: model.DirectionDown, Change: roundChange(pct)}
	default:
		return model.StableTrend()
	}
}

// PercentChange returns (to - from) / from * 100. from must be non-zero.
func PercentChange(from, to decimal.Decimal) decimal.Decimal {
	return to.Sub(from).Div(from).Mul(hundred)
}

func roundChange(pct decimal.Decimal) float64 {
	return pct.Abs().Round(1).InexactFloat64()
}
