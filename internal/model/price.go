package model

// Route names under which observations are recorded.
const (
	RouteDirect     = "direct"
	RouteOpenRouter = "openrouter"
	RouteSynthetic  = "synthetic"
)

// DefaultCurrency is applied when a pricing route omits its currency.
const DefaultCurrency = "USD"

// DateLayout is the calendar-day format used for observation dates.
// Dates in this layout sort lexicographically.
const DateLayout = "2006-01-02"

// RoutePrice is the per-1M-token price of one distribution route.
type RoutePrice struct {
	InputPer1M  float64 `json:"inputPer1M"`
	OutputPer1M float64 `json:"outputPer1M"`
	Currency    string  `json:"currency"`
}

// PriceObservation is one dated snapshot of a model's prices across routes.
type PriceObservation struct {
	Date   string                `json:"date"`
	Routes map[string]RoutePrice `json:"routes"`
}

// HasRoute reports whether the observation carries the named route.
func (o PriceObservation) HasRoute(route string) bool {
	_, ok := o.Routes[route]
	return ok
}

// SameRoutes reports whether both observations carry exactly the same route values.
func (o PriceObservation) SameRoutes(other PriceObservation) bool {
	if len(o.Routes) != len(other.Routes) {
		return false
	}
	for name, rp := range o.Routes {
		orp, ok := other.Routes[name]
		if !ok || rp != orp {
			return false
		}
	}
	return true
}

// ModelHistory is the chronological price log of one model.
type ModelHistory struct {
	Name     string             `json:"name"`
	Provider string             `json:"provider"`
	History  []PriceObservation `json:"history"`
	Trend    *TrendSummary      `json:"trend,omitempty"`
}

// Latest returns the most recent observation, or nil if none exist.
func (h *ModelHistory) Latest() *PriceObservation {
	if len(h.History) == 0 {
		return nil
	}
	return &h.History[len(h.History)-1]
}
