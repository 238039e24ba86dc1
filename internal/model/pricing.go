package model

// RoutePricing is one route's price as it appears in the pricing document.
// Prices are pointers so that absent values can be told apart from zero.
type RoutePricing struct {
	Provider    string   `json:"provider,omitempty"`
	InputPer1M  *float64 `json:"inputPer1M,omitempty"`
	OutputPer1M *float64 `json:"outputPer1M,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Complete reports whether both input and output prices are present.
func (r *RoutePricing) Complete() bool {
	return r != nil && r.InputPer1M != nil && r.OutputPer1M != nil
}

// Pricing holds a model's current prices, either flat (the direct price
// inline) or routed (one object per distribution route).
type Pricing struct {
	InputPer1M  *float64 `json:"inputPer1M,omitempty"`
	OutputPer1M *float64 `json:"outputPer1M,omitempty"`
	Currency    string   `json:"currency,omitempty"`

	Direct         *RoutePricing `json:"direct,omitempty"`
	OpenRouter     *RoutePricing `json:"openrouter,omitempty"`
	SyntheticRoute *RoutePricing `json:"syntheticRoute,omitempty"`
}

// ModelEntry is one model in the pricing document.
type ModelEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	Pricing  *Pricing `json:"pricing,omitempty"`
}

// PricingDocument is the current pricing dataset that feeds the tracker.
type PricingDocument struct {
	LastUpdated string       `json:"lastUpdated,omitempty"`
	Models      []ModelEntry `json:"models"`
}

// Float returns a pointer to v, for building pricing values.
func Float(v float64) *float64 { return &v }
