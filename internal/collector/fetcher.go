package collector

import (
	"context"

	"PriceSentinel/internal/model"
)

// Fetcher defines the interface for fetching current route prices from an external source.
// Results are keyed by our model id.
type Fetcher interface {
	FetchPrices(ctx context.Context) (map[string]model.RoutePricing, error)
	Name() string
}

// MockFetcher returns fixed prices for development and testing.
type MockFetcher struct {
	Prices map[string]model.RoutePricing
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(_ context.Context) (map[string]model.RoutePricing, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices, nil
}
