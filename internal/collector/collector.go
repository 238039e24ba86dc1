package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"PriceSentinel/internal/model"
)

// PriceChange records an aggregator price that differs from the pricing document.
// Old is nil when the model had no price on that route before.
type PriceChange struct {
	ModelID string
	Name    string
	Old     *model.RoutePricing
	New     model.RoutePricing
}

// Collector loads the pricing document and overlays fetched aggregator prices.
type Collector struct {
	PricesPath string
	Fetcher    Fetcher // optional
}

// NewCollector creates a new Collector. fetcher may be nil to use the document as is.
func NewCollector(pricesPath string, fetcher Fetcher) *Collector {
	return &Collector{PricesPath: pricesPath, Fetcher: fetcher}
}

// LoadPricingDocument reads the pricing document from a JSON file.
func LoadPricingDocument(path string) (*model.PricingDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing document: %w", err)
	}
	var doc model.PricingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode pricing document: %w", err)
	}
	return &doc, nil
}

// Collect returns the current pricing document with fetched prices applied in memory.
// A failing fetcher is logged and the document prices are used unchanged.
func (c *Collector) Collect(ctx context.Context) (*model.PricingDocument, []PriceChange, error) {
	doc, err := LoadPricingDocument(c.PricesPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] loaded %d models from %s", len(doc.Models), c.PricesPath)

	if c.Fetcher == nil {
		return doc, nil, nil
	}
	fetched, err := c.Fetcher.FetchPrices(ctx)
	if err != nil {
		log.Printf("[WARN] %s fetch failed, using document prices: %v", c.Fetcher.Name(), err)
		return doc, nil, nil
	}
	log.Printf("[INFO] fetched %s prices for %d models", c.Fetcher.Name(), len(fetched))
	return doc, ApplyOpenRouter(doc, fetched), nil
}

// ApplyOpenRouter writes fetched prices into each model's openrouter route and
// returns the models whose input or output price changed. Fetched routes
// missing an input or output price are ignored.
func ApplyOpenRouter(doc *model.PricingDocument, fetched map[string]model.RoutePricing) []PriceChange {
	var changes []PriceChange
	for i := range doc.Models {
		m := &doc.Models[i]
		rp, ok := fetched[m.ID]
		if !ok || !rp.Complete() {
			continue
		}
		if m.Pricing == nil {
			m.Pricing = &model.Pricing{}
		}
		old := m.Pricing.OpenRouter
		if !samePrice(old, &rp) {
			changes = append(changes, PriceChange{ModelID: m.ID, Name: m.Name, Old: old, New: rp})
		}
		updated := rp
		m.Pricing.OpenRouter = &updated
	}
	return changes
}

func samePrice(a, b *model.RoutePricing) bool {
	if !a.Complete() || !b.Complete() {
		return false
	}
	return *a.InputPer1M == *b.InputPer1M && *a.OutputPer1M == *b.OutputPer1M
}
