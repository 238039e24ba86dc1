package model

// StoreVersion is the schema version written into fresh stores.
const StoreVersion = 1

// StoreMetadata describes the persisted price store.
type StoreMetadata struct {
	Version         int    `json:"version"`
	Description     string `json:"description,omitempty"`
	FirstRecord     string `json:"firstRecord"`
	LastUpdated     string `json:"lastUpdated,omitempty"`
	UpdateFrequency string `json:"updateFrequency,omitempty"`
}

// Store is the full price history document, keyed by model id.
type Store struct {
	Metadata StoreMetadata            `json:"metadata"`
	Models   map[string]*ModelHistory `json:"models"`
}

// NewStore returns an empty store whose first record date is today.
func NewStore(today string) *Store {
	return &Store{
		Metadata: StoreMetadata{
			Version:         StoreVersion,
			Description:     "Historical price data for AI models",
			FirstRecord:     today,
			UpdateFrequency: "daily",
		},
		Models: make(map[string]*ModelHistory),
	}
}

// Trend returns the stored trend of a model. A nil result means no trend is available.
func (s *Store) Trend(modelID string) *TrendSummary {
	if s == nil {
		return nil
	}
	h, ok := s.Models[modelID]
	if !ok || h == nil {
		return nil
	}
	return h.Trend
}
