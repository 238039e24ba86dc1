package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"PriceSentinel/internal/calculator"
	"PriceSentinel/internal/model"
)

// ErrCorruptStore is returned in strict mode when the persisted store cannot be used.
var ErrCorruptStore = errors.New("price store is corrupt")

// Load reads the price store from a JSON file. A missing file yields a fresh
// store. An unreadable or malformed file yields a fresh store in lenient mode
// and ErrCorruptStore in strict mode.
func Load(filePath, today string, strict bool) (*model.Store, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] no price store at %s, starting fresh", filePath)
			return model.NewStore(today), nil
		}
		return recoverStore(filePath, today, strict, fmt.Errorf("read store: %w", err))
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return recoverStore(filePath, today, strict, fmt.Errorf("decode store: %w", err))
	}
	if store.Models == nil {
		store.Models = make(map[string]*model.ModelHistory)
	}
	for id, h := range store.Models {
		if h == nil {
			delete(store.Models, id)
			continue
		}
		if err := checkOrder(h.History); err != nil {
			if strict {
				return nil, fmt.Errorf("%w: model %s: %v", ErrCorruptStore, id, err)
			}
			h.History = repairOrder(h.History)
			trend := calculator.ComputeTrend(h.History, TrendRoute, TrendWindow)
			h.Trend = &trend
			log.Printf("[WARN] model %s history: %v; reordered to %d entries", id, err, len(h.History))
		}
	}
	if store.Metadata.Version == 0 {
		store.Metadata.Version = model.StoreVersion
	}
	if store.Metadata.FirstRecord == "" {
		store.Metadata.FirstRecord = today
	}
	return &store, nil
}

func recoverStore(filePath, today string, strict bool, cause error) (*model.Store, error) {
	if strict {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, filePath, cause)
	}
	log.Printf("[WARN] price store %s unusable, starting fresh: %v", filePath, cause)
	return model.NewStore(today), nil
}

// checkOrder verifies that dates ascend strictly, one entry per date.
func checkOrder(entries []model.PriceObservation) error {
	for i := 1; i < len(entries); i++ {
		if entries[i].Date <= entries[i-1].Date {
			return fmt.Errorf("entry %d (%s) not after %s", i, entries[i].Date, entries[i-1].Date)
		}
	}
	return nil
}

// repairOrder sorts entries by date and keeps the last stored entry of each date.
func repairOrder(entries []model.PriceObservation) []model.PriceObservation {
	sorted := make([]model.PriceObservation, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Date == e.Date {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	return out
}

// Persist stamps the store with today's date and rewrites the file.
// The document goes to a temporary file first and is renamed into place, so
// a failed write leaves the previous store intact.
func Persist(filePath string, store *model.Store, today string) error {
	store.Metadata.LastUpdated = today
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp store: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
