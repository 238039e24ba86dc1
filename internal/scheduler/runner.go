package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/history"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/notifier"
	"PriceSentinel/internal/recorder"
	"PriceSentinel/internal/report"
)

// ErrMalformedPricing is returned in strict mode for a model without usable prices.
var ErrMalformedPricing = errors.New("model has no valid route prices")

// Runner performs price history update runs. Runs through one Runner never overlap.
type Runner struct {
	Collector   *collector.Collector
	Recorder    recorder.Recorder
	Notifier    notifier.Notifier
	HistoryPath string
	Strict      bool
	Now         func() time.Time

	mu sync.Mutex
}

// NewRunner creates a Runner. A nil recorder or notifier is replaced by its no-op variant.
func NewRunner(col *collector.Collector, rec recorder.Recorder, n notifier.Notifier, historyPath string, strict bool) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &Runner{
		Collector:   col,
		Recorder:    rec,
		Notifier:    n,
		HistoryPath: historyPath,
		Strict:      strict,
		Now:         time.Now,
	}
}

func (r *Runner) today() string {
	return r.Now().UTC().Format(model.DateLayout)
}

// RunOnce loads the store, records today's observation for every model in the
// pricing document, persists the store and reports non-stable trends.
// Nothing is written when an error is returned.
func (r *Runner) RunOnce(ctx context.Context) (*model.RunResult, []report.Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.Now()
	today := r.today()
	runID := uuid.New()
	res := &model.RunResult{RunID: runID.String(), Date: today}
	log.Printf("[INFO] update run %s for %s", res.RunID, today)

	changes, pending, err := r.update(ctx, res)
	if err != nil {
		log.Printf("[ERROR] update run %s: %v", res.RunID, err)
		if nerr := r.Notifier.Send(ctx, fmt.Sprintf("❌ Price history update failed: %v", err)); nerr != nil {
			log.Printf("[ERROR] send failure notice: %v", nerr)
		}
		r.recordRun(runID, started, res, nil, err)
		return nil, nil, err
	}

	for i := range pending {
		pending[i].RunID = runID
		if err := r.Recorder.RecordObservation(&pending[i]); err != nil {
			log.Printf("[ERROR] record observation %s: %v", pending[i].ModelID, err)
		}
	}
	r.recordRun(runID, started, res, changes, nil)

	log.Printf("[INFO] history updated: %d new, %d updated, %d unchanged, %d skipped, %d models tracked",
		res.Appended, res.Replaced, res.Unchanged, res.Skipped, res.Tracked)
	if len(changes) == 0 {
		log.Println("[INFO] no significant price changes detected")
	}
	for _, c := range changes {
		log.Printf("[INFO] trend %s: %s %.1f%%", c.Name, c.Trend.Direction, c.Trend.Change)
	}

	if err := r.Notifier.Send(ctx, notifier.FormatRunReport(res, changes)); err != nil {
		log.Printf("[ERROR] send run report: %v", err)
	}
	return res, changes, nil
}

func (r *Runner) update(ctx context.Context, res *model.RunResult) ([]report.Change, []recorder.ObservationEvent, error) {
	doc, priceChanges, err := r.Collector.Collect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("collect prices: %w", err)
	}
	if len(priceChanges) > 0 {
		log.Printf("[INFO] %s", notifier.FormatPriceChanges(priceChanges))
	}

	store, err := history.Load(r.HistoryPath, res.Date, r.Strict)
	if err != nil {
		return nil, nil, fmt.Errorf("load store: %w", err)
	}
	tracker := history.NewTracker(store)

	var pending []recorder.ObservationEvent
	for _, m := range doc.Models {
		res.ModelsSeen++
		obs, ok := history.ExtractObservation(m.Pricing, res.Date)
		if m.ID == "" || !ok {
			if r.Strict {
				return nil, nil, fmt.Errorf("%w: %q", ErrMalformedPricing, m.ID)
			}
			log.Printf("[WARN] skipping model %q: no valid route prices", m.ID)
			res.Skipped++
			continue
		}

		outcome := tracker.RecordObservation(history.ModelInfo{ID: m.ID, Name: m.Name, Provider: m.Provider}, obs)
		switch outcome {
		case history.OutcomeAppended:
			res.Appended++
		case history.OutcomeReplaced:
			res.Replaced++
		case history.OutcomeUnchanged:
			res.Unchanged++
			continue
		case history.OutcomeStale:
			log.Printf("[WARN] model %s: observation %s older than stored history, ignored", m.ID, obs.Date)
			res.Stale++
			continue
		}
		pending = append(pending, recorder.ObservationEvent{
			ModelID:     m.ID,
			Outcome:     string(outcome),
			Observation: obs,
			Trend:       store.Trend(m.ID),
		})
	}
	res.Tracked = len(store.Models)

	if err := history.Persist(r.HistoryPath, store, res.Date); err != nil {
		return nil, nil, fmt.Errorf("persist store: %w", err)
	}
	return report.Summarize(store), pending, nil
}

func (r *Runner) recordRun(runID uuid.UUID, started time.Time, res *model.RunResult, changes []report.Change, runErr error) {
	up, down := report.Counts(changes)
	evt := &recorder.RunEvent{
		RunID:      runID,
		StartedAt:  started,
		Date:       res.Date,
		ModelsSeen: res.ModelsSeen,
		Appended:   res.Appended,
		Replaced:   res.Replaced,
		Unchanged:  res.Unchanged,
		Stale:      res.Stale,
		Skipped:    res.Skipped,
		TrendsUp:   up,
		TrendsDown: down,
	}
	if runErr != nil {
		evt.Error = runErr.Error()
	}
	if err := r.Recorder.RecordRun(evt); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// Snapshot loads the persisted store for reading. It waits for a running update to finish.
func (r *Runner) Snapshot() (*model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return history.Load(r.HistoryPath, r.today(), r.Strict)
}
