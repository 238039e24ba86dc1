package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the run audit log to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS update_runs (
			run_id      TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			run_date    TEXT NOT NULL,
			models_seen INTEGER,
			appended    INTEGER,
			replaced    INTEGER,
			unchanged   INTEGER,
			stale       INTEGER,
			skipped     INTEGER,
			trends_up   INTEGER,
			trends_down INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_date ON update_runs(run_date)`,

		`CREATE TABLE IF NOT EXISTS price_observations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL,
			model_id        TEXT NOT NULL,
			obs_date        TEXT NOT NULL,
			route           TEXT NOT NULL,
			input_per_1m    REAL,
			output_per_1m   REAL,
			currency        TEXT,
			outcome         TEXT,
			trend_direction TEXT,
			trend_change    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_model_date ON price_observations(model_id, obs_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO update_runs
		(run_id, started_at, finished_at, run_date, models_seen,
		 appended, replaced, unchanged, stale, skipped,
		 trends_up, trends_down, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.RunID.String(), evt.StartedAt.Unix(), time.Now().Unix(), evt.Date, evt.ModelsSeen,
		evt.Appended, evt.Replaced, evt.Unchanged, evt.Stale, evt.Skipped,
		evt.TrendsUp, evt.TrendsDown, evt.Error,
	)
	return err
}

// RecordObservation writes one row per route of the observation.
func (r *SQLiteRecorder) RecordObservation(evt *ObservationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var direction string
	var change float64
	if evt.Trend != nil {
		direction = string(evt.Trend.Direction)
		change = evt.Trend.Change
	}

	routes := make([]string, 0, len(evt.Observation.Routes))
	for name := range evt.Observation.Routes {
		routes = append(routes, name)
	}
	sort.Strings(routes)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, name := range routes {
		rp := evt.Observation.Routes[name]
		if _, err := tx.Exec(`INSERT INTO price_observations
			(run_id, model_id, obs_date, route, input_per_1m, output_per_1m, currency,
			 outcome, trend_direction, trend_change)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			evt.RunID.String(), evt.ModelID, evt.Observation.Date, name,
			rp.InputPer1M, rp.OutputPer1M, rp.Currency,
			evt.Outcome, direction, change,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert observation: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
