package model

// RunResult tallies what one update run did to the store.
type RunResult struct {
	RunID      string
	Date       string
	ModelsSeen int
	Appended   int
	Replaced   int
	Unchanged  int
	Stale      int
	Skipped    int
	Tracked    int // models in the store after the run
}
