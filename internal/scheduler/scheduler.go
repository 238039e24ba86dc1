package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"PriceSentinel/internal/notifier"
	"PriceSentinel/internal/report"

	"github.com/robfig/cron/v3"
)

// historyLines is how many entries /history shows.
const historyLines = 10

// Scheduler triggers update runs on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
	}
}

// Register registers the daily update task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the update task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily price update")
	if _, _, err := s.Runner.RunOnce(s.Ctx); err != nil {
		log.Printf("[ERROR] daily price update: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return usage()
	}
	switch fields[0] {
	case "/update":
		// RunOnce sends its own report.
		if _, _, err := s.Runner.RunOnce(ctx); err != nil {
			log.Printf("[ERROR] manual price update: %v", err)
		}
		return ""
	case "/trends":
		store, err := s.Runner.Snapshot()
		if err != nil {
			return fmt.Sprintf("❌ load price history: %v", err)
		}
		return notifier.FormatTrends(report.Summarize(store))
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history <modelId>"
		}
		store, err := s.Runner.Snapshot()
		if err != nil {
			return fmt.Sprintf("❌ load price history: %v", err)
		}
		return notifier.FormatModelHistory(fields[1], store.Models[fields[1]], historyLines)
	default:
		return usage()
	}
}

func usage() string {
	return "Available commands:\n• /update\n• /trends\n• /history <modelId>"
}
