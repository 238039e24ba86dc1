package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/config"
	"PriceSentinel/internal/notifier"
	"PriceSentinel/internal/recorder"
	"PriceSentinel/internal/scheduler"
)

func main() {
	daemon := flag.Bool("daemon", false, "run the daily update on a cron schedule and answer Telegram commands")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PriceSentinel tracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init collector; the OpenRouter overlay is optional
	var fetcher collector.Fetcher
	if cfg.Sources.OpenRouter.Enabled {
		f := collector.NewOpenRouterFetcher(cfg.Sources.OpenRouter.BaseURL, cfg.Proxy, cfg.Sources.OpenRouter.Mappings)
		log.Printf("[INFO] price source: %s (%d mappings)", f.Name(), len(f.Mappings))
		fetcher = f
	}
	col := collector.NewCollector(cfg.Paths.Prices, fetcher)

	// Init notifier
	var n notifier.Notifier = notifier.NoopNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runner := scheduler.NewRunner(col, rec, n, cfg.Paths.History, cfg.History.Strict)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*daemon {
		_, _, err := runner.RunOnce(ctx)
		if err != nil {
			log.Printf("[ERROR] price update failed: %v", err)
			rec.Close()
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, runner)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing price update now")
		go sched.RunNow()
	}

	log.Println("[INFO] PriceSentinel tracker is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PriceSentinel tracker stopped")
}
