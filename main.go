package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	evaluate := flag.Bool("evaluate", false, "run the evaluation corpus against a running server and exit")
	flag.Parse()

	cfg := LoadConfig()

	if *evaluate {
		metrics, err := RunEvaluation(context.Background(), cfg, cfg.EvalServerURL)
		if err != nil {
			log.Fatalf("Evaluation failed: %v", err)
		}
		fmt.Println(FormatEvalSummary(metrics))
		if metrics.FinalScore < 50 {
			os.Exit(1)
		}
		return
	}

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	os.MkdirAll(cfg.AnalysisLogDir, 0755)

	var backend Backend
	switch cfg.BackendProvider {
	case "anthropic":
		backend = NewAnthropicBackend(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		backend = NewOllamaBackend(cfg.OllamaHost)
	}

	state := NewServiceState()
	notifier := NewNotifier(cfg)
	monitor := NewHealthMonitor(backend, state)
	monitor.SetNotifier(notifier, cfg.BackendProvider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Run(ctx)

	persist := newPersister(cfg.AnalysisLogDir, db, state)
	analyzer := NewAnalyzer(cfg, backend, monitor, state, persist)

	StartEvalScheduler(ctx, cfg, notifier)

	log.Println("Starting shoulderd analysis server...")
	srv := NewServer(cfg, analyzer, monitor, state, db)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
