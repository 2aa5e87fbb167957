package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// RunEvaluation executes one full evaluation pass against the given server
// URL, saves the report and returns the metrics.
func RunEvaluation(ctx context.Context, cfg Config, serverURL string) (AggregateMetrics, error) {
	scenarios := AllScenarios(cfg.EvalSyntheticN)
	evaluator := NewEvaluator(serverURL, cfg.EvalConcurrency)

	metrics, err := evaluator.RunScenarios(ctx, scenarios)
	if err != nil {
		return AggregateMetrics{}, err
	}

	path, saveErr := SaveReport(metrics, cfg.EvalReportDir)
	if saveErr != nil {
		log.Printf("evaluation report save failed: %v", saveErr)
	} else {
		log.Printf("evaluation report saved path=%s", path)
	}
	return metrics, nil
}

// StartEvalScheduler starts a cron-based scheduler that periodically replays
// the evaluation corpus against the running server and posts the summary to
// the notifier. The schedule is a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
// Examples: "0 3 * * *" (daily 3am), "0 3 * * 1" (Mondays 3am).
func StartEvalScheduler(ctx context.Context, cfg Config, notifier *Notifier) {
	schedule := strings.TrimSpace(cfg.EvalSchedule)
	if schedule == "" {
		log.Println("scheduled evaluation disabled (eval_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("invalid eval_schedule '%s': %v, scheduled evaluation disabled", schedule, err)
		return
	}
	log.Printf("evaluation scheduled cron=%q url=%s", schedule, cfg.EvalServerURL)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("next evaluation at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			metrics, runErr := RunEvaluation(ctx, cfg, cfg.EvalServerURL)
			if runErr != nil {
				log.Printf("scheduled evaluation failed: %v", runErr)
				continue
			}
			summary := FormatEvalSummary(metrics)
			log.Printf("scheduled evaluation complete: %s", summary)
			notifier.PostEvalSummary(summary)
		}
	}()
}
