package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Scenario kinds: focus scenarios check the binary verdict, category
// scenarios check the productivity category and score range.
const (
	scenarioFocus    = "focus"
	scenarioCategory = "category"
)

// EvalScenario is one replayable test case. Immutable once built.
type EvalScenario struct {
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	Text            string  `json:"text"`
	AppName         string  `json:"app_name"`
	WindowTitle     string  `json:"window_title,omitempty"`
	UserFocus       string  `json:"user_focus,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	ExpectedLabel   string  `json:"expected_label"`
	MinScore        float64 `json:"min_score,omitempty"`
	MaxScore        float64 `json:"max_score,omitempty"`
	Rationale       string  `json:"rationale,omitempty"`
}

// EvalOutcome is the per-scenario record.
type EvalOutcome struct {
	Scenario          string  `json:"scenario"`
	Success           bool    `json:"success"`
	Error             string  `json:"error,omitempty"`
	Correct           bool    `json:"correct"`
	Expected          string  `json:"expected"`
	Predicted         string  `json:"predicted"`
	Confidence        float64 `json:"confidence"`
	ConfidenceQuality float64 `json:"confidence_quality"`
	ScoreInRange      bool    `json:"score_in_range,omitempty"`
	LatencyMs         float64 `json:"latency_ms"`
}

// AggregateMetrics is the harness report. Accuracy and calibration are
// computed over successful outcomes only; failures show up in TotalTests
// and the Errors tally.
type AggregateMetrics struct {
	TotalTests             int            `json:"total_tests"`
	SuccessfulTests        int            `json:"successful_tests"`
	ClassificationAccuracy float64        `json:"classification_accuracy"`
	ConfidenceCalibration  float64        `json:"confidence_calibration"`
	ConfidenceCorrelation  float64        `json:"confidence_correlation"`
	MeanLatencyMs          float64        `json:"mean_latency_ms"`
	MedianLatencyMs        float64        `json:"median_latency_ms"`
	P95LatencyMs           float64        `json:"p95_latency_ms"`
	FinalScore             float64        `json:"final_score"`
	PerCategory            map[string]int `json:"per_category"`
	Errors                 map[string]int `json:"errors"`
	Outcomes               []EvalOutcome  `json:"outcomes"`
}

const evalCallTimeout = 30 * time.Second

// Evaluator replays scenarios against a running server over its public
// HTTP contract and scores the answers.
type Evaluator struct {
	serverURL   string
	concurrency int
	client      *http.Client
}

func NewEvaluator(serverURL string, concurrency int) *Evaluator {
	if concurrency < 1 {
		concurrency = 5
	}
	return &Evaluator{
		serverURL:   serverURL,
		concurrency: concurrency,
		client:      &http.Client{},
	}
}

// RunScenarios dispatches scenarios in batches of the configured
// concurrency; each batch runs in parallel and its results are collected in
// submission order before the next batch starts. The run aborts with an
// error only when the server itself is unreachable.
func (e *Evaluator) RunScenarios(ctx context.Context, scenarios []EvalScenario) (AggregateMetrics, error) {
	if err := e.checkHealth(ctx); err != nil {
		return AggregateMetrics{}, fmt.Errorf("server health check failed: %w", err)
	}

	outcomes := make([]EvalOutcome, len(scenarios))
	for start := 0; start < len(scenarios); start += e.concurrency {
		end := start + e.concurrency
		if end > len(scenarios) {
			end = len(scenarios)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				outcomes[idx] = e.evaluateOne(ctx, scenarios[idx])
			}(i)
		}
		wg.Wait()
		log.Printf("evaluation progress %d/%d", end, len(scenarios))
	}

	return aggregate(outcomes), nil
}

func (e *Evaluator) checkHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", e.serverURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, sc EvalScenario) EvalOutcome {
	start := time.Now()
	outcome := EvalOutcome{Scenario: sc.Name, Expected: sc.ExpectedLabel}

	body := AnalysisRequest{
		Text: sc.Text,
		Context: AnalysisContext{
			AppName:         sc.AppName,
			WindowTitle:     sc.WindowTitle,
			UserFocus:       sc.UserFocus,
			DurationSeconds: sc.DurationSeconds,
			Timestamp:       time.Now(),
		},
	}

	endpoint := "/analyze"
	if sc.Kind == scenarioFocus {
		endpoint = "/analyze_focus"
	}

	var raw json.RawMessage
	if err := e.post(ctx, endpoint, body, &raw); err != nil {
		outcome.Error = err.Error()
		outcome.LatencyMs = msSince(start)
		return outcome
	}
	outcome.LatencyMs = msSince(start)

	switch sc.Kind {
	case scenarioFocus:
		var verdict FocusVerdict
		if err := json.Unmarshal(raw, &verdict); err != nil {
			outcome.Error = fmt.Sprintf("bad focus response: %v", err)
			return outcome
		}
		outcome.Predicted = verdict.Classification
		outcome.Confidence = verdict.Confidence
	case scenarioCategory:
		var result AnalysisResult
		if err := json.Unmarshal(raw, &result); err != nil {
			outcome.Error = fmt.Sprintf("bad analysis response: %v", err)
			return outcome
		}
		outcome.Predicted = result.Category
		outcome.Confidence = result.Confidence
		outcome.ScoreInRange = result.ProductivityScore >= sc.MinScore && result.ProductivityScore <= sc.MaxScore
	default:
		outcome.Error = fmt.Sprintf("unknown scenario kind %q", sc.Kind)
		return outcome
	}

	outcome.Success = true
	outcome.Correct = outcome.Predicted == sc.ExpectedLabel
	// Calibration signal: a well-calibrated model is confident when right
	// and hesitant when wrong.
	if outcome.Correct {
		outcome.ConfidenceQuality = outcome.Confidence
	} else {
		outcome.ConfidenceQuality = 1 - outcome.Confidence
	}
	return outcome
}

func (e *Evaluator) post(ctx context.Context, endpoint string, body any, out *json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, evalCallTimeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", e.serverURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// aggregate folds per-scenario outcomes into the final report.
func aggregate(outcomes []EvalOutcome) AggregateMetrics {
	m := AggregateMetrics{
		TotalTests:  len(outcomes),
		PerCategory: make(map[string]int),
		Errors:      make(map[string]int),
		Outcomes:    outcomes,
	}

	var correctness, confidences, qualities, latencies []float64
	correct := 0
	for _, o := range outcomes {
		if !o.Success {
			m.Errors[o.Error]++
			continue
		}
		m.SuccessfulTests++
		m.PerCategory[o.Predicted]++
		latencies = append(latencies, o.LatencyMs)
		confidences = append(confidences, o.Confidence)
		qualities = append(qualities, o.ConfidenceQuality)
		if o.Correct {
			correct++
			correctness = append(correctness, 1)
		} else {
			correctness = append(correctness, 0)
		}
	}

	if m.SuccessfulTests > 0 {
		m.ClassificationAccuracy = float64(correct) / float64(m.SuccessfulTests)
		m.ConfidenceCalibration = mean(qualities)
		m.MeanLatencyMs = mean(latencies)
		m.MedianLatencyMs = percentile(latencies, 50)
		m.P95LatencyMs = percentile(latencies, 95)
	}
	m.ConfidenceCorrelation = pearson(correctness, confidences)
	m.FinalScore = 100 * (0.6*m.ClassificationAccuracy + 0.4*m.ConfidenceCalibration)
	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile uses linear interpolation between closest ranks.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// pearson computes the correlation coefficient between two equal-length
// series. Defined as 0 when fewer than two samples exist or either series
// has zero variance.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// SaveReport writes the metrics to a timestamped JSON file and returns the
// path.
func SaveReport(m AggregateMetrics, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("evaluation_%s.json", time.Now().Format("20060102_150405")))
	return path, os.WriteFile(path, data, 0644)
}

// FormatEvalSummary renders a short human-readable summary of a run.
func FormatEvalSummary(m AggregateMetrics) string {
	return fmt.Sprintf(
		"Evaluation: %d/%d ok, accuracy %.1f%%, calibration %.1f%%, correlation %.3f, p95 %.0fms, final score %.1f/100",
		m.SuccessfulTests, m.TotalTests,
		m.ClassificationAccuracy*100, m.ConfidenceCalibration*100,
		m.ConfidenceCorrelation, m.P95LatencyMs, m.FinalScore,
	)
}
