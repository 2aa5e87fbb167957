package main

import (
	"context"
	"log"
	"time"
)

// Analyzer routes each request to the backend or the heuristic classifier,
// maintains the result caches and counters, and schedules persistence. It is
// the only writer of ServiceState counters on the request path.
type Analyzer struct {
	cfg        Config
	backend    Backend
	monitor    *HealthMonitor
	state      *ServiceState
	heuristic  HeuristicClassifier
	cache      *resultCache[AnalysisResult]
	focusCache *resultCache[FocusVerdict]
	persist    *persister
}

func NewAnalyzer(cfg Config, backend Backend, monitor *HealthMonitor, state *ServiceState, persist *persister) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		backend:    backend,
		monitor:    monitor,
		state:      state,
		cache:      newResultCache[AnalysisResult](cfg.CacheCapacity),
		focusCache: newResultCache[FocusVerdict](cfg.CacheCapacity),
		persist:    persist,
	}
}

// Analyze produces a productivity judgment for the request. It returns
// ErrInvalidInput for unusable text; backend trouble never reaches the
// caller, it just means the heuristic path answered.
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	if req.Model == "" {
		req.Model = a.cfg.DefaultModel
	}
	if req.Context.Timestamp.IsZero() {
		req.Context.Timestamp = time.Now()
	}

	var result AnalysisResult
	if a.useBackend(ctx, req.Model) {
		key := cacheKey(req.Text, req.Context.AppName, req.Model)
		if cached, ok := a.cache.Get(key); ok {
			return cached, nil
		}

		analysis, err := a.backend.Analyze(ctx, req)
		if err != nil {
			log.Printf("backend analyze failed, falling back: %v", err)
			a.state.RecordError()
			result = a.heuristic.Analyze(req)
		} else {
			result = AnalysisResult{
				Summary:           analysis.Summary,
				Category:          analysis.Category,
				ProductivityScore: analysis.ProductivityScore,
				KeyActivities:     analysis.KeyActivities,
				Suggestions:       analysis.Suggestions,
				ModelUsed:         req.Model,
				Confidence:        analysis.Confidence,
			}
			result.Timestamp = time.Now()
			result.ProcessingTimeMs = msSince(start)
			result.Clamp()
			// Only backend successes are cached: heuristic output is
			// cheap to recompute and a stale copy would mask recovery.
			a.cache.Put(key, result)
			a.finish(req, result)
			return result, nil
		}
	} else {
		result = a.heuristic.Analyze(req)
	}

	result.Timestamp = time.Now()
	result.ProcessingTimeMs = msSince(start)
	result.Clamp()
	a.finish(req, result)
	return result, nil
}

// AnalyzeFocus produces a focused/not_focused verdict for the request.
func (a *Analyzer) AnalyzeFocus(ctx context.Context, req AnalysisRequest) (FocusVerdict, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return FocusVerdict{}, err
	}
	if req.Model == "" {
		req.Model = a.cfg.DefaultModel
	}
	if req.Context.Timestamp.IsZero() {
		req.Context.Timestamp = time.Now()
	}

	var verdict FocusVerdict
	if a.useBackend(ctx, req.Model) {
		key := cacheKey(req.Text, req.Context.AppName, req.Model)
		if cached, ok := a.focusCache.Get(key); ok {
			return cached, nil
		}

		focus, err := a.backend.AnalyzeFocus(ctx, req)
		if err != nil {
			log.Printf("backend focus analyze failed, falling back: %v", err)
			a.state.RecordError()
			verdict = a.heuristic.AnalyzeFocus(req)
		} else {
			verdict = FocusVerdict{
				Classification: focus.Classification,
				Confidence:     focus.Confidence,
				Reasoning:      focus.Reasoning,
				ModelUsed:      req.Model,
			}
			verdict.Timestamp = time.Now()
			verdict.ProcessingTimeMs = msSince(start)
			verdict.Clamp()
			a.focusCache.Put(key, verdict)
			a.finishFocus(req, verdict)
			return verdict, nil
		}
	} else {
		verdict = a.heuristic.AnalyzeFocus(req)
	}

	verdict.Timestamp = time.Now()
	verdict.ProcessingTimeMs = msSince(start)
	verdict.Clamp()
	a.finishFocus(req, verdict)
	return verdict, nil
}

// useBackend decides the analysis path: backend when it is healthy, after
// ensuring the requested model is present (a failed pull does not block —
// generation is attempted with the requested identifier regardless).
func (a *Analyzer) useBackend(ctx context.Context, model string) bool {
	a.monitor.EnsureProbed(ctx)
	if a.monitor.State() != healthHealthy {
		return false
	}
	a.monitor.EnsureModel(ctx, model)
	return true
}

func (a *Analyzer) finish(req AnalysisRequest, result AnalysisResult) {
	a.state.RecordAnalysis()
	a.persist.LogAnalysis(req, result)
}

func (a *Analyzer) finishFocus(req AnalysisRequest, verdict FocusVerdict) {
	a.state.RecordAnalysis()
	a.persist.LogFocus(req, verdict)
}

// CacheStats exposes the combined counters of both result caches.
func (a *Analyzer) CacheStats() (hits, misses int64, hitRate float64) {
	h1, m1 := a.cache.Counters()
	h2, m2 := a.focusCache.Counters()
	hits, misses = h1+h2, m1+m2
	if lookups := hits + misses; lookups > 0 {
		hitRate = float64(hits) / float64(lookups)
	}
	return hits, misses, hitRate
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
