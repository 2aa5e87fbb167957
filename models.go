package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInput marks requests whose text is empty or too short to
// analyze. Handlers map it to HTTP 400; it is never retried.
var ErrInvalidInput = errors.New("insufficient text for analysis")

const minAnalysisTextLen = 10

// Activity categories assigned by both the backend and the heuristic path.
const (
	CategoryProgramming   = "Programming"
	CategoryCommunication = "Communication"
	CategoryResearch      = "Research"
	CategoryDocumentation = "Documentation"
	CategoryDesign        = "Design"
	CategoryMedia         = "Media"
	CategorySystem        = "System"
	CategoryOther         = "Other"
)

// Focus classifications for the binary variant of the pipeline.
const (
	FocusFocused    = "focused"
	FocusNotFocused = "not_focused"
)

// modelHeuristic is the model_used value when the fallback path produced
// the result.
const modelHeuristic = "heuristic"

// AnalysisContext describes where the OCR text was captured. Only AppName
// and Timestamp are guaranteed present; everything else is optional.
type AnalysisContext struct {
	AppName         string    `json:"app_name"`
	WindowTitle     string    `json:"window_title,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	UserFocus       string    `json:"user_focus,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type AnalysisRequest struct {
	Text    string          `json:"text"`
	Context AnalysisContext `json:"context"`
	Model   string          `json:"model,omitempty"`
}

// Validate rejects bad requests before any state mutation happens.
func (r AnalysisRequest) Validate() error {
	if len(strings.TrimSpace(r.Text)) < minAnalysisTextLen {
		return fmt.Errorf("%w: need at least %d characters", ErrInvalidInput, minAnalysisTextLen)
	}
	if strings.TrimSpace(r.Context.AppName) == "" {
		return fmt.Errorf("%w: context.app_name is required", ErrInvalidInput)
	}
	return nil
}

type AnalysisResult struct {
	Summary           string    `json:"summary"`
	Category          string    `json:"category"`
	ProductivityScore float64   `json:"productivity_score"`
	KeyActivities     []string  `json:"key_activities"`
	Suggestions       []string  `json:"suggestions,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeMs  float64   `json:"processing_time_ms"`
	ModelUsed         string    `json:"model_used"`
	Confidence        float64   `json:"confidence"`
}

// Clamp enforces the declared bounds regardless of what the backend
// returned: score in [0,10], confidence in [0,1], key_activities never nil.
func (r *AnalysisResult) Clamp() {
	r.ProductivityScore = clampFloat(r.ProductivityScore, 0, 10)
	r.Confidence = clampFloat(r.Confidence, 0, 1)
	if r.KeyActivities == nil {
		r.KeyActivities = []string{}
	}
}

type FocusVerdict struct {
	Classification   string    `json:"classification"`
	Confidence       float64   `json:"confidence"`
	Reasoning        string    `json:"reasoning"`
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	ModelUsed        string    `json:"model_used"`
}

func (v *FocusVerdict) Clamp() {
	v.Confidence = clampFloat(v.Confidence, 0, 1)
}

type HealthStatus struct {
	Status           string  `json:"status"`
	BackendAvailable bool    `json:"backend_available"`
	ModelLoaded      bool    `json:"model_loaded"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	TotalAnalyses    int64   `json:"total_analyses"`
	ErrorRate        float64 `json:"error_rate"`
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
