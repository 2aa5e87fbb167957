package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Backend is the external generative oracle. Implementations return an
// error for anything unusable (transport failure, non-2xx, malformed JSON);
// the orchestrator treats every backend error identically and falls back to
// the heuristic classifier.
type Backend interface {
	// Analyze asks the backend for a productivity judgment.
	Analyze(ctx context.Context, req AnalysisRequest) (backendAnalysis, error)
	// AnalyzeFocus asks the backend for a focused/not_focused verdict.
	AnalyzeFocus(ctx context.Context, req AnalysisRequest) (backendFocus, error)
	// ListModels reports the model identifiers the backend can serve.
	ListModels(ctx context.Context) ([]string, error)
	// PullModel makes a model available locally, where the backend
	// supports that. Best-effort; callers proceed on failure.
	PullModel(ctx context.Context, model string) error
}

// backendAnalysis is the one canonical schema for productivity responses.
// Any payload that does not unmarshal into it triggers fallback.
type backendAnalysis struct {
	Summary           string   `json:"summary"`
	Category          string   `json:"category"`
	ProductivityScore float64  `json:"productivity_score"`
	KeyActivities     []string `json:"key_activities"`
	Suggestions       []string `json:"suggestions"`
	Confidence        float64  `json:"confidence"`
}

// backendFocus is the canonical schema for focus responses.
type backendFocus struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

const (
	backendCallTimeout = 45 * time.Second
	probeTimeout       = 5 * time.Second
	pullTimeout        = 300 * time.Second

	promptTextLimit = 3000
)

// buildAnalysisPrompt asks for a strict-JSON productivity judgment. OCR text
// is truncated so a pathological capture cannot blow up the prompt.
func buildAnalysisPrompt(req AnalysisRequest) string {
	ctx := req.Context
	text := req.Text
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	var b strings.Builder
	b.WriteString("Analyze the following screenshot text and provide productivity insights.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Application: %s\n", ctx.AppName)
	title := ctx.WindowTitle
	if title == "" {
		title = "Unknown"
	}
	fmt.Fprintf(&b, "- Window Title: %s\n", title)
	fmt.Fprintf(&b, "- Duration: %d seconds\n", ctx.DurationSeconds)
	fmt.Fprintf(&b, "- Timestamp: %s\n", ctx.Timestamp.Format(time.RFC3339))
	if ctx.UserFocus != "" {
		fmt.Fprintf(&b, "- User Focus: %s\n", ctx.UserFocus)
	}
	fmt.Fprintf(&b, "\nScreenshot Text:\n%s\n\n", text)
	b.WriteString(`Return JSON with this schema:
{
    "summary": str,
    "category": one of "Programming", "Communication", "Research", "Documentation", "Design", "Media", "System", "Other",
    "productivity_score": float (0-10),
    "key_activities": list[str],
    "suggestions": list[str]|null,
    "confidence": float (0-1)
}
`)
	return b.String()
}

// buildFocusPrompt asks for a strict-JSON focus verdict against the user's
// stated goal.
func buildFocusPrompt(req AnalysisRequest) string {
	ctx := req.Context
	text := req.Text
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	var b strings.Builder
	b.WriteString("Decide whether the user is focused on their stated goal based on what is on screen.\n\n")
	fmt.Fprintf(&b, "Stated goal: %s\n", ctx.UserFocus)
	fmt.Fprintf(&b, "Application: %s\n", ctx.AppName)
	if ctx.WindowTitle != "" {
		fmt.Fprintf(&b, "Window Title: %s\n", ctx.WindowTitle)
	}
	fmt.Fprintf(&b, "\nScreen Text:\n%s\n\n", text)
	b.WriteString(`Return JSON with this schema:
{
    "classification": "focused" or "not_focused",
    "confidence": float (0-1),
    "reasoning": str
}
`)
	return b.String()
}

// parseBackendAnalysis decodes a model's JSON answer into the canonical
// schema, failing closed on any shape mismatch.
func parseBackendAnalysis(raw string) (backendAnalysis, error) {
	var out backendAnalysis
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &out); err != nil {
		return backendAnalysis{}, fmt.Errorf("parsing backend analysis response: %w", err)
	}
	if out.Category == "" {
		return backendAnalysis{}, fmt.Errorf("backend analysis response missing category")
	}
	return out, nil
}

func parseBackendFocus(raw string) (backendFocus, error) {
	var out backendFocus
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &out); err != nil {
		return backendFocus{}, fmt.Errorf("parsing backend focus response: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(out.Classification)) {
	case FocusFocused:
		out.Classification = FocusFocused
	case FocusNotFocused:
		out.Classification = FocusNotFocused
	default:
		return backendFocus{}, fmt.Errorf("backend focus response has bad classification %q", out.Classification)
	}
	return out, nil
}

// stripJSONFences removes markdown code fences that chat models like to wrap
// JSON in.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
