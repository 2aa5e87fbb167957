package main

import (
	"strings"
	"testing"
	"time"
)

func TestParseBackendAnalysis(t *testing.T) {
	raw := `{"summary": "coding", "category": "Programming", "productivity_score": 8.5,
		"key_activities": ["editing"], "confidence": 0.9}`
	out, err := parseBackendAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Category != CategoryProgramming || out.ProductivityScore != 8.5 {
		t.Errorf("got %+v", out)
	}
}

func TestParseBackendAnalysis_StripsFences(t *testing.T) {
	raw := "```json\n{\"summary\": \"s\", \"category\": \"Media\", \"confidence\": 0.5}\n```"
	out, err := parseBackendAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Category != CategoryMedia {
		t.Errorf("category: got %q, want %q", out.Category, CategoryMedia)
	}
}

func TestParseBackendAnalysis_MissingCategory(t *testing.T) {
	if _, err := parseBackendAnalysis(`{"summary": "s", "confidence": 0.5}`); err == nil {
		t.Error("expected error for missing category")
	}
	if _, err := parseBackendAnalysis("not json at all"); err == nil {
		t.Error("expected error for non-JSON")
	}
}

func TestParseBackendFocus_NormalizesClassification(t *testing.T) {
	out, err := parseBackendFocus(`{"classification": " FOCUSED ", "confidence": 0.8, "reasoning": "r"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Classification != FocusFocused {
		t.Errorf("got %q, want %q", out.Classification, FocusFocused)
	}

	if _, err := parseBackendFocus(`{"classification": "kinda", "confidence": 0.8}`); err == nil {
		t.Error("expected error for unknown classification")
	}
}

func TestBuildAnalysisPrompt_TruncatesText(t *testing.T) {
	req := AnalysisRequest{
		Text: strings.Repeat("a", 5000),
		Context: AnalysisContext{
			AppName:   "App",
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	prompt := buildAnalysisPrompt(req)
	if strings.Contains(prompt, strings.Repeat("a", 3001)) {
		t.Error("text should be truncated to 3000 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("a", 3000)) {
		t.Error("truncated text missing from prompt")
	}
	if !strings.Contains(prompt, "- Application: App") {
		t.Error("app name missing from prompt")
	}
	if !strings.Contains(prompt, "- Window Title: Unknown") {
		t.Error("empty window title should render as Unknown")
	}
}

func TestBuildFocusPrompt_IncludesGoal(t *testing.T) {
	req := AnalysisRequest{
		Text: "some screen text",
		Context: AnalysisContext{
			AppName:   "Safari",
			UserFocus: "Writing the quarterly report",
		},
	}
	prompt := buildFocusPrompt(req)
	if !strings.Contains(prompt, "Stated goal: Writing the quarterly report") {
		t.Error("goal missing from prompt")
	}
	if !strings.Contains(prompt, `"focused" or "not_focused"`) {
		t.Error("schema missing from prompt")
	}
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\": 1}", "{\"a\": 1}"},
		{"```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"```\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"  {\"a\": 1}  ", "{\"a\": 1}"},
	}
	for _, tt := range tests {
		if got := stripJSONFences(tt.in); got != tt.want {
			t.Errorf("stripJSONFences(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
