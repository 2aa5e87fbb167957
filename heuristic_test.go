package main

import (
	"reflect"
	"testing"
)

func TestClassify_Categories(t *testing.T) {
	var h HeuristicClassifier
	tests := []struct {
		name     string
		text     string
		category string
		score    float64
	}{
		{"programming", "import os and def main(): compile the module", CategoryProgramming, 8.0},
		{"communication", "reply in the slack thread before checking the inbox", CategoryCommunication, 6.0},
		{"research", "search stackoverflow for the answer, then the wikipedia page", CategoryResearch, 7.0},
		{"documentation", "finish the report outline and the chapter summary", CategoryDocumentation, 7.0},
		{"design", "open the figma wireframe and update the mockup", CategoryDesign, 8.0},
		{"media", "youtube autoplay queued another netflix trailer", CategoryMedia, 3.0},
		{"system", "disk utility and activity monitor both running", CategorySystem, 5.0},
		{"other", "grocery list: milk, basil, paper towels", CategoryOther, 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, score := h.Classify(tt.text)
			if category != tt.category {
				t.Errorf("category: got %q, want %q", category, tt.category)
			}
			if score != tt.score {
				t.Errorf("score: got %v, want %v", score, tt.score)
			}
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	var h HeuristicClassifier
	// "code" (Programming) appears after "youtube" (Media) in the text, but
	// Programming is evaluated first.
	category, _ := h.Classify("watching a youtube video about code review")
	if category != CategoryProgramming {
		t.Errorf("got %q, want %q", category, CategoryProgramming)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	var h HeuristicClassifier
	text := "figma mockup next to the slack thread about the report"
	first, firstScore := h.Classify(text)
	for i := 0; i < 100; i++ {
		category, score := h.Classify(text)
		if category != first || score != firstScore {
			t.Fatalf("iteration %d: got (%q, %v), want (%q, %v)", i, category, score, first, firstScore)
		}
	}
}

func TestClassifyFocus_DistractionWins(t *testing.T) {
	var h HeuristicClassifier
	// Distraction check runs before the goal match, even when the goal and
	// app would otherwise line up.
	classification, confidence := h.ClassifyFocus(
		"Writing code", "YouTube", "code review tutorial playlist")
	if classification != FocusNotFocused {
		t.Errorf("classification: got %q, want %q", classification, FocusNotFocused)
	}
	if confidence != 0.85 {
		t.Errorf("confidence: got %v, want 0.85", confidence)
	}
}

func TestClassifyFocus_GoalMatch(t *testing.T) {
	var h HeuristicClassifier
	classification, confidence := h.ClassifyFocus(
		"Studying Computer Science", "Visual Studio Code",
		"struct node { int value; } traversal exercise")
	if classification != FocusFocused {
		t.Errorf("classification: got %q, want %q", classification, FocusFocused)
	}
	if confidence != 0.88 {
		t.Errorf("confidence: got %v, want 0.88", confidence)
	}
}

func TestClassifyFocus_WorkKeywordTiers(t *testing.T) {
	var h HeuristicClassifier
	tests := []struct {
		name           string
		text           string
		classification string
		confidence     float64
	}{
		{"three_signals", "project task list before the deadline", FocusFocused, 0.72},
		{"one_signal", "drafting the report for tomorrow", FocusFocused, 0.55},
		{"no_signals", "sourdough needs to rise overnight", FocusNotFocused, 0.65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Goal and app chosen so neither the distraction nor the goal
			// branch fires.
			classification, confidence := h.ClassifyFocus("organizing the week", "Notes", tt.text)
			if classification != tt.classification {
				t.Errorf("classification: got %q, want %q", classification, tt.classification)
			}
			if confidence != tt.confidence {
				t.Errorf("confidence: got %v, want %v", confidence, tt.confidence)
			}
		})
	}
}

func TestAnalyze_HeuristicResult(t *testing.T) {
	var h HeuristicClassifier
	req := AnalysisRequest{
		Text:    "import requests def fetch_data(url): return requests.get(url)",
		Context: AnalysisContext{AppName: "PyCharm"},
	}
	result := h.Analyze(req)

	if result.Category != CategoryProgramming {
		t.Errorf("category: got %q, want %q", result.Category, CategoryProgramming)
	}
	if result.Summary != "User engaged in programming activities" {
		t.Errorf("summary: got %q", result.Summary)
	}
	if result.ModelUsed != modelHeuristic {
		t.Errorf("model_used: got %q, want %q", result.ModelUsed, modelHeuristic)
	}
	if result.Confidence != heuristicConfidence {
		t.Errorf("confidence: got %v, want %v", result.Confidence, heuristicConfidence)
	}
}

func TestAnalyzeFocus_Reasoning(t *testing.T) {
	var h HeuristicClassifier
	req := AnalysisRequest{
		Text: "Trending now: celebrity gossip roundup",
		Context: AnalysisContext{
			AppName:   "Twitter",
			UserFocus: "Writing code",
		},
	}
	verdict := h.AnalyzeFocus(req)

	if verdict.Classification != FocusNotFocused {
		t.Fatalf("classification: got %q, want %q", verdict.Classification, FocusNotFocused)
	}
	want := "The user's activity in Twitter doesn't align with their stated goal of 'Writing code'"
	if verdict.Reasoning != want {
		t.Errorf("reasoning: got %q, want %q", verdict.Reasoning, want)
	}
}

func TestExtractKeyActivities(t *testing.T) {
	got := extractKeyActivities("reviewing https://example.com/pull/42 changes before merging the feature branch upstream today")
	want := []string{"reviewing", "changes", "before", "merging", "feature"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractKeyActivities_Placeholder(t *testing.T) {
	got := extractKeyActivities("a b c d")
	want := []string{"general activity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
