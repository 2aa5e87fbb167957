package main

import (
	"fmt"
	"math/rand"
)

// Synthetic scenario generation. All randomness in the repo lives here; the
// analysis pipeline itself is deterministic. The generator is seeded with a
// fixed value so a given n always yields the same corpus and run-over-run
// scores stay comparable.

const synthSeed = 7

// focusedTemplates pair a stated goal with an app and screen text that
// genuinely serve it.
var focusedTemplates = []struct {
	goal, app, window, text string
}{
	{"Writing code", "Visual Studio Code", "server.go",
		"func handleRequest(w http.ResponseWriter, r *http.Request) { decode the payload }"},
	{"Writing code", "Terminal", "vim handlers.py",
		"def retry_with_backoff(attempts): for i in range(attempts): yield 2 ** i"},
	{"Studying Computer Science", "Xcode", "graph.swift",
		"class Graph { func shortestPath(from: Node, to: Node) -> [Node] }"},
	{"Learning React hooks", "Firefox", "React docs",
		"Tutorial: useMemo caches a calculation between re-renders, see the reference"},
	{"Reading documentation", "Chrome", "pkg.go.dev",
		"API reference for the context package, see the guide on cancellation"},
	{"Debugging the crash", "Terminal", "dlv attach",
		"Breakpoint hit, inspecting the stack trace in the debug console"},
	{"Designing the dashboard", "Figma", "Dashboard v2",
		"Component library open, editing the chart mockup in Figma"},
	{"Analyzing churn", "Tableau", "Churn Q3",
		"Cohort dashboard filtered to Q3, analytics export running"},
	{"Writing email follow-ups", "Outlook", "Drafts",
		"Draft to procurement re: renewal terms, attachment added"},
	{"Meeting with design", "Google Meet", "Design weekly",
		"Design weekly call, 4 participants, whiteboard shared"},
}

// distractedTemplates describe screens dominated by a known distraction.
var distractedTemplates = []struct {
	goal, app, window, text string
}{
	{"Writing code", "YouTube", "Recommended",
		"Up next: 25 minutes of satisfying hydraulic press videos, autoplay on"},
	{"Studying Computer Science", "Netflix", "Continue watching",
		"Continue watching episode 7, skip intro, next episode in 5 seconds"},
	{"Reading documentation", "Reddit", "r/all",
		"Hot posts from r/all, 14.2k upvotes, sort by rising"},
	{"Analyzing churn", "Twitch", "Live channels",
		"Live now: speedrun attempt, 31,204 viewers, chat scrolling"},
	{"Writing email follow-ups", "Instagram", "Explore",
		"Explore grid of reels, double tap to like, 3 new stories"},
}

// categoryTemplates produce synthetic OCR text per category, with the score
// range a correct judgment should land in.
var categoryTemplates = []struct {
	category           string
	app, text          string
	minScore, maxScore float64
}{
	{CategoryProgramming, "GoLand",
		"type Worker struct { queue chan Job }; fixing the failing test before compile",
		7.0, 9.5},
	{CategoryCommunication, "Slack",
		"Thread in #platform: inbox zero by Friday, reply when the vendor answers",
		5.0, 7.0},
	{CategoryResearch, "Firefox",
		"Search results for memory leak pprof, stackoverflow answer with 212 votes",
		6.0, 8.0},
	{CategoryDocumentation, "Notion",
		"Postmortem outline with notes for chapter two and the summary table",
		6.5, 8.5},
	{CategoryDesign, "Sketch",
		"Sketch artboard with the checkout wireframe and two mockup variants",
		7.0, 9.0},
	{CategoryMedia, "YouTube",
		"Now playing: lo-fi playlist, up next on youtube autoplay",
		2.0, 4.0},
	{CategorySystem, "Finder",
		"Finder copying 3,412 files, disk utility first aid running",
		4.0, 6.0},
	{CategoryOther, "Notes",
		"Packing list for the weekend: tent, stove, headlamp, trail mix",
		3.0, 7.0},
}

// SyntheticCategoryScenarios generates n category scenarios sampling the
// template table with replacement.
func SyntheticCategoryScenarios(n int) []EvalScenario {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(synthSeed + 1))

	scenarios := make([]EvalScenario, 0, n)
	for i := 0; i < n; i++ {
		t := categoryTemplates[rng.Intn(len(categoryTemplates))]
		scenarios = append(scenarios, EvalScenario{
			Name:            fmt.Sprintf("synth_category_%03d", i),
			Kind:            scenarioCategory,
			AppName:         t.app,
			Text:            t.text,
			DurationSeconds: 30 + rng.Intn(270),
			ExpectedLabel:   t.category,
			MinScore:        t.minScore,
			MaxScore:        t.maxScore,
		})
	}
	return scenarios
}

// SyntheticFocusScenarios generates n focus scenarios at roughly a 70/30
// focused/distracted split, sampling the template tables with replacement.
func SyntheticFocusScenarios(n int) []EvalScenario {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(synthSeed))

	scenarios := make([]EvalScenario, 0, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < 0.7 {
			t := focusedTemplates[rng.Intn(len(focusedTemplates))]
			scenarios = append(scenarios, EvalScenario{
				Name:            fmt.Sprintf("synth_focused_%03d", i),
				Kind:            scenarioFocus,
				UserFocus:       t.goal,
				AppName:         t.app,
				WindowTitle:     t.window,
				Text:            t.text,
				DurationSeconds: 30 + rng.Intn(270),
				ExpectedLabel:   FocusFocused,
			})
		} else {
			t := distractedTemplates[rng.Intn(len(distractedTemplates))]
			scenarios = append(scenarios, EvalScenario{
				Name:            fmt.Sprintf("synth_distracted_%03d", i),
				Kind:            scenarioFocus,
				UserFocus:       t.goal,
				AppName:         t.app,
				WindowTitle:     t.window,
				Text:            t.text,
				DurationSeconds: 30 + rng.Intn(270),
				ExpectedLabel:   FocusNotFocused,
			})
		}
	}
	return scenarios
}
