package main

import (
	"fmt"
	"strings"
)

// categoryRule maps a keyword set to a category and a fixed score. Rules are
// evaluated in slice order and the first match wins; the ordering is part of
// the contract (same text always lands in the same category), so do not sort
// or reorder these.
type categoryRule struct {
	category string
	score    float64
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryProgramming, 8.0, []string{"code", "function", "class", "import", "def ", "struct", "compile"}},
	{CategoryCommunication, 6.0, []string{"email", "slack", "teams", "chat", "inbox", "message"}},
	{CategoryResearch, 7.0, []string{"google", "stackoverflow", "stack overflow", "search", "documentation", "wikipedia"}},
	{CategoryDocumentation, 7.0, []string{"report", "notes", "outline", "summary", "chapter", "confluence"}},
	{CategoryDesign, 8.0, []string{"figma", "sketch", "photoshop", "wireframe", "mockup"}},
	{CategoryMedia, 3.0, []string{"youtube", "netflix", "spotify", "playlist", "now playing"}},
	{CategorySystem, 5.0, []string{"finder", "activity monitor", "system preferences", "disk utility"}},
}

const (
	defaultCategory = CategoryOther
	defaultScore    = 5.0

	// Confidence assigned to heuristic productivity results. Deliberately
	// below anything a healthy backend would report for a confident answer.
	heuristicConfidence = 0.3
)

// distractionKeywords flag not_focused immediately when found in the app
// name or the screen text.
var distractionKeywords = []string{
	"youtube", "netflix", "twitter", "facebook", "instagram", "reddit",
	"tiktok", "twitch", "spotify", "game", "whatsapp", "messenger",
}

// focusAppRule ties a phrase from the user's stated goal to apps and terms
// that indicate the user is actually doing that thing. Kept as an ordered
// slice so evaluation order never depends on map iteration.
type focusAppRule struct {
	phrase  string
	related []string
}

var focusAppRules = []focusAppRule{
	{"studying computer science", []string{"code", "xcode", "terminal", "stack overflow", "documentation"}},
	{"writing code", []string{"code", "xcode", "intellij", "sublime", "atom", "terminal"}},
	{"writing email", []string{"mail", "gmail", "outlook", "thunderbird"}},
	{"learning react", []string{"react", "documentation", "tutorial", "mdn", "javascript"}},
	{"designing", []string{"figma", "sketch", "photoshop", "illustrator", "design"}},
	{"analyzing", []string{"excel", "sheets", "tableau", "analytics", "dashboard"}},
	{"reading documentation", []string{"docs", "documentation", "api", "reference", "guide"}},
	{"debugging", []string{"debug", "console", "terminal", "error", "stack trace"}},
	{"meeting", []string{"zoom", "teams", "meet", "skype", "webex"}},
	{"presentation", []string{"powerpoint", "keynote", "slides", "deck"}},
}

// workKeywords are generic work signals counted when neither the distraction
// nor the goal-match branch fires.
var workKeywords = []string{
	"project", "task", "meeting", "deadline", "client", "code",
	"function", "class", "email", "report", "analysis", "design",
}

// placeholderActivities is substituted when no usable tokens are found.
var placeholderActivities = []string{"general activity"}

// HeuristicClassifier assigns categories, scores and focus verdicts from
// fixed keyword tables. It is a pure function of its inputs and cannot fail.
type HeuristicClassifier struct{}

// Classify returns the productivity category and score for the given text.
func (HeuristicClassifier) Classify(text string) (string, float64) {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category, rule.score
			}
		}
	}
	return defaultCategory, defaultScore
}

// Analyze builds a complete fallback AnalysisResult for the request.
// Timestamp, latency and clamping are the orchestrator's job.
func (h HeuristicClassifier) Analyze(req AnalysisRequest) AnalysisResult {
	category, score := h.Classify(req.Text)
	return AnalysisResult{
		Summary:           fmt.Sprintf("User engaged in %s activities", strings.ToLower(category)),
		Category:          category,
		ProductivityScore: score,
		KeyActivities:     extractKeyActivities(req.Text),
		Suggestions:       []string{"Consider enabling AI analysis for deeper insights"},
		ModelUsed:         modelHeuristic,
		Confidence:        heuristicConfidence,
	}
}

// ClassifyFocus decides whether the screen activity matches the user's
// stated goal. Strict decision tree, evaluated in order:
//  1. any distraction keyword in the app name or text -> not_focused, 0.85
//  2. goal phrase keys into focusAppRules and a related term appears
//     in the app name or text -> focused, 0.88
//  3. generic work keyword count in text: >=3 -> focused 0.72,
//     >=1 -> focused 0.55, 0 -> not_focused 0.65
func (HeuristicClassifier) ClassifyFocus(userFocus, appName, text string) (string, float64) {
	goal := strings.ToLower(userFocus)
	app := strings.ToLower(appName)
	lower := strings.ToLower(text)

	for _, kw := range distractionKeywords {
		if strings.Contains(app, kw) || strings.Contains(lower, kw) {
			return FocusNotFocused, 0.85
		}
	}

	for _, rule := range focusAppRules {
		if !strings.Contains(goal, rule.phrase) {
			continue
		}
		for _, kw := range rule.related {
			if strings.Contains(app, kw) || strings.Contains(lower, kw) {
				return FocusFocused, 0.88
			}
		}
	}

	workCount := 0
	for _, kw := range workKeywords {
		if strings.Contains(lower, kw) {
			workCount++
		}
	}
	switch {
	case workCount >= 3:
		return FocusFocused, 0.72
	case workCount >= 1:
		return FocusFocused, 0.55
	default:
		return FocusNotFocused, 0.65
	}
}

// AnalyzeFocus builds a complete fallback FocusVerdict for the request.
func (h HeuristicClassifier) AnalyzeFocus(req AnalysisRequest) FocusVerdict {
	classification, confidence := h.ClassifyFocus(req.Context.UserFocus, req.Context.AppName, req.Text)
	reasoning := fmt.Sprintf("The user's activity in %s doesn't align with their stated goal of '%s'",
		req.Context.AppName, req.Context.UserFocus)
	if classification == FocusFocused {
		reasoning = fmt.Sprintf("The user's goal of '%s' aligns with their current activity in %s",
			req.Context.UserFocus, req.Context.AppName)
	}
	return FocusVerdict{
		Classification: classification,
		Confidence:     confidence,
		Reasoning:      reasoning,
		ModelUsed:      modelHeuristic,
	}
}

// extractKeyActivities picks the first five tokens longer than five
// characters, skipping URLs, preserving original token order.
func extractKeyActivities(text string) []string {
	var activities []string
	for _, token := range strings.Fields(text) {
		if len(token) <= 5 {
			continue
		}
		lower := strings.ToLower(token)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			continue
		}
		activities = append(activities, token)
		if len(activities) == 5 {
			break
		}
	}
	if len(activities) == 0 {
		return append([]string(nil), placeholderActivities...)
	}
	return activities
}
