package main

// Fixed evaluation corpus. The focus scenarios exercise every branch of the
// classification tree (distraction hit, goal/app match, generic work
// signals, nothing at all); the category scenarios pin each category to an
// acceptable productivity score range. Scenarios are replayed verbatim on
// every run so scores are comparable across runs.

// FocusScenarios returns the hand-written focus test cases.
func FocusScenarios() []EvalScenario {
	return []EvalScenario{
		{
			Name:          "coding_in_editor",
			Kind:          scenarioFocus,
			UserFocus:     "Writing code",
			AppName:       "Visual Studio Code",
			WindowTitle:   "batch.go - shoulderd",
			Text:          "func processBatch(items []Item) []Result { out := make([]Result, 0, len(items)) }",
			ExpectedLabel: FocusFocused,
			Rationale:     "editor matches the stated coding goal",
		},
		{
			Name:          "studying_cs_in_editor",
			Kind:          scenarioFocus,
			UserFocus:     "Studying Computer Science",
			AppName:       "Visual Studio Code",
			WindowTitle:   "binary_tree.py",
			Text:          "class BinaryTree: def insert(self, value): if value < self.value: self.left.insert(value)",
			ExpectedLabel: FocusFocused,
			Rationale:     "working through data structures counts as studying",
		},
		{
			Name:          "studying_cs_on_youtube",
			Kind:          scenarioFocus,
			UserFocus:     "Studying Computer Science",
			AppName:       "YouTube",
			WindowTitle:   "Top 10 Cat Compilations",
			Text:          "Top 10 funniest cat compilations of the year, subscribe and hit the bell",
			ExpectedLabel: FocusNotFocused,
			Rationale:     "entertainment video despite a study goal",
		},
		{
			Name:          "email_goal_in_gmail",
			Kind:          scenarioFocus,
			UserFocus:     "Writing email to clients",
			AppName:       "Gmail",
			WindowTitle:   "Compose",
			Text:          "Compose: Quarterly update for stakeholders, draft saved just now",
			ExpectedLabel: FocusFocused,
			Rationale:     "mail client matches the email goal",
		},
		{
			Name:          "learning_react_docs",
			Kind:          scenarioFocus,
			UserFocus:     "Learning React hooks",
			AppName:       "Chrome",
			WindowTitle:   "useEffect - React",
			Text:          "React documentation: useEffect lets you synchronize a component with an external system",
			ExpectedLabel: FocusFocused,
			Rationale:     "official docs match the learning goal",
		},
		{
			Name:          "learning_react_on_twitter",
			Kind:          scenarioFocus,
			UserFocus:     "Learning React hooks",
			AppName:       "Twitter",
			WindowTitle:   "Home",
			Text:          "Trending now: what everyone is saying about the finale, retweet if you agree",
			ExpectedLabel: FocusNotFocused,
			Rationale:     "social feed despite a learning goal",
		},
		{
			Name:          "designing_in_figma",
			Kind:          scenarioFocus,
			UserFocus:     "Designing landing page",
			AppName:       "Figma",
			WindowTitle:   "Landing v3",
			Text:          "Hero frame, auto layout, mockup variants for mobile breakpoint",
			ExpectedLabel: FocusFocused,
			Rationale:     "design tool matches the design goal",
		},
		{
			Name:          "analyzing_in_sheets",
			Kind:          scenarioFocus,
			UserFocus:     "Analyzing sales data",
			AppName:       "Google Sheets",
			WindowTitle:   "Q3 Revenue",
			Text:          "Pivot table over Q3 revenue by region, dashboard refresh pending",
			ExpectedLabel: FocusFocused,
			Rationale:     "spreadsheet matches the analysis goal",
		},
		{
			Name:          "debugging_in_terminal",
			Kind:          scenarioFocus,
			UserFocus:     "Debugging production issue",
			AppName:       "Terminal",
			WindowTitle:   "ssh prod-1",
			Text:          "panic: runtime error, stack trace points at handler.go line 42, grepping the console output",
			ExpectedLabel: FocusFocused,
			Rationale:     "shell session matches the debugging goal",
		},
		{
			Name:          "meeting_in_zoom",
			Kind:          scenarioFocus,
			UserFocus:     "Meeting with the platform team",
			AppName:       "Zoom",
			WindowTitle:   "Weekly sync",
			Text:          "Weekly standup, 6 participants, screen share active, agenda item 2 of 5",
			ExpectedLabel: FocusFocused,
			Rationale:     "call app matches the meeting goal",
		},
		{
			Name:          "presentation_in_keynote",
			Kind:          scenarioFocus,
			UserFocus:     "Presentation for Friday",
			AppName:       "Keynote",
			WindowTitle:   "Roadmap.key",
			Text:          "Slides 4 through 9 of the roadmap deck, speaker notes open",
			ExpectedLabel: FocusFocused,
			Rationale:     "slide editor matches the presentation goal",
		},
		{
			Name:          "unlisted_goal_with_work_signals",
			Kind:          scenarioFocus,
			UserFocus:     "Finishing the quarterly audit",
			AppName:       "Obsidian",
			WindowTitle:   "audit.md",
			Text:          "Project task list with deadline notes for the client report, two items left",
			ExpectedLabel: FocusFocused,
			Rationale:     "no goal rule matches but the text is clearly work",
		},
		{
			Name:          "idle_browsing",
			Kind:          scenarioFocus,
			UserFocus:     "Writing code",
			AppName:       "Safari",
			WindowTitle:   "Sourdough basics",
			Text:          "Recipe for sourdough bread, let the dough rise overnight in the fridge",
			ExpectedLabel: FocusNotFocused,
			Rationale:     "neither distraction nor work, unrelated to the goal",
		},
	}
}

// CategoryScenarios returns one scenario per productivity category with the
// score range a correct answer must land in.
func CategoryScenarios() []EvalScenario {
	return []EvalScenario{
		{
			Name:          "category_programming",
			Kind:          scenarioCategory,
			AppName:       "Visual Studio Code",
			Text:          "import numpy as np; def train(dataset): compile the loss function and fit",
			ExpectedLabel: CategoryProgramming,
			MinScore:      7.0, MaxScore: 9.5,
		},
		{
			Name:          "category_communication",
			Kind:          scenarioCategory,
			AppName:       "Slack",
			Text:          "Inbox (23): reply to Sarah about the offsite, thread with the vendor still open",
			ExpectedLabel: CategoryCommunication,
			MinScore:      5.0, MaxScore: 7.0,
		},
		{
			Name:          "category_research",
			Kind:          scenarioCategory,
			AppName:       "Chrome",
			Text:          "Searching stackoverflow for goroutine leaks, three documentation tabs on pprof open",
			ExpectedLabel: CategoryResearch,
			MinScore:      6.0, MaxScore: 8.0,
		},
		{
			Name:          "category_documentation",
			Kind:          scenarioCategory,
			AppName:       "Confluence",
			Text:          "Drafting the incident report outline, notes on chapter 3 and the executive summary",
			ExpectedLabel: CategoryDocumentation,
			MinScore:      6.5, MaxScore: 8.5,
		},
		{
			Name:          "category_design",
			Kind:          scenarioCategory,
			AppName:       "Figma",
			Text:          "Figma mockup for the onboarding wireframe, adjusting spacing tokens",
			ExpectedLabel: CategoryDesign,
			MinScore:      7.0, MaxScore: 9.0,
		},
		{
			Name:          "category_media",
			Kind:          scenarioCategory,
			AppName:       "Spotify",
			Text:          "Now playing: lofi beats playlist on spotify, 42 tracks queued",
			ExpectedLabel: CategoryMedia,
			MinScore:      2.0, MaxScore: 4.0,
		},
		{
			Name:          "category_system",
			Kind:          scenarioCategory,
			AppName:       "Activity Monitor",
			Text:          "Activity Monitor shows the backup daemon at 80%, Disk Utility verifying the volume",
			ExpectedLabel: CategorySystem,
			MinScore:      4.0, MaxScore: 6.0,
		},
		{
			Name:          "category_other",
			Kind:          scenarioCategory,
			AppName:       "Notes",
			Text:          "Grocery list: milk, oat flakes, basil, tomatoes, paper towels, batteries",
			ExpectedLabel: CategoryOther,
			MinScore:      3.0, MaxScore: 7.0,
		},
	}
}

// AllScenarios combines the fixed corpora with n synthetic focus cases and
// n synthetic category cases.
func AllScenarios(syntheticN int) []EvalScenario {
	scenarios := append(FocusScenarios(), CategoryScenarios()...)
	scenarios = append(scenarios, SyntheticFocusScenarios(syntheticN)...)
	return append(scenarios, SyntheticCategoryScenarios(syntheticN)...)
}
