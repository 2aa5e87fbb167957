package main

import (
	"testing"
	"time"
)

func TestInsertAndCountAnalysisRecords(t *testing.T) {
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer db.Close()

	records := []AnalysisRecord{
		{
			Kind:              "analysis",
			AppName:           "PyCharm",
			TextLength:        120,
			Category:          CategoryProgramming,
			ProductivityScore: 8,
			Confidence:        0.9,
			ModelUsed:         "dolphin-mistral:latest",
			ProcessingTimeMs:  412.5,
			AnalyzedAt:        time.Now(),
		},
		{
			Kind:             "focus",
			AppName:          "YouTube",
			UserFocus:        "Writing code",
			TextLength:       64,
			Classification:   FocusNotFocused,
			Confidence:       0.85,
			ModelUsed:        modelHeuristic,
			Fallback:         true,
			ProcessingTimeMs: 0.3,
			AnalyzedAt:       time.Now(),
		},
	}
	for _, rec := range records {
		if err := InsertAnalysisRecord(db, rec); err != nil {
			t.Fatalf("insert %s: %v", rec.Kind, err)
		}
	}

	n, err := CountAnalysesByModel(db, modelHeuristic)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("heuristic count: got %d, want 1", n)
	}

	n, err = CountAnalysesByModel(db, "dolphin-mistral:latest")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("backend count: got %d, want 1", n)
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := t.TempDir() + "/history.db"
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("first init: %v", err)
	}
	db.Close()

	db, err = InitDB(path)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	db.Close()
}
