package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens the analysis history database. Every completed analysis is
// recorded here so past judgments can be re-scored offline.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		kind               TEXT NOT NULL,
		app_name           TEXT NOT NULL,
		window_title       TEXT DEFAULT '',
		user_focus         TEXT DEFAULT '',
		text_length        INTEGER NOT NULL,
		category           TEXT DEFAULT '',
		classification     TEXT DEFAULT '',
		productivity_score REAL DEFAULT 0,
		confidence         REAL NOT NULL,
		model_used         TEXT NOT NULL,
		fallback           INTEGER NOT NULL DEFAULT 0,
		processing_time_ms REAL NOT NULL,
		analyzed_at        DATETIME NOT NULL,
		created_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_app ON analyses(app_name);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return db, nil
}

// AnalysisRecord is one row of analysis history. Kind is "analysis" or
// "focus"; Category is set for the former, Classification for the latter.
type AnalysisRecord struct {
	Kind              string
	AppName           string
	WindowTitle       string
	UserFocus         string
	TextLength        int
	Category          string
	Classification    string
	ProductivityScore float64
	Confidence        float64
	ModelUsed         string
	Fallback          bool
	ProcessingTimeMs  float64
	AnalyzedAt        time.Time
}

func InsertAnalysisRecord(db *sql.DB, rec AnalysisRecord) error {
	_, err := db.Exec(
		`INSERT INTO analyses (kind, app_name, window_title, user_focus, text_length, category,
		                       classification, productivity_score, confidence, model_used,
		                       fallback, processing_time_ms, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Kind, rec.AppName, rec.WindowTitle, rec.UserFocus, rec.TextLength, rec.Category,
		rec.Classification, rec.ProductivityScore, rec.Confidence, rec.ModelUsed,
		rec.Fallback, rec.ProcessingTimeMs, rec.AnalyzedAt,
	)
	return err
}

// CountAnalysesByModel is used by /stats to split heuristic fallbacks from
// backend-served analyses.
func CountAnalysesByModel(db *sql.DB, model string) (int64, error) {
	var count int64
	err := db.QueryRow("SELECT COUNT(*) FROM analyses WHERE model_used = ?", model).Scan(&count)
	return count, err
}
