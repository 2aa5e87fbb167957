package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// analysisLogEntry is the JSON document written per request for offline
// evaluation. Only the text length is kept, never the raw capture.
type analysisLogEntry struct {
	Timestamp time.Time          `json:"timestamp"`
	Request   analysisLogRequest `json:"request"`
	Result    any                `json:"result"`
}

type analysisLogRequest struct {
	TextLength      int    `json:"text_length"`
	AppName         string `json:"app_name"`
	WindowTitle     string `json:"window_title,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	UserFocus       string `json:"user_focus,omitempty"`
	Model           string `json:"model"`
}

// persister writes request/response pairs to one JSON file each plus a
// history row, from a detached goroutine. Persistence is best-effort: every
// failure is logged and counted, and none of it touches the response.
type persister struct {
	dir   string
	db    *sql.DB
	state *ServiceState
}

func newPersister(dir string, db *sql.DB, state *ServiceState) *persister {
	return &persister{dir: dir, db: db, state: state}
}

// LogAnalysis persists asynchronously; the caller never waits on it.
func (p *persister) LogAnalysis(req AnalysisRequest, res AnalysisResult) {
	go p.write(req, res, AnalysisRecord{
		Kind:              "analysis",
		Category:          res.Category,
		ProductivityScore: res.ProductivityScore,
		Confidence:        res.Confidence,
		ModelUsed:         res.ModelUsed,
		Fallback:          res.ModelUsed == modelHeuristic,
		ProcessingTimeMs:  res.ProcessingTimeMs,
		AnalyzedAt:        res.Timestamp,
	})
}

func (p *persister) LogFocus(req AnalysisRequest, res FocusVerdict) {
	go p.write(req, res, AnalysisRecord{
		Kind:             "focus",
		Classification:   res.Classification,
		Confidence:       res.Confidence,
		ModelUsed:        res.ModelUsed,
		Fallback:         res.ModelUsed == modelHeuristic,
		ProcessingTimeMs: res.ProcessingTimeMs,
		AnalyzedAt:       res.Timestamp,
	})
}

func (p *persister) write(req AnalysisRequest, res any, rec AnalysisRecord) {
	rec.AppName = req.Context.AppName
	rec.WindowTitle = req.Context.WindowTitle
	rec.UserFocus = req.Context.UserFocus
	rec.TextLength = len(req.Text)

	if err := p.writeFile(req, res); err != nil {
		log.Printf("analysis log write failed: %v", err)
		p.state.RecordPersistError()
	}
	if p.db != nil {
		if err := InsertAnalysisRecord(p.db, rec); err != nil {
			log.Printf("analysis history insert failed: %v", err)
			p.state.RecordPersistError()
		}
	}
}

func (p *persister) writeFile(req AnalysisRequest, res any) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	entry := analysisLogEntry{
		Timestamp: time.Now(),
		Request: analysisLogRequest{
			TextLength:      len(req.Text),
			AppName:         req.Context.AppName,
			WindowTitle:     req.Context.WindowTitle,
			DurationSeconds: req.Context.DurationSeconds,
			UserFocus:       req.Context.UserFocus,
			Model:           req.Model,
		},
		Result: res,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("analysis_%s.json", time.Now().Format("20060102_150405.000000"))
	return os.WriteFile(filepath.Join(p.dir, filename), data, 0644)
}
