package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	cfg      Config
	analyzer *Analyzer
	monitor  *HealthMonitor
	state    *ServiceState
	db       *sql.DB
}

func NewServer(cfg Config, analyzer *Analyzer, monitor *HealthMonitor, state *ServiceState, db *sql.DB) *Server {
	return &Server{cfg: cfg, analyzer: analyzer, monitor: monitor, state: state, db: db}
}

// Handler builds the route table. Every route goes through the CORS
// wrapper so browser clients (the capture overlay) can call us directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/analyze_focus", s.handleAnalyzeFocus)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/models", s.handleModels)
	mux.HandleFunc("/pull_model", s.handlePullModel)
	return withCORS(mux)
}

func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("listening addr=%s backend=%s model=%s", addr, s.cfg.BackendProvider, s.cfg.DefaultModel)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleAnalyzeFocus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	verdict, err := s.analyzer.AnalyzeFocus(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, verdict)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	status := "degraded"
	if snap.BackendUp {
		status = "healthy"
	}
	writeJSON(w, HealthStatus{
		Status:           status,
		BackendAvailable: snap.BackendUp,
		ModelLoaded:      snap.ModelsLoaded > 0,
		UptimeSeconds:    snap.Uptime.Seconds(),
		TotalAnalyses:    snap.TotalAnalyses,
		ErrorRate:        snap.ErrorRate(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	hits, misses, hitRate := s.analyzer.CacheStats()

	var fallbacks int64
	if s.db != nil {
		n, err := CountAnalysesByModel(s.db, modelHeuristic)
		if err != nil {
			log.Printf("fallback count query failed: %v", err)
		} else {
			fallbacks = n
		}
	}

	writeJSON(w, map[string]any{
		"uptime_seconds":    snap.Uptime.Seconds(),
		"total_analyses":    snap.TotalAnalyses,
		"total_errors":      snap.TotalErrors,
		"error_rate":        snap.ErrorRate(),
		"cache_hits":        hits,
		"cache_misses":      misses,
		"cache_hit_rate":    hitRate,
		"fallback_analyses": fallbacks,
		"persist_errors":    snap.PersistErrors,
		"models_loaded":     snap.ModelsLoaded,
		"backend_available": snap.BackendUp,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	// Refresh so the catalogue is current, not 30s stale.
	s.monitor.Probe(r.Context())
	backendStatus := "disconnected"
	if s.state.BackendAvailable() {
		backendStatus = "connected"
	}
	writeJSON(w, map[string]any{
		"available":      s.state.Models(),
		"recommended":    s.cfg.DefaultModel,
		"backend_status": backendStatus,
	})
}

func (s *Server) handlePullModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	model := r.URL.Query().Get("model")
	if model == "" {
		http.Error(w, "model query parameter is required", http.StatusBadRequest)
		return
	}

	if err := s.monitor.PullModel(r.Context(), model); err != nil {
		http.Error(w, fmt.Sprintf("Failed to pull model %s: %v", model, err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "success", "model": model})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode error: %v", err)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
