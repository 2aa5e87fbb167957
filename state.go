package main

import (
	"sync"
	"time"
)

// ServiceState holds the process-wide counters and backend availability
// shared between the request path and the health probe loop. All fields are
// guarded by mu; counters only ever go up within a process lifetime.
type ServiceState struct {
	mu sync.Mutex

	startTime       time.Time
	totalAnalyses   int64
	totalErrors     int64
	persistErrors   int64
	backendUp       bool
	availableModels []string
}

func NewServiceState() *ServiceState {
	return &ServiceState{startTime: time.Now()}
}

func (s *ServiceState) RecordAnalysis() {
	s.mu.Lock()
	s.totalAnalyses++
	s.mu.Unlock()
}

func (s *ServiceState) RecordError() {
	s.mu.Lock()
	s.totalErrors++
	s.mu.Unlock()
}

func (s *ServiceState) RecordPersistError() {
	s.mu.Lock()
	s.persistErrors++
	s.mu.Unlock()
}

// SetBackend records the probe outcome: reachability plus the model list.
// A failed probe passes available=false and models=nil, clearing the set.
func (s *ServiceState) SetBackend(available bool, models []string) {
	s.mu.Lock()
	s.backendUp = available
	s.availableModels = append([]string(nil), models...)
	s.mu.Unlock()
}

func (s *ServiceState) BackendAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backendUp
}

func (s *ServiceState) Models() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.availableModels...)
}

func (s *ServiceState) HasModel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.availableModels {
		if m == name {
			return true
		}
	}
	return false
}

// Snapshot returns a consistent copy of the counters for /health and /stats.
func (s *ServiceState) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		Uptime:        time.Since(s.startTime),
		TotalAnalyses: s.totalAnalyses,
		TotalErrors:   s.totalErrors,
		PersistErrors: s.persistErrors,
		BackendUp:     s.backendUp,
		ModelsLoaded:  len(s.availableModels),
	}
}

type StateSnapshot struct {
	Uptime        time.Duration
	TotalAnalyses int64
	TotalErrors   int64
	PersistErrors int64
	BackendUp     bool
	ModelsLoaded  int
}

// ErrorRate is errors over analyses, with a floor of one analysis so a
// fresh process reports 0 rather than NaN.
func (s StateSnapshot) ErrorRate() float64 {
	total := s.TotalAnalyses
	if total < 1 {
		total = 1
	}
	return float64(s.TotalErrors) / float64(total)
}
