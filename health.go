package main

import (
	"context"
	"log"
	"sync"
	"time"
)

// Probe states. A single failed probe flips HEALTHY to DEGRADED and a single
// good one flips it back; there is no debouncing.
type healthState int

const (
	healthUnknown healthState = iota
	healthHealthy
	healthDegraded
)

func (s healthState) String() string {
	switch s {
	case healthHealthy:
		return "healthy"
	case healthDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

const probeInterval = 30 * time.Second

// HealthMonitor tracks backend reachability and the set of model
// identifiers it can serve. It probes on a fixed interval independent of
// request traffic, and once opportunistically when a request arrives before
// any probe has succeeded.
type HealthMonitor struct {
	backend  Backend
	state    *ServiceState
	notifier *Notifier
	provider string

	mu         sync.Mutex
	current    healthState
	everProbed bool
}

func NewHealthMonitor(backend Backend, state *ServiceState) *HealthMonitor {
	return &HealthMonitor{
		backend: backend,
		state:   state,
		current: healthUnknown,
	}
}

// SetNotifier routes health transitions to the notifier. Optional.
func (m *HealthMonitor) SetNotifier(n *Notifier, provider string) {
	m.notifier = n
	m.provider = provider
}

// Probe queries the backend capability endpoint once and records the
// outcome. It never takes longer than the probe timeout.
func (m *HealthMonitor) Probe(ctx context.Context) bool {
	models, err := m.backend.ListModels(ctx)
	if err != nil {
		log.Printf("health probe failed: %v", err)
		m.setState(healthDegraded, nil, false)
		return false
	}
	m.setState(healthHealthy, models, true)
	return true
}

func (m *HealthMonitor) setState(s healthState, models []string, probed bool) {
	m.mu.Lock()
	prev := m.current
	m.current = s
	if probed {
		m.everProbed = true
	}
	m.mu.Unlock()

	m.state.SetBackend(s == healthHealthy, models)
	if prev != s {
		log.Printf("backend health %s -> %s models=%d", prev, s, len(models))
	}
	if m.notifier != nil {
		m.notifier.BackendChanged(s == healthDegraded, m.provider)
	}
}

// State returns the current probe state.
func (m *HealthMonitor) State() healthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// EnsureProbed probes once if no probe has ever succeeded, so the first
// request after startup doesn't blindly skip a reachable backend.
func (m *HealthMonitor) EnsureProbed(ctx context.Context) {
	m.mu.Lock()
	probed := m.everProbed
	m.mu.Unlock()
	if !probed {
		m.Probe(ctx)
	}
}

// EnsureModel attempts one on-demand pull when the requested model is not in
// the known set. Pull failures are logged and otherwise ignored; processing
// continues with whatever model was requested.
func (m *HealthMonitor) EnsureModel(ctx context.Context, model string) {
	if m.state.HasModel(model) {
		return
	}
	if err := m.backend.PullModel(ctx, model); err != nil {
		log.Printf("model pull failed model=%s err=%v", model, err)
		return
	}
	// Refresh the model list after a successful pull.
	m.Probe(ctx)
}

// PullModel pulls explicitly (the /pull_model endpoint) and refreshes the
// model list on success.
func (m *HealthMonitor) PullModel(ctx context.Context, model string) error {
	if err := m.backend.PullModel(ctx, model); err != nil {
		return err
	}
	m.Probe(ctx)
	return nil
}

// Run re-probes on a fixed interval until the context is cancelled. The
// ticker is released on shutdown.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}
