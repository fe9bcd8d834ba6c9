package wizard

import (
	"sync"
	"time"
)

// Run bundles one live wizard session with its autocomplete fields and draft
// manager.
type Run struct {
	Session        *Session
	DeptSearch     *Suggester
	LocationSearch *Suggester
	Drafts         *DraftManager

	lastSeen time.Time
}

// Registry holds live runs keyed by session ID. Idle runs are purged lazily
// once their TTL elapses.
type Registry struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

// NewRegistry builds an empty registry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{runs: make(map[string]*Run), ttl: ttl}
}

// Add registers a run under its session ID.
func (r *Registry) Add(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	run.lastSeen = time.Now()
	r.runs[run.Session.ID] = run
}

// Get returns the run for a session ID, refreshing its TTL.
func (r *Registry) Get(id string) (*Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, false
	}
	run.lastSeen = time.Now()
	return run, true
}

// Remove tears down and forgets a run.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run, ok := r.runs[id]; ok {
		stopRun(run)
		delete(r.runs, id)
	}
}

func (r *Registry) purgeLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-r.ttl)
	for id, run := range r.runs {
		if run.lastSeen.Before(cutoff) {
			stopRun(run)
			delete(r.runs, id)
		}
	}
}

func stopRun(run *Run) {
	if run.DeptSearch != nil {
		run.DeptSearch.Stop()
	}
	if run.LocationSearch != nil {
		run.LocationSearch.Stop()
	}
	if run.Drafts != nil {
		run.Drafts.Stop()
	}
}
