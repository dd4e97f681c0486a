package service

import (
	"context"
	"sync"
	"time"

	"storefront-backend/pkg/logger"
)

// Registry holds the live sessions keyed by session id
type Registry struct {
	deps        Dependencies
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(deps Dependencies, idleTimeout time.Duration) *Registry {
	if deps.Gateway == nil {
		panic("session registry requires a settlement gateway")
	}
	return &Registry{
		deps:        deps,
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, creating it on first use.
// The session is marked as seen.
func (r *Registry) GetOrCreate(id string) (*Session, bool) {
	now := r.now()

	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.Touch(now)
		return s, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Touch(now)
		return s, false
	}
	s = New(id, r.deps, now)
	r.sessions[id] = s
	return s, true
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout.
// A session with a settlement in flight is never dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !s.LastSeen().Before(cutoff) {
			continue
		}
		if s.Checkout.Snapshot().IsSettling {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Session sweeper started", map[string]interface{}{
		"interval":     interval.String(),
		"idle_timeout": r.idleTimeout.String(),
	})

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweeper stopped", nil)
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Info("Swept idle sessions", map[string]interface{}{
					"removed":   n,
					"remaining": r.Len(),
				})
			}
		}
	}
}
