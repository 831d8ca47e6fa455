package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"datadict/internal/view"
)

// Registry holds one editor session per browser session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*view.Session
	machine  view.Machine
	pageSize int
	ttl      time.Duration
	logger   *slog.Logger
}

// NewRegistry returns an empty registry. Sessions idle longer than ttl are
// dropped by Sweep; a ttl of 0 keeps them forever.
func NewRegistry(m view.Machine, pageSize int, ttl time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*view.Session),
		machine:  m,
		pageSize: pageSize,
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *view.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = view.NewSession(r.machine, r.pageSize, r.logger.With("session", id))
		r.sessions[id] = s
		r.logger.Debug("session created", "session", id, "sessions", len(r.sessions))
	}
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions last used before now minus the ttl and returns how
// many it dropped.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Info("expired idle sessions", "expired", n, "sessions", len(r.sessions))
	}
	return n
}

// Janitor sweeps every interval until ctx is done.
func (r *Registry) Janitor(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			r.Sweep(now)
		}
	}
}
