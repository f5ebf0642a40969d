package service

import (
	"context"
	"sync"
	"time"

	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/submission"
)

// RemoteFactory returns a remote API bound to one session's credentials.
type RemoteFactory func(sessionID string) RemoteAPI

type workspace struct {
	catalog  *Catalog
	lastUsed time.Time
}

// Workspaces keeps one Catalog per signed-in session.
type Workspaces struct {
	newRemote RemoteFactory
	builder   *submission.Builder
	log       *logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	catalogs map[string]*workspace
}

func NewWorkspaces(newRemote RemoteFactory, builder *submission.Builder, log *logger.Logger) *Workspaces {
	if log == nil {
		log = logger.Nop()
	}
	return &Workspaces{
		newRemote: newRemote,
		builder:   builder,
		log:       log,
		now:       time.Now,
		catalogs:  make(map[string]*workspace),
	}
}

// Get returns the session's catalog, creating it on first use.
func (w *Workspaces) Get(sessionID string) *Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ws, ok := w.catalogs[sessionID]; ok {
		ws.lastUsed = w.now()
		return ws.catalog
	}
	c := NewCatalog(w.newRemote(sessionID), w.builder, w.log.With("session", sessionID))
	w.catalogs[sessionID] = &workspace{catalog: c, lastUsed: w.now()}
	return c
}

// Drop forgets the session's catalog.
func (w *Workspaces) Drop(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.catalogs, sessionID)
}

func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.catalogs)
}

// Sweep drops catalogs not used for longer than idle and returns how many
// went. Sessions that expire in the store never log out, so this is how
// their catalogs are released.
func (w *Workspaces) Sweep(idle time.Duration) int {
	cutoff := w.now().Add(-idle)
	w.mu.Lock()
	defer w.mu.Unlock()
	dropped := 0
	for id, ws := range w.catalogs {
		if ws.lastUsed.Before(cutoff) {
			delete(w.catalogs, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (w *Workspaces) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := w.Sweep(idle); n > 0 {
				w.log.Info("dropped idle catalogs", "count", n)
			}
		}
	}
}
