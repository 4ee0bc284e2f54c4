package folio

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/folio/content"
)

// Workspace is one admin session's working copy of the document. Edits
// stay here until they are saved to the repository.
type Workspace struct {
	mu      sync.Mutex
	doc     *content.Document
	touched time.Time
}

// Snapshot returns a clone taken under the lock, for rendering.
func (w *Workspace) Snapshot() *content.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.Clone()
}

// Apply runs fn against the working copy while holding the lock.
func (w *Workspace) Apply(fn func(doc *content.Document) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.doc)
}

// Replace swaps the working copy, e.g. after restoring a backup.
func (w *Workspace) Replace(doc *content.Document) {
	w.mu.Lock()
	w.doc = doc
	w.mu.Unlock()
}

// Workspaces tracks the open working copies by id. Idle entries are swept
// after ttl.
type Workspaces struct {
	mu    sync.Mutex
	items map[string]*Workspace
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewWorkspaces starts the idle sweeper.
func NewWorkspaces(ttl time.Duration) *Workspaces {
	ws := &Workspaces{
		items: make(map[string]*Workspace),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go ws.cleanup()
	return ws
}

func (ws *Workspaces) cleanup() {
	ticker := time.NewTicker(ws.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ws.Sweep()
		case <-ws.stop:
			return
		}
	}
}

// Stop ends the sweeper.
func (ws *Workspaces) Stop() {
	ws.once.Do(func() { close(ws.stop) })
}

// Sweep drops workspaces idle for longer than ttl.
func (ws *Workspaces) Sweep() {
	cutoff := ws.now().Add(-ws.ttl)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for id, w := range ws.items {
		w.mu.Lock()
		idle := w.touched.Before(cutoff)
		w.mu.Unlock()
		if idle {
			delete(ws.items, id)
		}
	}
}

// Open stores doc as a new working copy and returns its id.
func (ws *Workspaces) Open(doc *content.Document) string {
	id := uuid.NewString()
	ws.mu.Lock()
	ws.items[id] = &Workspace{doc: doc, touched: ws.now()}
	ws.mu.Unlock()
	return id
}

// Get returns the working copy for id and marks it used.
func (ws *Workspaces) Get(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	ws.mu.Lock()
	w, ok := ws.items[id]
	ws.mu.Unlock()
	if ok {
		w.mu.Lock()
		w.touched = ws.now()
		w.mu.Unlock()
	}
	return w, ok
}

// Drop discards the working copy for id.
func (ws *Workspaces) Drop(id string) {
	ws.mu.Lock()
	delete(ws.items, id)
	ws.mu.Unlock()
}

// Len reports the number of open working copies.
func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}
