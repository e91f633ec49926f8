// Package session keeps the in-memory registry of built graph snapshots.
// A session is created by an upload-and-extract run and lives until it is
// deleted or the process exits.
package session

import (
	"sync"
	"time"

	"github.com/atlasgraph/atlas/pkg/graph"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Session couples an immutable graph handle with its metadata. The Handle
// is never mutated after creation, so sessions can be read concurrently;
// only the registry map itself needs locking.
type Session struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Handle    *graph.Handle `json:"-"`
}

// Registry is a concurrency-safe session store.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Add stores a new session for the given handle and returns it.
func (r *Registry) Add(name string, handle *graph.Handle) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Handle:    handle,
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.order = append(r.order, id)
	r.mu.Unlock()

	return s, nil
}

// Get returns the session for an ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all sessions in creation order.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.sessions[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
