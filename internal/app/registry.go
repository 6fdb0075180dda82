package app

import "sync"

// Registry maps session ids to their App.
type Registry struct {
	opts Options

	apps   map[string]*App
	appsMu sync.RWMutex
}

// NewRegistry creates an empty registry. Every App it creates uses opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, apps: make(map[string]*App)}
}

// Get returns the App of a session, creating it on first use.
func (r *Registry) Get(id string) *App {
	r.appsMu.RLock()
	a, ok := r.apps[id]
	r.appsMu.RUnlock()
	if ok {
		return a
	}

	r.appsMu.Lock()
	defer r.appsMu.Unlock()
	if a, ok := r.apps[id]; ok {
		return a
	}
	a = New(id, r.opts)
	r.apps[id] = a
	return a
}

// Lookup returns the App of a session if one exists.
func (r *Registry) Lookup(id string) (*App, bool) {
	r.appsMu.RLock()
	defer r.appsMu.RUnlock()
	a, ok := r.apps[id]
	return a, ok
}

// Drop forgets the given sessions and stops their timers.
func (r *Registry) Drop(ids ...string) {
	r.appsMu.Lock()
	defer r.appsMu.Unlock()
	for _, id := range ids {
		if a, ok := r.apps[id]; ok {
			a.Close()
			delete(r.apps, id)
		}
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.appsMu.RLock()
	defer r.appsMu.RUnlock()
	return len(r.apps)
}

// Close stops every session's timers and empties the registry.
func (r *Registry) Close() {
	r.appsMu.Lock()
	defer r.appsMu.Unlock()
	for id, a := range r.apps {
		a.Close()
		delete(r.apps, id)
	}
}
