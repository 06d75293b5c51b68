package battle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Registry holds the battles of the server. Thread-safe.
type Registry struct {
	mu      sync.RWMutex
	battles map[string]*Battle // battleID → Battle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{battles: make(map[string]*Battle, 16)}
}

// Create creates a battle and registers it.
func (r *Registry) Create(opts Options) (*Battle, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.battles[b.id]; exists {
		b.Close()
		return nil, fmt.Errorf("registering battle %s: duplicate id", b.id)
	}
	r.battles[b.id] = b
	return b, nil
}

// Get returns a battle by id.
func (r *Registry) Get(id string) (*Battle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.battles[id]
	return b, ok
}

// List returns all battles ordered by title, then id.
func (r *Registry) List() []*Battle {
	r.mu.RLock()
	out := make([]*Battle, 0, len(r.battles))
	for _, b := range r.battles {
		out = append(out, b)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Battle) int {
		if c := strings.Compare(a.title, b.title); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	return out
}

// Len returns the number of registered battles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.battles)
}

// Remove closes and unregisters a battle.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	b, ok := r.battles[id]
	delete(r.battles, id)
	r.mu.Unlock()

	if ok {
		b.Close()
	}
	return ok
}

// ReapEmpty closes every non-persistent battle nobody is in. Returns the number removed.
func (r *Registry) ReapEmpty() int {
	var empty []*Battle
	r.mu.Lock()
	for id, b := range r.battles {
		if !b.persistent && b.Empty() {
			empty = append(empty, b)
			delete(r.battles, id)
		}
	}
	r.mu.Unlock()

	for _, b := range empty {
		b.Close()
	}
	if len(empty) > 0 {
		slog.Info("empty battles reaped", "count", len(empty))
	}
	return len(empty)
}

// Run reaps empty battles every interval until ctx is done, then closes all battles.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return nil
		case <-ticker.C:
			r.ReapEmpty()
		}
	}
}

// CloseAll closes and unregisters every battle.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Battle, 0, len(r.battles))
	for _, b := range r.battles {
		all = append(all, b)
	}
	clear(r.battles)
	r.mu.Unlock()

	for _, b := range all {
		b.Close()
	}
}
