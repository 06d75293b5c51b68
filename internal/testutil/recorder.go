package testutil

import (
	"sync"
	"testing"
	"time"
)

// Recorder collects notifications per user. E is the event type of the
// notifier interface under test. Thread-safe.
type Recorder[E any] struct {
	mu     sync.Mutex
	events []Delivery[E]
}

// Delivery is one recorded notification.
type Delivery[E any] struct {
	User  string
	Event E
}

// NewRecorder creates an empty recorder.
func NewRecorder[E any]() *Recorder[E] {
	return &Recorder[E]{}
}

// Notify records ev for user.
func (r *Recorder[E]) Notify(user string, ev E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Delivery[E]{User: user, Event: ev})
}

// All returns a copy of every recorded delivery.
func (r *Recorder[E]) All() []Delivery[E] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery[E], len(r.events))
	copy(out, r.events)
	return out
}

// For returns the events delivered to user.
func (r *Recorder[E]) For(user string) []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []E
	for _, d := range r.events {
		if d.User == user {
			out = append(out, d.Event)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder[E]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Of returns the events of type T delivered to user ("" for any user).
func Of[T any, E any](r *Recorder[E], user string) []T {
	var out []T
	for _, d := range r.All() {
		if user != "" && d.User != user {
			continue
		}
		if ev, ok := any(d.Event).(T); ok {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns how many events of type T were delivered to user ("" for any user).
func Count[T any, E any](r *Recorder[E], user string) int {
	return len(Of[T](r, user))
}

// WaitFor polls check until it returns true or timeout elapses.
func WaitFor(tb testing.TB, timeout time.Duration, check func() bool) {
	tb.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !check() {
		tb.Fatalf("condition not met within %v", timeout)
	}
}
