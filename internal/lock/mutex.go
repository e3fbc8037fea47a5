// Package lock provides the per-container exclusive access gate.
//
// A Mutex has at most one holder. RequestLock runs its action immediately when
// the gate is free and nobody is waiting; otherwise the action is queued and
// started by Resume on a later tick, in request order. Holders release with
// ReleaseLock once their exclusive action is over (for example when the menu
// they opened closes). There is no timeout.
package lock

import (
	"sync"

	"github.com/atomicstack/chestsync/internal/logging/events"
)

// Mutex is a single-holder, FIFO-queued gate.
type Mutex struct {
	name string

	mu      sync.Mutex
	held    bool
	waiters []func()
}

// New creates a gate. name only appears in trace output.
func New(name string) *Mutex {
	return &Mutex{name: name}
}

// Name returns the trace label of the gate.
func (m *Mutex) Name() string {
	return m.name
}

// RequestLock runs action now and makes the caller the holder when the gate is
// free, returning true. Otherwise action is queued and false is returned.
func (m *Mutex) RequestLock(action func()) bool {
	m.mu.Lock()
	if m.held || len(m.waiters) > 0 {
		m.waiters = append(m.waiters, action)
		waiting := len(m.waiters)
		m.mu.Unlock()
		events.Lock.Queue(m.name, waiting)
		return false
	}
	m.held = true
	m.mu.Unlock()

	events.Lock.Acquire(m.name)
	run(action)
	return true
}

// ReleaseLock frees the gate. Queued requests start on the next Resume.
func (m *Mutex) ReleaseLock() {
	m.mu.Lock()
	if !m.held {
		m.mu.Unlock()
		return
	}
	m.held = false
	m.mu.Unlock()
	events.Lock.Release(m.name)
}

// Resume hands the gate to the oldest waiter when it is free and runs its
// action. It reports whether a waiter was started.
func (m *Mutex) Resume() bool {
	m.mu.Lock()
	if m.held || len(m.waiters) == 0 {
		m.mu.Unlock()
		return false
	}
	action := m.waiters[0]
	m.waiters[0] = nil
	m.waiters = m.waiters[1:]
	m.held = true
	waiting := len(m.waiters)
	m.mu.Unlock()

	events.Lock.Resume(m.name, waiting)
	run(action)
	return true
}

// IsLocked reports whether the gate has a holder.
func (m *Mutex) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// Waiting returns the number of queued requests.
func (m *Mutex) Waiting() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}

func run(action func()) {
	if action != nil {
		action()
	}
}
