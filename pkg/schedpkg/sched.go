// Package schedpkg provides explicit task scheduling with cancellation.
//
// The core packages express time-driven behavior as plain state transitions;
// a Scheduler is what actually invokes them. Production code uses the
// time-based implementation, tests drive transitions directly or use Manual.
package schedpkg

import (
	"sync"
	"time"
)

// CancelFunc cancels a scheduled task. Calling it after the task has fired
// is a no-op. It reports whether the call prevented the task from firing.
type CancelFunc func() bool

// Scheduler schedules one-shot and repeating tasks.
type Scheduler interface {
	// After runs f once after d.
	After(d time.Duration, f func()) CancelFunc
	// Every runs f repeatedly with period d until cancelled.
	Every(d time.Duration, f func()) CancelFunc
}

// TimeScheduler implements Scheduler on top of the runtime timers.
type TimeScheduler struct{}

// New returns the time-based Scheduler used in production.
func New() TimeScheduler { return TimeScheduler{} }

// After implements Scheduler.
func (TimeScheduler) After(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Every implements Scheduler.
func (TimeScheduler) Every(d time.Duration, f func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				f()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once

	return func() bool {
		fired := false

		once.Do(func() {
			ticker.Stop()
			close(done)
			fired = true
		})

		return fired
	}
}

// Manual is a Scheduler for tests: tasks fire only when Advance is called.
type Manual struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	f         func()
	repeat    bool
	cancelled bool
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual { return &Manual{} }

// After implements Scheduler.
func (m *Manual) After(_ time.Duration, f func()) CancelFunc {
	return m.add(f, false)
}

// Every implements Scheduler.
func (m *Manual) Every(_ time.Duration, f func()) CancelFunc {
	return m.add(f, true)
}

func (m *Manual) add(f func(), repeat bool) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &manualTask{f: f, repeat: repeat}
	m.tasks = append(m.tasks, task)

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()

		was := task.cancelled
		task.cancelled = true

		return !was
	}
}

// Advance fires every pending task once, in scheduling order. One-shot tasks
// are consumed, repeating tasks stay scheduled.
func (m *Manual) Advance() {
	m.mu.Lock()

	pending := make([]*manualTask, len(m.tasks))
	copy(pending, m.tasks)

	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.repeat && !t.cancelled {
			kept = append(kept, t)
		}
	}
	m.tasks = kept

	m.mu.Unlock()

	// Fire outside the lock so tasks may schedule or cancel freely.
	for _, t := range pending {
		if !t.cancelled {
			t.f()
		}
	}
}
