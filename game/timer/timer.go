// Package timer holds the repeating tick source that paces a running game.
package timer

import (
	"sync"
	"time"
)

// Timer is a repeating tick source that can be re-armed and cancelled.
type Timer interface {
	// C delivers one value per tick. It is nil once the timer is stopped.
	C() <-chan time.Time
	// Reset re-arms the timer at a new interval.
	Reset(d time.Duration)
	// Stop releases the timer. Safe to call more than once.
	Stop()
	Interval() time.Duration
}

// Factory arms a new timer firing every d.
type Factory func(d time.Duration) Timer

// Ticker is a Timer backed by time.Ticker.
type Ticker struct {
	ticker   *time.Ticker
	interval time.Duration
	stopped  bool
}

func NewTicker(d time.Duration) Timer {
	return &Ticker{ticker: time.NewTicker(d), interval: d}
}

func (t *Ticker) C() <-chan time.Time {
	if t.stopped {
		return nil
	}
	return t.ticker.C
}

func (t *Ticker) Reset(d time.Duration) {
	if t.stopped || d == t.interval {
		return
	}
	t.ticker.Reset(d)
	t.interval = d
}

func (t *Ticker) Stop() {
	if t.stopped {
		return
	}
	t.ticker.Stop()
	t.stopped = true
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Manual is a Timer fired by hand with Fire. Used by tests and the headless
// runner, which step the game without waiting on wall-clock time.
type Manual struct {
	mu       sync.Mutex
	ch       chan time.Time
	interval time.Duration
	resets   int
	stopped  bool
}

func NewManual(d time.Duration) *Manual {
	return &Manual{ch: make(chan time.Time, 1), interval: d}
}

// ManualFactory returns a Factory that records every timer it arms.
func ManualFactory(armed *[]*Manual) Factory {
	return func(d time.Duration) Timer {
		m := NewManual(d)
		*armed = append(*armed, m)
		return m
	}
}

func (m *Manual) C() <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil
	}
	return m.ch
}

// Fire queues one tick. It reports false if the timer is stopped or a tick
// is already waiting.
func (m *Manual) Fire() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return false
	}
	select {
	case m.ch <- time.Now():
		return true
	default:
		return false
	}
}

func (m *Manual) Reset(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped || d == m.interval {
		return
	}
	m.interval = d
	m.resets++
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *Manual) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Resets counts the Reset calls that changed the interval.
func (m *Manual) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

func (m *Manual) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
