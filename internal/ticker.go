package internal

import (
	"sync"
	"time"
)

// Ticker delivers one callback per elapsed second until cancelled.
// Cancel must not block and must be safe to call from inside the callback.
type Ticker interface {
	OnTick(fn func(time.Time))
	Cancel()
}

// TickerFactory creates a fresh Ticker for every run of a session.
type TickerFactory func() Ticker

// SecondTicker schedules ticks on a time.Ticker goroutine
type SecondTicker struct {
	interval time.Duration
	stopCh   chan struct{}
	once     sync.Once
}

// NewSecondTicker returns a Ticker firing every interval (one second when zero).
func NewSecondTicker(interval time.Duration) *SecondTicker {
	if interval <= 0 {
		interval = time.Second
	}
	return &SecondTicker{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnTick starts the ticking goroutine.
func (t *SecondTicker) OnTick(fn func(time.Time)) {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopCh:
				return
			case now := <-ticker.C:
				select {
				case <-t.stopCh:
					return
				default:
				}
				fn(now)
			}
		}
	}()
}

// Cancel stops further ticks.
func (t *SecondTicker) Cancel() {
	t.once.Do(func() { close(t.stopCh) })
}

// ManualTicker fires only when Fire is called. Tests and the bubbletea
// screen use it so ticks run on the caller's goroutine.
type ManualTicker struct {
	mu        sync.Mutex
	fn        func(time.Time)
	cancelled bool
}

// NewManualTicker returns an idle ManualTicker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{}
}

func (t *ManualTicker) OnTick(fn func(time.Time)) {
	t.mu.Lock()
	t.fn = fn
	t.mu.Unlock()
}

func (t *ManualTicker) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

// Fire invokes the callback once and reports whether it ran.
func (t *ManualTicker) Fire(now time.Time) bool {
	t.mu.Lock()
	fn := t.fn
	active := fn != nil && !t.cancelled
	t.mu.Unlock()

	if !active {
		return false
	}
	fn(now)
	return true
}

// Cancelled reports whether Cancel was called.
func (t *ManualTicker) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// ManualTickers is a TickerFactory that keeps the most recent ManualTicker
// so the owner can drive it.
type ManualTickers struct {
	mu      sync.Mutex
	current *ManualTicker
}

// New satisfies TickerFactory when passed as a method value.
func (m *ManualTickers) New() Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = NewManualTicker()
	return m.current
}

// Fire ticks the current ticker, if any.
func (m *ManualTickers) Fire(now time.Time) bool {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil {
		return false
	}
	return current.Fire(now)
}
