package internal

import (
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EngineOptions configures the Session Engine collaborators.
type EngineOptions struct {
	Clock   Clock
	Tickers TickerFactory
	IDs     func() string
}

// Engine is the countdown state machine. Every transition happens under a
// single mutex; completion handlers run after the lock is released.
type Engine struct {
	mu        sync.Mutex
	clock     Clock
	newTicker TickerFactory
	newID     func() string
	remaining int
	initial   int
	status    Status
	ticker    Ticker
	handlers  []func(Completion)
}

// NewEngine creates an idle engine armed with the default session length.
func NewEngine(options EngineOptions) *Engine {
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Tickers == nil {
		options.Tickers = func() Ticker { return NewSecondTicker(time.Second) }
	}
	if options.IDs == nil {
		options.IDs = uuid.NewString
	}

	engine := &Engine{
		clock:     options.Clock,
		newTicker: options.Tickers,
		newID:     options.IDs,
	}
	engine.resetLocked()
	return engine
}

// OnComplete registers a handler for completion events.
func (engine *Engine) OnComplete(fn func(Completion)) {
	engine.mu.Lock()
	engine.handlers = append(engine.handlers, fn)
	engine.mu.Unlock()
}

// State returns a snapshot of the live session.
func (engine *Engine) State() SessionState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return SessionState{
		Remaining: engine.remaining,
		Initial:   engine.initial,
		Status:    engine.status,
	}
}

// Configure sets the session length. Only allowed while idle.
func (engine *Engine) Configure(totalSeconds int) error {
	if totalSeconds <= 0 {
		return &DurationError{Input: strconv.Itoa(totalSeconds), Err: fmt.Errorf("must be positive")}
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.status == StatusRunning {
		return ErrSessionRunning
	}
	engine.remaining = totalSeconds
	engine.initial = totalSeconds
	return nil
}

// Start begins or resumes the countdown. An exhausted timer re-arms to the
// default length first.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.status == StatusRunning {
		return
	}
	if engine.remaining == 0 {
		engine.remaining = DefaultSessionSeconds
		engine.initial = DefaultSessionSeconds
	}
	engine.status = StatusRunning

	ticker := engine.newTicker()
	engine.ticker = ticker
	ticker.OnTick(func(now time.Time) {
		engine.advance(ticker, now)
	})
	LogDebug("session started with %s remaining", FormatClock(engine.remaining))
}

// Pause stops the countdown without touching the remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.status != StatusRunning {
		return
	}
	engine.stopTickerLocked()
	engine.status = StatusIdle
	LogDebug("session paused at %s", FormatClock(engine.remaining))
}

// Tick advances a running session by one second. It is a no-op otherwise.
func (engine *Engine) Tick() {
	engine.advance(nil, engine.clock.Now())
}

// Reset discards the session without recording anything.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopTickerLocked()
	engine.resetLocked()
}

// Finish ends the session early, emits the elapsed duration and re-arms the
// default length.
func (engine *Engine) Finish() Completion {
	engine.mu.Lock()
	completion := engine.completeLocked(ReasonFinished, engine.clock.Now())
	engine.mu.Unlock()

	engine.emit(completion)
	return completion
}

func (engine *Engine) advance(source Ticker, now time.Time) {
	engine.mu.Lock()
	if engine.status != StatusRunning || (source != nil && source != engine.ticker) {
		engine.mu.Unlock()
		return
	}
	engine.remaining--
	if engine.remaining > 0 {
		engine.mu.Unlock()
		return
	}
	completion := engine.completeLocked(ReasonExhausted, now)
	engine.mu.Unlock()

	engine.emit(completion)
}

func (engine *Engine) completeLocked(reason CompletionReason, now time.Time) Completion {
	engine.stopTickerLocked()
	engine.status = StatusFinished
	completion := Completion{
		ID:      engine.newID(),
		Seconds: engine.initial - engine.remaining,
		EndedAt: now,
		Reason:  reason,
	}
	engine.resetLocked()
	LogDebug("session %s after %s", reason, FormatClock(completion.Seconds))
	return completion
}

func (engine *Engine) resetLocked() {
	engine.status = StatusIdle
	engine.remaining = DefaultSessionSeconds
	engine.initial = DefaultSessionSeconds
}

func (engine *Engine) stopTickerLocked() {
	if engine.ticker != nil {
		engine.ticker.Cancel()
		engine.ticker = nil
	}
}

func (engine *Engine) emit(completion Completion) {
	engine.mu.Lock()
	handlers := slices.Clone(engine.handlers)
	engine.mu.Unlock()

	for _, fn := range handlers {
		fn(completion)
	}
}
