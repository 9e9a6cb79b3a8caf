// Engine drives the simulation forward in simulated hours.
package clock

import (
	"log/slog"
	"sync"
	"time"
)

// Engine advances camp time and invokes the hourly and daily callbacks.
// The simulation subsystems are callback-driven and never own the loop;
// duplicate deliveries are tolerated downstream via watermarks.
//
// Step holds the engine mutex while the callbacks run, so every observer
// reading session state from another goroutine must go through Sync.
type Engine struct {
	mu sync.Mutex

	Now      CampTime      // Current simulated time.
	Speed    float64       // Multiplier: 1.0 = one sim-hour per Interval, 0 = paused.
	Interval time.Duration // Real-time length of one sim-hour at speed 1.
	Running  bool

	// Callbacks populated during setup.
	OnHour func(t CampTime) // Every sim-hour.
	OnDay  func(day int)    // At the first hour of each new day.
}

// NewEngine creates an engine with default pacing.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.mu.Lock()
	e.Running = true
	slog.Info("camp clock started", "time", e.Now.String(), "speed", e.Speed)
	e.mu.Unlock()

	for {
		e.mu.Lock()
		running, speed := e.Running, e.Speed
		e.mu.Unlock()

		if !running {
			break
		}
		if speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.Step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	e.Sync(func() {
		slog.Info("camp clock stopped", "time", e.Now.String())
	})
}

// Stop halts the loop after the current step.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.Running = false
	e.mu.Unlock()
}

// Step advances simulated time by one hour and fires callbacks.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Now.Hour++
	if e.Now.Hour >= 24 {
		e.Now.Hour = 0
		e.Now.Day++
		if e.OnDay != nil {
			e.OnDay(e.Now.Day)
		}
	}
	if e.OnHour != nil {
		e.OnHour(e.Now)
	}
}

// Sync runs fn between steps, holding the engine mutex. Cross-goroutine
// readers of clock or session state go through here.
func (e *Engine) Sync(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}
