package stopwatch

import (
	"sync"
	"time"
)

// Stopwatch measures active wall-clock time with pause/resume support and
// can fire a callback once a budget of active time has been spent.
type Stopwatch struct {
	mu sync.Mutex

	budget   time.Duration
	onBudget func()
	timer    *time.Timer
	gen      uint64
	fired    bool

	started       bool
	paused        bool
	lastStartTime time.Time
	activeElapsed time.Duration
}

// New creates a Stopwatch. A zero budget or a nil onBudget disables the
// callback.
func New(budget time.Duration, onBudget func()) *Stopwatch {
	return &Stopwatch{
		budget:   budget,
		onBudget: onBudget,
	}
}

// Start starts the stopwatch. It has no effect once started.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	s.lastStartTime = time.Now()
	s.armLocked(s.budget)
}

// Pause stops counting. It has no effect if the stopwatch is not running.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.paused {
		return
	}
	s.disarmLocked()
	s.activeElapsed += time.Since(s.lastStartTime)
	s.paused = true
}

// Resume continues counting after Pause.
func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.paused {
		return
	}
	s.paused = false
	s.lastStartTime = time.Now()
	s.armLocked(s.budget - s.activeElapsed)
}

// Reset clears the elapsed time and starts counting again from zero. The
// budget callback may fire again afterwards.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked()
	s.started = true
	s.paused = false
	s.fired = false
	s.activeElapsed = 0
	s.lastStartTime = time.Now()
	s.armLocked(s.budget)
}

// Elapsed returns the active time so far.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started && !s.paused {
		return s.activeElapsed + time.Since(s.lastStartTime)
	}
	return s.activeElapsed
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.paused
}

func (s *Stopwatch) armLocked(remaining time.Duration) {
	if s.budget <= 0 || s.onBudget == nil || s.fired {
		return
	}
	if remaining <= 0 {
		s.fired = true
		go s.onBudget()
		return
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(remaining, func() { s.expire(gen) })
}

func (s *Stopwatch) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire runs on the timer goroutine. A timer that was stopped after it had
// already fired carries a stale generation and is ignored.
func (s *Stopwatch) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.fired || s.paused {
		s.mu.Unlock()
		return
	}
	s.fired = true
	s.timer = nil
	s.mu.Unlock()

	s.onBudget()
}
