package perception

import (
	"sync"
	"time"
)

// Scheduler rate-limits detection dispatch. It fires only when the gate is
// ready, no detection is in flight, and the minimum interval since the last
// fire has passed. This is admission control for an expensive inference
// call: frames may arrive at >10 Hz, detection runs at most once per
// interval.
//
// The scheduler owns its state outright; there are no shared flags. The
// mutex covers the one cross-goroutine touch point, the worker calling
// Done when a detection completes.
type Scheduler struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastFire    time.Time
	inFlight    bool
}

// SchedulerState is a snapshot for inspection and the dashboard.
type SchedulerState struct {
	LastFireMs int64 `json:"last_fire_ms"`
	InFlight   bool  `json:"in_flight"`
}

// NewScheduler creates a scheduler from the pipeline configuration.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{minInterval: cfg.MinDetectionInterval}
}

// TryFire reports whether a detection should be dispatched now. When it
// returns true the scheduler has already marked itself in flight and
// recorded the fire time, so the caller must dispatch and eventually call
// Done. The interval check is strict: spacing exactly equal to the minimum
// does not fire.
func (s *Scheduler) TryFire(now time.Time, gate GateState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gate != GateReady || s.inFlight {
		return false
	}
	if !s.lastFire.IsZero() && now.Sub(s.lastFire) <= s.minInterval {
		return false
	}

	s.inFlight = true
	s.lastFire = now
	return true
}

// Done marks the in-flight detection complete. Called on success and on
// failure; a detection cycle must never leave the scheduler stuck.
func (s *Scheduler) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// SetMinInterval updates the minimum detection spacing at runtime.
func (s *Scheduler) SetMinInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minInterval = d
}

// MinInterval returns the current minimum detection spacing.
func (s *Scheduler) MinInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minInterval
}

// Snapshot returns the current scheduler state.
func (s *Scheduler) Snapshot() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := SchedulerState{InFlight: s.inFlight}
	if !s.lastFire.IsZero() {
		state.LastFireMs = s.lastFire.UnixMilli()
	}
	return state
}
