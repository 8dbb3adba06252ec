// Package stopwatch measures elapsed time the way a hand-held stopwatch does.
package stopwatch

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Stopwatch measures the time between Start and Stop. While running, the
// current time is used as the end point. A Stopwatch that was never started
// has no elapsed time.
//
// A Stopwatch is not safe for concurrent use.
type Stopwatch struct {
	clk     clock.Clock
	start   time.Time
	end     time.Time
	running bool
}

// New returns a Stopwatch backed by the wall clock.
func New() *Stopwatch {
	return NewWithClock(clock.New())
}

// NewWithClock returns a Stopwatch reading time from clk.
func NewWithClock(clk clock.Clock) *Stopwatch {
	return &Stopwatch{clk: clk}
}

// Start marks the current time as the starting time and clears any
// previously recorded end time.
func (s *Stopwatch) Start() {
	s.start = s.clk.Now()
	s.end = time.Time{}
	s.running = true
}

// Reset moves the starting time to now and clears the end time. It does not
// change whether the stopwatch is running.
func (s *Stopwatch) Reset() {
	s.start = s.clk.Now()
	s.end = time.Time{}
}

// Stop freezes the elapsed time. Stopping a stopwatch that is not running
// does nothing.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.end = s.clk.Now()
	s.running = false
}

// Running reports whether the stopwatch has been started and not stopped.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the time between start and end. The second return value
// is false when there is nothing to measure: the stopwatch was never started,
// or it was reset while stopped.
func (s *Stopwatch) Elapsed() (time.Duration, bool) {
	if s.running {
		s.end = s.clk.Now()
	}
	if s.start.IsZero() || s.end.IsZero() {
		return 0, false
	}
	return s.end.Sub(s.start), true
}

// ElapsedSeconds is Elapsed in floating point seconds.
func (s *Stopwatch) ElapsedSeconds() (float64, bool) {
	elapsed, ok := s.Elapsed()
	return elapsed.Seconds(), ok
}

// ElapsedMilliseconds is Elapsed in floating point milliseconds.
func (s *Stopwatch) ElapsedMilliseconds() (float64, bool) {
	elapsed, ok := s.Elapsed()
	return float64(elapsed) / float64(time.Millisecond), ok
}
