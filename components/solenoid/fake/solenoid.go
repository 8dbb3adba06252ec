// Package fake implements a fake solenoid.
package fake

import (
	"context"
	"sync"

	"github.com/TechnoJays/robot2017/components/solenoid"
)

var _ solenoid.Solenoid = &Solenoid{}

// Solenoid remembers the last state written.
type Solenoid struct {
	mu      sync.Mutex
	Channel int
	on      bool
}

// Set energizes or releases the valve.
func (s *Solenoid) Set(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = on
	return nil
}

// Get returns the last state written.
func (s *Solenoid) Get(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on, nil
}
