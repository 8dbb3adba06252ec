// Package fake implements a fake encoder.
package fake

import (
	"context"
	"sync"

	"github.com/TechnoJays/robot2017/components/encoder"
)

var _ encoder.Encoder = &Encoder{}

// Encoder keeps track of a fake shaft position.
type Encoder struct {
	mu       sync.Mutex
	position int64
}

// TicksCount returns the current position in terms of ticks.
func (e *Encoder) TicksCount(ctx context.Context) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position, nil
}

// Reset zeroes the position.
func (e *Encoder) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = 0
	return nil
}

// SetPosition sets the position of the encoder.
func (e *Encoder) SetPosition(ctx context.Context, position int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = position
	return nil
}

// AddTicks moves the position by delta ticks.
func (e *Encoder) AddTicks(delta int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position += delta
}
