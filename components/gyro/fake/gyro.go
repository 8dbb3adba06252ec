// Package fake implements a fake gyro.
package fake

import (
	"context"
	"sync"

	"github.com/TechnoJays/robot2017/components/gyro"
)

var _ gyro.Gyro = &Gyro{}

// Gyro holds an angle set by tests or the simulator.
type Gyro struct {
	mu    sync.Mutex
	angle float64
}

// Angle returns the current angle in degrees.
func (g *Gyro) Angle(ctx context.Context) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.angle, nil
}

// Reset zeroes the angle.
func (g *Gyro) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.angle = 0
	return nil
}

// SetAngle sets the angle in degrees.
func (g *Gyro) SetAngle(angle float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.angle = angle
}

// Rotate adds delta degrees to the angle.
func (g *Gyro) Rotate(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.angle += delta
}
