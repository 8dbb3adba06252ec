// Package fake implements a fake motor.
package fake

import (
	"context"
	"sync"

	"github.com/TechnoJays/robot2017/components/motor"
)

var _ motor.Motor = &Motor{}

// A Motor remembers the last power written to it.
type Motor struct {
	mu      sync.Mutex
	Channel int
	power   float64
	writes  int
}

// NewMotor returns a stopped fake motor on the given PWM channel.
func NewMotor(channel int) *Motor {
	return &Motor{Channel: channel}
}

// SetPower records powerPct.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if err := motor.CheckPower(powerPct); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.power = powerPct
	m.writes++
	return nil
}

// Power returns the last power written.
func (m *Motor) Power(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.power, nil
}

// Writes returns how many times SetPower succeeded.
func (m *Motor) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
