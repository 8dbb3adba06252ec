// Package fake implements a fake joystick.
package fake

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/TechnoJays/robot2017/oi"
)

var _ oi.Joystick = &Joystick{}

// Joystick holds axis, button and hat values set by tests or a simulator.
type Joystick struct {
	mu      sync.Mutex
	axes    map[int]float64
	buttons map[int]bool
	pov     int
}

// NewJoystick returns a centered joystick with nothing pressed.
func NewJoystick() *Joystick {
	return &Joystick{axes: map[int]float64{}, buttons: map[int]bool{}, pov: -1}
}

// RawAxis returns the value of axis index.
func (j *Joystick) RawAxis(ctx context.Context, index int) (float64, error) {
	if index < 0 {
		return 0, errors.Errorf("invalid axis %d", index)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.axes[index], nil
}

// RawButton returns whether button index is held.
func (j *Joystick) RawButton(ctx context.Context, index int) (bool, error) {
	if index < 1 {
		return false, errors.Errorf("invalid button %d", index)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.buttons[index], nil
}

// POV returns the hat angle.
func (j *Joystick) POV(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pov, nil
}

// SetAxis sets the value of axis index.
func (j *Joystick) SetAxis(index int, value float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.axes[index] = value
}

// SetButton sets whether button index is held.
func (j *Joystick) SetButton(index int, pressed bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.buttons[index] = pressed
}

// SetPOV sets the hat angle; -1 centers it.
func (j *Joystick) SetPOV(degrees int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pov = degrees
}
