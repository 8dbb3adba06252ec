package inject

import (
	"context"

	"github.com/TechnoJays/robot2017/oi"
)

// Joystick is an injected joystick.
type Joystick struct {
	oi.Joystick
	RawAxisFunc   func(ctx context.Context, index int) (float64, error)
	RawButtonFunc func(ctx context.Context, index int) (bool, error)
	POVFunc       func(ctx context.Context) (int, error)
}

// RawAxis calls the injected RawAxis or the real version.
func (j *Joystick) RawAxis(ctx context.Context, index int) (float64, error) {
	if j.RawAxisFunc == nil {
		return j.Joystick.RawAxis(ctx, index)
	}
	return j.RawAxisFunc(ctx, index)
}

// RawButton calls the injected RawButton or the real version.
func (j *Joystick) RawButton(ctx context.Context, index int) (bool, error) {
	if j.RawButtonFunc == nil {
		return j.Joystick.RawButton(ctx, index)
	}
	return j.RawButtonFunc(ctx, index)
}

// POV calls the injected POV or the real version.
func (j *Joystick) POV(ctx context.Context) (int, error) {
	if j.POVFunc == nil {
		return j.Joystick.POV(ctx)
	}
	return j.POVFunc(ctx)
}
