package inject

import (
	"context"

	"github.com/TechnoJays/robot2017/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetPowerFunc func(ctx context.Context, powerPct float64) error
	PowerFunc    func(ctx context.Context) (float64, error)
}

// SetPower calls the injected SetPower or the real version.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if m.SetPowerFunc == nil {
		return m.Motor.SetPower(ctx, powerPct)
	}
	return m.SetPowerFunc(ctx, powerPct)
}

// Power calls the injected Power or the real version.
func (m *Motor) Power(ctx context.Context) (float64, error) {
	if m.PowerFunc == nil {
		return m.Motor.Power(ctx)
	}
	return m.PowerFunc(ctx)
}
