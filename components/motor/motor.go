// Package motor defines speed controllers driven by a signed power fraction.
package motor

import (
	"context"
	"math"

	"go.uber.org/multierr"
)

// A Motor is a PWM speed controller. Power is a fraction of full output in
// [-1, 1]; the sign selects the direction.
type Motor interface {
	// SetPower sets the output power. Values outside [-1, 1] are rejected.
	SetPower(ctx context.Context, powerPct float64) error

	// Power returns the last power written.
	Power(ctx context.Context) (float64, error)
}

// CheckPower returns an error if powerPct is not a valid power fraction.
func CheckPower(powerPct float64) error {
	if math.IsNaN(powerPct) || math.Abs(powerPct) > 1 {
		return NewPowerOutOfRangeError(powerPct)
	}
	return nil
}

// Inverted wraps m so that every power written and read is negated. It is
// how a motor mounted facing the other way is configured.
func Inverted(m Motor) Motor {
	return &inverted{m}
}

type inverted struct {
	Motor
}

func (m *inverted) SetPower(ctx context.Context, powerPct float64) error {
	return m.Motor.SetPower(ctx, -powerPct)
}

func (m *inverted) Power(ctx context.Context) (float64, error) {
	p, err := m.Motor.Power(ctx)
	return -p, err
}

// Stop sets the power of every non-nil motor to zero, continuing past
// failures.
func Stop(ctx context.Context, motors ...Motor) error {
	var err error
	for _, m := range motors {
		if m == nil {
			continue
		}
		err = multierr.Append(err, m.SetPower(ctx, 0))
	}
	return err
}
