package motor

import "github.com/pkg/errors"

// NewPowerOutOfRangeError returns an error for a power outside [-1, 1].
func NewPowerOutOfRangeError(powerPct float64) error {
	return errors.Errorf("motor power %v is outside [-1, 1]", powerPct)
}
