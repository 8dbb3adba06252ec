// Package gyro defines single-axis rate gyroscopes that integrate to an angle.
package gyro

import "context"

// A Gyro reports the accumulated rotation about one axis, in degrees.
// Clockwise is positive. The angle is not wrapped to a single turn.
type Gyro interface {
	Angle(ctx context.Context) (float64, error)

	// Reset sets the current heading as zero.
	Reset(ctx context.Context) error
}

// DefaultSensitivity is the volts per degree per second of the analog gyro
// used on the drivetrain.
const DefaultSensitivity = 0.007
