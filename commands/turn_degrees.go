package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/utils"
)

// TurnDegrees turns in place until the gyro has moved by a signed number of
// degrees, within a threshold. Positive changes turn clockwise.
type TurnDegrees struct {
	command.Base
	drive     GyroDriver
	change    float64
	speed     float64
	threshold float64
	target    float64
}

// NewTurnDegrees returns a TurnDegrees command. The timeout defaults to
// DefaultTimeout.
func NewTurnDegrees(drive GyroDriver, change, speed, threshold float64, opts ...command.Option) *TurnDegrees {
	c := &TurnDegrees{drive: drive, change: change, speed: speed, threshold: threshold}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(drive)
	return c
}

// Change returns the requested heading change.
func (c *TurnDegrees) Change() float64 {
	return c.change
}

// Speed returns the speed magnitude.
func (c *TurnDegrees) Speed() float64 {
	return c.speed
}

// Threshold returns the accepted heading error in degrees.
func (c *TurnDegrees) Threshold() float64 {
	return c.threshold
}

// Target returns the heading captured at the last Initialize.
func (c *TurnDegrees) Target() float64 {
	return c.target
}

// Initialize sets the target relative to the current heading.
func (c *TurnDegrees) Initialize(ctx context.Context) {
	c.target = c.drive.GyroAngle(ctx) + c.change
}

// Execute turns toward the target.
func (c *TurnDegrees) Execute(ctx context.Context) {
	turnToward(ctx, c.drive, c.target, c.speed)
}

// IsFinished reports whether the heading is within the threshold of the
// target or the command timed out.
func (c *TurnDegrees) IsFinished(ctx context.Context) bool {
	return utils.WithinThreshold(c.target, c.drive.GyroAngle(ctx), c.threshold) || c.IsTimedOut()
}

// End stops the drivetrain.
func (c *TurnDegrees) End(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *TurnDegrees) Interrupted(ctx context.Context) {
	c.End(ctx)
}

// TurnDegreesAbsolute turns in place to an absolute gyro heading.
type TurnDegreesAbsolute struct {
	command.Base
	drive     GyroDriver
	target    float64
	speed     float64
	threshold float64
}

// NewTurnDegreesAbsolute returns a TurnDegreesAbsolute command. The timeout
// defaults to DefaultTimeout.
func NewTurnDegreesAbsolute(drive GyroDriver, target, speed, threshold float64, opts ...command.Option) *TurnDegreesAbsolute {
	c := &TurnDegreesAbsolute{drive: drive, target: target, speed: speed, threshold: threshold}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(drive)
	return c
}

// Target returns the heading to turn to.
func (c *TurnDegreesAbsolute) Target() float64 {
	return c.target
}

// Initialize does nothing.
func (c *TurnDegreesAbsolute) Initialize(ctx context.Context) {}

// Execute turns toward the target.
func (c *TurnDegreesAbsolute) Execute(ctx context.Context) {
	turnToward(ctx, c.drive, c.target, c.speed)
}

// IsFinished reports whether the heading is within the threshold of the
// target or the command timed out.
func (c *TurnDegreesAbsolute) IsFinished(ctx context.Context) bool {
	return utils.WithinThreshold(c.target, c.drive.GyroAngle(ctx), c.threshold) || c.IsTimedOut()
}

// End stops the drivetrain.
func (c *TurnDegreesAbsolute) End(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *TurnDegreesAbsolute) Interrupted(ctx context.Context) {
	c.End(ctx)
}

func turnToward(ctx context.Context, drive GyroDriver, target, speed float64) {
	remaining := target - drive.GyroAngle(ctx)
	drive.ArcadeDrive(ctx, 0, speed*direction(remaining, 1))
}
