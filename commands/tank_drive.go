package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/oi"
)

// DefaultDPadSpeed is the linear speed at full d-pad deflection.
const DefaultDPadSpeed = 0.75

// TankDrive is the drivetrain's teleop default. The driver's sticks drive
// each side; pressing the d-pad vertically overrides them with a straight
// drive. Holding the right trigger scales the sticks for fine positioning.
type TankDrive struct {
	command.Base
	drive     TankDriver
	operator  Operator
	dpadSpeed float64
	slowScale float64
}

// NewTankDrive returns a TankDrive command with no timeout.
func NewTankDrive(drive TankDriver, operator Operator, opts ...command.Option) *TankDrive {
	c := &TankDrive{drive: drive, operator: operator, dpadSpeed: DefaultDPadSpeed, slowScale: 1}
	c.Base = command.NewBase(c, opts...)
	c.Requires(drive)
	return c
}

// SetDPadSpeed sets the linear speed at full d-pad deflection.
func (c *TankDrive) SetDPadSpeed(speed float64) *TankDrive {
	c.dpadSpeed = speed
	return c
}

// SetSlowScale sets the stick scale applied while the right trigger is
// held. 1 disables slow mode.
func (c *TankDrive) SetSlowScale(scale float64) *TankDrive {
	c.slowScale = scale
	return c
}

// Initialize does nothing.
func (c *TankDrive) Initialize(ctx context.Context) {}

// Execute drives from the driver's joystick.
func (c *TankDrive) Execute(ctx context.Context) {
	if dpad := c.operator.Axis(ctx, oi.Driver, oi.DPadY); dpad != 0 {
		c.drive.ArcadeDrive(ctx, c.dpadSpeed*dpad, 0)
		return
	}
	left := c.operator.Axis(ctx, oi.Driver, oi.LeftY)
	right := c.operator.Axis(ctx, oi.Driver, oi.RightY)
	if c.operator.Button(ctx, oi.Driver, oi.RightTrigger) {
		left *= c.slowScale
		right *= c.slowScale
	}
	c.drive.TankDrive(ctx, left, right)
}

// IsFinished is always false.
func (c *TankDrive) IsFinished(ctx context.Context) bool {
	return false
}

// End stops the drivetrain.
func (c *TankDrive) End(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *TankDrive) Interrupted(ctx context.Context) {
	c.End(ctx)
}
