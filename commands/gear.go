package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
)

// ReleaseGear holds the gear release in the released position while it is
// scheduled and closes it again when it ends.
type ReleaseGear struct {
	command.Base
	gear GearReleaser
}

// NewReleaseGear returns a ReleaseGear command with no timeout.
func NewReleaseGear(gear GearReleaser, opts ...command.Option) *ReleaseGear {
	c := &ReleaseGear{gear: gear}
	c.Base = command.NewBase(c, opts...)
	c.Requires(gear)
	return c
}

// Initialize does nothing.
func (c *ReleaseGear) Initialize(ctx context.Context) {}

// Execute releases the gear. The release solenoid is active low.
func (c *ReleaseGear) Execute(ctx context.Context) {
	c.gear.SetGearRelease(ctx, false)
}

// IsFinished reports whether the command timed out.
func (c *ReleaseGear) IsFinished(ctx context.Context) bool {
	return c.IsTimedOut()
}

// End closes the gear release.
func (c *ReleaseGear) End(ctx context.Context) {
	c.gear.SetGearRelease(ctx, true)
}

// Interrupted is End.
func (c *ReleaseGear) Interrupted(ctx context.Context) {
	c.End(ctx)
}

// HoldGear is the gear release's default command. It only claims the
// subsystem.
type HoldGear struct {
	command.Base
}

// NewHoldGear returns a HoldGear command.
func NewHoldGear(gear GearReleaser, opts ...command.Option) *HoldGear {
	c := &HoldGear{}
	c.Base = command.NewBase(c, opts...)
	c.Requires(gear)
	return c
}

// Initialize does nothing.
func (c *HoldGear) Initialize(ctx context.Context) {}

// Execute does nothing.
func (c *HoldGear) Execute(ctx context.Context) {}

// IsFinished is always false.
func (c *HoldGear) IsFinished(ctx context.Context) bool {
	return false
}

// End does nothing.
func (c *HoldGear) End(ctx context.Context) {}

// Interrupted does nothing.
func (c *HoldGear) Interrupted(ctx context.Context) {}
