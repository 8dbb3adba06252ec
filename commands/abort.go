package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
)

// Abort stops the drivetrain once and finishes. It ends every autonomous
// routine.
type Abort struct {
	command.Base
	drive   ArcadeDriver
	ranOnce bool
}

// NewAbort returns an Abort command. It has no timeout unless one is given.
func NewAbort(drive ArcadeDriver, opts ...command.Option) *Abort {
	c := &Abort{drive: drive}
	c.Base = command.NewBase(c, opts...)
	c.Requires(drive)
	return c
}

// Initialize rearms the command.
func (c *Abort) Initialize(ctx context.Context) {
	c.ranOnce = false
}

// Execute stops the drivetrain.
func (c *Abort) Execute(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, 0)
	c.ranOnce = true
}

// IsFinished reports whether Execute ran.
func (c *Abort) IsFinished(ctx context.Context) bool {
	return c.ranOnce || c.IsTimedOut()
}

// End does nothing.
func (c *Abort) End(ctx context.Context) {}

// Interrupted does nothing.
func (c *Abort) Interrupted(ctx context.Context) {}

// DoNothing never finishes on its own. It runs until its timeout, which
// defaults to DefaultTimeout, or until it is pre-empted.
type DoNothing struct {
	command.Base
}

// NewDoNothing returns a DoNothing command requiring the given subsystems.
func NewDoNothing(requires []command.Subsystem, opts ...command.Option) *DoNothing {
	c := &DoNothing{}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(requires...)
	return c
}

// Initialize does nothing.
func (c *DoNothing) Initialize(ctx context.Context) {}

// Execute does nothing.
func (c *DoNothing) Execute(ctx context.Context) {}

// IsFinished reports whether the command timed out.
func (c *DoNothing) IsFinished(ctx context.Context) bool {
	return c.IsTimedOut()
}

// End does nothing.
func (c *DoNothing) End(ctx context.Context) {}

// Interrupted does nothing.
func (c *DoNothing) Interrupted(ctx context.Context) {}
