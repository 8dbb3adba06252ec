package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/oi"
)

// MoveWinch winds the winch from the scoring controller's right stick. The
// winch only winds forward; pulling the stick back stops it.
type MoveWinch struct {
	command.Base
	winch    WinchMover
	operator Operator
}

// NewMoveWinch returns a MoveWinch command with no timeout.
func NewMoveWinch(winch WinchMover, operator Operator, opts ...command.Option) *MoveWinch {
	c := &MoveWinch{winch: winch, operator: operator}
	c.Base = command.NewBase(c, opts...)
	c.Requires(winch)
	return c
}

// Initialize does nothing.
func (c *MoveWinch) Initialize(ctx context.Context) {}

// Execute follows the stick.
func (c *MoveWinch) Execute(ctx context.Context) {
	speed := c.operator.Axis(ctx, oi.Scoring, oi.RightY)
	if speed < 0 {
		speed = 0
	}
	c.winch.MoveWinch(ctx, speed)
}

// IsFinished is always false.
func (c *MoveWinch) IsFinished(ctx context.Context) bool {
	return false
}

// End stops the winch.
func (c *MoveWinch) End(ctx context.Context) {
	c.winch.MoveWinch(ctx, 0)
}

// Interrupted is End.
func (c *MoveWinch) Interrupted(ctx context.Context) {
	c.End(ctx)
}

// MoveWinchAnalog drives the winch in both directions from the scoring
// controller's right stick, horizontally.
type MoveWinchAnalog struct {
	command.Base
	winch    WinchMover
	operator Operator
}

// NewMoveWinchAnalog returns a MoveWinchAnalog command with no timeout.
func NewMoveWinchAnalog(winch WinchMover, operator Operator, opts ...command.Option) *MoveWinchAnalog {
	c := &MoveWinchAnalog{winch: winch, operator: operator}
	c.Base = command.NewBase(c, opts...)
	c.Requires(winch)
	return c
}

// Initialize does nothing.
func (c *MoveWinchAnalog) Initialize(ctx context.Context) {}

// Execute follows the stick.
func (c *MoveWinchAnalog) Execute(ctx context.Context) {
	c.winch.MoveWinch(ctx, c.operator.Axis(ctx, oi.Scoring, oi.RightX))
}

// IsFinished is always false.
func (c *MoveWinchAnalog) IsFinished(ctx context.Context) bool {
	return false
}

// End stops the winch.
func (c *MoveWinchAnalog) End(ctx context.Context) {
	c.winch.MoveWinch(ctx, 0)
}

// Interrupted is End.
func (c *MoveWinchAnalog) Interrupted(ctx context.Context) {
	c.End(ctx)
}

// ActivateWinch runs the winch at full speed until it is pre-empted or
// times out.
type ActivateWinch struct {
	command.Base
	winch WinchMover
}

// NewActivateWinch returns an ActivateWinch command with no timeout unless
// one is given.
func NewActivateWinch(winch WinchMover, opts ...command.Option) *ActivateWinch {
	c := &ActivateWinch{winch: winch}
	c.Base = command.NewBase(c, opts...)
	c.Requires(winch)
	return c
}

// Initialize does nothing.
func (c *ActivateWinch) Initialize(ctx context.Context) {}

// Execute runs the winch.
func (c *ActivateWinch) Execute(ctx context.Context) {
	c.winch.MoveWinch(ctx, 1)
}

// IsFinished reports whether the command timed out.
func (c *ActivateWinch) IsFinished(ctx context.Context) bool {
	return c.IsTimedOut()
}

// End stops the winch.
func (c *ActivateWinch) End(ctx context.Context) {
	c.winch.MoveWinch(ctx, 0)
}

// Interrupted is End.
func (c *ActivateWinch) Interrupted(ctx context.Context) {
	c.End(ctx)
}
