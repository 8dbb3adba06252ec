// Package commands contains the robot's leaf commands: timed and
// closed-loop drivetrain moves, the autonomous terminator and the teleop
// commands bound to the operator interface.
package commands

import (
	"context"
	"time"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/oi"
)

// DefaultTimeout bounds autonomous drive commands unless overridden.
const DefaultTimeout = 15 * time.Second

// An ArcadeDriver is a drivetrain accepting arcade style commands.
type ArcadeDriver interface {
	command.Subsystem
	ArcadeDrive(ctx context.Context, linear, turn float64)
}

// An EncoderDriver is an ArcadeDriver with a drive encoder.
type EncoderDriver interface {
	ArcadeDriver
	EncoderValue(ctx context.Context) int64
}

// A GyroDriver is an ArcadeDriver with a heading gyro.
type GyroDriver interface {
	ArcadeDriver
	GyroAngle(ctx context.Context) float64
}

// A TankDriver is an ArcadeDriver that also accepts per-side speeds.
type TankDriver interface {
	ArcadeDriver
	TankDrive(ctx context.Context, left, right float64)
}

// A WinchMover drives the climbing winch.
type WinchMover interface {
	command.Subsystem
	MoveWinch(ctx context.Context, speed float64)
}

// A GearReleaser opens and closes the gear holder.
type GearReleaser interface {
	command.Subsystem
	SetGearRelease(ctx context.Context, open bool)
}

// An Operator reads the driver station. *oi.OI is one.
type Operator interface {
	Axis(ctx context.Context, c oi.Controller, a oi.Axis) float64
	Button(ctx context.Context, c oi.Controller, b oi.Button) bool
}

func withDefaultTimeout(opts []command.Option) []command.Option {
	return append([]command.Option{command.WithTimeout(DefaultTimeout)}, opts...)
}

func direction(remaining, whenAhead float64) float64 {
	if remaining >= 0 {
		return whenAhead
	}
	return -whenAhead
}
