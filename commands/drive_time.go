package commands

import (
	"context"
	"time"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/stopwatch"
)

// DriveTime drives straight at a fixed speed for a fixed duration. It is
// the fallback when the drive encoder is unavailable. A zero speed makes it
// a wait.
type DriveTime struct {
	command.Base
	drive     ArcadeDriver
	stopwatch *stopwatch.Stopwatch
	duration  time.Duration
	speed     float64
}

// NewDriveTime returns a DriveTime command. The timeout defaults to
// DefaultTimeout.
func NewDriveTime(drive ArcadeDriver, duration time.Duration, speed float64, opts ...command.Option) *DriveTime {
	c := &DriveTime{drive: drive, duration: duration, speed: speed}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(drive)
	c.stopwatch = stopwatch.NewWithClock(c.Clock())
	return c
}

// Duration returns how long the command drives.
func (c *DriveTime) Duration() time.Duration {
	return c.duration
}

// Speed returns the linear speed.
func (c *DriveTime) Speed() float64 {
	return c.speed
}

// Initialize starts the stopwatch.
func (c *DriveTime) Initialize(ctx context.Context) {
	c.stopwatch.Start()
}

// Execute drives at the configured speed.
func (c *DriveTime) Execute(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, c.speed, 0)
}

// IsFinished reports whether the duration has elapsed.
func (c *DriveTime) IsFinished(ctx context.Context) bool {
	return timeUp(c.stopwatch, c.duration)
}

// End stops the stopwatch and the drivetrain.
func (c *DriveTime) End(ctx context.Context) {
	c.stopwatch.Stop()
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *DriveTime) Interrupted(ctx context.Context) {
	c.End(ctx)
}

// TurnTime turns in place at a fixed speed for a fixed duration. It is the
// fallback when the gyro is unavailable. Positive speeds turn clockwise.
type TurnTime struct {
	command.Base
	drive     ArcadeDriver
	stopwatch *stopwatch.Stopwatch
	duration  time.Duration
	speed     float64
}

// NewTurnTime returns a TurnTime command. The timeout defaults to
// DefaultTimeout.
func NewTurnTime(drive ArcadeDriver, duration time.Duration, speed float64, opts ...command.Option) *TurnTime {
	c := &TurnTime{drive: drive, duration: duration, speed: speed}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(drive)
	c.stopwatch = stopwatch.NewWithClock(c.Clock())
	return c
}

// Duration returns how long the command turns.
func (c *TurnTime) Duration() time.Duration {
	return c.duration
}

// Speed returns the turn speed.
func (c *TurnTime) Speed() float64 {
	return c.speed
}

// Initialize starts the stopwatch.
func (c *TurnTime) Initialize(ctx context.Context) {
	c.stopwatch.Start()
}

// Execute turns at the configured speed.
func (c *TurnTime) Execute(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, c.speed)
}

// IsFinished reports whether the duration has elapsed.
func (c *TurnTime) IsFinished(ctx context.Context) bool {
	return timeUp(c.stopwatch, c.duration)
}

// End stops the stopwatch and the drivetrain.
func (c *TurnTime) End(ctx context.Context) {
	c.stopwatch.Stop()
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *TurnTime) Interrupted(ctx context.Context) {
	c.End(ctx)
}

func timeUp(sw *stopwatch.Stopwatch, duration time.Duration) bool {
	elapsed, ok := sw.Elapsed()
	return ok && elapsed >= duration
}
