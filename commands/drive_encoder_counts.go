package commands

import (
	"context"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/utils"
)

// DriveEncoderCounts drives until the drive encoder has moved by a signed
// number of ticks, within a threshold. The drivetrain's linear axis is
// reversed with respect to the encoder, so the command drives at -speed
// while the target is still ahead.
type DriveEncoderCounts struct {
	command.Base
	drive     EncoderDriver
	change    int64
	speed     float64
	threshold int64
	target    int64
}

// NewDriveEncoderCounts returns a DriveEncoderCounts command. The timeout
// defaults to DefaultTimeout.
func NewDriveEncoderCounts(
	drive EncoderDriver,
	change int64,
	speed float64,
	threshold int64,
	opts ...command.Option,
) *DriveEncoderCounts {
	c := &DriveEncoderCounts{drive: drive, change: change, speed: speed, threshold: threshold}
	c.Base = command.NewBase(c, withDefaultTimeout(opts)...)
	c.Requires(drive)
	return c
}

// Change returns the requested encoder change.
func (c *DriveEncoderCounts) Change() int64 {
	return c.change
}

// Speed returns the speed magnitude.
func (c *DriveEncoderCounts) Speed() float64 {
	return c.speed
}

// Threshold returns the accepted distance from the target.
func (c *DriveEncoderCounts) Threshold() int64 {
	return c.threshold
}

// Target returns the encoder value captured at the last Initialize.
func (c *DriveEncoderCounts) Target() int64 {
	return c.target
}

// Initialize sets the target relative to the current encoder value.
func (c *DriveEncoderCounts) Initialize(ctx context.Context) {
	c.target = c.drive.EncoderValue(ctx) + c.change
}

// Execute drives toward the target.
func (c *DriveEncoderCounts) Execute(ctx context.Context) {
	remaining := c.target - c.drive.EncoderValue(ctx)
	c.drive.ArcadeDrive(ctx, c.speed*direction(float64(remaining), -1), 0)
}

// IsFinished reports whether the encoder is within the threshold of the
// target or the command timed out.
func (c *DriveEncoderCounts) IsFinished(ctx context.Context) bool {
	current := c.drive.EncoderValue(ctx)
	return utils.WithinThreshold(float64(c.target), float64(current), float64(c.threshold)) || c.IsTimedOut()
}

// End stops the drivetrain.
func (c *DriveEncoderCounts) End(ctx context.Context) {
	c.drive.ArcadeDrive(ctx, 0, 0)
}

// Interrupted is End.
func (c *DriveEncoderCounts) Interrupted(ctx context.Context) {
	c.End(ctx)
}
