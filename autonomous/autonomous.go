// Package autonomous assembles the autonomous routines. Each routine reads
// its parameters once and builds a fresh command group per match from the
// starting position and the sensors the drivetrain has. A closed-loop
// command is used when its sensor is enabled, otherwise a timed one. Every
// routine ends by stopping the drivetrain.
package autonomous

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/commands"
	"github.com/TechnoJays/robot2017/oi"
	"github.com/TechnoJays/robot2017/utils"
)

// Routine names.
const (
	CrossLineName  = "cross_line"
	HangCenterName = "hang_center"
	DefaultName    = "default"
	DoNothingName  = "do_nothing"
)

// CenterPosition is the starting position directly behind the airship.
const CenterPosition = 2

// A Drivetrain is what the routines drive.
type Drivetrain interface {
	commands.EncoderDriver
	GyroAngle(ctx context.Context) float64
	IsEncoderEnabled() bool
	IsGyroEnabled() bool
}

// A Routine builds the command group for one match.
type Routine interface {
	Name() string
	Build(position int) *command.Group
}

type builder struct {
	name   string
	params Params
	dt     Drivetrain
	clk    clock.Clock
}

func newBuilder(name string, params Params, drive Drivetrain, clk clock.Clock) builder {
	if clk == nil {
		clk = clock.New()
	}
	return builder{name: name, params: params, dt: drive, clk: clk}
}

func (b *builder) Name() string {
	return b.name
}

func (b *builder) group(name string) *command.Group {
	return command.NewGroup(command.WithName(name), command.WithClock(b.clk))
}

func (b *builder) opts() []command.Option {
	return []command.Option{command.WithClock(b.clk)}
}

func (b *builder) driveTime(secs, speed float64) command.Command {
	return commands.NewDriveTime(b.dt, utils.Seconds(secs), speed, b.opts()...)
}

func (b *builder) turnTime(secs, speed float64) command.Command {
	return commands.NewTurnTime(b.dt, utils.Seconds(secs), speed, b.opts()...)
}

// drive moves by counts when the encoder is enabled and for secs otherwise.
func (b *builder) drive(counts int64, speed float64, threshold int64, secs float64) command.Command {
	if b.dt.IsEncoderEnabled() {
		return commands.NewDriveEncoderCounts(b.dt, counts, speed, threshold, b.opts()...)
	}
	return b.driveTime(secs, speed)
}

// turn moves by degrees when the gyro is enabled. Otherwise it turns for
// secs at timedSpeed, whose sign sets the direction.
func (b *builder) turn(degrees, speed, threshold, secs, timedSpeed float64) command.Command {
	if b.dt.IsGyroEnabled() {
		return commands.NewTurnDegrees(b.dt, degrees, speed, threshold, b.opts()...)
	}
	return b.turnTime(secs, timedSpeed)
}

// approach waits, then drives up to just before the line.
func (b *builder) approach() *command.Group {
	p := b.params.Approach
	return b.group("Approach").
		AddSequential(b.driveTime(p.InitialWaitTime, 0), commands.DefaultTimeout).
		AddSequential(b.drive(p.EncoderCounts, p.Speed, p.EncoderThreshold, p.Time), commands.DefaultTimeout)
}

func (b *builder) finish(g *command.Group) *command.Group {
	return g.AddSequential(commands.NewAbort(b.dt, b.opts()...), 0)
}

// CrossLine drives across the base line. From the center position it
// first steers around the airship.
type CrossLine struct {
	builder
}

// NewCrossLine returns the cross line routine.
func NewCrossLine(params Params, drive Drivetrain, clk clock.Clock) *CrossLine {
	return &CrossLine{builder: newBuilder(CrossLineName, params, drive, clk)}
}

// Build returns a new group for a match started at position.
func (r *CrossLine) Build(position int) *command.Group {
	p := r.params.Cross
	cross := r.group("Cross")
	if position == CenterPosition {
		cross.
			AddSequential(r.turn(p.CenterTurnAngle, p.CenterTurnSpeed, p.AngleThreshold,
				p.CenterTurnTime, p.CenterTurnSpeed), commands.DefaultTimeout).
			AddSequential(r.drive(p.CenterDriveEncoderCounts, p.CenterDriveSpeed,
				r.params.Approach.EncoderThreshold, p.CenterDriveTime), commands.DefaultTimeout).
			AddSequential(r.turn(-p.CenterTurnAngle, p.CenterTurnSpeed, p.AngleThreshold,
				p.CenterTurnTime, -p.CenterTurnSpeed), commands.DefaultTimeout)
	}
	cross.AddSequential(r.drive(p.EncoderCounts, p.Speed, p.EncoderThreshold, p.Time), commands.DefaultTimeout)

	return r.finish(r.group("CrossLine").
		AddSequential(r.approach(), 0).
		AddSequential(cross, 0))
}

// HangCenter approaches the airship and then drives slowly onto the center
// peg.
type HangCenter struct {
	builder
}

// NewHangCenter returns the hang center routine.
func NewHangCenter(params Params, drive Drivetrain, clk clock.Clock) *HangCenter {
	return &HangCenter{builder: newBuilder(HangCenterName, params, drive, clk)}
}

// Build returns a new group. The position is not used.
func (r *HangCenter) Build(position int) *command.Group {
	p := r.params.Hang
	hang := r.group("Hang").
		AddSequential(r.driveTime(p.CenterApproachTime, p.CenterApproachSpeed), commands.DefaultTimeout)
	return r.finish(r.group("HangCenter").
		AddSequential(r.approach(), 0).
		AddSequential(hang, 0))
}

// Default only drives the approach distance.
type Default struct {
	builder
}

// NewDefault returns the default routine.
func NewDefault(params Params, drive Drivetrain, clk clock.Clock) *Default {
	return &Default{builder: newBuilder(DefaultName, params, drive, clk)}
}

// Build returns a new group. The position is not used.
func (r *Default) Build(position int) *command.Group {
	p := r.params.Approach
	return r.finish(r.group("Default").
		AddSequential(r.drive(p.EncoderCounts, p.Speed, p.EncoderThreshold, p.Time), commands.DefaultTimeout))
}

// DoNothing holds the drivetrain still for the autonomous period.
type DoNothing struct {
	builder
}

// NewDoNothing returns the do nothing routine.
func NewDoNothing(params Params, drive Drivetrain, clk clock.Clock) *DoNothing {
	return &DoNothing{builder: newBuilder(DoNothingName, params, drive, clk)}
}

// Build returns a new group. The position is not used.
func (r *DoNothing) Build(position int) *command.Group {
	return r.finish(r.group("DoNothing").
		AddSequential(commands.NewDoNothing(nil, r.opts()...), commands.DefaultTimeout))
}

// NewChooser returns a chooser offering every routine by name, with the
// default routine selected.
func NewChooser(params Params, drive Drivetrain, clk clock.Clock) *oi.Chooser[Routine] {
	return oi.NewChooser[Routine](oi.AutonomousChooserName).
		AddOption(CrossLineName, NewCrossLine(params, drive, clk)).
		AddOption(HangCenterName, NewHangCenter(params, drive, clk)).
		AddDefault(DefaultName, NewDefault(params, drive, clk)).
		AddOption(DoNothingName, NewDoNothing(params, drive, clk))
}
