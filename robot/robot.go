// Package robot ties the subsystems, the operator interface and the
// scheduler together and drives them through the match modes.
package robot

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/TechnoJays/robot2017/autonomous"
	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/commands"
	"github.com/TechnoJays/robot2017/components/drivetrain"
	"github.com/TechnoJays/robot2017/components/gearrelease"
	"github.com/TechnoJays/robot2017/components/solenoid"
	"github.com/TechnoJays/robot2017/components/winch"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/oi"
)

// Mode is the match phase the robot is in.
type Mode int

// Match modes.
const (
	Disabled Mode = iota
	Autonomous
	Teleop
)

func (m Mode) String() string {
	switch m {
	case Disabled:
		return "disabled"
	case Autonomous:
		return "autonomous"
	case Teleop:
		return "teleop"
	default:
		return "unknown"
	}
}

// Hardware is every device the robot is built from.
type Hardware struct {
	Drivetrain  drivetrain.Hardware
	Winch       winch.Hardware
	GearRelease solenoid.Solenoid
	Driver      oi.Joystick
	Scoring     oi.Joystick
}

// Controller owns the robot's subsystems and its scheduler. Its methods
// must be called from one goroutine, normally a Runner's.
type Controller struct {
	logger logging.Logger
	clk    clock.Clock

	Drivetrain  *drivetrain.Drivetrain
	Winch       *winch.Winch
	GearRelease *gearrelease.GearRelease
	OI          *oi.OI
	Scheduler   *command.Scheduler

	routines  *oi.Chooser[autonomous.Routine]
	positions *oi.Chooser[int]

	mu                sync.Mutex
	mode              Mode
	matchID           string
	autonomousCommand command.Command
}

// New builds the robot: subsystems, operator interface, default commands
// and button bindings. The robot starts disabled.
func New(cfg Config, hw Hardware, dash dashboard.Dashboard, clk clock.Clock, logger logging.Logger) (*Controller, error) {
	if clk == nil {
		clk = clock.New()
	}
	if dash == nil {
		dash = dashboard.Noop{}
	}
	c := &Controller{logger: logger, clk: clk}

	var err error
	if c.Drivetrain, err = drivetrain.New(cfg.Drivetrain, hw.Drivetrain, dash, logger.Sublogger("drivetrain")); err != nil {
		return nil, err
	}
	if c.Winch, err = winch.New(cfg.Winch, hw.Winch, dash, logger.Sublogger("winch")); err != nil {
		return nil, err
	}
	gearLogger := logger.Sublogger("gear_release")
	if c.GearRelease, err = gearrelease.New(cfg.GearRelease, hw.GearRelease, dash, gearLogger); err != nil {
		return nil, err
	}
	if c.OI, err = oi.New(cfg.Bindings, hw.Driver, hw.Scoring, logger.Sublogger("oi")); err != nil {
		return nil, err
	}

	c.Scheduler = command.NewScheduler(clk, logger.Sublogger("scheduler"))
	c.Scheduler.RegisterSubsystem(c.Drivetrain, c.Winch, c.GearRelease)

	withClock := command.WithClock(clk)
	ctx := context.Background()
	if err := multierr.Combine(
		c.Scheduler.SetDefaultCommand(ctx, c.Drivetrain, commands.NewTankDrive(c.Drivetrain, c.OI, withClock)),
		c.Scheduler.SetDefaultCommand(ctx, c.Winch, commands.NewMoveWinchAnalog(c.Winch, c.OI, withClock)),
		c.Scheduler.SetDefaultCommand(ctx, c.GearRelease, commands.NewHoldGear(c.GearRelease, withClock)),
	); err != nil {
		return nil, errors.Wrap(err, "failed to set default commands")
	}
	c.OI.WhenPressed(oi.Scoring, oi.ButtonA, commands.NewReleaseGear(c.GearRelease, withClock))
	c.OI.WhenPressed(oi.Scoring, oi.ButtonB, commands.NewMoveWinchAnalog(c.Winch, c.OI, withClock))

	c.routines = autonomous.NewChooser(cfg.Autonomous, c.Drivetrain, clk)
	c.positions = oi.NewPositionChooser()
	return c, nil
}

// Routines returns the autonomous routine chooser.
func (c *Controller) Routines() *oi.Chooser[autonomous.Routine] {
	return c.routines
}

// Positions returns the starting position chooser.
func (c *Controller) Positions() *oi.Chooser[int] {
	return c.positions
}

// Mode returns the current match mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) setMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// AutonomousCommand returns the command started by the last
// AutonomousInit.
func (c *Controller) AutonomousCommand() command.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autonomousCommand
}

// MatchID identifies the match begun by the last AutonomousInit. It is
// empty before the first one.
func (c *Controller) MatchID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchID
}

// AutonomousInit begins a new match: it zeroes the heading and starts the
// chosen routine for the chosen starting position.
func (c *Controller) AutonomousInit(ctx context.Context) error {
	c.setMode(Autonomous)
	c.Drivetrain.ResetGyroAngle(ctx)

	routine := c.routines.Selected()
	position := c.positions.Selected()
	group := routine.Build(position)
	matchID := uuid.NewString()
	c.logger.CInfow(ctx, "starting autonomous",
		"match", matchID, "routine", routine.Name(), "position", position)

	c.mu.Lock()
	c.matchID = matchID
	c.autonomousCommand = group
	c.mu.Unlock()
	return c.Scheduler.Start(ctx, group)
}

// TeleopInit cancels the autonomous routine if it is still running.
func (c *Controller) TeleopInit(ctx context.Context) {
	c.setMode(Teleop)
	if cmd := c.AutonomousCommand(); cmd != nil {
		c.Scheduler.Cancel(ctx, cmd)
	}
}

// DisabledInit cancels every command and stops every actuator.
func (c *Controller) DisabledInit(ctx context.Context) error {
	c.setMode(Disabled)
	c.Scheduler.CancelAll(ctx)
	return c.stop(ctx)
}

// Periodic runs one control cycle. Buttons are only polled in teleop and
// nothing runs while disabled.
func (c *Controller) Periodic(ctx context.Context) {
	switch c.Mode() {
	case Disabled:
		return
	case Teleop:
		c.OI.Poll(ctx, c.Scheduler)
	}
	c.Scheduler.Run(ctx)
}

// Close cancels every command and stops every actuator.
func (c *Controller) Close(ctx context.Context) error {
	c.Scheduler.CancelAll(ctx)
	return c.stop(ctx)
}

func (c *Controller) stop(ctx context.Context) error {
	return multierr.Combine(
		c.Drivetrain.Stop(ctx),
		c.Winch.Stop(ctx),
	)
}
