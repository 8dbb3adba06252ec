package cli

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/components/drivetrain"
	"github.com/TechnoJays/robot2017/components/drivetrain/sim"
	fakeencoder "github.com/TechnoJays/robot2017/components/encoder/fake"
	fakegyro "github.com/TechnoJays/robot2017/components/gyro/fake"
	fakemotor "github.com/TechnoJays/robot2017/components/motor/fake"
	fakesolenoid "github.com/TechnoJays/robot2017/components/solenoid/fake"
	"github.com/TechnoJays/robot2017/components/winch"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	fakejoystick "github.com/TechnoJays/robot2017/oi/fake"
	"github.com/TechnoJays/robot2017/robot"
)

// A Simulation is a robot built on fake devices with a simulated
// drivetrain moving its encoder and gyro.
type Simulation struct {
	Robot     *robot.Controller
	Runner    *robot.Runner
	Physics   *sim.Simulator
	Dashboard *dashboard.Prometheus
	Driver    *fakejoystick.Joystick
	Scoring   *fakejoystick.Joystick

	cfg    robot.Config
	clk    clock.Clock
	logger logging.Logger
}

// NewSimulation builds a simulated robot from cfg. When clk is a
// *clock.Mock every cycle advances it by one period, so a match runs as
// fast as the host allows.
func NewSimulation(cfg robot.Config, clk clock.Clock, logger logging.Logger) (*Simulation, error) {
	if clk == nil {
		clk = clock.New()
	}
	dt := cfg.Drivetrain
	left := fakemotor.NewMotor(dt.LeftMotor.Channel)
	right := fakemotor.NewMotor(dt.RightMotor.Channel)
	enc := &fakeencoder.Encoder{}
	gyro := &fakegyro.Gyro{}
	physics, err := sim.New(sim.DefaultConfig(), left, right, enc, gyro)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		Physics:   physics,
		Dashboard: dashboard.NewPrometheus("robot2017"),
		Driver:    fakejoystick.NewJoystick(),
		Scoring:   fakejoystick.NewJoystick(),
		cfg:       cfg,
		clk:       clk,
		logger:    logger,
	}
	s.Robot, err = robot.New(cfg, robot.Hardware{
		Drivetrain: drivetrain.Hardware{
			Left:      left,
			Right:     right,
			Encoder:   enc,
			Gyro:      gyro,
			PitchGyro: &fakegyro.Gyro{},
		},
		Winch:       winch.Hardware{Motor: fakemotor.NewMotor(cfg.Winch.Motor.Channel), Encoder: &fakeencoder.Encoder{}},
		GearRelease: &fakesolenoid.Solenoid{},
		Driver:      s.Driver,
		Scoring:     s.Scoring,
	}, s.Dashboard, clk, logger)
	if err != nil {
		return nil, err
	}

	s.Runner = robot.NewRunner(s.Robot, robot.DefaultPeriod, clk, logger.Sublogger("runner"))
	s.Runner.BeforeCycle = s.beforeCycle
	return s, nil
}

func (s *Simulation) beforeCycle(ctx context.Context, dt time.Duration) {
	if mock, ok := s.clk.(*clock.Mock); ok {
		mock.Add(dt)
	}
	if err := s.Physics.Step(ctx, dt); err != nil {
		s.logger.CWarnw(ctx, "simulation step failed", "error", err)
	}
}

// SetSticks holds the driver's sticks at the given positions.
func (s *Simulation) SetSticks(left, right float64) {
	axes := s.cfg.Bindings.Axes
	s.Driver.SetAxis(axes.LeftY, left)
	s.Driver.SetAxis(axes.RightY, right)
}

// Run runs the robot for d. With a mock clock the cycles are stepped
// back to back; otherwise the runner paces them on the clock.
func (s *Simulation) Run(ctx context.Context, d time.Duration) error {
	if _, ok := s.clk.(*clock.Mock); ok {
		for i := time.Duration(0); i < d/robot.DefaultPeriod; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Runner.Step(ctx)
		}
		return nil
	}

	s.Runner.Start(ctx)
	defer s.Runner.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clk.After(d):
		return nil
	}
}

// Match plays an autonomous period of auto followed, when teleop is
// positive, by a teleop period. The robot is disabled afterwards.
func (s *Simulation) Match(ctx context.Context, auto, teleop time.Duration) (err error) {
	defer func() {
		err = multierr.Combine(err, errors.Wrap(s.Robot.DisabledInit(ctx), "failed to disable robot"))
	}()
	if err := s.Robot.AutonomousInit(ctx); err != nil {
		return err
	}
	if err := s.Run(ctx, auto); err != nil {
		return err
	}
	if teleop <= 0 {
		return nil
	}
	s.Robot.TeleopInit(ctx)
	return s.Run(ctx, teleop)
}

// SimulateAction plays a simulated match and prints where the robot ended
// up along with the final dashboard values.
func SimulateAction(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	logger, logCloser := loggerFrom(c)
	defer func() {
		if err := logCloser.Close(); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "failed to close log file: %v\n", err)
		}
	}()

	var clk clock.Clock = clock.NewMock()
	if c.Bool(flagRealtime) {
		clk = clock.New()
	}
	s, err := NewSimulation(cfg, clk, logger)
	if err != nil {
		return err
	}
	if err := s.Robot.Routines().Select(c.String(flagRoutine)); err != nil {
		return err
	}
	if err := s.Robot.Positions().Select(strconv.Itoa(c.Int(flagPosition))); err != nil {
		return err
	}
	s.SetSticks(c.Float64(flagLeftStick), c.Float64(flagRightStick))

	if addr := c.String(flagMetricsAddr); addr != "" {
		server := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(s.Dashboard.Registry(), promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		goutils.PanicCapturingGo(func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warnw("metrics server stopped", "error", err)
			}
		})
		defer func() {
			if err := server.Close(); err != nil {
				logger.Warnw("failed to close metrics server", "error", err)
			}
		}()
		logger.Infow("serving dashboard metrics", "addr", addr)
	}

	if err := s.Match(c.Context, c.Duration(flagAutonomous), c.Duration(flagTeleop)); err != nil {
		return err
	}
	s.report(c)
	return s.Robot.Close(c.Context)
}

func (s *Simulation) report(c *cli.Context) {
	pose := s.Physics.Pose()
	fmt.Fprintf(c.App.Writer, "routine %s from position %d ran %d cycles over %s\n",
		s.Robot.Routines().SelectedName(), s.Robot.Positions().Selected(), s.Runner.Cycles(), s.Physics.Elapsed())
	fmt.Fprintf(c.App.Writer, "pose x=%.2fft y=%.2fft heading=%.1fdeg distance=%.2fft\n",
		pose.X, pose.Y, pose.Heading, pose.Distance)

	values := s.Dashboard.Values()
	keys := lo.Keys(values)
	slices.Sort(keys)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Dashboard Key", "Value"})
	for _, key := range keys {
		t.AppendRow(table.Row{key, fmt.Sprintf("%g", values[key])})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
}
