package robot

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.viam.com/test"

	"github.com/TechnoJays/robot2017/autonomous"
	"github.com/TechnoJays/robot2017/components/drivetrain"
	"github.com/TechnoJays/robot2017/components/drivetrain/sim"
	fakeencoder "github.com/TechnoJays/robot2017/components/encoder/fake"
	fakegyro "github.com/TechnoJays/robot2017/components/gyro/fake"
	fakemotor "github.com/TechnoJays/robot2017/components/motor/fake"
	fakesolenoid "github.com/TechnoJays/robot2017/components/solenoid/fake"
	"github.com/TechnoJays/robot2017/components/winch"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/oi"
	fakejoystick "github.com/TechnoJays/robot2017/oi/fake"
)

const sampleConfigDir = "../etc/configs"

type testRig struct {
	clk        *clock.Mock
	left       *fakemotor.Motor
	right      *fakemotor.Motor
	winchMotor *fakemotor.Motor
	encoder    *fakeencoder.Encoder
	gyro       *fakegyro.Gyro
	solenoid   *fakesolenoid.Solenoid
	driver     *fakejoystick.Joystick
	scoring    *fakejoystick.Joystick
	dash       *dashboard.Prometheus
	sim        *sim.Simulator
	robot      *Controller
	runner     *Runner
}

func newTestRig(t *testing.T, mutate func(*Config)) *testRig {
	t.Helper()
	cfg, err := ReadConfig(sampleConfigDir)
	test.That(t, err, test.ShouldBeNil)
	if mutate != nil {
		mutate(&cfg)
	}

	rig := &testRig{
		clk:        clock.NewMock(),
		left:       fakemotor.NewMotor(cfg.Drivetrain.LeftMotor.Channel),
		right:      fakemotor.NewMotor(cfg.Drivetrain.RightMotor.Channel),
		winchMotor: fakemotor.NewMotor(cfg.Winch.Motor.Channel),
		encoder:    &fakeencoder.Encoder{},
		gyro:       &fakegyro.Gyro{},
		solenoid:   &fakesolenoid.Solenoid{},
		driver:     fakejoystick.NewJoystick(),
		scoring:    fakejoystick.NewJoystick(),
		dash:       dashboard.NewPrometheus("robot_test"),
	}
	rig.sim, err = sim.New(sim.DefaultConfig(), rig.left, rig.right, rig.encoder, rig.gyro)
	test.That(t, err, test.ShouldBeNil)

	rig.robot, err = New(cfg, Hardware{
		Drivetrain:  drivetrain.Hardware{Left: rig.left, Right: rig.right, Encoder: rig.encoder, Gyro: rig.gyro},
		Winch:       winch.Hardware{Motor: rig.winchMotor},
		GearRelease: rig.solenoid,
		Driver:      rig.driver,
		Scoring:     rig.scoring,
	}, rig.dash, rig.clk, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	rig.runner = NewRunner(rig.robot, DefaultPeriod, rig.clk, logging.NewTestLogger(t))
	rig.runner.BeforeCycle = func(ctx context.Context, dt time.Duration) {
		rig.clk.Add(dt)
		test.That(t, rig.sim.Step(ctx, dt), test.ShouldBeNil)
	}
	return rig
}

func (rig *testRig) drivePowers(t *testing.T) (float64, float64) {
	t.Helper()
	l, err := rig.left.Power(context.Background())
	test.That(t, err, test.ShouldBeNil)
	r, err := rig.right.Power(context.Background())
	test.That(t, err, test.ShouldBeNil)
	return l, r
}

func TestReadSampleConfig(t *testing.T) {
	cfg, err := ReadConfig(sampleConfigDir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Drivetrain.Encoder.Enabled, test.ShouldBeTrue)
	test.That(t, cfg.Drivetrain.PitchGyro.Enabled, test.ShouldBeFalse)
	test.That(t, cfg.Winch.Motor.Channel, test.ShouldEqual, 2)
	test.That(t, cfg.GearRelease.Enabled, test.ShouldBeTrue)
	test.That(t, cfg.Autonomous.Approach.EncoderCounts, test.ShouldEqual, int64(1200))
	test.That(t, cfg.Bindings, test.ShouldResemble, oi.DefaultBindings())
}

func TestReadConfigOverlay(t *testing.T) {
	overlay := t.TempDir()
	err := os.WriteFile(filepath.Join(overlay, SubsystemsFile),
		[]byte("[DrivetrainEncoder]\nENCODER_ENABLED = false\n"), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := ReadConfig(sampleConfigDir, overlay, t.TempDir())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Drivetrain.Encoder.Enabled, test.ShouldBeFalse)
	test.That(t, cfg.Drivetrain.Gyro.Enabled, test.ShouldBeTrue)

	_, err = ReadConfig(t.TempDir())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStartsDisabled(t *testing.T) {
	ctx := context.Background()
	rig := newTestRig(t, nil)
	test.That(t, rig.robot.Mode(), test.ShouldEqual, Disabled)

	rig.driver.SetAxis(1, 1)
	rig.runner.Step(ctx)
	left, right := rig.drivePowers(t)
	test.That(t, left, test.ShouldEqual, 0.0)
	test.That(t, right, test.ShouldEqual, 0.0)
	test.That(t, rig.robot.Scheduler.Scheduled(), test.ShouldBeEmpty)
	test.That(t, rig.runner.Cycles(), test.ShouldEqual, int64(1))
}

func runUntilIdle(t *testing.T, rig *testRig, limit int) int {
	t.Helper()
	ctx := context.Background()
	cycles := 0
	for ; cycles < limit && rig.robot.Scheduler.IsScheduled(rig.robot.AutonomousCommand()); cycles++ {
		rig.runner.Step(ctx)
	}
	return cycles
}

func TestAutonomousCrossLineFromCenter(t *testing.T) {
	ctx := context.Background()
	rig := newTestRig(t, nil)
	rig.gyro.SetAngle(30)
	test.That(t, rig.robot.Routines().Select(autonomous.CrossLineName), test.ShouldBeNil)
	test.That(t, rig.robot.Positions().Select("2"), test.ShouldBeNil)

	test.That(t, rig.robot.MatchID(), test.ShouldBeEmpty)
	test.That(t, rig.robot.AutonomousInit(ctx), test.ShouldBeNil)
	test.That(t, rig.robot.Mode(), test.ShouldEqual, Autonomous)
	_, err := uuid.Parse(rig.robot.MatchID())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rig.robot.AutonomousCommand().Name(), test.ShouldEqual, "CrossLine")
	test.That(t, rig.robot.Drivetrain.GyroAngle(ctx), test.ShouldEqual, 0.0)

	cycles := runUntilIdle(t, rig, 750)
	test.That(t, cycles, test.ShouldBeLessThan, 750)

	// approach + around the airship + across the line, each stopping
	// within its threshold
	ticks := rig.robot.Drivetrain.EncoderValue(ctx)
	test.That(t, ticks, test.ShouldBeBetweenOrEqual, int64(2600-70), int64(2600+10))
	test.That(t, math.Abs(rig.robot.Drivetrain.GyroAngle(ctx)), test.ShouldBeLessThanOrEqualTo, 6.0)
	test.That(t, rig.sim.Pose().X, test.ShouldBeGreaterThan, 0.0)

	// the drivetrain falls back to its default command with neutral sticks
	rig.runner.Step(ctx)
	test.That(t, rig.robot.Scheduler.Current(rig.robot.Drivetrain).Name(), test.ShouldEqual, "TankDrive")
	left, right := rig.drivePowers(t)
	test.That(t, left, test.ShouldEqual, 0.0)
	test.That(t, right, test.ShouldEqual, 0.0)

	value, ok := rig.dash.Number(drivetrain.KeyEncoder)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, value, test.ShouldEqual, float64(ticks))
}

func TestAutonomousTimedFallback(t *testing.T) {
	ctx := context.Background()
	rig := newTestRig(t, func(cfg *Config) {
		cfg.Drivetrain.Encoder.Enabled = false
		cfg.Drivetrain.Gyro.Enabled = false
	})
	test.That(t, rig.robot.Routines().Select(autonomous.HangCenterName), test.ShouldBeNil)
	test.That(t, rig.robot.AutonomousInit(ctx), test.ShouldBeNil)

	// 0.5s wait, 2.5s approach, 3s hang approach, one cycle to abort
	cycles := runUntilIdle(t, rig, 750)
	test.That(t, cycles, test.ShouldBeBetweenOrEqual, 300, 305)
	test.That(t, rig.robot.Drivetrain.EncoderValue(ctx), test.ShouldEqual, int64(0))
}

func TestTeleop(t *testing.T) {
	ctx := context.Background()
	rig := newTestRig(t, nil)
	test.That(t, rig.robot.Routines().Select(autonomous.DoNothingName), test.ShouldBeNil)
	test.That(t, rig.robot.AutonomousInit(ctx), test.ShouldBeNil)
	rig.runner.Step(ctx)
	auto := rig.robot.AutonomousCommand()
	test.That(t, rig.robot.Scheduler.IsScheduled(auto), test.ShouldBeTrue)

	rig.robot.TeleopInit(ctx)
	test.That(t, rig.robot.Mode(), test.ShouldEqual, Teleop)
	test.That(t, rig.robot.Scheduler.IsScheduled(auto), test.ShouldBeFalse)

	bindings := oi.DefaultBindings()
	rig.driver.SetAxis(bindings.Axes.LeftY, 0.5)
	rig.driver.SetAxis(bindings.Axes.RightY, 0.5)
	rig.runner.Step(ctx)
	left, right := rig.drivePowers(t)
	test.That(t, left, test.ShouldAlmostEqual, 0.5)
	test.That(t, right, test.ShouldAlmostEqual, -0.5)

	// the winch default follows the scoring stick
	rig.scoring.SetAxis(bindings.Axes.RightX, -0.4)
	rig.runner.Step(ctx)
	power, err := rig.winchMotor.Power(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, power, test.ShouldAlmostEqual, -0.4)

	// A releases the gear until something else claims the release
	rig.scoring.SetButton(bindings.Buttons.A, true)
	rig.runner.Step(ctx)
	test.That(t, rig.robot.GearRelease.State(), test.ShouldBeFalse)
	test.That(t, rig.robot.Scheduler.Current(rig.robot.GearRelease).Name(), test.ShouldEqual, "ReleaseGear")
	rig.scoring.SetButton(bindings.Buttons.A, false)
	rig.runner.Step(ctx)
	test.That(t, rig.robot.GearRelease.State(), test.ShouldBeFalse)

	test.That(t, rig.robot.DisabledInit(ctx), test.ShouldBeNil)
	test.That(t, rig.robot.Mode(), test.ShouldEqual, Disabled)
	test.That(t, rig.robot.GearRelease.State(), test.ShouldBeTrue)
	left, right = rig.drivePowers(t)
	test.That(t, left, test.ShouldEqual, 0.0)
	test.That(t, right, test.ShouldEqual, 0.0)
	power, err = rig.winchMotor.Power(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, power, test.ShouldEqual, 0.0)
	test.That(t, rig.robot.Scheduler.Scheduled(), test.ShouldBeEmpty)

	// the next autonomous period is a new match
	firstMatch := rig.robot.MatchID()
	test.That(t, rig.robot.AutonomousInit(ctx), test.ShouldBeNil)
	test.That(t, rig.robot.MatchID(), test.ShouldNotEqual, firstMatch)
	test.That(t, rig.robot.AutonomousCommand(), test.ShouldNotEqual, auto)
	test.That(t, rig.robot.Close(ctx), test.ShouldBeNil)
}

func TestNewFailsOnMissingHardware(t *testing.T) {
	cfg, err := ReadConfig(sampleConfigDir)
	test.That(t, err, test.ShouldBeNil)
	_, err = New(cfg, Hardware{
		Driver:  fakejoystick.NewJoystick(),
		Scoring: fakejoystick.NewJoystick(),
	}, nil, nil, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no device was provided")
}

type countingTarget struct {
	cycles chan struct{}
}

func (c *countingTarget) Periodic(ctx context.Context) {
	c.cycles <- struct{}{}
}

func TestRunner(t *testing.T) {
	clk := clock.NewMock()
	target := &countingTarget{cycles: make(chan struct{}, 16)}
	r := NewRunner(target, 0, clk, logging.NewTestLogger(t))
	test.That(t, r.Running(), test.ShouldBeFalse)

	r.Start(context.Background())
	test.That(t, r.Running(), test.ShouldBeTrue)
	r.Start(context.Background())

	deadline := time.Now().Add(5 * time.Second)
	received := 0
	for received < 3 && time.Now().Before(deadline) {
		clk.Add(DefaultPeriod)
		select {
		case <-target.cycles:
			received++
		case <-time.After(10 * time.Millisecond):
		}
	}
	test.That(t, received, test.ShouldEqual, 3)

	r.Stop()
	test.That(t, r.Running(), test.ShouldBeFalse)
	test.That(t, r.Cycles(), test.ShouldBeGreaterThanOrEqualTo, int64(3))
}

func TestRunnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(&countingTarget{cycles: make(chan struct{}, 1)}, time.Hour, clock.NewMock(), logging.NewTestLogger(t))
	r.Start(ctx)
	cancel()
	r.Stop()
	test.That(t, r.Running(), test.ShouldBeFalse)
	test.That(t, r.Cycles(), test.ShouldEqual, int64(0))
}

func TestModeString(t *testing.T) {
	test.That(t, Disabled.String(), test.ShouldEqual, "disabled")
	test.That(t, Autonomous.String(), test.ShouldEqual, "autonomous")
	test.That(t, Teleop.String(), test.ShouldEqual, "teleop")
	test.That(t, Mode(7).String(), test.ShouldEqual, "unknown")
}
