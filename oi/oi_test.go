package oi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/config"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/oi"
	"github.com/TechnoJays/robot2017/oi/fake"
	"github.com/TechnoJays/robot2017/testutils/inject"
)

func newTestOI(t *testing.T) (*oi.OI, *fake.Joystick, *fake.Joystick) {
	t.Helper()
	driver, scoring := fake.NewJoystick(), fake.NewJoystick()
	o, err := oi.New(oi.DefaultBindings(), driver, scoring, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return o, driver, scoring
}

type startRecorder struct {
	started []command.Command
	err     error
}

func (s *startRecorder) Start(ctx context.Context, cmd command.Command) error {
	s.started = append(s.started, cmd)
	return s.err
}

type nopCommand struct {
	command.Base
}

func newNopCommand(name string) *nopCommand {
	c := &nopCommand{}
	c.Base = command.NewBase(c, command.WithName(name))
	return c
}

func (c *nopCommand) Initialize(ctx context.Context)      {}
func (c *nopCommand) Execute(ctx context.Context)         {}
func (c *nopCommand) IsFinished(ctx context.Context) bool { return true }
func (c *nopCommand) End(ctx context.Context)             {}
func (c *nopCommand) Interrupted(ctx context.Context)     {}

func TestAxisDeadZone(t *testing.T) {
	ctx := context.Background()
	o, driver, scoring := newTestOI(t)

	driver.SetAxis(1, 0.05)
	test.That(t, o.Axis(ctx, oi.Driver, oi.LeftY), test.ShouldEqual, 0.0)
	driver.SetAxis(1, -0.09)
	test.That(t, o.Axis(ctx, oi.Driver, oi.LeftY), test.ShouldEqual, 0.0)
	driver.SetAxis(1, 0.1)
	test.That(t, o.Axis(ctx, oi.Driver, oi.LeftY), test.ShouldEqual, 0.1)
	driver.SetAxis(1, -0.75)
	test.That(t, o.Axis(ctx, oi.Driver, oi.LeftY), test.ShouldEqual, -0.75)

	scoring.SetAxis(3, 0.5)
	test.That(t, o.Axis(ctx, oi.Scoring, oi.RightY), test.ShouldEqual, 0.5)
	test.That(t, o.Axis(ctx, oi.Driver, oi.RightY), test.ShouldEqual, 0.0)
	test.That(t, o.Axis(ctx, oi.Controller(7), oi.RightY), test.ShouldEqual, 0.0)
}

func TestDPadFromHat(t *testing.T) {
	ctx := context.Background()
	o, driver, _ := newTestOI(t)

	for _, tc := range []struct {
		pov  int
		x, y float64
	}{
		{-1, 0, 0},
		{0, 0, -1},
		{90, 1, 0},
		{180, 0, 1},
		{270, -1, 0},
		{45, 0, 0},
	} {
		driver.SetPOV(tc.pov)
		test.That(t, o.Axis(ctx, oi.Driver, oi.DPadX), test.ShouldEqual, tc.x)
		test.That(t, o.Axis(ctx, oi.Driver, oi.DPadY), test.ShouldEqual, tc.y)
	}
}

func TestReadFailuresReadAsNeutral(t *testing.T) {
	ctx := context.Background()
	logger, logs := logging.NewObservedTestLogger(t)
	broken := &inject.Joystick{Joystick: fake.NewJoystick()}
	broken.RawAxisFunc = func(ctx context.Context, index int) (float64, error) {
		return 0, errors.New("unplugged")
	}
	broken.RawButtonFunc = func(ctx context.Context, index int) (bool, error) {
		return true, errors.New("unplugged")
	}
	broken.POVFunc = func(ctx context.Context) (int, error) {
		return 90, errors.New("unplugged")
	}
	o, err := oi.New(oi.DefaultBindings(), broken, fake.NewJoystick(), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, o.Axis(ctx, oi.Driver, oi.LeftX), test.ShouldEqual, 0.0)
	test.That(t, o.Axis(ctx, oi.Driver, oi.DPadX), test.ShouldEqual, 0.0)
	test.That(t, o.Button(ctx, oi.Driver, oi.ButtonA), test.ShouldBeFalse)
	test.That(t, logs.FilterMessage("failed to read joystick axis").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("failed to read joystick hat").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("failed to read joystick button").Len(), test.ShouldEqual, 1)
}

func TestNewValidation(t *testing.T) {
	_, err := oi.New(oi.DefaultBindings(), nil, fake.NewJoystick(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)

	bindings := oi.DefaultBindings()
	bindings.Joysticks[oi.Scoring].DeadZone = 1
	_, err = oi.New(bindings, fake.NewJoystick(), fake.NewJoystick(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "JoyConfig1")
}

func TestWhenPressedStartsOnRisingEdge(t *testing.T) {
	ctx := context.Background()
	o, _, scoring := newTestOI(t)
	release := newNopCommand("ReleaseGear")
	winch := newNopCommand("MoveWinchAnalog")
	o.WhenPressed(oi.Scoring, oi.ButtonA, release)
	o.WhenPressed(oi.Scoring, oi.ButtonB, winch)

	starter := &startRecorder{}
	o.Poll(ctx, starter)
	test.That(t, starter.started, test.ShouldBeEmpty)

	scoring.SetButton(2, true)
	o.Poll(ctx, starter)
	test.That(t, starter.started, test.ShouldResemble, []command.Command{release})

	// held
	o.Poll(ctx, starter)
	o.Poll(ctx, starter)
	test.That(t, len(starter.started), test.ShouldEqual, 1)

	scoring.SetButton(2, false)
	scoring.SetButton(3, true)
	o.Poll(ctx, starter)
	test.That(t, starter.started, test.ShouldResemble, []command.Command{release, winch})

	scoring.SetButton(2, true)
	o.Poll(ctx, starter)
	test.That(t, starter.started, test.ShouldResemble, []command.Command{release, winch, release})
}

func TestWhenPressedStartFailureLogged(t *testing.T) {
	ctx := context.Background()
	logger, logs := logging.NewObservedTestLogger(t)
	driver := fake.NewJoystick()
	o, err := oi.New(oi.DefaultBindings(), driver, fake.NewJoystick(), logger)
	test.That(t, err, test.ShouldBeNil)
	o.WhenPressed(oi.Driver, oi.Start, newNopCommand("Abort"))

	driver.SetButton(10, true)
	o.Poll(ctx, &startRecorder{err: errors.New("no such subsystem")})
	test.That(t, logs.FilterMessage("failed to start bound command").Len(), test.ShouldEqual, 1)

	test.That(t, func() { o.WhenPressed(oi.Driver, oi.Back, nil) }, test.ShouldPanic)
}

const bindingsINI = `
[AxisBindings]
LEFTX = 0
LEFTY = 1
RIGHTX = 4
RIGHTY = 5
DPADX = 6
DPADY = 7

[ButtonBindings]
X = 3
A = 1
B = 2
Y = 4
LEFTBUMPER = 5
RIGHTBUMPER = 6
LEFTTRIGGER = 7
RIGHTTRIGGER = 8
BACK = 9
START = 10

[JoyConfig0]
PORT = 0
AXES = 8
BUTTONS = 10
DEAD_ZONE = 0.2

[JoyConfig1]
PORT = 1
AXES = 8
BUTTONS = 10
DEAD_ZONE = 0.05
`

func TestBindingsFromTable(t *testing.T) {
	ctx := context.Background()
	table, err := config.FromReader(strings.NewReader(bindingsINI))
	test.That(t, err, test.ShouldBeNil)
	bindings, err := oi.BindingsFromTable(table)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bindings.Axes.RightY, test.ShouldEqual, 5)
	test.That(t, bindings.Buttons.X, test.ShouldEqual, 3)
	test.That(t, bindings.Joysticks[oi.Driver].DeadZone, test.ShouldEqual, 0.2)
	test.That(t, bindings.Joysticks[oi.Scoring].Port, test.ShouldEqual, 1)

	driver, scoring := fake.NewJoystick(), fake.NewJoystick()
	o, err := oi.New(bindings, driver, scoring, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	driver.SetAxis(5, 0.15)
	scoring.SetAxis(5, 0.15)
	test.That(t, o.Axis(ctx, oi.Driver, oi.RightY), test.ShouldEqual, 0.0)
	test.That(t, o.Axis(ctx, oi.Scoring, oi.RightY), test.ShouldEqual, 0.15)
	scoring.SetButton(3, true)
	test.That(t, o.Button(ctx, oi.Scoring, oi.ButtonX), test.ShouldBeTrue)
	test.That(t, o.Button(ctx, oi.Scoring, oi.ButtonB), test.ShouldBeFalse)

	incomplete, err := config.FromReader(strings.NewReader("[AxisBindings]\nLEFTX = 0\n"))
	test.That(t, err, test.ShouldBeNil)
	_, err = oi.BindingsFromTable(incomplete)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestChooser(t *testing.T) {
	empty := oi.NewChooser[string]("Empty")
	test.That(t, empty.Selected(), test.ShouldEqual, "")
	test.That(t, empty.SelectedName(), test.ShouldEqual, "")

	positions := oi.NewPositionChooser()
	test.That(t, positions.Name(), test.ShouldEqual, oi.PositionChooserName)
	test.That(t, positions.Options(), test.ShouldResemble, []string{"1", "2", "3"})
	test.That(t, positions.Selected(), test.ShouldEqual, 1)

	test.That(t, positions.Select("3"), test.ShouldBeNil)
	test.That(t, positions.Selected(), test.ShouldEqual, 3)
	test.That(t, positions.SelectedName(), test.ShouldEqual, "3")

	err := positions.Select("4")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"4"`)
	test.That(t, positions.Selected(), test.ShouldEqual, 3)

	auto := oi.NewChooser[int](oi.AutonomousChooserName).AddOption("Do Nothing", 2).AddDefault("Default", 1)
	test.That(t, auto.SelectedName(), test.ShouldEqual, "Default")
	test.That(t, auto.Selected(), test.ShouldEqual, 1)
}
