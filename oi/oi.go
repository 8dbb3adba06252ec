// Package oi implements the operator interface: driver station joysticks,
// button to command bindings and the pre-match choosers.
package oi

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/TechnoJays/robot2017/command"
	"github.com/TechnoJays/robot2017/logging"
)

// Controller identifies one of the driver station joysticks.
type Controller int

// The two controllers of the drive team.
const (
	Driver Controller = iota
	Scoring
	numControllers
)

func (c Controller) String() string {
	switch c {
	case Driver:
		return "driver"
	case Scoring:
		return "scoring"
	default:
		return "unknown"
	}
}

// Axis is a logical joystick axis.
type Axis int

// Logical axes.
const (
	LeftX Axis = iota
	LeftY
	RightX
	RightY
	DPadX
	DPadY
)

// Button is a logical joystick button.
type Button int

// Logical buttons.
const (
	ButtonX Button = iota
	ButtonA
	ButtonB
	ButtonY
	LeftBumper
	RightBumper
	LeftTrigger
	RightTrigger
	Back
	Start
)

// A Joystick is a raw HID controller as seen by the driver station.
type Joystick interface {
	// RawAxis returns the position of axis index in [-1, 1].
	RawAxis(ctx context.Context, index int) (float64, error)
	// RawButton returns whether button number index is held.
	RawButton(ctx context.Context, index int) (bool, error)
	// POV returns the hat angle in degrees, or -1 when centered.
	POV(ctx context.Context) (int, error)
}

// A Starter schedules commands. *command.Scheduler is one.
type Starter interface {
	Start(ctx context.Context, cmd command.Command) error
}

type buttonBinding struct {
	controller Controller
	button     Button
	cmd        command.Command
	wasPressed bool
}

// OI reads the joysticks through the configured bindings.
type OI struct {
	bindings  Bindings
	joysticks [numControllers]Joystick
	logger    logging.Logger

	mu      sync.Mutex
	buttons []*buttonBinding
}

// New returns an OI over the driver and scoring joysticks.
func New(bindings Bindings, driver, scoring Joystick, logger logging.Logger) (*OI, error) {
	if driver == nil || scoring == nil {
		return nil, errors.New("both driver and scoring joysticks are required")
	}
	if err := bindings.Validate("oi"); err != nil {
		return nil, err
	}
	return &OI{
		bindings:  bindings,
		joysticks: [numControllers]Joystick{driver, scoring},
		logger:    logger,
	}, nil
}

// Bindings returns the bindings in use.
func (o *OI) Bindings() Bindings {
	return o.bindings
}

func (o *OI) joystick(c Controller) Joystick {
	if c < 0 || c >= numControllers {
		return nil
	}
	return o.joysticks[c]
}

// Axis returns the position of axis a on controller c in [-1, 1]. The d-pad
// axes are derived from the hat: up and left read -1, down and right read 1.
// Other axes read 0 inside the controller's dead zone. Read failures are
// logged and read as 0.
func (o *OI) Axis(ctx context.Context, c Controller, a Axis) float64 {
	js := o.joystick(c)
	if js == nil {
		return 0
	}
	switch a {
	case DPadX, DPadY:
		pov, err := js.POV(ctx)
		if err != nil {
			o.logger.CWarnw(ctx, "failed to read joystick hat", "controller", c, "error", err)
			return 0
		}
		return povToAxis(a, pov)
	}

	index, ok := o.bindings.axisIndex(a)
	if !ok {
		return 0
	}
	value, err := js.RawAxis(ctx, index)
	if err != nil {
		o.logger.CWarnw(ctx, "failed to read joystick axis", "controller", c, "axis", index, "error", err)
		return 0
	}
	if math.Abs(value) < o.bindings.Joysticks[c].DeadZone {
		return 0
	}
	return value
}

func povToAxis(a Axis, pov int) float64 {
	if a == DPadX {
		switch pov {
		case 90:
			return 1
		case 270:
			return -1
		}
		return 0
	}
	switch pov {
	case 0:
		return -1
	case 180:
		return 1
	}
	return 0
}

// Button reports whether button b on controller c is held. Read failures
// are logged and read as released.
func (o *OI) Button(ctx context.Context, c Controller, b Button) bool {
	js := o.joystick(c)
	index, ok := o.bindings.buttonIndex(b)
	if js == nil || !ok {
		return false
	}
	pressed, err := js.RawButton(ctx, index)
	if err != nil {
		o.logger.CWarnw(ctx, "failed to read joystick button", "controller", c, "button", index, "error", err)
		return false
	}
	return pressed
}

// WhenPressed starts cmd each time button b on controller c goes from
// released to held. Bindings are checked by Poll.
func (o *OI) WhenPressed(c Controller, b Button, cmd command.Command) {
	if cmd == nil {
		panic(command.ErrNilCommand)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.buttons = append(o.buttons, &buttonBinding{controller: c, button: b, cmd: cmd})
}

// Poll samples every bound button and starts the commands whose button was
// just pressed.
func (o *OI) Poll(ctx context.Context, s Starter) {
	o.mu.Lock()
	bindings := o.buttons
	o.mu.Unlock()

	for _, binding := range bindings {
		pressed := o.Button(ctx, binding.controller, binding.button)
		if pressed && !binding.wasPressed {
			if err := s.Start(ctx, binding.cmd); err != nil {
				o.logger.CWarnw(ctx, "failed to start bound command", "command", binding.cmd.Name(), "error", err)
			}
		}
		binding.wasPressed = pressed
	}
}
