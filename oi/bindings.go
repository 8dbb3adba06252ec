package oi

import (
	"strconv"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/config"
)

// Configuration sections read by the operator interface.
const (
	AxisBindingsSection   = "AxisBindings"
	ButtonBindingsSection = "ButtonBindings"
	joystickSectionPrefix = "JoyConfig"
)

// JoystickSection returns the section configuring controller c.
func JoystickSection(c Controller) string {
	return joystickSectionPrefix + strconv.Itoa(int(c))
}

// AxisBindings maps logical axes to raw joystick axis indexes.
type AxisBindings struct {
	LeftX  int `ini:"LEFTX"`
	LeftY  int `ini:"LEFTY"`
	RightX int `ini:"RIGHTX"`
	RightY int `ini:"RIGHTY"`
	DPadX  int `ini:"DPADX"`
	DPadY  int `ini:"DPADY"`
}

// ButtonBindings maps logical buttons to raw joystick button numbers.
type ButtonBindings struct {
	X            int `ini:"X"`
	A            int `ini:"A"`
	B            int `ini:"B"`
	Y            int `ini:"Y"`
	LeftBumper   int `ini:"LEFTBUMPER"`
	RightBumper  int `ini:"RIGHTBUMPER"`
	LeftTrigger  int `ini:"LEFTTRIGGER"`
	RightTrigger int `ini:"RIGHTTRIGGER"`
	Back         int `ini:"BACK"`
	Start        int `ini:"START"`
}

// JoystickConfig describes one driver station controller.
type JoystickConfig struct {
	Port     int     `ini:"PORT"`
	Axes     int     `ini:"AXES"`
	Buttons  int     `ini:"BUTTONS"`
	DeadZone float64 `ini:"DEAD_ZONE"`
}

// Bindings is the complete operator interface configuration. It is
// resolved once at startup and never changes afterwards.
type Bindings struct {
	Axes      AxisBindings
	Buttons   ButtonBindings
	Joysticks [numControllers]JoystickConfig
}

// DefaultBindings returns the layout of an Xbox style gamepad on ports 0
// and 1.
func DefaultBindings() Bindings {
	js := JoystickConfig{Axes: 6, Buttons: 10, DeadZone: 0.1}
	scoring := js
	scoring.Port = 1
	return Bindings{
		Axes: AxisBindings{LeftX: 0, LeftY: 1, RightX: 2, RightY: 3, DPadX: 5, DPadY: 6},
		Buttons: ButtonBindings{
			X: 1, A: 2, B: 3, Y: 4,
			LeftBumper: 5, RightBumper: 6, LeftTrigger: 7, RightTrigger: 8,
			Back: 9, Start: 10,
		},
		Joysticks: [numControllers]JoystickConfig{js, scoring},
	}
}

// BindingsFromTable reads the bindings sections.
func BindingsFromTable(table *config.Table) (Bindings, error) {
	var b Bindings
	if err := table.Decode(AxisBindingsSection, &b.Axes); err != nil {
		return Bindings{}, err
	}
	if err := table.Decode(ButtonBindingsSection, &b.Buttons); err != nil {
		return Bindings{}, err
	}
	for c := Controller(0); c < numControllers; c++ {
		if err := table.Decode(JoystickSection(c), &b.Joysticks[c]); err != nil {
			return Bindings{}, err
		}
	}
	return b, b.Validate("oi")
}

// Validate ensures all parts of the config are valid.
func (b *Bindings) Validate(path string) error {
	for c, js := range b.Joysticks {
		if js.DeadZone < 0 || js.DeadZone >= 1 {
			return goutils.NewConfigValidationError(JoystickSection(Controller(c)),
				errors.Errorf("DEAD_ZONE must be within [0, 1), got %v", js.DeadZone))
		}
	}
	return nil
}

func (b *Bindings) axisIndex(a Axis) (int, bool) {
	switch a {
	case LeftX:
		return b.Axes.LeftX, true
	case LeftY:
		return b.Axes.LeftY, true
	case RightX:
		return b.Axes.RightX, true
	case RightY:
		return b.Axes.RightY, true
	case DPadX:
		return b.Axes.DPadX, true
	case DPadY:
		return b.Axes.DPadY, true
	default:
		return 0, false
	}
}

func (b *Bindings) buttonIndex(btn Button) (int, bool) {
	switch btn {
	case ButtonX:
		return b.Buttons.X, true
	case ButtonA:
		return b.Buttons.A, true
	case ButtonB:
		return b.Buttons.B, true
	case ButtonY:
		return b.Buttons.Y, true
	case LeftBumper:
		return b.Buttons.LeftBumper, true
	case RightBumper:
		return b.Buttons.RightBumper, true
	case LeftTrigger:
		return b.Buttons.LeftTrigger, true
	case RightTrigger:
		return b.Buttons.RightTrigger, true
	case Back:
		return b.Buttons.Back, true
	case Start:
		return b.Buttons.Start, true
	default:
		return 0, false
	}
}
