package robot

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/TechnoJays/robot2017/autonomous"
	"github.com/TechnoJays/robot2017/components/drivetrain"
	"github.com/TechnoJays/robot2017/components/gearrelease"
	"github.com/TechnoJays/robot2017/components/winch"
	"github.com/TechnoJays/robot2017/config"
	"github.com/TechnoJays/robot2017/oi"
)

// Configuration files read from the configuration directory.
const (
	SubsystemsFile = "subsystems.ini"
	AutonomousFile = "autonomous.ini"
	JoysticksFile  = "joysticks.ini"
)

// Config is the complete robot configuration. It is resolved once at
// startup.
type Config struct {
	Drivetrain  drivetrain.Config
	Winch       winch.Config
	GearRelease gearrelease.Config
	Bindings    oi.Bindings
	Autonomous  autonomous.Params
}

// ConfigFromTables builds the configuration from the subsystem, autonomous
// and joystick tables.
func ConfigFromTables(subsystems, auto, joysticks *config.Table) (Config, error) {
	var cfg Config
	var err error
	if cfg.Drivetrain, err = drivetrain.ConfigFromTable(subsystems); err != nil {
		return Config{}, errors.Wrap(err, "drivetrain")
	}
	if cfg.Winch, err = winch.ConfigFromTable(subsystems); err != nil {
		return Config{}, errors.Wrap(err, "winch")
	}
	if cfg.GearRelease, err = gearrelease.ConfigFromTable(subsystems); err != nil {
		return Config{}, errors.Wrap(err, "gear release")
	}
	if cfg.Autonomous, err = autonomous.ParamsFromTable(auto); err != nil {
		return Config{}, errors.Wrap(err, "autonomous")
	}
	if cfg.Bindings, err = oi.BindingsFromTable(joysticks); err != nil {
		return Config{}, errors.Wrap(err, "joysticks")
	}
	return cfg, nil
}

// ReadConfig reads the configuration files from dir. Each file may be
// overridden key by key by a file of the same name in any of overlays;
// overlays without such a file are skipped.
func ReadConfig(dir string, overlays ...string) (Config, error) {
	read := func(name string) (*config.Table, error) {
		paths := []string{filepath.Join(dir, name)}
		for _, overlay := range overlays {
			p := filepath.Join(overlay, name)
			if _, err := os.Stat(p); err == nil {
				paths = append(paths, p)
			}
		}
		return config.Read(paths...)
	}
	subsystems, err := read(SubsystemsFile)
	if err != nil {
		return Config{}, err
	}
	auto, err := read(AutonomousFile)
	if err != nil {
		return Config{}, err
	}
	joysticks, err := read(JoysticksFile)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromTables(subsystems, auto, joysticks)
}
