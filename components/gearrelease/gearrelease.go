// Package gearrelease implements the pneumatic gear release subsystem.
package gearrelease

import (
	"context"
	"sync"

	"github.com/TechnoJays/robot2017/components/solenoid"
	"github.com/TechnoJays/robot2017/config"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/utils"
)

// SubsystemName is the name the gear release registers with the scheduler.
const SubsystemName = "GearRelease"

// Section is the configuration section read by the gear release.
const Section = "GearRelease"

// KeyState is the dashboard key of the solenoid state.
const KeyState = "Gear Release"

// Config describes the release solenoid.
type Config struct {
	Enabled bool `ini:"ENABLED"`
	Channel int  `ini:"SOLENOID_CHANNEL,omitempty"`
}

// ConfigFromTable reads the gear release section.
func ConfigFromTable(table *config.Table) (Config, error) {
	var cfg Config
	if err := table.Decode(Section, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Enabled {
		if err := table.Require(Section, "SOLENOID_CHANNEL"); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// GearRelease holds the gear while the solenoid is energized.
type GearRelease struct {
	logger   logging.Logger
	dash     dashboard.Dashboard
	solenoid solenoid.Solenoid

	mu    sync.Mutex
	state bool
}

// New returns a gear release over s, which may be nil when disabled.
func New(cfg Config, s solenoid.Solenoid, dash dashboard.Dashboard, logger logging.Logger) (*GearRelease, error) {
	if dash == nil {
		dash = dashboard.Noop{}
	}
	g := &GearRelease{logger: logger, dash: dash}
	if cfg.Enabled {
		if s == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "solenoid")
		}
		g.solenoid = s
	}
	return g, nil
}

// Name returns the subsystem name.
func (g *GearRelease) Name() string {
	return SubsystemName
}

// SetGearRelease energizes the solenoid when state is true.
func (g *GearRelease) SetGearRelease(ctx context.Context, state bool) {
	if g.solenoid == nil {
		return
	}
	if err := g.solenoid.Set(ctx, state); err != nil {
		g.logger.CWarnw(ctx, "failed to set gear release solenoid", "state", state, "error", err)
		return
	}
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
	g.dash.PutBool(KeyState, state)
}

// State returns the last state written successfully.
func (g *GearRelease) State() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// IsEnabled reports whether a solenoid is attached.
func (g *GearRelease) IsEnabled() bool {
	return g.solenoid != nil
}
