// Package winch implements the climbing winch subsystem.
package winch

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/components/encoder"
	"github.com/TechnoJays/robot2017/components/motor"
	"github.com/TechnoJays/robot2017/config"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/utils"
)

// SubsystemName is the name the winch registers with the scheduler.
const SubsystemName = "Winch"

// Configuration sections read by the winch.
const (
	MotorSection   = "WinchMotor"
	EncoderSection = "WinchEncoder"
)

// Dashboard keys.
const (
	KeySpeed   = "Winch Speed"
	KeyEncoder = "Winch Encoder"
)

// MotorConfig describes the winch speed controller.
type MotorConfig struct {
	Enabled  bool `ini:"ENABLED"`
	Channel  int  `ini:"CHANNEL,omitempty"`
	Inverted bool `ini:"INVERTED,omitempty"`
}

// EncoderConfig describes the winch drum encoder.
type EncoderConfig struct {
	Enabled  bool `ini:"ENABLED"`
	AChannel int  `ini:"A_CHANNEL,omitempty"`
	BChannel int  `ini:"B_CHANNEL,omitempty"`
	Inverted bool `ini:"INVERTED,omitempty"`
	Type     int  `ini:"TYPE,omitempty"`
}

// Config is the complete winch configuration.
type Config struct {
	Motor   MotorConfig
	Encoder EncoderConfig
}

// ConfigFromTable reads the winch sections.
func ConfigFromTable(table *config.Table) (Config, error) {
	var cfg Config
	if err := table.Decode(MotorSection, &cfg.Motor); err != nil {
		return Config{}, err
	}
	if err := table.Decode(EncoderSection, &cfg.Encoder); err != nil {
		return Config{}, err
	}
	if cfg.Motor.Enabled {
		if err := table.Require(MotorSection, "CHANNEL", "INVERTED"); err != nil {
			return Config{}, err
		}
	}
	if cfg.Encoder.Enabled {
		if err := table.Require(EncoderSection, "A_CHANNEL", "B_CHANNEL", "INVERTED", "TYPE"); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate(EncoderSection)
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if !cfg.Encoder.Enabled {
		return nil
	}
	switch cfg.Encoder.Type {
	case 1, 2, 4:
		return nil
	default:
		return goutils.NewConfigValidationError(path,
			errors.Errorf("TYPE must be 1, 2 or 4, got %d", cfg.Encoder.Type))
	}
}

// Hardware holds the winch devices. Disabled devices may be nil.
type Hardware struct {
	Motor   motor.Motor
	Encoder encoder.Encoder
}

// Winch is the winch subsystem.
type Winch struct {
	cfg     Config
	logger  logging.Logger
	dash    dashboard.Dashboard
	motor   motor.Motor
	encoder encoder.Encoder

	mu           sync.Mutex
	encoderCount int64
}

// New returns a winch over hw.
func New(cfg Config, hw Hardware, dash dashboard.Dashboard, logger logging.Logger) (*Winch, error) {
	if err := cfg.Validate(EncoderSection); err != nil {
		return nil, err
	}
	if dash == nil {
		dash = dashboard.Noop{}
	}
	w := &Winch{cfg: cfg, logger: logger, dash: dash}
	if cfg.Motor.Enabled {
		if hw.Motor == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "motor")
		}
		w.motor = hw.Motor
		if cfg.Motor.Inverted {
			w.motor = motor.Inverted(hw.Motor)
		}
	}
	if cfg.Encoder.Enabled {
		if hw.Encoder == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "encoder")
		}
		w.encoder = hw.Encoder
		if cfg.Encoder.Inverted {
			w.encoder = encoder.Reversed(hw.Encoder)
		}
	}
	w.publish(0)
	return w, nil
}

// Name returns the subsystem name.
func (w *Winch) Name() string {
	return SubsystemName
}

// MoveWinch runs the winch at speed in [-1, 1].
func (w *Winch) MoveWinch(ctx context.Context, speed float64) {
	speed = utils.ClampPower(speed)
	if w.motor != nil {
		if err := w.motor.SetPower(ctx, speed); err != nil {
			w.logger.CWarnw(ctx, "failed to set winch power", "speed", speed, "error", err)
		}
	}
	w.EncoderValue(ctx)
	w.publish(speed)
}

// EncoderValue returns the drum encoder count, or the last known count.
func (w *Winch) EncoderValue(ctx context.Context) int64 {
	if w.encoder != nil {
		ticks, err := w.encoder.TicksCount(ctx)
		if err != nil {
			w.logger.CWarnw(ctx, "failed to read winch encoder", "error", err)
		} else {
			w.mu.Lock()
			w.encoderCount = ticks
			w.mu.Unlock()
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoderCount
}

// ResetEncoderValue zeroes the drum encoder.
func (w *Winch) ResetEncoderValue(ctx context.Context) int64 {
	if w.encoder != nil {
		if err := w.encoder.Reset(ctx); err != nil {
			w.logger.CWarnw(ctx, "failed to reset winch encoder", "error", err)
		}
	}
	ticks := w.EncoderValue(ctx)
	w.publish(0)
	return ticks
}

// Stop sets the winch motor to zero power.
func (w *Winch) Stop(ctx context.Context) error {
	return motor.Stop(ctx, w.motor)
}

func (w *Winch) publish(speed float64) {
	w.mu.Lock()
	count := w.encoderCount
	w.mu.Unlock()
	w.dash.PutNumber(KeyEncoder, float64(count))
	w.dash.PutNumber(KeySpeed, speed)
}
