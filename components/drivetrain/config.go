package drivetrain

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/config"
)

// Configuration sections read by the drivetrain.
const (
	GeneralSection    = "DrivetrainGeneral"
	LeftMotorSection  = "DrivetrainLeftMotor"
	RightMotorSection = "DrivetrainRightMotor"
	EncoderSection    = "DrivetrainEncoder"
	GyroSection       = "DrivetrainGyro"
	PitchGyroSection  = "DrivetrainPitchGyro"
)

// GeneralConfig holds settings that apply to the whole drivetrain.
type GeneralConfig struct {
	// MaxSpeed scales tank drive inputs.
	MaxSpeed float64 `ini:"MAX_SPEED"`
}

// MotorConfig describes one side's speed controller.
type MotorConfig struct {
	Enabled  bool `ini:"MOTOR_ENABLED"`
	Channel  int  `ini:"MOTOR_CHANNEL,omitempty"`
	Inverted bool `ini:"MOTOR_INVERTED,omitempty"`
}

// EncoderConfig describes the drive encoder.
type EncoderConfig struct {
	Enabled  bool `ini:"ENCODER_ENABLED"`
	AChannel int  `ini:"ENCODER_A_CHANNEL,omitempty"`
	BChannel int  `ini:"ENCODER_B_CHANNEL,omitempty"`
	Reversed bool `ini:"ENCODER_REVERSED,omitempty"`
	// Type is the decoding multiplier: 1, 2 or 4 counts per cycle.
	Type int `ini:"ENCODER_TYPE,omitempty"`
}

// GyroConfig describes an analog gyro.
type GyroConfig struct {
	Enabled     bool    `ini:"GYRO_ENABLED"`
	Channel     int     `ini:"GYRO_CHANNEL,omitempty"`
	Sensitivity float64 `ini:"GYRO_SENSITIVITY,omitempty"`
}

// Config is the complete drivetrain configuration.
type Config struct {
	General    GeneralConfig
	LeftMotor  MotorConfig
	RightMotor MotorConfig
	Encoder    EncoderConfig
	Gyro       GyroConfig
	PitchGyro  GyroConfig
}

// ConfigFromTable reads the drivetrain sections. Channel keys are required
// only for enabled devices.
func ConfigFromTable(table *config.Table) (Config, error) {
	var cfg Config
	sections := []struct {
		name string
		out  interface{}
	}{
		{GeneralSection, &cfg.General},
		{LeftMotorSection, &cfg.LeftMotor},
		{RightMotorSection, &cfg.RightMotor},
		{EncoderSection, &cfg.Encoder},
		{GyroSection, &cfg.Gyro},
		{PitchGyroSection, &cfg.PitchGyro},
	}
	for _, s := range sections {
		if err := table.Decode(s.name, s.out); err != nil {
			return Config{}, err
		}
	}

	var err error
	for _, m := range []struct {
		section string
		enabled bool
	}{{LeftMotorSection, cfg.LeftMotor.Enabled}, {RightMotorSection, cfg.RightMotor.Enabled}} {
		if m.enabled && err == nil {
			err = table.Require(m.section, "MOTOR_CHANNEL", "MOTOR_INVERTED")
		}
	}
	if cfg.Encoder.Enabled && err == nil {
		err = table.Require(EncoderSection,
			"ENCODER_A_CHANNEL", "ENCODER_B_CHANNEL", "ENCODER_REVERSED", "ENCODER_TYPE")
	}
	if cfg.Gyro.Enabled && err == nil {
		err = table.Require(GyroSection, "GYRO_CHANNEL", "GYRO_SENSITIVITY")
	}
	if cfg.PitchGyro.Enabled && err == nil {
		err = table.Require(PitchGyroSection, "GYRO_CHANNEL", "GYRO_SENSITIVITY")
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate(GeneralSection)
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.General.MaxSpeed < 0 || cfg.General.MaxSpeed > 1 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("MAX_SPEED must be within [0, 1], got %v", cfg.General.MaxSpeed))
	}
	if cfg.Encoder.Enabled {
		switch cfg.Encoder.Type {
		case 1, 2, 4:
		default:
			return goutils.NewConfigValidationError(EncoderSection,
				errors.Errorf("ENCODER_TYPE must be 1, 2 or 4, got %d", cfg.Encoder.Type))
		}
	}
	for _, g := range []struct {
		section string
		cfg     GyroConfig
	}{{GyroSection, cfg.Gyro}, {PitchGyroSection, cfg.PitchGyro}} {
		if g.cfg.Enabled && g.cfg.Sensitivity < 0 {
			return goutils.NewConfigValidationError(g.section,
				errors.Errorf("GYRO_SENSITIVITY must not be negative, got %v", g.cfg.Sensitivity))
		}
	}
	return nil
}
