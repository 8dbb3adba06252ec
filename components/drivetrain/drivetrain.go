// Package drivetrain implements the two-motor skid-steer drivetrain with its
// drive encoder and yaw and pitch gyros.
//
// Sensor reads never fail: when a device is disabled or a read errors, the
// last known value is returned and the error is logged.
package drivetrain

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/TechnoJays/robot2017/components/encoder"
	"github.com/TechnoJays/robot2017/components/gyro"
	"github.com/TechnoJays/robot2017/components/motor"
	"github.com/TechnoJays/robot2017/dashboard"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/utils"
)

// SubsystemName is the name the drivetrain registers with the scheduler.
const SubsystemName = "Drivetrain"

// Dashboard keys.
const (
	KeyLeftSpeed   = "Drivetrain Left Speed"
	KeyRightSpeed  = "Drivetrain Right Speed"
	KeyLinearSpeed = "Drivetrain Linear Speed"
	KeyTurnSpeed   = "Drivetrain Turn Speed"
	KeyEncoder     = "Drivetrain Encoder"
	KeyGyroAngle   = "Gyro Angle"
	KeyPitchAngle  = "Pitch Angle"
)

// Hardware holds the devices the drivetrain drives. Devices that are
// disabled in the config may be nil.
type Hardware struct {
	Left      motor.Motor
	Right     motor.Motor
	Encoder   encoder.Encoder
	Gyro      gyro.Gyro
	PitchGyro gyro.Gyro
}

// Drivetrain is the drive base subsystem.
type Drivetrain struct {
	cfg    Config
	logger logging.Logger
	dash   dashboard.Dashboard

	left, right motor.Motor
	encoder     encoder.Encoder
	gyro, pitch gyro.Gyro

	mu           sync.Mutex
	encoderCount int64
	gyroAngle    float64
	pitchAngle   float64
}

// New returns a drivetrain over hw. Motor and encoder orientation flags
// from cfg are applied here, so callers pass devices as wired.
func New(cfg Config, hw Hardware, dash dashboard.Dashboard, logger logging.Logger) (*Drivetrain, error) {
	if err := cfg.Validate(GeneralSection); err != nil {
		return nil, err
	}
	if dash == nil {
		dash = dashboard.Noop{}
	}
	d := &Drivetrain{cfg: cfg, logger: logger, dash: dash}

	var err error
	d.left, err = pickMotor(cfg.LeftMotor, hw.Left, "left motor")
	if err != nil {
		return nil, err
	}
	d.right, err = pickMotor(cfg.RightMotor, hw.Right, "right motor")
	if err != nil {
		return nil, err
	}
	if cfg.Encoder.Enabled {
		if hw.Encoder == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "encoder")
		}
		d.encoder = hw.Encoder
		if cfg.Encoder.Reversed {
			d.encoder = encoder.Reversed(hw.Encoder)
		}
	}
	if cfg.Gyro.Enabled {
		if hw.Gyro == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "gyro")
		}
		d.gyro = hw.Gyro
	}
	if cfg.PitchGyro.Enabled {
		if hw.PitchGyro == nil {
			return nil, utils.NewMissingHardwareError(SubsystemName, "pitch gyro")
		}
		d.pitch = hw.PitchGyro
	}

	d.publishSensors()
	d.dash.PutNumber(KeyLeftSpeed, 0)
	d.dash.PutNumber(KeyRightSpeed, 0)
	d.dash.PutNumber(KeyLinearSpeed, 0)
	d.dash.PutNumber(KeyTurnSpeed, 0)
	return d, nil
}

func pickMotor(cfg MotorConfig, m motor.Motor, part string) (motor.Motor, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if m == nil {
		return nil, utils.NewMissingHardwareError(SubsystemName, part)
	}
	if cfg.Inverted {
		return motor.Inverted(m), nil
	}
	return m, nil
}

// Name returns the subsystem name.
func (d *Drivetrain) Name() string {
	return SubsystemName
}

// Config returns the configuration the drivetrain was built with.
func (d *Drivetrain) Config() Config {
	return d.cfg
}

// IsEncoderEnabled reports whether encoder reads are live.
func (d *Drivetrain) IsEncoderEnabled() bool {
	return d.encoder != nil
}

// IsGyroEnabled reports whether yaw reads are live.
func (d *Drivetrain) IsGyroEnabled() bool {
	return d.gyro != nil
}

// IsPitchGyroEnabled reports whether pitch reads are live.
func (d *Drivetrain) IsPitchGyroEnabled() bool {
	return d.pitch != nil
}

// ArcadeDrive drives with a linear speed and a turn rate, both in [-1, 1].
// Nothing moves unless both motors are enabled.
func (d *Drivetrain) ArcadeDrive(ctx context.Context, linear, turn float64) {
	if d.left != nil && d.right != nil {
		left, right := ArcadeMix(linear, turn)
		d.setMotors(ctx, left, -right)
	}
	d.dash.PutNumber(KeyLinearSpeed, linear)
	d.dash.PutNumber(KeyTurnSpeed, turn)
	d.refreshSensors(ctx)
}

// TankDrive drives each side independently. Inputs are scaled by the
// configured maximum speed.
func (d *Drivetrain) TankDrive(ctx context.Context, left, right float64) {
	if d.left != nil && d.right != nil {
		maxSpeed := d.cfg.General.MaxSpeed
		d.setMotors(ctx, utils.ClampPower(left*maxSpeed), -utils.ClampPower(right*maxSpeed))
	}
	d.dash.PutNumber(KeyLeftSpeed, left)
	d.dash.PutNumber(KeyRightSpeed, right)
	d.refreshSensors(ctx)
}

func (d *Drivetrain) setMotors(ctx context.Context, left, right float64) {
	err := multierr.Combine(
		d.left.SetPower(ctx, left),
		d.right.SetPower(ctx, right),
	)
	if err != nil {
		d.logger.CWarnw(ctx, "failed to set drive motor power", "left", left, "right", right, "error", err)
	}
}

// Stop sets both motors to zero power.
func (d *Drivetrain) Stop(ctx context.Context) error {
	return motor.Stop(ctx, d.left, d.right)
}

// EncoderValue returns the drive encoder count.
func (d *Drivetrain) EncoderValue(ctx context.Context) int64 {
	if d.encoder != nil {
		ticks, err := d.encoder.TicksCount(ctx)
		if err != nil {
			d.logger.CWarnw(ctx, "failed to read drive encoder", "error", err)
		} else {
			d.mu.Lock()
			d.encoderCount = ticks
			d.mu.Unlock()
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.encoderCount
}

// ResetEncoderValue zeroes the drive encoder and returns the new count.
func (d *Drivetrain) ResetEncoderValue(ctx context.Context) int64 {
	if d.encoder != nil {
		if err := d.encoder.Reset(ctx); err != nil {
			d.logger.CWarnw(ctx, "failed to reset drive encoder", "error", err)
		}
	}
	ticks := d.EncoderValue(ctx)
	d.publishSensors()
	return ticks
}

// GyroAngle returns the heading in degrees.
func (d *Drivetrain) GyroAngle(ctx context.Context) float64 {
	return d.readGyro(ctx, d.gyro, &d.gyroAngle, "gyro")
}

// ResetGyroAngle makes the current heading zero and returns the new angle.
func (d *Drivetrain) ResetGyroAngle(ctx context.Context) float64 {
	return d.resetGyro(ctx, d.gyro, &d.gyroAngle, "gyro")
}

// PitchAngle returns the pitch in degrees.
func (d *Drivetrain) PitchAngle(ctx context.Context) float64 {
	return d.readGyro(ctx, d.pitch, &d.pitchAngle, "pitch gyro")
}

// ResetPitchAngle makes the current pitch zero and returns the new angle.
func (d *Drivetrain) ResetPitchAngle(ctx context.Context) float64 {
	return d.resetGyro(ctx, d.pitch, &d.pitchAngle, "pitch gyro")
}

func (d *Drivetrain) readGyro(ctx context.Context, g gyro.Gyro, last *float64, part string) float64 {
	if g != nil {
		angle, err := g.Angle(ctx)
		if err != nil {
			d.logger.CWarnw(ctx, "failed to read "+part, "error", err)
		} else {
			d.mu.Lock()
			*last = angle
			d.mu.Unlock()
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return *last
}

func (d *Drivetrain) resetGyro(ctx context.Context, g gyro.Gyro, last *float64, part string) float64 {
	if g != nil {
		if err := g.Reset(ctx); err != nil {
			d.logger.CWarnw(ctx, "failed to reset "+part, "error", err)
		}
		d.readGyro(ctx, g, last, part)
	}
	d.publishSensors()
	d.mu.Lock()
	defer d.mu.Unlock()
	return *last
}

func (d *Drivetrain) refreshSensors(ctx context.Context) {
	d.GyroAngle(ctx)
	d.PitchAngle(ctx)
	d.EncoderValue(ctx)
	d.publishSensors()
}

func (d *Drivetrain) publishSensors() {
	d.mu.Lock()
	encoderCount, gyroAngle, pitchAngle := d.encoderCount, d.gyroAngle, d.pitchAngle
	d.mu.Unlock()
	d.dash.PutNumber(KeyEncoder, float64(encoderCount))
	d.dash.PutNumber(KeyGyroAngle, gyroAngle)
	d.dash.PutNumber(KeyPitchAngle, pitchAngle)
}
