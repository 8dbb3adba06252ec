// Package sim simulates a two motor drivetrain. It reads the power of the
// drive motors and moves a fake encoder and a fake gyro accordingly, so
// commands can be exercised end to end without a robot.
package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	fakeencoder "github.com/TechnoJays/robot2017/components/encoder/fake"
	fakegyro "github.com/TechnoJays/robot2017/components/gyro/fake"
	"github.com/TechnoJays/robot2017/components/motor"
	"github.com/TechnoJays/robot2017/utils"
)

// Config describes the simulated robot.
type Config struct {
	// TopSpeed is the ground speed of one side at full power, in feet per
	// second.
	TopSpeed float64
	// Wheelbase is the distance between the two sides, in feet.
	Wheelbase float64
	// TicksPerFoot converts travel into drive encoder ticks.
	TicksPerFoot float64
}

// DefaultConfig returns a kit-of-parts chassis.
func DefaultConfig() Config {
	return Config{TopSpeed: 5, Wheelbase: 2, TicksPerFoot: 100}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	if cfg.TopSpeed <= 0 || cfg.Wheelbase <= 0 || cfg.TicksPerFoot <= 0 {
		return errors.Errorf("simulator dimensions must be positive, got %+v", *cfg)
	}
	return nil
}

// Pose is the simulated position of the robot on the field.
type Pose struct {
	X, Y     float64 // feet
	Heading  float64 // degrees, clockwise
	Distance float64 // feet travelled along the heading
}

// Simulator integrates motor power into robot motion.
type Simulator struct {
	cfg     Config
	left    motor.Motor
	right   motor.Motor
	encoder *fakeencoder.Encoder
	gyro    *fakegyro.Gyro

	mu       sync.Mutex
	pose     Pose
	tickDebt float64
	elapsed  time.Duration
}

// New returns a simulator driving encoder and gyro from the left and right
// motors. The encoder and gyro may be nil.
func New(cfg Config, left, right motor.Motor, encoder *fakeencoder.Encoder, gyro *fakegyro.Gyro) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, errors.New("simulator needs both drive motors")
	}
	return &Simulator{cfg: cfg, left: left, right: right, encoder: encoder, gyro: gyro}, nil
}

// Step advances the simulation by dt. The right motor is mounted mirrored,
// so driving straight forward means a negative left and a positive right
// power.
func (s *Simulator) Step(ctx context.Context, dt time.Duration) error {
	l, errL := s.left.Power(ctx)
	r, errR := s.right.Power(ctx)
	if err := multierr.Combine(errL, errR); err != nil {
		return errors.Wrap(err, "failed to read drive motor power")
	}

	leftSpeed := -l * s.cfg.TopSpeed
	rightSpeed := r * s.cfg.TopSpeed
	forward := (leftSpeed + rightSpeed) / 2
	rotation := (leftSpeed - rightSpeed) / s.cfg.Wheelbase
	secs := dt.Seconds()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed += dt

	turned := utils.RadToDeg(rotation * secs)
	heading := utils.DegToRad(s.pose.Heading + turned/2)
	travelled := forward * secs
	s.pose.X += travelled * math.Sin(heading)
	s.pose.Y += travelled * math.Cos(heading)
	s.pose.Heading += turned
	s.pose.Distance += travelled

	if s.encoder != nil {
		s.tickDebt += travelled * s.cfg.TicksPerFoot
		whole := math.Trunc(s.tickDebt)
		s.encoder.AddTicks(int64(whole))
		s.tickDebt -= whole
	}
	if s.gyro != nil {
		s.gyro.Rotate(turned)
	}
	return nil
}

// Pose returns the current pose.
func (s *Simulator) Pose() Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// Elapsed returns the total simulated time.
func (s *Simulator) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}
