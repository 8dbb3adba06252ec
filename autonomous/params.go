package autonomous

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/config"
)

// Configuration sections read by the routines.
const (
	ApproachSection = "Approach"
	CrossSection    = "Cross"
	HangSection     = "Hang"
)

// ApproachParams configure the drive up to the airship, shared by every
// routine. Times are in seconds.
type ApproachParams struct {
	Speed            float64 `ini:"APPROACH_SPEED"`
	EncoderCounts    int64   `ini:"APPROACH_ENCODER_COUNTS"`
	EncoderThreshold int64   `ini:"APPROACH_ENCODER_THRESHOLD"`
	Time             float64 `ini:"APPROACH_TIME"`
	InitialWaitTime  float64 `ini:"INITIAL_WAIT_TIME"`
}

// CrossParams configure crossing the base line. The center parameters are
// only used when starting behind the airship in position 2.
type CrossParams struct {
	EncoderThreshold int64   `ini:"CROSS_ENCODER_THRESHOLD"`
	AngleThreshold   float64 `ini:"CROSS_ANGLE_THRESHOLD"`
	Speed            float64 `ini:"CROSS_SPEED"`
	EncoderCounts    int64   `ini:"CROSS_ENCODER_COUNTS"`
	Time             float64 `ini:"CROSS_TIME"`

	CenterTurnSpeed          float64 `ini:"CROSS_CENTER_TURN_SPEED"`
	CenterTurnAngle          float64 `ini:"CROSS_CENTER_TURN_ANGLE"`
	CenterTurnTime           float64 `ini:"CROSS_CENTER_TURN_TIME"`
	CenterDriveSpeed         float64 `ini:"CROSS_CENTER_DRIVE_SPEED"`
	CenterDriveEncoderCounts int64   `ini:"CROSS_CENTER_DRIVE_ENCODER_COUNTS"`
	CenterDriveTime          float64 `ini:"CROSS_CENTER_DRIVE_TIME"`
}

// HangParams configure the final timed drive onto the center peg.
type HangParams struct {
	CenterApproachSpeed float64 `ini:"HANG_CENTER_APPROACH_SPEED"`
	CenterApproachTime  float64 `ini:"HANG_CENTER_APPROACH_TIME"`
}

// Params is the complete autonomous configuration. It is read once when
// the robot starts.
type Params struct {
	Approach ApproachParams
	Cross    CrossParams
	Hang     HangParams
}

// ParamsFromTable reads every autonomous section. A missing or malformed
// key is an error.
func ParamsFromTable(table *config.Table) (Params, error) {
	var p Params
	if err := table.Decode(ApproachSection, &p.Approach); err != nil {
		return Params{}, err
	}
	if err := table.Decode(CrossSection, &p.Cross); err != nil {
		return Params{}, err
	}
	if err := table.Decode(HangSection, &p.Hang); err != nil {
		return Params{}, err
	}
	return p, p.Validate("autonomous")
}

// Validate ensures all parts of the config are valid.
func (p *Params) Validate(path string) error {
	for _, check := range []struct {
		section string
		key     string
		speed   float64
	}{
		{ApproachSection, "APPROACH_SPEED", p.Approach.Speed},
		{CrossSection, "CROSS_SPEED", p.Cross.Speed},
		{CrossSection, "CROSS_CENTER_TURN_SPEED", p.Cross.CenterTurnSpeed},
		{CrossSection, "CROSS_CENTER_DRIVE_SPEED", p.Cross.CenterDriveSpeed},
		{HangSection, "HANG_CENTER_APPROACH_SPEED", p.Hang.CenterApproachSpeed},
	} {
		if check.speed < -1 || check.speed > 1 {
			return goutils.NewConfigValidationError(check.section,
				errors.Errorf("%s must be within [-1, 1], got %v", check.key, check.speed))
		}
	}
	for _, check := range []struct {
		section string
		key     string
		secs    float64
	}{
		{ApproachSection, "APPROACH_TIME", p.Approach.Time},
		{ApproachSection, "INITIAL_WAIT_TIME", p.Approach.InitialWaitTime},
		{CrossSection, "CROSS_TIME", p.Cross.Time},
		{CrossSection, "CROSS_CENTER_TURN_TIME", p.Cross.CenterTurnTime},
		{CrossSection, "CROSS_CENTER_DRIVE_TIME", p.Cross.CenterDriveTime},
		{HangSection, "HANG_CENTER_APPROACH_TIME", p.Hang.CenterApproachTime},
	} {
		if check.secs < 0 {
			return goutils.NewConfigValidationError(check.section,
				errors.Errorf("%s must not be negative, got %v", check.key, check.secs))
		}
	}
	if p.Approach.EncoderThreshold < 0 || p.Cross.EncoderThreshold < 0 || p.Cross.AngleThreshold < 0 {
		return goutils.NewConfigValidationError(path, errors.New("thresholds must not be negative"))
	}
	return nil
}
