package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/TechnoJays/robot2017/utils"
)

const subsystemsINI = `
[DrivetrainGeneral]
MAX_SPEED = 0.8

[DrivetrainLeftMotor]
MOTOR_ENABLED = True
MOTOR_CHANNEL = 0
MOTOR_INVERTED = no

[DrivetrainGyro]
GYRO_ENABLED = false
`

type motorSection struct {
	Enabled  bool `ini:"MOTOR_ENABLED"`
	Channel  int  `ini:"MOTOR_CHANNEL"`
	Inverted bool `ini:"MOTOR_INVERTED"`
}

type gyroSection struct {
	Enabled     bool    `ini:"GYRO_ENABLED"`
	Channel     int     `ini:"GYRO_CHANNEL,omitempty"`
	Sensitivity float64 `ini:"GYRO_SENSITIVITY,omitempty"`
}

func TestTableGetters(t *testing.T) {
	table, err := FromReader(strings.NewReader(subsystemsINI))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, table.HasSection("DrivetrainGeneral"), test.ShouldBeTrue)
	test.That(t, table.HasSection("drivetraingeneral"), test.ShouldBeTrue)
	test.That(t, table.HasSection("Winch"), test.ShouldBeFalse)
	test.That(t, table.Has("DrivetrainGeneral", "max_speed"), test.ShouldBeTrue)
	test.That(t, table.Sections(), test.ShouldResemble,
		[]string{"drivetraingeneral", "drivetrainleftmotor", "drivetraingyro"})

	speed, err := table.Float("DrivetrainGeneral", "MAX_SPEED")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, speed, test.ShouldEqual, 0.8)

	channel, err := table.Int("DrivetrainLeftMotor", "MOTOR_CHANNEL")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, channel, test.ShouldEqual, 0)

	enabled, err := table.Bool("DrivetrainLeftMotor", "MOTOR_ENABLED")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, enabled, test.ShouldBeTrue)

	inverted, err := table.Bool("DrivetrainLeftMotor", "MOTOR_INVERTED")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, inverted, test.ShouldBeFalse)
}

func TestTableMissingValues(t *testing.T) {
	table, err := FromBytes([]byte(subsystemsINI))
	test.That(t, err, test.ShouldBeNil)

	_, err = table.Float("DrivetrainGeneral", "MIN_SPEED")
	var missingKey *MissingKeyError
	test.That(t, errors.As(err, &missingKey), test.ShouldBeTrue)
	test.That(t, missingKey.Section, test.ShouldEqual, "DrivetrainGeneral")
	test.That(t, missingKey.Key, test.ShouldEqual, "MIN_SPEED")

	_, err = table.Int("WinchMotor", "CHANNEL")
	var missingSection *MissingSectionError
	test.That(t, errors.As(err, &missingSection), test.ShouldBeTrue)
	test.That(t, missingSection.Section, test.ShouldEqual, "WinchMotor")

	_, err = table.Float("DrivetrainLeftMotor", "MOTOR_INVERTED")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `key "MOTOR_INVERTED" has an invalid value`)
}

func TestTableDecode(t *testing.T) {
	table, err := FromBytes([]byte(subsystemsINI))
	test.That(t, err, test.ShouldBeNil)

	var m motorSection
	test.That(t, table.Decode("DrivetrainLeftMotor", &m), test.ShouldBeNil)
	test.That(t, m, test.ShouldResemble, motorSection{Enabled: true, Channel: 0, Inverted: false})

	g := gyroSection{Sensitivity: 0.007}
	test.That(t, table.Decode("DrivetrainGyro", &g), test.ShouldBeNil)
	test.That(t, g, test.ShouldResemble, gyroSection{Enabled: false, Sensitivity: 0.007})

	var missing motorSection
	err = table.Decode("DrivetrainGyro", &missing)
	var missingKey *MissingKeyError
	test.That(t, errors.As(err, &missingKey), test.ShouldBeTrue)
	test.That(t, missingKey.Key, test.ShouldEqual, "MOTOR_CHANNEL")

	err = table.Decode("WinchMotor", &missing)
	test.That(t, err, test.ShouldBeError, NewMissingSectionError("WinchMotor"))

	err = table.Decode("DrivetrainLeftMotor", missing)
	test.That(t, err, test.ShouldBeError, utils.NewUnexpectedTypeError(&struct{}{}, missing))
	var channel int
	err = table.Decode("DrivetrainLeftMotor", &channel)
	test.That(t, err.Error(), test.ShouldEqual, "expected *struct {} but got *int")
}

func TestTableDecodeBadValue(t *testing.T) {
	table, err := FromBytes([]byte("[DrivetrainLeftMotor]\nMOTOR_ENABLED = maybe\nMOTOR_CHANNEL = 1\nMOTOR_INVERTED = 0\n"))
	test.That(t, err, test.ShouldBeNil)

	var m motorSection
	err = table.Decode("DrivetrainLeftMotor", &m)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "DrivetrainLeftMotor")
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "subsystems.ini")
	override := filepath.Join(dir, "override.ini")
	test.That(t, os.WriteFile(base, []byte(subsystemsINI), 0o600), test.ShouldBeNil)
	test.That(t, os.WriteFile(override, []byte("[DrivetrainGeneral]\nMAX_SPEED = 0.5\n"), 0o600), test.ShouldBeNil)

	table, err := Read(base, override)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, table.Sources(), test.ShouldResemble, []string{base, override})

	speed, err := table.Float("DrivetrainGeneral", "MAX_SPEED")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, speed, test.ShouldEqual, 0.5)

	_, err = Read()
	test.That(t, err, test.ShouldBeError, ErrNoSources)

	_, err = Read(filepath.Join(dir, "nope.ini"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTableRequire(t *testing.T) {
	table, err := FromBytes([]byte(subsystemsINI))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, table.Require("DrivetrainLeftMotor", "MOTOR_CHANNEL", "motor_inverted"), test.ShouldBeNil)
	test.That(t, table.Require("DrivetrainGyro", "GYRO_CHANNEL"), test.ShouldBeError,
		NewMissingKeyError("DrivetrainGyro", "GYRO_CHANNEL"))
	test.That(t, table.Require("WinchEncoder", "A_CHANNEL"), test.ShouldBeError,
		NewMissingSectionError("WinchEncoder"))
}
