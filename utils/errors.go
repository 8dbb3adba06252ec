package utils

import (
	"github.com/pkg/errors"
)

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewMissingHardwareError is used when configuration enables a part that
// was not supplied to the subsystem constructor.
func NewMissingHardwareError(subsystem, part string) error {
	return errors.Errorf("%s: %s is enabled in config but no device was provided", subsystem, part)
}
