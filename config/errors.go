package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoSources is returned when a table is loaded from nothing.
var ErrNoSources = errors.New("no configuration sources given")

// MissingKeyError is returned when a required key is absent.
type MissingKeyError struct {
	Section string
	Key     string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config section %q is missing required key %q", e.Section, e.Key)
}

// NewMissingKeyError returns a MissingKeyError.
func NewMissingKeyError(section, key string) error {
	return &MissingKeyError{Section: section, Key: key}
}

// MissingSectionError is returned when a required section is absent.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("config section %q is missing", e.Section)
}

// NewMissingSectionError returns a MissingSectionError.
func NewMissingSectionError(section string) error {
	return &MissingSectionError{Section: section}
}

// NewInvalidValueError returns an error for a value that could not be
// converted to the requested type.
func NewInvalidValueError(section, key string, err error) error {
	return errors.Wrapf(err, "config section %q key %q has an invalid value", section, key)
}
