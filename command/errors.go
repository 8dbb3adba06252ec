package command

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNilSubsystem is raised when a command requires a subsystem that was never constructed.
	ErrNilSubsystem = errors.New("command requires a nil subsystem")
	// ErrNilCommand is returned when a nil command is scheduled or added to a group.
	ErrNilCommand = errors.New("command is nil")
	// ErrGroupLocked is raised when a child is added to a group that has already started.
	ErrGroupLocked = errors.New("cannot add commands to a group after it has started")
)

// UnregisteredSubsystemError is returned when a command requires a
// subsystem the scheduler does not know about.
type UnregisteredSubsystemError struct {
	Command   string
	Subsystem string
}

func (e *UnregisteredSubsystemError) Error() string {
	return fmt.Sprintf("command %q requires unregistered subsystem %q", e.Command, e.Subsystem)
}

// NewUnregisteredSubsystemError returns an UnregisteredSubsystemError.
func NewUnregisteredSubsystemError(cmd Command, s Subsystem) error {
	return &UnregisteredSubsystemError{Command: cmd.Name(), Subsystem: s.Name()}
}

// NewDefaultCommandRequirementError is returned when a default command does
// not require the subsystem it is installed on.
func NewDefaultCommandRequirementError(cmd Command, s Subsystem) error {
	return errors.Errorf("default command %q for subsystem %q must require it", cmd.Name(), s.Name())
}
