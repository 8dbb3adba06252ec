// Package solenoid defines single-acting pneumatic solenoid valves.
package solenoid

import "context"

// A Solenoid is a valve that is either energized or not.
type Solenoid interface {
	Set(ctx context.Context, on bool) error
	Get(ctx context.Context) (bool, error)
}
