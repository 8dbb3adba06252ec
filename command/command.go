// Package command implements the cooperative command scheduler: commands
// with a fixed lifecycle, sequential command groups and per-subsystem
// ownership with default commands.
//
// A Command goes through Initialize once, Execute once per scheduler pass
// while IsFinished is false, and then exactly one of End (natural completion
// or timeout) or Interrupted (pre-emption or cancellation). No command method
// may block; work that spans several cycles is kept in the command's fields.
package command

import (
	"context"
	"reflect"
	"time"

	"github.com/benbjohnson/clock"
)

// A Subsystem is a physical actuation unit that at most one command may
// drive at a time.
type Subsystem interface {
	Name() string
}

// A Command is one schedulable unit of robot behavior.
type Command interface {
	Name() string
	// Requirements lists the subsystems the command must own while it runs.
	Requirements() []Subsystem
	// Timeout bounds how long the command may run. Zero means unbounded.
	Timeout() time.Duration

	Initialize(ctx context.Context)
	Execute(ctx context.Context)
	IsFinished(ctx context.Context) bool
	End(ctx context.Context)
	Interrupted(ctx context.Context)
}

// startTimer is implemented by commands embedding Base so that the timeout
// they report through IsTimedOut is measured from their own initialization.
type startTimer interface {
	markStarted()
}

// timeoutReporter is implemented by commands embedding Base.
type timeoutReporter interface {
	IsTimedOut() bool
}

// Option configures a Base.
type Option func(*Base)

// WithName overrides the command name, which otherwise defaults to the
// command's type name.
func WithName(name string) Option {
	return func(b *Base) {
		b.name = name
	}
}

// WithTimeout sets the command timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Base) {
		b.timeout = timeout
	}
}

// WithClock sets the clock used for the command's timeout and any timing it
// performs itself.
func WithClock(clk clock.Clock) Option {
	return func(b *Base) {
		b.clk = clk
	}
}

// Base carries the bookkeeping shared by all commands: name, timeout,
// required subsystems and the time of the last initialization. Embed it and
// implement the lifecycle methods.
type Base struct {
	name         string
	timeout      time.Duration
	requirements []Subsystem
	clk          clock.Clock
	startedAt    time.Time
	started      bool
}

// NewBase returns a Base for the command self. self is only used to derive
// the default name.
func NewBase(self interface{}, opts ...Option) Base {
	b := Base{name: typeName(self), clk: clock.New()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func typeName(v interface{}) string {
	if v == nil {
		return "Command"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Requires adds subsystems to the command's requirements. Requiring a nil
// subsystem is a wiring defect and panics.
func (b *Base) Requires(subsystems ...Subsystem) {
	for _, s := range subsystems {
		if s == nil || reflect.ValueOf(s).Kind() == reflect.Ptr && reflect.ValueOf(s).IsNil() {
			panic(ErrNilSubsystem)
		}
		if !b.DoesRequire(s) {
			b.requirements = append(b.requirements, s)
		}
	}
}

// DoesRequire reports whether s is one of the command's requirements.
func (b *Base) DoesRequire(s Subsystem) bool {
	for _, r := range b.requirements {
		if r == s {
			return true
		}
	}
	return false
}

// Name returns the command name.
func (b *Base) Name() string {
	return b.name
}

// Timeout returns the configured timeout, zero when unbounded.
func (b *Base) Timeout() time.Duration {
	return b.timeout
}

// Requirements returns the required subsystems in declaration order.
func (b *Base) Requirements() []Subsystem {
	return b.requirements
}

// Clock returns the command's clock.
func (b *Base) Clock() clock.Clock {
	return b.clk
}

// TimeSinceInitialized returns how long ago the command was last
// initialized, or zero if it never was.
func (b *Base) TimeSinceInitialized() time.Duration {
	if !b.started {
		return 0
	}
	return b.clk.Since(b.startedAt)
}

// IsTimedOut reports whether a timeout is configured and has elapsed since
// the last initialization.
func (b *Base) IsTimedOut() bool {
	return b.timeout > 0 && b.started && b.clk.Since(b.startedAt) >= b.timeout
}

func (b *Base) markStarted() {
	b.startedAt = b.clk.Now()
	b.started = true
}
