package command

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/TechnoJays/robot2017/logging"
)

type testSubsystem struct {
	name string
}

func (s *testSubsystem) Name() string {
	return s.name
}

// recordingCommand appends every lifecycle callback to a shared journal and
// finishes after a fixed number of executions (never when runs is negative).
type recordingCommand struct {
	Base
	journal  *[]string
	runs     int
	executed int
}

func newRecordingCommand(name string, journal *[]string, runs int, opts ...Option) *recordingCommand {
	c := &recordingCommand{journal: journal, runs: runs}
	c.Base = NewBase(c, append([]Option{WithName(name)}, opts...)...)
	return c
}

func (c *recordingCommand) record(event string) {
	*c.journal = append(*c.journal, fmt.Sprintf("%s.%s", c.Name(), event))
}

func (c *recordingCommand) Initialize(ctx context.Context) {
	c.executed = 0
	c.record("initialize")
}

func (c *recordingCommand) Execute(ctx context.Context) {
	c.executed++
	c.record("execute")
}

func (c *recordingCommand) IsFinished(ctx context.Context) bool {
	return c.runs >= 0 && c.executed >= c.runs
}

func (c *recordingCommand) End(ctx context.Context) {
	c.record("end")
}

func (c *recordingCommand) Interrupted(ctx context.Context) {
	c.record("interrupted")
}

func TestBaseDefaults(t *testing.T) {
	var journal []string
	c := &recordingCommand{journal: &journal}
	c.Base = NewBase(c)
	test.That(t, c.Name(), test.ShouldEqual, "recordingCommand")
	test.That(t, c.Timeout(), test.ShouldEqual, time.Duration(0))
	test.That(t, c.Requirements(), test.ShouldBeEmpty)
	test.That(t, c.IsTimedOut(), test.ShouldBeFalse)
	test.That(t, c.TimeSinceInitialized(), test.ShouldEqual, time.Duration(0))

	named := newRecordingCommand("Custom", &journal, 1, WithTimeout(5*time.Second))
	test.That(t, named.Name(), test.ShouldEqual, "Custom")
	test.That(t, named.Timeout(), test.ShouldEqual, 5*time.Second)
}

func TestBaseRequires(t *testing.T) {
	var journal []string
	drive := &testSubsystem{"drivetrain"}
	winch := &testSubsystem{"winch"}

	c := newRecordingCommand("c", &journal, 1)
	c.Requires(drive, winch, drive)
	test.That(t, c.Requirements(), test.ShouldResemble, []Subsystem{drive, winch})
	test.That(t, c.DoesRequire(winch), test.ShouldBeTrue)

	var missing *testSubsystem
	test.That(t, func() { c.Requires(missing) }, test.ShouldPanicWith, ErrNilSubsystem)
	test.That(t, func() { c.Requires(nil) }, test.ShouldPanicWith, ErrNilSubsystem)
}

func TestBaseTimeout(t *testing.T) {
	clk := clock.NewMock()
	var journal []string
	c := newRecordingCommand("c", &journal, -1, WithTimeout(time.Second), WithClock(clk))

	// not started yet
	clk.Add(time.Hour)
	test.That(t, c.IsTimedOut(), test.ShouldBeFalse)

	c.markStarted()
	clk.Add(999 * time.Millisecond)
	test.That(t, c.IsTimedOut(), test.ShouldBeFalse)
	test.That(t, c.TimeSinceInitialized(), test.ShouldEqual, 999*time.Millisecond)
	clk.Add(time.Millisecond)
	test.That(t, c.IsTimedOut(), test.ShouldBeTrue)
}

func TestLifecycleOrdering(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	var journal []string
	c := newRecordingCommand("c", &journal, 2, WithClock(clk))

	lc := newLifecycle(c, clk, 0)
	test.That(t, lc.state(), test.ShouldEqual, StateUnscheduled)

	done, err := lc.step(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, lc.state(), test.ShouldEqual, StateRunning)

	done, err = lc.step(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, done, test.ShouldBeTrue)

	test.That(t, lc.finish(ctx), test.ShouldBeNil)
	test.That(t, lc.state(), test.ShouldEqual, StateUnscheduled)
	test.That(t, journal, test.ShouldResemble, []string{
		"c.initialize", "c.execute", "c.execute", "c.end",
	})

	// terminal callbacks fire at most once
	test.That(t, lc.finish(ctx), test.ShouldNotBeNil)
	test.That(t, lc.interrupt(ctx), test.ShouldBeNil)
	test.That(t, journal, test.ShouldHaveLength, 4)
}

func TestLifecycleInterruptBeforeStart(t *testing.T) {
	ctx := context.Background()
	var journal []string
	c := newRecordingCommand("c", &journal, 1)
	lc := newLifecycle(c, clock.NewMock(), 0)

	test.That(t, lc.interrupt(ctx), test.ShouldBeNil)
	test.That(t, journal, test.ShouldBeEmpty)
}

func TestLifecycleTimeouts(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	var journal []string

	t.Run("command timeout", func(t *testing.T) {
		c := newRecordingCommand("c", &journal, -1, WithTimeout(100*time.Millisecond), WithClock(clk))
		lc := newLifecycle(c, clk, 0)
		done, _ := lc.step(ctx)
		test.That(t, done, test.ShouldBeFalse)
		clk.Add(100 * time.Millisecond)
		done, _ = lc.step(ctx)
		test.That(t, done, test.ShouldBeTrue)
	})

	t.Run("owner bound", func(t *testing.T) {
		c := newRecordingCommand("c", &journal, -1, WithClock(clk))
		lc := newLifecycle(c, clk, 40*time.Millisecond)
		done, _ := lc.step(ctx)
		test.That(t, done, test.ShouldBeFalse)
		clk.Add(40 * time.Millisecond)
		done, _ = lc.step(ctx)
		test.That(t, done, test.ShouldBeTrue)
	})
}

func newTestScheduler(t *testing.T, clk clock.Clock) *Scheduler {
	t.Helper()
	return NewScheduler(clk, logging.NewTestLogger(t))
}
