package command

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
)

// Lifecycle states of a scheduled command.
const (
	StateUnscheduled  = "unscheduled"
	StateInitializing = "initializing"
	StateRunning      = "running"
	StateEnding       = "ending"
	StateInterrupting = "interrupting"
)

const (
	eventInitialize = "initialize"
	eventRun        = "run"
	eventEnd        = "end"
	eventInterrupt  = "interrupt"
	eventRelease    = "release"
)

// lifecycle drives one scheduling of a command through its state machine.
// The machine rejects out of order transitions, which is what guarantees
// End and Interrupted are each called at most once and never both.
type lifecycle struct {
	cmd     Command
	machine *fsm.FSM
	clk     clock.Clock
	// bound is an extra timeout imposed by the owner (a group entry). Zero
	// means none.
	bound     time.Duration
	startedAt time.Time
}

func newLifecycle(cmd Command, clk clock.Clock, bound time.Duration) *lifecycle {
	lc := &lifecycle{cmd: cmd, clk: clk, bound: bound}
	lc.machine = fsm.NewFSM(
		StateUnscheduled,
		fsm.Events{
			{Name: eventInitialize, Src: []string{StateUnscheduled}, Dst: StateInitializing},
			{Name: eventRun, Src: []string{StateInitializing}, Dst: StateRunning},
			{Name: eventEnd, Src: []string{StateRunning}, Dst: StateEnding},
			{Name: eventInterrupt, Src: []string{StateInitializing, StateRunning}, Dst: StateInterrupting},
			{Name: eventRelease, Src: []string{StateEnding, StateInterrupting}, Dst: StateUnscheduled},
		},
		fsm.Callbacks{
			"enter_" + StateInitializing: func(ctx context.Context, _ *fsm.Event) {
				lc.startedAt = lc.clk.Now()
				if st, ok := lc.cmd.(startTimer); ok {
					st.markStarted()
				}
				lc.cmd.Initialize(ctx)
			},
			"enter_" + StateEnding: func(ctx context.Context, _ *fsm.Event) {
				lc.cmd.End(ctx)
			},
			"enter_" + StateInterrupting: func(ctx context.Context, _ *fsm.Event) {
				lc.cmd.Interrupted(ctx)
			},
		},
	)
	return lc
}

func (lc *lifecycle) state() string {
	return lc.machine.Current()
}

// started reports whether Initialize has run and no terminal callback has yet.
func (lc *lifecycle) started() bool {
	return lc.machine.Is(StateRunning)
}

func (lc *lifecycle) fire(ctx context.Context, event string) error {
	if err := lc.machine.Event(ctx, event); err != nil {
		return errors.Wrapf(err, "command %q: %s", lc.cmd.Name(), event)
	}
	return nil
}

// step runs one cycle: Initialize if this is the first, then Execute, and
// reports whether the command is finished or timed out.
func (lc *lifecycle) step(ctx context.Context) (bool, error) {
	if lc.machine.Is(StateUnscheduled) {
		if err := lc.fire(ctx, eventInitialize); err != nil {
			return false, err
		}
		if err := lc.fire(ctx, eventRun); err != nil {
			return false, err
		}
	}
	lc.cmd.Execute(ctx)
	return lc.cmd.IsFinished(ctx) || lc.timedOut(), nil
}

func (lc *lifecycle) timedOut() bool {
	elapsed := lc.clk.Since(lc.startedAt)
	if lc.bound > 0 && elapsed >= lc.bound {
		return true
	}
	if tr, ok := lc.cmd.(timeoutReporter); ok {
		return tr.IsTimedOut()
	}
	timeout := lc.cmd.Timeout()
	return timeout > 0 && elapsed >= timeout
}

// finish calls End and returns the command to the unscheduled state.
func (lc *lifecycle) finish(ctx context.Context) error {
	if err := lc.fire(ctx, eventEnd); err != nil {
		return err
	}
	return lc.fire(ctx, eventRelease)
}

// interrupt calls Interrupted if the command was initialized. A command
// that never started is dropped without any callback.
func (lc *lifecycle) interrupt(ctx context.Context) error {
	if !lc.started() {
		return nil
	}
	if err := lc.fire(ctx, eventInterrupt); err != nil {
		return err
	}
	return lc.fire(ctx, eventRelease)
}
