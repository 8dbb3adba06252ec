package command

import (
	"context"
	"time"

	"github.com/samber/lo"
)

type groupEntry struct {
	cmd     Command
	timeout time.Duration
}

// A Group runs its children one after another in the order they were
// added. A child starts only after its predecessor has terminated, and the
// group is finished once every child has. The group requires the union of
// its children's requirements so the scheduler reserves all of them for the
// whole run.
type Group struct {
	Base
	entries []groupEntry
	index   int
	current *lifecycle
	locked  bool
	err     error
}

// NewGroup returns an empty sequential group.
func NewGroup(opts ...Option) *Group {
	g := &Group{}
	g.Base = NewBase(g, opts...)
	return g
}

// AddSequential appends child with its own timeout (zero for none). Adding
// to a group that has already been started is a wiring defect and panics.
func (g *Group) AddSequential(child Command, timeout time.Duration) *Group {
	if child == nil {
		panic(ErrNilCommand)
	}
	if g.locked {
		panic(ErrGroupLocked)
	}
	g.entries = append(g.entries, groupEntry{cmd: child, timeout: timeout})
	g.Requires(child.Requirements()...)
	return g
}

// Children returns the children in execution order.
func (g *Group) Children() []Command {
	return lo.Map(g.entries, func(e groupEntry, _ int) Command { return e.cmd })
}

// ChildTimeout returns the per-child timeout the i-th child was added with.
func (g *Group) ChildTimeout(i int) time.Duration {
	return g.entries[i].timeout
}

// Current returns the child that is running, or nil between children and
// outside a run.
func (g *Group) Current() Command {
	if g.current == nil {
		return nil
	}
	return g.current.cmd
}

// Err returns the last lifecycle error raised while driving a child.
func (g *Group) Err() error {
	return g.err
}

// Initialize rewinds the group to its first child.
func (g *Group) Initialize(ctx context.Context) {
	g.locked = true
	g.index = 0
	g.current = nil
	g.err = nil
}

// Execute advances the active child by one cycle. When a child finishes it
// is ended and the next one is started within the same cycle.
func (g *Group) Execute(ctx context.Context) {
	for g.index < len(g.entries) {
		if g.current == nil {
			entry := g.entries[g.index]
			g.current = newLifecycle(entry.cmd, g.Clock(), entry.timeout)
		}
		done, err := g.current.step(ctx)
		if err != nil {
			g.err = err
		}
		if !done {
			return
		}
		if err := g.current.finish(ctx); err != nil {
			g.err = err
		}
		g.current = nil
		g.index++
	}
}

// IsFinished is true once every child has completed, or the group timed out.
func (g *Group) IsFinished(ctx context.Context) bool {
	return (g.index >= len(g.entries) && g.current == nil) || g.IsTimedOut()
}

// End interrupts the running child, if any. A group that completed
// normally has none.
func (g *Group) End(ctx context.Context) {
	if g.current != nil {
		if err := g.current.interrupt(ctx); err != nil {
			g.err = err
		}
		g.current = nil
	}
}

// Interrupted forwards the interruption to the running child.
func (g *Group) Interrupted(ctx context.Context) {
	g.End(ctx)
}
