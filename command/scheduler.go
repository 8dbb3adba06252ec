package command

import (
	"context"
	"slices"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"

	"github.com/TechnoJays/robot2017/logging"
)

type subsystemSlot struct {
	subsystem      Subsystem
	defaultCommand Command
	owner          *lifecycle
}

// Scheduler runs commands cooperatively, one pass per control cycle, and
// guarantees that each subsystem is owned by at most one command.
//
// A Scheduler is owned by the controller's periodic loop and is not safe for
// concurrent use.
type Scheduler struct {
	logger logging.Logger
	clk    clock.Clock

	slots  []*subsystemSlot
	active []*lifecycle
}

// NewScheduler returns an empty scheduler. clk measures timeouts of commands
// that do not embed Base.
func NewScheduler(clk clock.Clock, logger logging.Logger) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &Scheduler{logger: logger, clk: clk}
}

// RegisterSubsystem makes s schedulable. Registering twice is a no-op.
func (s *Scheduler) RegisterSubsystem(subsystems ...Subsystem) {
	for _, sub := range subsystems {
		if sub == nil {
			panic(ErrNilSubsystem)
		}
		if s.slot(sub) != nil {
			continue
		}
		s.slots = append(s.slots, &subsystemSlot{subsystem: sub})
	}
}

// Subsystems returns the registered subsystems in registration order.
func (s *Scheduler) Subsystems() []Subsystem {
	return lo.Map(s.slots, func(slot *subsystemSlot, _ int) Subsystem { return slot.subsystem })
}

// SetDefaultCommand installs the command that owns sub whenever no other
// command does. The command must require sub. A previous default that is
// currently running is cancelled.
func (s *Scheduler) SetDefaultCommand(ctx context.Context, sub Subsystem, cmd Command) error {
	slot := s.slot(sub)
	if slot == nil {
		return &UnregisteredSubsystemError{Command: nameOf(cmd), Subsystem: sub.Name()}
	}
	if cmd != nil && !lo.Contains(cmd.Requirements(), sub) {
		return NewDefaultCommandRequirementError(cmd, sub)
	}
	old := slot.defaultCommand
	slot.defaultCommand = cmd
	if old != nil && old != cmd && slot.owner != nil && slot.owner.cmd == old {
		s.Cancel(ctx, old)
	}
	return nil
}

// DefaultCommand returns the default command of sub, or nil.
func (s *Scheduler) DefaultCommand(sub Subsystem) Command {
	if slot := s.slot(sub); slot != nil {
		return slot.defaultCommand
	}
	return nil
}

// Current returns the command that currently owns sub, or nil.
func (s *Scheduler) Current(sub Subsystem) Command {
	if slot := s.slot(sub); slot != nil && slot.owner != nil {
		return slot.owner.cmd
	}
	return nil
}

// Start schedules cmd. Commands holding any of its requirements are
// interrupted first. Starting a command that is already scheduled does
// nothing. Initialize runs on the next pass.
func (s *Scheduler) Start(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if s.IsScheduled(cmd) {
		return nil
	}
	reqs := cmd.Requirements()
	for _, req := range reqs {
		if s.slot(req) == nil {
			return NewUnregisteredSubsystemError(cmd, req)
		}
	}

	for _, req := range reqs {
		slot := s.slot(req)
		if slot.owner == nil {
			continue
		}
		s.logger.CDebugw(ctx, "pre-empting command",
			"subsystem", req.Name(), "running", slot.owner.cmd.Name(), "starting", cmd.Name())
		s.interrupt(ctx, slot.owner)
	}

	lc := newLifecycle(cmd, s.clk, 0)
	for _, req := range reqs {
		s.slot(req).owner = lc
	}
	s.active = append(s.active, lc)
	s.logger.CDebugw(ctx, "scheduled command", "command", cmd.Name())
	return nil
}

// Cancel interrupts cmd and releases its subsystems. Cancelling a command
// that is not scheduled does nothing.
func (s *Scheduler) Cancel(ctx context.Context, cmd Command) {
	if lc := s.find(cmd); lc != nil {
		s.interrupt(ctx, lc)
	}
}

// CancelAll interrupts every scheduled command, in start order.
func (s *Scheduler) CancelAll(ctx context.Context) {
	for _, lc := range slices.Clone(s.active) {
		s.interrupt(ctx, lc)
	}
}

// IsScheduled reports whether cmd is in the run set.
func (s *Scheduler) IsScheduled(cmd Command) bool {
	return s.find(cmd) != nil
}

// Scheduled returns the commands in the run set in start order.
func (s *Scheduler) Scheduled() []Command {
	return lo.Map(s.active, func(lc *lifecycle, _ int) Command { return lc.cmd })
}

// Run performs one scheduling pass. Idle subsystems get their default
// command first; then every scheduled command is initialized if needed,
// executed, and ended if it finished or timed out.
func (s *Scheduler) Run(ctx context.Context) {
	s.startDefaults(ctx)

	for _, lc := range slices.Clone(s.active) {
		if s.find(lc.cmd) != lc {
			// pre-empted earlier in this pass
			continue
		}
		done, err := lc.step(ctx)
		if err != nil {
			s.logger.CWarnw(ctx, "command lifecycle error", "command", lc.cmd.Name(), "error", err)
		}
		if !done {
			continue
		}
		if err := lc.finish(ctx); err != nil {
			s.logger.CWarnw(ctx, "command lifecycle error", "command", lc.cmd.Name(), "error", err)
		}
		s.release(lc)
		s.logger.CDebugw(ctx, "command finished", "command", lc.cmd.Name())
	}
}

func (s *Scheduler) startDefaults(ctx context.Context) {
	for _, slot := range s.slots {
		if slot.owner != nil || slot.defaultCommand == nil {
			continue
		}
		if err := s.Start(ctx, slot.defaultCommand); err != nil {
			s.logger.CWarnw(ctx, "cannot start default command",
				"subsystem", slot.subsystem.Name(), "command", slot.defaultCommand.Name(), "error", err)
		}
	}
}

func (s *Scheduler) interrupt(ctx context.Context, lc *lifecycle) {
	if err := lc.interrupt(ctx); err != nil {
		s.logger.CWarnw(ctx, "command lifecycle error", "command", lc.cmd.Name(), "error", err)
	}
	s.release(lc)
	s.logger.CDebugw(ctx, "command interrupted", "command", lc.cmd.Name())
}

// release removes lc from the run set and frees the subsystems it owns.
func (s *Scheduler) release(lc *lifecycle) {
	for _, slot := range s.slots {
		if slot.owner == lc {
			slot.owner = nil
		}
	}
	s.active = lo.Without(s.active, lc)
}

func (s *Scheduler) find(cmd Command) *lifecycle {
	lc, ok := lo.Find(s.active, func(lc *lifecycle) bool { return lc.cmd == cmd })
	if !ok {
		return nil
	}
	return lc
}

func (s *Scheduler) slot(sub Subsystem) *subsystemSlot {
	slot, ok := lo.Find(s.slots, func(slot *subsystemSlot) bool { return slot.subsystem == sub })
	if !ok {
		return nil
	}
	return slot
}

func nameOf(cmd Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.Name()
}
