package robot

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"

	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/utils"
)

// DefaultPeriod is the control loop period of the driver station protocol.
const DefaultPeriod = 20 * time.Millisecond

// A Periodic runs one control cycle. *Controller is one.
type Periodic interface {
	Periodic(ctx context.Context)
}

// A Runner calls a Periodic on a fixed period from a single background
// goroutine.
type Runner struct {
	target Periodic
	period time.Duration
	clk    clock.Clock
	logger logging.Logger

	// BeforeCycle, when set, runs before every cycle. The simulator uses it
	// to advance the physics.
	BeforeCycle func(ctx context.Context, dt time.Duration)

	workers utils.StoppableWorkers
	running atomic.Bool
	cycles  atomic.Int64
}

// NewRunner returns a stopped runner.
func NewRunner(target Periodic, period time.Duration, clk clock.Clock, logger logging.Logger) *Runner {
	if period <= 0 {
		period = DefaultPeriod
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Runner{target: target, period: period, clk: clk, logger: logger}
}

// Start begins calling the target every period until ctx is done or Stop
// is called. Starting a running runner does nothing.
func (r *Runner) Start(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	r.workers = utils.NewStoppableWorkersWithContext(ctx, r.loop)
}

func (r *Runner) loop(ctx context.Context) {
	defer r.running.Store(false)
	ticker := r.clk.Ticker(r.period)
	defer ticker.Stop()

	r.logger.CDebugw(ctx, "control loop started", "period", r.period)
	for {
		if !goutils.SelectContextOrWaitChan(ctx, ticker.C) {
			r.logger.CDebugw(ctx, "control loop stopped", "cycles", r.cycles.Load())
			return
		}
		r.Step(ctx)
	}
}

// Step runs one cycle immediately.
func (r *Runner) Step(ctx context.Context) {
	if r.BeforeCycle != nil {
		r.BeforeCycle(ctx, r.period)
	}
	r.target.Periodic(ctx)
	r.cycles.Inc()
}

// Stop stops the loop and waits for the current cycle to finish.
func (r *Runner) Stop() {
	if r.workers != nil {
		r.workers.Stop()
	}
}

// Running reports whether the loop is running.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Cycles returns the number of cycles run so far.
func (r *Runner) Cycles() int64 {
	return r.cycles.Load()
}
