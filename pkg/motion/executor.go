package motion

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
)

// Channel carries command frames to the actuator hardware.
type Channel interface {
	Send(ctx context.Context, cmd arm.Command) error
}

// ErrScheduleInProgress is returned when a motion is requested while one
// is still executing. The request is dropped, never queued: two motions
// interleaved on the same arm are unsafe.
var ErrScheduleInProgress = errors.New("a schedule is already executing")

// Progress reports one executed step to observers.
type Progress struct {
	Index int
	Total int
	Step  Step
	Err   error
}

// Executor walks schedules on its own goroutine so a multi-second motion
// never stalls the perception loop that requested it. At most one
// schedule is in flight; the guard is a single busy slot, depth zero.
type Executor struct {
	ch     Channel
	logger golog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}

	progressCh chan Progress
}

// NewExecutor creates an executor emitting to ch.
func NewExecutor(ch Channel, logger golog.Logger) *Executor {
	if logger == nil {
		logger = golog.NewLogger("executor")
	}
	return &Executor{
		ch:         ch,
		logger:     logger,
		progressCh: make(chan Progress, 1),
	}
}

// Progress returns a channel receiving per-step updates. Slow observers
// see only the latest update, never a stalled executor.
func (e *Executor) Progress() <-chan Progress {
	return e.progressCh
}

// Running reports whether a schedule is in flight.
func (e *Executor) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start begins executing the schedule in the background. It returns
// ErrScheduleInProgress if one is already running. Cancelling ctx stops
// execution cooperatively between waypoints; a step already sent always
// completes its dwell.
func (e *Executor) Start(ctx context.Context, schedule Schedule) error {
	if len(schedule) == 0 {
		return errors.New("empty schedule")
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrScheduleInProgress
	}
	e.running = true
	e.done = make(chan struct{})
	e.mu.Unlock()

	go e.run(ctx, schedule)
	return nil
}

// Wait blocks until the current schedule finishes. It returns
// immediately when nothing is running.
func (e *Executor) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (e *Executor) run(ctx context.Context, schedule Schedule) {
	defer func() {
		e.mu.Lock()
		e.running = false
		close(e.done)
		e.mu.Unlock()
	}()

	e.logger.Infow("schedule started", "steps", len(schedule), "duration", schedule.Duration())

	for i, step := range schedule {
		select {
		case <-ctx.Done():
			e.logger.Infow("schedule stopped between waypoints", "at", step.Waypoint.Label)
			return
		default:
		}

		if err := e.ch.Send(ctx, step.Command); err != nil {
			e.logger.Errorw("send failed, aborting schedule", "waypoint", step.Waypoint.Label, "error", err)
			e.report(Progress{Index: i, Total: len(schedule), Step: step, Err: err})
			return
		}

		e.logger.Debugw("waypoint commanded",
			"waypoint", step.Waypoint.Label,
			"base_us", step.Command.BaseUs,
			"shoulder_us", step.Command.ShoulderUs,
			"elbow_us", step.Command.ElbowUs,
			"wrist_us", step.Command.WristUs,
		)
		e.report(Progress{Index: i, Total: len(schedule), Step: step})

		if !sleep(ctx, step.Waypoint.Dwell) {
			e.logger.Infow("schedule stopped during dwell", "at", step.Waypoint.Label)
			return
		}
	}

	e.logger.Infow("schedule complete", "steps", len(schedule))
}

func (e *Executor) report(p Progress) {
	select {
	case e.progressCh <- p:
	default:
		// Drop stale progress, replace with current.
		select {
		case <-e.progressCh:
		default:
		}
		e.progressCh <- p
	}
}

// sleep waits for d or until ctx is cancelled, reporting whether the
// full dwell elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
