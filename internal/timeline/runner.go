package timeline

import (
	"time"

	"github.com/sourcegraph/conc"
)

// Runner drives a Controller on a fixed cadence while it is playing
// and publishes a state snapshot after every transition. Commands are
// serialized through the run loop, so the ticker is created and torn
// down on play/pause transitions without ever leaving two tick sources
// active.
type Runner struct {
	ctrl     *Controller
	interval time.Duration

	cmds    chan func() State
	updates chan State
	done    chan struct{}
	wg      conc.WaitGroup
}

// NewRunner wraps the controller with a tick loop using the given
// interval. Close must be called to release the loop.
func NewRunner(ctrl *Controller, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = TickInterval
	}
	r := &Runner{
		ctrl:     ctrl,
		interval: interval,
		cmds:     make(chan func() State),
		updates:  make(chan State, 16),
		done:     make(chan struct{}),
	}
	r.wg.Go(r.run)
	return r
}

// Updates returns the channel of state snapshots. The channel is
// closed when the runner shuts down.
func (r *Runner) Updates() <-chan State { return r.updates }

// SetYear scrubs to the given year and pauses playback.
func (r *Runner) SetYear(year int) { r.do(func() State { return r.ctrl.SetYear(year) }) }

// TogglePlay flips the play flag, starting or stopping the tick
// schedule accordingly.
func (r *Runner) TogglePlay() { r.do(func() State { return r.ctrl.TogglePlay() }) }

// Do applies an arbitrary controller transition through the run loop.
func (r *Runner) Do(fn func(*Controller) State) {
	r.do(func() State { return fn(r.ctrl) })
}

// State returns the controller's current snapshot without publishing.
func (r *Runner) State() State { return r.ctrl.State() }

// Close stops the tick schedule and the run loop. Safe to call once.
func (r *Runner) Close() {
	close(r.done)
	r.wg.Wait()
}

func (r *Runner) do(fn func() State) {
	select {
	case r.cmds <- fn:
	case <-r.done:
	}
}

func (r *Runner) run() {
	var ticker *time.Ticker
	var tickC <-chan time.Time

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	// Restarting on every transition keeps exactly one tick source.
	syncTicker := func(playing bool) {
		stopTicker()
		if playing {
			ticker = time.NewTicker(r.interval)
			tickC = ticker.C
		}
	}
	defer stopTicker()
	defer close(r.updates)

	for {
		select {
		case fn := <-r.cmds:
			st := fn()
			syncTicker(st.Playing)
			r.publish(st)
		case <-tickC:
			st := r.ctrl.Tick()
			if !st.Playing {
				stopTicker()
			}
			r.publish(st)
		case <-r.done:
			return
		}
	}
}

// publish never blocks the run loop; a slow consumer drops the oldest
// snapshot, which is fine since only the latest matters.
func (r *Runner) publish(st State) {
	for {
		select {
		case r.updates <- st:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}
