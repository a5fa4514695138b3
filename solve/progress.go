package solve

import (
	"sync"
	"time"

	"gridbot/puzzle"
)

/*

Progress reporting

Long searches report liveness through a channel: the solving
goroutine emits snapshots, a reporter goroutine drains them and
forwards to the caller or the log.  The channel holds one snapshot
and emits are last-write-wins, so a slow consumer can never stall
the search.

*/

// A Snapshot is one progress report: the counters at that moment
// and, on the longer partial interval, a copy of the current board.
type Snapshot struct {
	At      time.Time
	Stats   Stats
	Partial *puzzle.Grid
}

type reporter struct {
	ch   chan Snapshot
	done chan struct{}
	once sync.Once
}

// startReporter launches the reporter goroutine when the options ask
// for progress at all.  The returned stop function flushes and joins
// it; with progress disabled it is a no-op.
func (st *State) startReporter() func() {
	if st.opts.OnProgress == nil && st.opts.Logger == nil {
		return func() {}
	}
	r := &reporter{ch: make(chan Snapshot, 1), done: make(chan struct{})}
	st.rep = r
	st.lastStats = st.started
	st.lastPartial = st.started
	go r.run(st.opts)
	return func() {
		r.once.Do(func() { close(r.ch) })
		<-r.done
	}
}

func (r *reporter) run(opts Options) {
	defer close(r.done)
	for snap := range r.ch {
		if opts.OnProgress != nil {
			opts.OnProgress(snap)
			continue
		}
		args := []any{
			"nodes", snap.Stats.Nodes,
			"guesses", snap.Stats.Guesses,
			"backtracks", snap.Stats.Backtracks,
			"eliminations", snap.Stats.Eliminations,
		}
		if snap.Partial != nil {
			args = append(args, "partial", "\n"+snap.Partial.String())
		}
		opts.Logger.Info("still searching", args...)
	}
}

// observeMask thins the time checks: the clock is read once per 256
// search nodes, which keeps observe off the propagation hot path.
const observeMask = 0xff

// observe emits a progress snapshot when an interval has elapsed.
// Called once per search node by the driver.
func (st *State) observe(force bool) {
	if st.rep == nil {
		return
	}
	if !force && st.stats.Nodes&observeMask != 0 {
		return
	}
	now := time.Now()
	if !force && now.Sub(st.lastStats) < st.opts.StatsInterval {
		return
	}
	st.lastStats = now
	snap := Snapshot{At: now, Stats: st.stats}
	snap.Stats.Elapsed = now.Sub(st.started)
	if now.Sub(st.lastPartial) >= st.opts.PartialInterval {
		st.lastPartial = now
		snap.Partial = st.Grid.Copy()
	}
	st.rep.emit(snap)
}

// emit is the last-write-wins send: replace whatever snapshot is
// still queued rather than block the search.
func (r *reporter) emit(snap Snapshot) {
	select {
	case r.ch <- snap:
		return
	default:
	}
	select {
	case <-r.ch:
	default:
	}
	select {
	case r.ch <- snap:
	default:
	}
}
