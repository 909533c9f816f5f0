package util

import (
	"sync"
	"time"
)

// TimerTask runs an action once after a delay and can be cancelled.
// At most one execution is pending at any time.
type TimerTask struct {
	action func()

	timer *time.Timer
	// incremented on every schedule and cancel, a fired timer only runs
	// the action if its generation is still current
	generation uint64
	pending    bool

	mux sync.Mutex
}

func NewTimerTask(action func()) *TimerTask {
	return &TimerTask{action: action}
}

// Schedule arms the task to run after d.
// Returns false and changes nothing if a run is already pending.
func (t *TimerTask) Schedule(d time.Duration) bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	if t.pending {
		return false
	}
	t.arm(d)
	return true
}

// Reschedule cancels a pending run and arms the task to run after d
func (t *TimerTask) Reschedule(d time.Duration) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.stop()
	t.arm(d)
}

// Cancel drops a pending run, returns true if there was one
func (t *TimerTask) Cancel() bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	wasPending := t.pending
	t.stop()
	return wasPending
}

func (t *TimerTask) Pending() bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	return t.pending
}

// must be called with mux held
func (t *TimerTask) arm(d time.Duration) {
	t.generation++
	gen := t.generation
	t.pending = true
	t.timer = time.AfterFunc(d, func() { t.fire(gen) })
}

// must be called with mux held
func (t *TimerTask) stop() {
	t.generation++
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *TimerTask) fire(gen uint64) {
	t.mux.Lock()
	if gen != t.generation || !t.pending {
		t.mux.Unlock()
		return
	}
	t.pending = false
	t.timer = nil
	t.mux.Unlock()

	if t.action != nil {
		t.action()
	}
}
