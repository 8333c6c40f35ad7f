package codeview

import (
	"sync"
	"time"
)

// debouncer delays a callback until no call has been made for delay.
//
// Every Call restarts the wait. A sequence number is bumped on each Call and
// Cancel so that a timer which already fired cannot run a superseded
// callback.
type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	seq      uint64
	callback func()
}

func newDebouncer(delay time.Duration, callback func()) *debouncer {
	return &debouncer{delay: delay, callback: callback}
}

// Call schedules the callback to run after the quiet period.
func (d *debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	current := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.seq != current {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.callback()
	})
}

// Cancel drops any pending callback.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a callback is waiting to run.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
