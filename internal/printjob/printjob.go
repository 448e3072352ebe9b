// Package printjob schedules the deferred one-shot print trigger: the print
// dialog fires a short moment after the invoice view opens, and must not fire
// if the view is dismissed first.
package printjob

import (
	"sync"
	"time"
)

// DefaultDelay mirrors the short pause between the invoice view mounting and
// the print dialog opening.
const DefaultDelay = 120 * time.Millisecond

// Job is a cancellable single-shot timer.
type Job struct {
	mu        sync.Mutex
	timer     *time.Timer
	fired     bool
	cancelled bool
}

// After schedules fn to run once after d. Cancel prevents the run entirely;
// the callback never fires after a successful Cancel.
func After(d time.Duration, fn func()) *Job {
	j := &Job{}
	j.timer = time.AfterFunc(d, func() {
		j.mu.Lock()
		if j.cancelled {
			j.mu.Unlock()
			return
		}
		j.fired = true
		j.mu.Unlock()
		fn()
	})
	return j
}

// Cancel stops the job. It reports whether the callback was prevented from
// running; cancelling twice, or after the job fired, returns false.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fired || j.cancelled {
		return false
	}
	j.cancelled = true
	j.timer.Stop()
	return true
}

// Fired reports whether the callback ran.
func (j *Job) Fired() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fired
}
