package cursor

import "time"

// dwellTimer is a cancelable single-shot delayed selection used by the fuse
// adapter. At most one timer is armed at a time.
type dwellTimer struct {
	sched  *scheduler
	handle *timerHandle
	target string

	// validate re-checks the target at expiry; a false result makes the
	// expiry a silent no-op.
	validate func(targetID string) bool
	// onStale is told about expiries that failed validation.
	onStale func(targetID string)
}

// arm replaces any armed timer with one that calls onExpire(targetID) after
// d, provided the target still validates at that moment.
func (t *dwellTimer) arm(targetID string, d time.Duration, onExpire func(targetID string)) {
	t.cancel()
	t.target = targetID
	var h *timerHandle
	h = t.sched.after(d, func() {
		// A replaced or canceled timer may still be in the due list.
		if t.handle != h {
			return
		}
		t.handle = nil
		t.target = ""
		if t.validate != nil && !t.validate(targetID) {
			if t.onStale != nil {
				t.onStale(targetID)
			}
			return
		}
		onExpire(targetID)
	})
	t.handle = h
}

// cancel disarms the timer. It reports whether a live timer was stopped.
func (t *dwellTimer) cancel() bool {
	live := t.handle.Live()
	t.handle.Cancel()
	t.handle = nil
	t.target = ""
	return live
}

// armedFor returns the target of the live timer, or "".
func (t *dwellTimer) armedFor() string {
	if !t.handle.Live() {
		return ""
	}
	return t.target
}
