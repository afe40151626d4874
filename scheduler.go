package cursor

import "time"

// timerHandle is a cancelable deferred callback. The scheduler only calls fn
// while live is set, and callbacks that captured a handle re-check it before
// mutating cursor state.
type timerHandle struct {
	id       uint64
	deadline time.Duration
	interval time.Duration // 0 for single-shot
	fn       func()
	live     bool
}

// Cancel stops the timer. Safe to call on a nil or already-fired handle.
func (h *timerHandle) Cancel() {
	if h != nil {
		h.live = false
	}
}

// Live reports whether the timer can still fire.
func (h *timerHandle) Live() bool {
	return h != nil && h.live
}

// scheduler runs deferred callbacks on the host thread. Time only moves when
// advance is called from Cursor.Update, so expiry order is deterministic.
type scheduler struct {
	now    time.Duration
	timers []*timerHandle
	nextID uint64
}

// after schedules fn to run once, d from now.
func (s *scheduler) after(d time.Duration, fn func()) *timerHandle {
	return s.add(d, 0, fn)
}

// every schedules fn to run each interval until canceled.
// Non-positive intervals are raised to one millisecond.
func (s *scheduler) every(interval time.Duration, fn func()) *timerHandle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

func (s *scheduler) add(d, interval time.Duration, fn func()) *timerHandle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	h := &timerHandle{
		id:       s.nextID,
		deadline: s.now + d,
		interval: interval,
		fn:       fn,
		live:     true,
	}
	s.timers = append(s.timers, h)
	return h
}

// advance moves the clock forward by dt, firing due timers in deadline order.
// Timers scheduled or canceled by a callback take effect immediately.
func (s *scheduler) advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.deadline
		if next.interval > 0 {
			next.deadline += next.interval
		} else {
			next.live = false
		}
		next.fn()
	}
	s.now = target
	s.compact()
}

func (s *scheduler) nextDue(target time.Duration) *timerHandle {
	var best *timerHandle
	for _, h := range s.timers {
		if !h.live || h.deadline > target {
			continue
		}
		if best == nil || h.deadline < best.deadline ||
			(h.deadline == best.deadline && h.id < best.id) {
			best = h
		}
	}
	return best
}

func (s *scheduler) compact() {
	n := 0
	for _, h := range s.timers {
		if h.live {
			s.timers[n] = h
			n++
		}
	}
	for i := n; i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = s.timers[:n]
}

// cancelAll stops every pending timer.
func (s *scheduler) cancelAll() {
	for _, h := range s.timers {
		h.live = false
	}
	s.compact()
}

// pending returns the number of live timers.
func (s *scheduler) pending() int {
	n := 0
	for _, h := range s.timers {
		if h.live {
			n++
		}
	}
	return n
}
