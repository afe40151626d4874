package cursor

import "time"

// gazeAdapter selects by polling: while the intersected object stays the
// same and selectable, elapsed time accumulates from the moment the gaze
// settled on it. Reaching GazeDwellMs selects once; the gaze has to move to
// another object and back before the same object can be selected again.
type gazeAdapter struct {
	baseAdapter
	c *Cursor

	poll   *timerHandle
	target string
	since  time.Duration // scheduler time the gaze settled on target
	fired  bool
}

func newGazeAdapter(c *Cursor) adapter { return &gazeAdapter{c: c} }

func (a *gazeAdapter) setup() {
	a.c.origin = raySession
	a.reset(a.c.state.Intersected)
	var h *timerHandle
	h = a.c.sched.every(a.c.cfg.GazePoll(), func() {
		if a.poll != h {
			return
		}
		a.tick()
	})
	a.poll = h
}

func (a *gazeAdapter) teardown() {
	a.poll.Cancel()
	a.poll = nil
	a.reset("")
}

func (a *gazeAdapter) hoverEnter(id string) { a.reset(id) }
func (a *gazeAdapter) hoverLeave(string)    { a.reset("") }

func (a *gazeAdapter) dwelling() bool {
	return a.target != "" && !a.fired &&
		a.target == a.c.state.Intersected && a.c.selectableID(a.target)
}

func (a *gazeAdapter) reset(id string) {
	a.target = id
	a.since = a.c.sched.now
	a.fired = false
}

func (a *gazeAdapter) tick() {
	c := a.c
	id := c.state.Intersected
	if id != a.target {
		a.reset(id)
	}
	if id == "" || a.fired {
		return
	}
	if !c.selectableID(id) {
		// Not accumulating; start over once it becomes selectable.
		a.since = c.sched.now
		return
	}
	if c.sched.now-a.since < c.cfg.GazeDwell() {
		c.ctrl.syncPhase()
		return
	}
	a.fired = true
	if c.validTarget(id) {
		c.trigger(id)
	}
	c.ctrl.syncPhase()
}
