package cursor

// fuseAdapter selects after the cursor rests on a selectable object for
// FuseTimeoutMs. The dwell timer belongs to the controller; the adapter only
// asks for it to be armed or canceled.
type fuseAdapter struct {
	baseAdapter
	c *Cursor
}

func newFuseAdapter(c *Cursor) adapter { return &fuseAdapter{c: c} }

func (a *fuseAdapter) setup() {
	a.c.origin = a.c.aimOrigin()
	// Already resting on a target when the mode switches in.
	if id := a.c.state.Intersected; id != "" {
		a.hoverEnter(id)
	}
}

func (a *fuseAdapter) teardown() {
	a.c.ctrl.cancelDwell()
}

func (a *fuseAdapter) hoverEnter(id string) {
	if !a.c.selectableID(id) {
		return
	}
	a.c.ctrl.startDwell(id, a.c.cfg.FuseTimeout())
}

func (a *fuseAdapter) hoverLeave(string) {
	a.c.ctrl.cancelDwell()
}
