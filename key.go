package cursor

// keyAdapter selects the intersected object when the trigger key goes down.
// Releases never select.
type keyAdapter struct {
	baseAdapter
	c        *Cursor
	listener *keyListener
}

func newKeyAdapter(c *Cursor) adapter { return &keyAdapter{c: c} }

func (a *keyAdapter) setup() {
	a.c.origin = a.c.aimOrigin()
	a.listener = a.c.keyboard.listen(a.onKey)
}

func (a *keyAdapter) teardown() {
	a.c.keyboard.remove(a.listener)
	a.listener = nil
}

func (a *keyAdapter) onKey(ev KeyEvent) {
	if !ev.Down || NormalizeKey(ev.Key) != a.c.cfg.KeyTrigger {
		return
	}
	a.c.triggerIntersected("key")
}
