package cursor

// adapter is one input modality. setup installs its listeners and timers;
// teardown removes every one of them. The hover and input hooks are called
// only between setup and teardown.
type adapter interface {
	setup()
	teardown()
	hoverEnter(targetID string)
	hoverLeave(targetID string)
	click()
	heard(res SpeechResult)
	dwelling() bool
}

// adapterTable maps each mode to its adapter constructor.
var adapterTable = [modeCount]func(*Cursor) adapter{
	ModePointer: newPointerAdapter,
	ModeFuse:    newFuseAdapter,
	ModeKey:     newKeyAdapter,
	ModeVoice:   newVoiceAdapter,
	ModeGaze:    newGazeAdapter,
	ModeAuto:    newAutoAdapter,
}

// baseAdapter provides no-op hooks for adapters to embed.
type baseAdapter struct{}

func (baseAdapter) hoverEnter(string)  {}
func (baseAdapter) hoverLeave(string)  {}
func (baseAdapter) click()             {}
func (baseAdapter) heard(SpeechResult) {}
func (baseAdapter) dwelling() bool     { return false }

// aimOrigin is the ray origin for modes that follow the session when one is
// active and the pointing device otherwise.
func (c *Cursor) aimOrigin() rayOrigin {
	if c.state.SessionActive {
		return raySession
	}
	return rayPointer
}

// triggerIntersected selects the intersected object for direct-trigger
// modes (pointer, key, voice). Missing or non-selectable targets are no-ops.
func (c *Cursor) triggerIntersected(source string) {
	id := c.state.Intersected
	if id == "" {
		c.log.Debug().Str("source", source).Msg("trigger with nothing intersected")
		return
	}
	if !c.selectableID(id) {
		c.log.Debug().Str("source", source).Str("target", id).Msg("trigger on non-selectable target")
		return
	}
	c.trigger(id)
}

// --- Pointer ---

type pointerAdapter struct {
	baseAdapter
	c *Cursor
}

func newPointerAdapter(c *Cursor) adapter { return &pointerAdapter{c: c} }

func (a *pointerAdapter) setup()    { a.c.origin = rayPointer }
func (a *pointerAdapter) teardown() {}
func (a *pointerAdapter) click()    { a.c.triggerIntersected("pointer") }

// --- Auto ---

// autoAdapter runs fuse while an immersive session is active and pointer
// otherwise. The session observer re-installs it on every enter and exit.
type autoAdapter struct {
	c   *Cursor
	sub adapter
}

func newAutoAdapter(c *Cursor) adapter { return &autoAdapter{c: c} }

func (a *autoAdapter) setup() {
	if a.c.state.SessionActive {
		a.sub = newFuseAdapter(a.c)
	} else {
		a.sub = newPointerAdapter(a.c)
	}
	a.sub.setup()
}

func (a *autoAdapter) teardown() {
	if a.sub != nil {
		a.sub.teardown()
		a.sub = nil
	}
}

func (a *autoAdapter) hoverEnter(id string) {
	if a.sub != nil {
		a.sub.hoverEnter(id)
	}
}

func (a *autoAdapter) hoverLeave(id string) {
	if a.sub != nil {
		a.sub.hoverLeave(id)
	}
}

func (a *autoAdapter) click() {
	if a.sub != nil {
		a.sub.click()
	}
}

func (a *autoAdapter) heard(res SpeechResult) {
	if a.sub != nil {
		a.sub.heard(res)
	}
}

func (a *autoAdapter) dwelling() bool {
	return a.sub != nil && a.sub.dwelling()
}
