package cursor

import "time"

// controller owns the active mode, installs and removes adapters, and is
// the only component that starts or stops the dwell timer.
type controller struct {
	c      *Cursor
	dwell  dwellTimer
	active adapter
}

// setMode tears down the installed adapter and cancels any dwell before the
// adapter for mode is installed. Unknown modes are logged and ignored.
func (m *controller) setMode(mode Mode) {
	if !mode.Valid() {
		m.c.log.Warn().Stringer("mode", mode).Msg("ignoring unknown mode")
		return
	}
	if m.active != nil {
		m.active.teardown()
		m.active = nil
	}
	m.cancelDwell()

	m.c.state.Mode = mode
	m.active = adapterTable[mode](m.c)
	m.active.setup()
	m.syncPhase()
	m.c.log.Debug().Stringer("mode", mode).Bool("session", m.c.state.SessionActive).Msg("mode installed")
}

// onSessionEnter records the active session and, when configured, saves the
// current mode and forces fuse. Otherwise the current mode is re-installed
// so that adapters pick up the session ray.
func (m *controller) onSessionEnter() {
	st := &m.c.state
	st.SessionActive = true
	if m.c.cfg.AutoSwitchToFuseInSession {
		if !st.HasPreSession {
			st.PreSessionMode = st.Mode
			st.HasPreSession = true
		}
		m.setMode(ModeFuse)
		return
	}
	m.setMode(st.Mode)
}

// onSessionExit cancels any dwell and restores the mode saved on enter.
func (m *controller) onSessionExit() {
	st := &m.c.state
	st.SessionActive = false
	m.cancelDwell()
	if st.HasPreSession {
		prev := st.PreSessionMode
		st.HasPreSession = false
		st.PreSessionMode = ModePointer
		m.setMode(prev)
		return
	}
	m.setMode(st.Mode)
}

func (m *controller) dispose() {
	if m.active != nil {
		m.active.teardown()
		m.active = nil
	}
	m.cancelDwell()
}

// --- Dwell ---

func (m *controller) startDwell(targetID string, d time.Duration) {
	m.dwell.arm(targetID, d, func(id string) {
		m.c.appearance.FuseCancel()
		m.c.trigger(id)
	})
	m.c.appearance.FuseStart(d)
	m.syncPhase()
}

func (m *controller) cancelDwell() {
	if m.dwell.cancel() {
		m.c.appearance.FuseCancel()
	}
	m.syncPhase()
}

// --- Tracker notifications ---

func (m *controller) hoverLeave(targetID string) {
	if m.dwell.armedFor() == targetID {
		m.cancelDwell()
	}
	if m.active != nil {
		m.active.hoverLeave(targetID)
	}
}

func (m *controller) hoverEnter(targetID string) {
	if m.active != nil {
		m.active.hoverEnter(targetID)
	}
}

// syncPhase recomputes Dwelling and Phase from the timer and adapter state.
func (m *controller) syncPhase() {
	st := &m.c.state
	armed := m.dwell.armedFor()
	st.Dwelling = (armed != "" && armed == st.Intersected) ||
		(m.active != nil && m.active.dwelling())
	switch {
	case st.Dwelling:
		st.Phase = PhaseDwelling
	case st.Intersected != "" && m.c.selectableID(st.Intersected):
		st.Phase = PhaseHovering
	default:
		st.Phase = PhaseIdle
	}
}
