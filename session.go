package cursor

// Session is the immersive (head-mounted) viewing session signal source.
// Hosts call Enter and Exit as the device session starts and ends, and feed
// the head or controller pose through SetPrimaryRay. Several cursors may
// share one Session. Like the cursor, it is used from the host thread only.
type Session struct {
	active bool
	ray    Ray
	hasRay bool

	subs []*sessionSub
}

type sessionSub struct {
	s       *Session
	onEnter func()
	onExit  func()
	live    bool
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether the session is running.
func (s *Session) Active() bool { return s.active }

// Enter starts the session and notifies every subscriber. Entering an
// active session is a no-op.
func (s *Session) Enter() {
	if s.active {
		return
	}
	s.active = true
	for _, sub := range s.snapshot() {
		if sub.live && s.active {
			sub.onEnter()
		}
	}
}

// Exit ends the session and notifies every subscriber. The primary ray is
// cleared. Exiting an inactive session is a no-op.
func (s *Session) Exit() {
	if !s.active {
		return
	}
	s.active = false
	s.hasRay = false
	for _, sub := range s.snapshot() {
		if sub.live && !s.active {
			sub.onExit()
		}
	}
}

// SetPrimaryRay updates the head or controller ray.
func (s *Session) SetPrimaryRay(r Ray) {
	s.ray = r
	s.hasRay = true
}

// ClearPrimaryRay drops the primary ray, e.g. when tracking is lost.
func (s *Session) ClearPrimaryRay() { s.hasRay = false }

// PrimaryRay returns the primary ray. ok is false outside a session or
// while no pose has been reported.
func (s *Session) PrimaryRay() (Ray, bool) {
	if !s.active || !s.hasRay {
		return Ray{}, false
	}
	return s.ray, true
}

func (s *Session) subscribe(onEnter, onExit func()) *sessionSub {
	sub := &sessionSub{s: s, onEnter: onEnter, onExit: onExit, live: true}
	s.subs = append(s.subs, sub)
	return sub
}

func (s *Session) snapshot() []*sessionSub {
	return append([]*sessionSub(nil), s.subs...)
}

// remove unsubscribes. Safe on nil and repeated calls.
func (sub *sessionSub) remove() {
	if sub == nil || !sub.live {
		return
	}
	sub.live = false
	subs := sub.s.subs
	for i, x := range subs {
		if x == sub {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = nil
			sub.s.subs = subs[:len(subs)-1]
			return
		}
	}
}
