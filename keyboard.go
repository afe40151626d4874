package cursor

// KeyEvent is a key press or release from the host or a global hook.
type KeyEvent struct {
	Key  string // key name, compared with NormalizeKey
	Down bool
}

type keyListener struct {
	fn   func(KeyEvent)
	live bool
}

// keyboard fans key events out to the listeners registered by adapters.
type keyboard struct {
	listeners []*keyListener
}

func (k *keyboard) listen(fn func(KeyEvent)) *keyListener {
	l := &keyListener{fn: fn, live: true}
	k.listeners = append(k.listeners, l)
	return l
}

func (k *keyboard) remove(l *keyListener) {
	if l == nil {
		return
	}
	l.live = false
	for i, x := range k.listeners {
		if x == l {
			copy(k.listeners[i:], k.listeners[i+1:])
			k.listeners[len(k.listeners)-1] = nil
			k.listeners = k.listeners[:len(k.listeners)-1]
			return
		}
	}
}

func (k *keyboard) dispatch(ev KeyEvent) {
	// A listener may switch modes and so remove itself or others mid-dispatch.
	snapshot := append([]*keyListener(nil), k.listeners...)
	for _, l := range snapshot {
		if l.live {
			l.fn(ev)
		}
	}
}

func (k *keyboard) clear() {
	for _, l := range k.listeners {
		l.live = false
	}
	k.listeners = nil
}

// HandleKey delivers a key event on the host thread.
func (c *Cursor) HandleKey(ev KeyEvent) {
	if c.disposed {
		return
	}
	c.keyboard.dispatch(ev)
}

// PostKey queues a key event from any goroutine. It is applied on the next
// Update.
func (c *Cursor) PostKey(ev KeyEvent) {
	c.inbox.push(inboxItem{kind: inboxKey, key: ev})
}
