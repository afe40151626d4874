package cursor

import "sync"

type inboxKind uint8

const (
	inboxKey inboxKind = iota
	inboxSpeech
)

// inboxItem is input produced off the host thread.
type inboxItem struct {
	kind   inboxKind
	key    KeyEvent
	speech SpeechResult
	gen    uint64 // speech session generation
}

// inbox is the only hand-off between foreign goroutines (global key hooks,
// speech services) and the host thread.
type inbox struct {
	mu    sync.Mutex
	items []inboxItem
}

func (b *inbox) push(it inboxItem) {
	b.mu.Lock()
	b.items = append(b.items, it)
	b.mu.Unlock()
}

// drain moves all queued items into buf (reset to length zero) and returns it.
func (b *inbox) drain(buf []inboxItem) []inboxItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf = append(buf[:0], b.items...)
	for i := range b.items {
		b.items[i] = inboxItem{}
	}
	b.items = b.items[:0]
	return buf
}

// drainInbox applies queued input in arrival order. Speech results from a
// session that has since been stopped are dropped.
func (c *Cursor) drainInbox() {
	c.inboxBuf = c.inbox.drain(c.inboxBuf)
	for _, it := range c.inboxBuf {
		if c.disposed {
			return
		}
		switch it.kind {
		case inboxKey:
			c.keyboard.dispatch(it.key)
		case inboxSpeech:
			if it.gen == 0 || it.gen != c.liveSpeech || c.ctrl.active == nil {
				continue
			}
			c.ctrl.active.heard(it.speech)
		}
	}
}
