package cursor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
)

// ErrSpeechUnavailable is returned by recognizers that cannot start on this
// platform.
var ErrSpeechUnavailable = errors.New("speech recognition unavailable")

// SpeechResult is one recognition result.
type SpeechResult struct {
	Text    string
	IsFinal bool
}

// SpeechRecognizer is a platform speech-recognition service.
//
// Start begins a continuous session and calls fn for every result until ctx
// is canceled. fn may be called from any goroutine. Start must not block.
type SpeechRecognizer interface {
	Start(ctx context.Context, fn func(SpeechResult)) error
}

// startSpeech calls rec.Start and turns a panic into an error, so a faulty
// platform service cannot escape the voice adapter.
func startSpeech(ctx context.Context, rec SpeechRecognizer, fn func(SpeechResult)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("speech recognizer panicked: %v", r)
		}
	}()
	return rec.Start(ctx, fn)
}

// normalizePhrase lower-cases s, drops punctuation and collapses spaces.
func normalizePhrase(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// matchPhrase reports whether text is, or contains as a whole word run, one
// of the vocabulary phrases. Vocabulary entries must already be normalized.
func matchPhrase(text string, vocabulary []string) bool {
	padded := " " + normalizePhrase(text) + " "
	if padded == "  " {
		return false
	}
	for _, v := range vocabulary {
		if strings.Contains(padded, " "+v+" ") {
			return true
		}
	}
	return false
}

// --- Recognizers ---

// LineRecognizer treats each line read from R as a final recognition result.
// It is useful for terminals and for piping the output of an external
// speech-to-text tool into a cursor. The reader is consumed by a single
// goroutine started on the first Start; lines that arrive while no session
// is running are dropped.
type LineRecognizer struct {
	R io.Reader

	once sync.Once
	mu   sync.Mutex
	ctx  context.Context
	fn   func(SpeechResult)
}

// Start implements SpeechRecognizer.
func (l *LineRecognizer) Start(ctx context.Context, fn func(SpeechResult)) error {
	if l.R == nil {
		return ErrSpeechUnavailable
	}
	l.mu.Lock()
	l.ctx, l.fn = ctx, fn
	l.mu.Unlock()
	l.once.Do(func() { go l.read() })
	return nil
}

func (l *LineRecognizer) read() {
	sc := bufio.NewScanner(l.R)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		l.mu.Lock()
		ctx, fn := l.ctx, l.fn
		l.mu.Unlock()
		if fn != nil && ctx.Err() == nil {
			fn(SpeechResult{Text: text, IsFinal: true})
		}
	}
}

// ManualRecognizer is a recognizer driven by code: scripts and tests call
// Say to deliver phrases to the running session.
type ManualRecognizer struct {
	// Unavailable makes Start fail with ErrSpeechUnavailable.
	Unavailable bool

	mu     sync.Mutex
	ctx    context.Context
	fn     func(SpeechResult)
	starts int
}

// Start implements SpeechRecognizer.
func (m *ManualRecognizer) Start(ctx context.Context, fn func(SpeechResult)) error {
	if m.Unavailable {
		return ErrSpeechUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx, m.fn = ctx, fn
	m.starts++
	return nil
}

// Listening reports whether a session is running.
func (m *ManualRecognizer) Listening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil && m.ctx.Err() == nil
}

// Starts returns how many sessions were started.
func (m *ManualRecognizer) Starts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// Say delivers text as a final result. It reports false when no session is
// running.
func (m *ManualRecognizer) Say(text string) bool {
	return m.deliver(SpeechResult{Text: text, IsFinal: true})
}

// Hear delivers text as an interim (non-final) result.
func (m *ManualRecognizer) Hear(text string) bool {
	return m.deliver(SpeechResult{Text: text})
}

func (m *ManualRecognizer) deliver(res SpeechResult) bool {
	m.mu.Lock()
	ctx, fn := m.ctx, m.fn
	m.mu.Unlock()
	if fn == nil || ctx.Err() != nil {
		return false
	}
	fn(res)
	return true
}
