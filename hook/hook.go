// Package hook forwards system-wide keyboard events to a cursor, so key mode
// works while the host window does not have focus.
package hook

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	gohook "github.com/robotn/gohook"

	"github.com/xwill007/cursor"
)

// KeyPoster receives translated key events from the hook goroutine.
// *cursor.Cursor implements it.
type KeyPoster interface {
	PostKey(ev cursor.KeyEvent)
}

// Common virtual key codes reported without a printable Keychar.
var rawNames = map[uint16]string{
	8:  "backspace",
	9:  "tab",
	13: "enter",
	27: "escape",
	32: "space",
}

// Translate converts a gohook event into a cursor key event. ok is false for
// mouse events, keys that have no usable name and KeyHold, which the hook
// sends after KeyDown for printable keys.
func Translate(ev gohook.Event) (cursor.KeyEvent, bool) {
	var down bool
	switch ev.Kind {
	case gohook.KeyDown:
		down = true
	case gohook.KeyUp:
	default:
		return cursor.KeyEvent{}, false
	}

	name := ""
	switch {
	case ev.Keychar == ' ':
		name = "space"
	case ev.Keychar == '\r' || ev.Keychar == '\n':
		name = "enter"
	case ev.Keychar > ' ' && unicode.IsPrint(ev.Keychar):
		name = string(unicode.ToLower(ev.Keychar))
	default:
		if n, ok := rawNames[ev.Rawcode]; ok {
			name = n
		} else {
			name = strings.ToLower(gohook.RawcodetoKeychar(ev.Rawcode))
		}
	}
	name = cursor.NormalizeKey(name)
	if name == "" {
		return cursor.KeyEvent{}, false
	}
	return cursor.KeyEvent{Key: name, Down: down}, true
}

// Listen starts the global hook and forwards key events to dst until ctx is
// canceled. Only one hook may run per process.
func Listen(ctx context.Context, dst KeyPoster, log zerolog.Logger) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("global key hook crashed")
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Warn().Msg("global key hook unavailable")
			return
		}
		defer gohook.End()
		log.Debug().Msg("global key hook started")

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-evChan:
				if !ok {
					log.Debug().Msg("global key hook closed")
					return
				}
				if kev, ok := Translate(ev); ok {
					dst.PostKey(kev)
				}
			}
		}
	}()
}
