// Package termhost drives a cursor from a terminal: the mouse aims the
// pointer ray, keys feed key mode, and the scene is drawn as labels at the
// projected object positions.
package termhost

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/xwill007/cursor"
)

// Terminal cells are about twice as tall as they are wide; rows are doubled
// in camera space so spheres look round.
const rowScale = 2

const lookStep = 5 * math.Pi / 180

var (
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSelect  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHover   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFused   = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleFlash   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleReticle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// Host owns the terminal screen and the camera for one cursor.
type Host struct {
	screen tcell.Screen
	cursor *cursor.Cursor
	camera *cursor.Camera
	log    zerolog.Logger

	mouseX, mouseY int
	pressed        bool
	lastSelect     string
	flash          time.Duration
}

// New creates a host over an initialized screen.
func New(screen tcell.Screen, c *cursor.Cursor, log zerolog.Logger) *Host {
	w, h := screen.Size()
	h = max(h-1, 1) // status line
	return &Host{
		screen: screen,
		cursor: c,
		camera: cursor.NewCamera(float64(w), float64(h*rowScale)),
		log:    log,
	}
}

// Camera returns the host camera.
func (h *Host) Camera() *cursor.Camera { return h.camera }

// Run polls terminal events and steps the cursor at tick until the user
// quits (Escape, Ctrl-C, or q unless q is the key trigger).
func (h *Host) Run(tick time.Duration) {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	sel := h.cursor.OnSelect(func(ev cursor.SelectEvent) {
		h.lastSelect = ev.TargetID
		h.flash = 600 * time.Millisecond
	})
	defer sel.Remove()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !h.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.Step(now.Sub(last))
			last = now
			h.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false on quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.mouseX, h.mouseY = ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		h.cursor.SetPointerRay(h.pointerRay())
		if h.pressed && !down {
			// Press and release make a native click.
			h.cursor.Click()
		}
		h.pressed = down
	case *tcell.EventResize:
		w, rows := h.screen.Size()
		h.camera.Width = float64(w)
		h.camera.Height = float64(max(rows-1, 1) * rowScale)
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		h.cursor.SetMode(h.cursor.Mode().Next())
		return true
	case tcell.KeyLeft:
		h.look(lookStep, 0)
		return true
	case tcell.KeyRight:
		h.look(-lookStep, 0)
		return true
	case tcell.KeyUp:
		h.look(0, lookStep)
		return true
	case tcell.KeyDown:
		h.look(0, -lookStep)
		return true
	case tcell.KeyF2:
		s := h.cursor.Session()
		if s.Active() {
			s.Exit()
		} else {
			s.SetPrimaryRay(h.camera.CenterRay())
			s.Enter()
		}
		h.log.Debug().Bool("active", s.Active()).Msg("session toggled")
		return true
	}

	name := keyName(ev)
	if name == "q" && cursor.NormalizeKey(h.cursor.Config().KeyTrigger) != "q" {
		return false
	}
	if name != "" {
		// Terminals report presses only.
		h.cursor.HandleKey(cursor.KeyEvent{Key: name, Down: true})
		h.cursor.HandleKey(cursor.KeyEvent{Key: name})
	}
	return true
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyRune:
		return cursor.NormalizeKey(string(ev.Rune()))
	}
	return ""
}

// look turns the camera; in a session the head ray follows.
func (h *Host) look(dyaw, dpitch float64) {
	h.camera.Yaw += dyaw
	h.camera.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, h.camera.Pitch+dpitch))
	if s := h.cursor.Session(); s.Active() {
		s.SetPrimaryRay(h.camera.CenterRay())
	}
	h.cursor.SetPointerRay(h.pointerRay())
}

func (h *Host) pointerRay() cursor.Ray {
	return h.camera.ScreenRay(float64(h.mouseX)+0.5, (float64(h.mouseY)+0.5)*rowScale)
}

// Step advances the cursor by dt.
func (h *Host) Step(dt time.Duration) {
	h.cursor.Update(dt)
	if h.flash > 0 {
		h.flash -= dt
	}
}

// Draw renders the scene labels, the reticle and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	st := h.cursor.State()
	for _, o := range h.visibleObjects() {
		sx, sy, ok := h.camera.Project(o.WorldPosition())
		if !ok {
			continue
		}
		x, y := int(sx), int(sy/rowScale)
		style := styleLabel
		if o.HasTag(h.cursor.Config().SelectableTag) {
			style = styleSelect
		}
		if o.ID == st.Intersected {
			style = styleHover
			if st.Dwelling {
				style = styleFused
			}
		}
		h.text(x-len(label(o))/2, y, label(o), style)
	}

	if st.SessionActive {
		w, rows := h.screen.Size()
		h.screen.SetContent(w/2, (rows-1)/2, '+', nil, styleReticle)
	}
	h.status(st)
	h.screen.Show()
}

func (h *Host) status(st cursor.CursorState) {
	w, rows := h.screen.Size()
	y := rows - 1
	for x := 0; x < w; x++ {
		h.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	a := h.cursor.Appearance()
	line := fmt.Sprintf(" mode:%s phase:%s target:%s ring:%.2f session:%v  [tab] mode [F2] session [esc] quit",
		st.Mode, st.Phase, orDash(st.Intersected), a.Scale, st.SessionActive)
	h.text(0, y, line, styleStatus)
	if h.flash > 0 && h.lastSelect != "" {
		msg := " selected " + h.lastSelect + " "
		h.text(w-len(msg), y, msg, styleFlash)
	}
}

func (h *Host) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (h *Host) visibleObjects() []*cursor.Object {
	var out []*cursor.Object
	var walk func(o *cursor.Object)
	walk = func(o *cursor.Object) {
		if !o.Visible || o.IsDisposed() {
			return
		}
		if o.HitShape != nil {
			out = append(out, o)
		}
		for _, child := range o.Children() {
			walk(child)
		}
	}
	walk(h.cursor.Scene().Root())
	// Far objects first so near labels overwrite them.
	eye := h.camera.Position
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WorldPosition().Sub(eye).Len() > out[j].WorldPosition().Sub(eye).Len()
	})
	return out
}

func label(o *cursor.Object) string {
	if o.Name != "" {
		return "[" + o.Name + "]"
	}
	return "[" + o.ID + "]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
