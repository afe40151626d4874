// Package ebitenhost runs a cursor inside an Ebitengine window: the mouse
// aims the pointer ray, clicks and keys are forwarded, and objects are drawn
// as projected discs with the cursor ring on top.
package ebitenhost

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/xwill007/cursor"
)

const (
	ringRadius = 10
	lookStep   = 2 * math.Pi / 180
)

var (
	colorBackground = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff}
	colorObject     = color.RGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
	colorSelectable = color.RGBA{R: 0x4c, G: 0xb3, B: 0xe6, A: 0xff}
	colorHover      = color.RGBA{R: 0xff, G: 0xb3, B: 0x33, A: 0xff}
	colorRing       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPulse      = color.RGBA{R: 0x4c, G: 0xe6, B: 0x80, A: 0xff}
)

// RunConfig configures the window.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowStatus prints mode, phase and target in the top-left corner.
	ShowStatus bool
}

// Game implements ebiten.Game for one cursor.
type Game struct {
	Cursor *cursor.Cursor
	Camera *cursor.Camera
	cfg    RunConfig

	keys []ebiten.Key
}

// NewGame creates a game with a camera matching the window size.
func NewGame(c *cursor.Cursor, cfg RunConfig) *Game {
	return &Game{
		Cursor: c,
		Camera: cursor.NewCamera(float64(cfg.Width), float64(cfg.Height)),
		cfg:    cfg,
	}
}

// Run opens a window and blocks until it is closed.
func Run(c *cursor.Cursor, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(NewGame(c, cfg)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	c := g.Cursor
	mx, my := ebiten.CursorPosition()
	c.SetPointerRay(g.Camera.ScreenRay(float64(mx), float64(my)))

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		c.Click()
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if g.hostKey(k) {
			continue
		}
		if name := KeyName(k); name != "" {
			c.HandleKey(cursor.KeyEvent{Key: name, Down: true})
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if name := KeyName(k); name != "" {
			c.HandleKey(cursor.KeyEvent{Key: name})
		}
	}

	if s := c.Session(); s.Active() {
		g.steerHead()
		s.SetPrimaryRay(g.Camera.CenterRay())
	}

	c.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// hostKey handles the keys the host keeps for itself.
func (g *Game) hostKey(k ebiten.Key) bool {
	switch k {
	case ebiten.KeyTab:
		g.Cursor.SetMode(g.Cursor.Mode().Next())
	case ebiten.KeyF2:
		s := g.Cursor.Session()
		if s.Active() {
			s.Exit()
		} else {
			s.SetPrimaryRay(g.Camera.CenterRay())
			s.Enter()
		}
	default:
		return false
	}
	return true
}

// steerHead turns the camera with the arrow keys while immersive.
func (g *Game) steerHead() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.Camera.Yaw += lookStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.Camera.Yaw -= lookStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.Camera.Pitch = math.Min(g.Camera.Pitch+lookStep, math.Pi/2)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.Camera.Pitch = math.Max(g.Camera.Pitch-lookStep, -math.Pi/2)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	st := g.Cursor.State()
	tag := g.Cursor.Config().SelectableTag

	g.walk(g.Cursor.Scene().Root(), func(o *cursor.Object) {
		sx, sy, ok := g.Camera.Project(o.WorldPosition())
		if !ok {
			return
		}
		r := ProjectedRadius(g.Camera, o)
		clr := colorObject
		if o.HasTag(tag) {
			clr = colorSelectable
		}
		if o.ID == st.Intersected {
			clr = colorHover
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), clr, true)
	})

	g.drawRing(screen, st)

	if g.cfg.ShowStatus {
		target := st.Intersected
		if target == "" {
			target = "-"
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"mode: %s  phase: %s  target: %s  session: %v\n[tab] mode  [F2] session  [arrows] look (session)",
			st.Mode, st.Phase, target, st.SessionActive))
	}
}

func (g *Game) drawRing(screen *ebiten.Image, st cursor.CursorState) {
	var x, y float32
	if st.SessionActive {
		x, y = float32(g.Camera.Width/2), float32(g.Camera.Height/2)
	} else {
		mx, my := ebiten.CursorPosition()
		x, y = float32(mx), float32(my)
	}
	a := g.Cursor.Appearance()
	vector.StrokeCircle(screen, x, y, float32(ringRadius*a.Scale), 2, colorRing, true)
	if a.Pulse > 0 {
		vector.StrokeCircle(screen, x, y, float32(ringRadius*(1+a.Pulse)), 1, colorPulse, true)
	}
}

func (g *Game) walk(o *cursor.Object, fn func(*cursor.Object)) {
	if !o.Visible || o.IsDisposed() {
		return
	}
	if o.HitShape != nil {
		fn(o)
	}
	for _, child := range o.Children() {
		g.walk(child, fn)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Camera.Width = float64(outsideWidth)
	g.Camera.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// KeyName converts an Ebitengine key to the name cursor key mode compares.
func KeyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeySpace:
		return "space"
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return "enter"
	case ebiten.KeyEscape:
		return "escape"
	}
	name := k.String()
	if name == "" {
		return ""
	}
	return cursor.NormalizeKey(name)
}

// ProjectedRadius returns the on-screen radius of o's hit sphere, or a
// fixed size for other shapes.
func ProjectedRadius(cam *cursor.Camera, o *cursor.Object) float64 {
	s, ok := o.HitShape.(cursor.HitSphere)
	if !ok {
		return 6
	}
	center := o.WorldPosition().Add(s.Center)
	dist := center.Sub(cam.Position).Len()
	if dist <= s.Radius {
		return cam.Height
	}
	// Angular radius against the vertical field of view.
	return math.Asin(s.Radius/dist) / (cam.FOV / 2) * cam.Height / 2
}
