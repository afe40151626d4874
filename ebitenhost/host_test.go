package ebitenhost

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/xwill007/cursor"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want string
	}{
		{ebiten.KeySpace, "space"},
		{ebiten.KeyEnter, "enter"},
		{ebiten.KeyNumpadEnter, "enter"},
		{ebiten.KeyEscape, "escape"},
		{ebiten.KeyE, "e"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.key); got != tt.want {
			t.Errorf("KeyName(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProjectedRadius(t *testing.T) {
	cam := cursor.NewCamera(640, 480)
	near := cursor.NewObject("near")
	near.Position = cursor.Vec3{Z: -2}
	near.HitShape = cursor.HitSphere{Radius: 0.5}
	far := cursor.NewObject("far")
	far.Position = cursor.Vec3{Z: -20}
	far.HitShape = cursor.HitSphere{Radius: 0.5}

	rn, rf := ProjectedRadius(cam, near), ProjectedRadius(cam, far)
	if rn <= rf {
		t.Errorf("near radius %v should exceed far radius %v", rn, rf)
	}

	// A sphere filling half the vertical FOV covers half the screen height.
	half := cursor.NewObject("half")
	dist := 5.0
	half.Position = cursor.Vec3{Z: -dist}
	half.HitShape = cursor.HitSphere{Radius: dist * math.Sin(cam.FOV/4)}
	if got := ProjectedRadius(cam, half); math.Abs(got-120) > 1e-6 {
		t.Errorf("ProjectedRadius = %v, want 120", got)
	}

	box := cursor.NewObject("box")
	box.HitShape = cursor.HitBox{Max: cursor.Vec3{X: 1, Y: 1, Z: 1}}
	if got := ProjectedRadius(cam, box); got != 6 {
		t.Errorf("box radius = %v, want 6", got)
	}
}

func TestLayoutResizesCamera(t *testing.T) {
	scene := cursor.NewScene()
	c := cursor.New("main", scene, cursor.DefaultConfig())
	defer c.Dispose()

	g := NewGame(c, RunConfig{Width: 320, Height: 240})
	w, h := g.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want 800x600", w, h)
	}
	if g.Camera.Width != 800 || g.Camera.Height != 600 {
		t.Errorf("camera = %vx%v, want 800x600", g.Camera.Width, g.Camera.Height)
	}
}
