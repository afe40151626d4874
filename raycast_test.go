package cursor

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// --- HitShape tests ---

func TestHitSphereIntersectRay(t *testing.T) {
	s := HitSphere{Radius: 1}
	forward := Vec3{0, 0, -1}

	tests := []struct {
		name   string
		origin Vec3
		dir    Vec3
		wantT  float64
		wantOK bool
	}{
		{"head on", Vec3{0, 0, 5}, forward, 4, true},
		{"grazing", Vec3{1, 0, 5}, forward, 5, true},
		{"miss", Vec3{3, 0, 5}, forward, 0, false},
		{"pointing away", Vec3{0, 0, 5}, Vec3{0, 0, 1}, 0, false},
		{"inside", Vec3{0, 0.5, 0}, forward, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.IntersectRay(tt.origin, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("IntersectRay ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !approxEqual(got, tt.wantT) {
				t.Errorf("IntersectRay t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestHitSphereOffsetCenter(t *testing.T) {
	s := HitSphere{Center: Vec3{0, 0, -2}, Radius: 1}
	got, ok := s.IntersectRay(Vec3{0, 0, 5}, Vec3{0, 0, -1})
	if !ok || !approxEqual(got, 6) {
		t.Errorf("IntersectRay = %v, %v, want 6, true", got, ok)
	}
}

func TestHitBoxIntersectRay(t *testing.T) {
	b := HitBox{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	forward := Vec3{0, 0, -1}

	tests := []struct {
		name   string
		origin Vec3
		dir    Vec3
		wantT  float64
		wantOK bool
	}{
		{"head on", Vec3{0, 0, 5}, forward, 4, true},
		{"from behind", Vec3{0, 0, -5}, Vec3{0, 0, 1}, 4, true},
		{"parallel outside", Vec3{2, 0, 5}, forward, 0, false},
		{"pointing away", Vec3{0, 0, 5}, Vec3{0, 0, 1}, 0, false},
		{"inside", Vec3{0, 0, 0}, forward, 0, true},
		{"diagonal", Vec3{5, 0, 5}, Vec3{-1, 0, -1}.Normalize(), 4 * math.Sqrt2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.IntersectRay(tt.origin, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("IntersectRay ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.wantT) > 1e-6 {
				t.Errorf("IntersectRay t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

// --- Scene raycast ---

func TestSceneRaycastNearest(t *testing.T) {
	s := NewScene()
	near := NewObject("near")
	near.Position = Vec3{Z: -5}
	near.HitShape = HitSphere{Radius: 1}
	far := NewObject("far")
	far.Position = Vec3{Z: -10}
	far.HitShape = HitSphere{Radius: 1}
	s.Add(far, near)

	hit, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -2}}, 100)
	if !ok || hit.Object != near {
		t.Fatalf("Raycast = %v, %v, want near", hit.Object, ok)
	}
	if !approxEqual(hit.Distance, 4) || !approxVec(hit.Point, Vec3{Z: -4}) {
		t.Errorf("hit = %+v, want distance 4 at (0,0,-4)", hit)
	}

	near.Visible = false
	hit, ok = s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 100)
	if !ok || hit.Object != far {
		t.Errorf("Raycast with near hidden = %v, %v, want far", hit.Object, ok)
	}

	if _, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 8); ok {
		t.Error("Raycast beyond far limit should miss")
	}
	if _, ok := s.Raycast(Ray{}, 100); ok {
		t.Error("Raycast with zero direction should miss")
	}
}

func TestSceneRaycastChildWorldPosition(t *testing.T) {
	s := NewScene()
	panel := NewObject("panel")
	panel.Position = Vec3{X: 3}
	button := NewObject("button")
	button.Position = Vec3{Z: -5}
	button.HitShape = HitSphere{Radius: 0.5}
	panel.AddChild(button)
	s.Add(panel)

	if _, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 100); ok {
		t.Error("ray at x=0 should miss a button at x=3")
	}
	hit, ok := s.Raycast(Ray{Origin: Vec3{X: 3}, Dir: Vec3{0, 0, -1}}, 100)
	if !ok || hit.Object != button {
		t.Errorf("Raycast = %v, %v, want button", hit.Object, ok)
	}
}

func TestSceneRaycastHiddenSubtree(t *testing.T) {
	s := NewScene()
	group := NewObject("group")
	group.Visible = false
	child := NewObject("child")
	child.Position = Vec3{Z: -5}
	child.HitShape = HitSphere{Radius: 1}
	group.AddChild(child)
	s.Add(group)

	if _, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 100); ok {
		t.Error("children of a hidden object should not be hit")
	}
}

func TestSceneRaycastTieGoesToTopmost(t *testing.T) {
	s := NewScene()
	under := NewObject("under")
	under.Position = Vec3{Z: -5}
	under.HitShape = HitSphere{Radius: 1}
	over := NewObject("over")
	over.Position = Vec3{Z: -5}
	over.HitShape = HitSphere{Radius: 1}
	s.Add(under, over)

	hit, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 100)
	if !ok || hit.Object != over {
		t.Errorf("Raycast = %v, want over", hit.Object)
	}
}

func TestSceneRaycastSkipsShapeless(t *testing.T) {
	s := NewScene()
	label := NewObject("label")
	label.Position = Vec3{Z: -5}
	s.Add(label)
	if _, ok := s.Raycast(Ray{Dir: Vec3{0, 0, -1}}, 100); ok {
		t.Error("objects without a hit shape should never be hit")
	}
}
