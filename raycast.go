package cursor

import "math"

// --- Built-in HitShape types ---

// HitSphere is a spherical hit area in local coordinates.
type HitSphere struct {
	Center Vec3
	Radius float64
}

// IntersectRay returns the nearest non-negative crossing of the sphere.
// A ray starting inside the sphere hits at t = 0.
func (s HitSphere) IntersectRay(origin, dir Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if disc < 0 || b > 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	return t, true
}

// HitBox is an axis-aligned box hit area in local coordinates.
type HitBox struct {
	Min, Max Vec3
}

// IntersectRay tests the box with the slab method.
func (b HitBox) IntersectRay(origin, dir Vec3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	axes := [3][4]float64{
		{origin.X, dir.X, b.Min.X, b.Max.X},
		{origin.Y, dir.Y, b.Min.Y, b.Max.Y},
		{origin.Z, dir.Z, b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Hit is the result of a successful raycast.
type Hit struct {
	Object   *Object
	Point    Vec3
	Distance float64
}

// collectHittable walks the tree depth-first, appending visible objects that
// carry a hit shape to buf. Invisible subtrees are skipped.
func collectHittable(n *Object, buf []*Object) []*Object {
	if !n.Visible || n.disposed {
		return buf
	}
	if n.HitShape != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectHittable(child, buf)
	}
	return buf
}

// Raycast finds the nearest hittable object along ray within far units.
// Ties go to the object visited last in tree order (the topmost child).
func (s *Scene) Raycast(ray Ray, far float64) (Hit, bool) {
	dir := ray.Dir.Normalize()
	if dir == (Vec3{}) {
		return Hit{}, false
	}
	s.hitBuf = collectHittable(s.root, s.hitBuf[:0])

	var best Hit
	found := false
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		local := ray.Origin.Sub(n.WorldPosition())
		t, ok := n.HitShape.IntersectRay(local, dir)
		if !ok || t > far {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Object: n, Distance: t}
			found = true
		}
	}
	if found {
		best.Point = ray.Origin.Add(dir.Scale(best.Distance))
	}
	return best, found
}
