package cursor

import "math"

// Camera is a perspective viewpoint used to turn pointer positions into rays
// and to project scene points back onto the screen.
type Camera struct {
	// Position is the eye position in scene space.
	Position Vec3
	// Yaw rotates around +Y in radians (positive turns left).
	Yaw float64
	// Pitch rotates around +X in radians (positive looks up).
	Pitch float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Width and Height are the viewport size in screen units.
	Width, Height float64
}

// NewCamera creates a camera at the origin looking down -Z with a 80°
// vertical field of view.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		FOV:    80 * math.Pi / 180,
		Width:  width,
		Height: height,
	}
}

// rotate maps a camera-space direction into scene space (pitch, then yaw).
func (c *Camera) rotate(v Vec3) Vec3 {
	sp, cp := math.Sincos(c.Pitch)
	v = Vec3{v.X, v.Y*cp - v.Z*sp, v.Y*sp + v.Z*cp}
	sy, cy := math.Sincos(c.Yaw)
	return Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
}

// unrotate is the inverse of rotate.
func (c *Camera) unrotate(v Vec3) Vec3 {
	sy, cy := math.Sincos(-c.Yaw)
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
	sp, cp := math.Sincos(-c.Pitch)
	return Vec3{v.X, v.Y*cp - v.Z*sp, v.Y*sp + v.Z*cp}
}

func (c *Camera) aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// Forward returns the unit view direction.
func (c *Camera) Forward() Vec3 {
	return c.rotate(Vec3{0, 0, -1})
}

// CenterRay returns the ray through the middle of the view, as used for
// head-locked gaze cursors.
func (c *Camera) CenterRay() Ray {
	return Ray{Origin: c.Position, Dir: c.Forward()}
}

// ScreenRay converts a screen position (origin top-left, Y down) into a ray
// from the eye through that position.
func (c *Camera) ScreenRay(sx, sy float64) Ray {
	if c.Width == 0 || c.Height == 0 {
		return c.CenterRay()
	}
	nx := 2*sx/c.Width - 1
	ny := 1 - 2*sy/c.Height
	tanHalf := math.Tan(c.FOV / 2)
	dir := Vec3{nx * tanHalf * c.aspect(), ny * tanHalf, -1}
	return Ray{Origin: c.Position, Dir: c.rotate(dir).Normalize()}
}

// Project maps a scene point onto the screen. ok is false for points behind
// the camera.
func (c *Camera) Project(p Vec3) (sx, sy float64, ok bool) {
	v := c.unrotate(p.Sub(c.Position))
	if v.Z >= 0 {
		return 0, 0, false
	}
	tanHalf := math.Tan(c.FOV / 2)
	nx := (v.X / -v.Z) / (tanHalf * c.aspect())
	ny := (v.Y / -v.Z) / tanHalf
	sx = (nx + 1) * c.Width / 2
	sy = (1 - ny) * c.Height / 2
	return sx, sy, true
}
