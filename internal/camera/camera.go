// Package camera builds the view, projection and world transforms of the demo.
package camera

import (
	"math"

	"objects3d/gfx"
)

// Fixed projection parameters.
const (
	FovY   = math.Pi / 4
	Aspect = float32(800) / 480
	ZNear  = 1.0
	ZFar   = 100.0
)

// EyeDistance is how far the eye sits behind the look-at plane.
const EyeDistance = 8

// MouseScale divides raw mouse counts before they move the target.
const MouseScale = 10

// Target is the look-at point. Z is always 0.
type Target struct {
	X, Y float32
}

// Move applies a relative mouse motion. Moving the mouse down lowers the target.
func (t *Target) Move(dx, dy int) {
	t.X += float32(dx) / MouseScale
	t.Y -= float32(dy) / MouseScale
}

// Nudge shifts the target horizontally.
func (t *Target) Nudge(dx float32) { t.X += dx }

// Projection returns a left-handed perspective projection.
func Projection(fovY, aspect, zNear, zFar float32) gfx.Mat4 {
	return gfx.Mat4PerspectiveFovLH(fovY, aspect, zNear, zFar)
}

// View returns a left-handed look-at view matrix.
func View(eye, at, up gfx.Vec3) gfx.Mat4 {
	return gfx.Mat4LookAtLH(eye, at, up)
}

// World returns rot followed by trans: rotate about the object origin, then place it.
func World(rot, trans gfx.Mat4) gfx.Mat4 {
	return gfx.Mat4Mul(rot, trans)
}

// PyramidWorld spins about Y and sits left of the origin.
func PyramidWorld(angle float32) gfx.Mat4 {
	return World(gfx.Mat4RotateY(angle), gfx.Mat4Translate(gfx.V3(-2, 0, 0)))
}

// CubeWorld tumbles with equal pitch and roll and sits right of the origin.
func CubeWorld(angle float32) gfx.Mat4 {
	return World(gfx.Mat4YawPitchRoll(0, angle, angle), gfx.Mat4Translate(gfx.V3(2, 0, 0)))
}

// Per-frame rotation steps in radians.
const (
	PyramidStep = 0.007
	CubeStep    = 0.006
)

// Spinner is a rotation angle advancing by Step each frame, kept in [0, 2π).
type Spinner struct {
	Step  float64
	angle float64
}

// Advance moves the angle one step forward.
func (s *Spinner) Advance() {
	s.angle += s.Step
	if s.angle >= 2*math.Pi || s.angle < 0 {
		s.angle = math.Mod(s.angle, 2*math.Pi)
		if s.angle < 0 {
			s.angle += 2 * math.Pi
		}
	}
}

// Angle returns the current angle.
func (s *Spinner) Angle() float32 { return float32(s.angle) }

// Radians returns the angle at full precision.
func (s *Spinner) Radians() float64 { return s.angle }

// TransformSetter is the part of a device the controller writes to.
type TransformSetter interface {
	SetTransform(ts gfx.TransformState, m gfx.Mat4) error
}

// Controller keeps the eye at a fixed offset behind a movable target.
type Controller struct {
	Target Target

	proj gfx.Mat4
}

// NewController computes the projection once.
func NewController() *Controller {
	return &Controller{proj: Projection(FovY, Aspect, ZNear, ZFar)}
}

// ProjectionMatrix returns the constant projection.
func (c *Controller) ProjectionMatrix() gfx.Mat4 { return c.proj }

// ViewMatrix returns the view for the current target.
func (c *Controller) ViewMatrix() gfx.Mat4 {
	eye := gfx.V3(0, 0, -EyeDistance)
	at := gfx.V3(c.Target.X, c.Target.Y, 0)
	up := gfx.V3(0, 1, 0)
	return View(eye, at, up)
}

// Apply sets the view and projection transforms on dev.
func (c *Controller) Apply(dev TransformSetter) error {
	if err := dev.SetTransform(gfx.TransformView, c.ViewMatrix()); err != nil {
		return err
	}
	return dev.SetTransform(gfx.TransformProjection, c.proj)
}
