// Package scene draws one frame of the demo.
package scene

import (
	"errors"
	"fmt"

	"objects3d/gfx"
	"objects3d/internal/camera"
	"objects3d/internal/geometry"
)

// State is the renderer's position inside a frame.
type State uint8

const (
	StateIdle State = iota
	StateSceneBegun
	StateSceneEnded
	StatePresented
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSceneBegun:
		return "scene-begun"
	case StateSceneEnded:
		return "scene-ended"
	case StatePresented:
		return "presented"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Device is the part of a graphics device the renderer drives.
type Device interface {
	SetTransform(ts gfx.TransformState, m gfx.Mat4) error
	Clear(c gfx.Color) error
	BeginScene() error
	EndScene() error
	SetStreamSource(vb *gfx.VertexBuffer) error
	DrawPrimitive(pt gfx.PrimitiveType, start, count int) error
	Present() error
}

// Overlay draws on top of the finished scene.
type Overlay interface {
	Draw(dev Device) error
}

// Object is one batch of the shared buffer with its own rotation.
type Object struct {
	Batch   geometry.Batch
	Spinner camera.Spinner
	Pose    func(angle float32) gfx.Mat4
}

// World returns the object's current world matrix.
func (o *Object) World() gfx.Mat4 {
	if o.Pose == nil {
		return gfx.Mat4Identity()
	}
	return o.Pose(o.Spinner.Angle())
}

// ClearColor is the background.
var ClearColor = gfx.RGB(0, 0, 0)

// Renderer runs Idle, SceneBegun, SceneEnded, Presented once per frame.
type Renderer struct {
	Camera  *camera.Controller
	Objects []*Object
	Overlay Overlay

	state  State
	frames uint64
}

// New returns a renderer for batches. The pyramid and cube batches get
// their spin rates and placements by name.
func New(cam *camera.Controller, batches []geometry.Batch) *Renderer {
	r := &Renderer{Camera: cam}
	for _, b := range batches {
		o := &Object{Batch: b}
		switch b.Name {
		case "pyramid":
			o.Spinner.Step = camera.PyramidStep
			o.Pose = camera.PyramidWorld
		case "cube":
			o.Spinner.Step = camera.CubeStep
			o.Pose = camera.CubeWorld
		}
		r.Objects = append(r.Objects, o)
	}
	return r
}

func (r *Renderer) State() State   { return r.state }
func (r *Renderer) Frames() uint64 { return r.frames }

// Render draws every object from vb and presents. The Present error is
// returned unchanged so the caller can recover a lost device.
func (r *Renderer) Render(dev Device, vb *gfx.VertexBuffer) error {
	r.state = StateIdle
	if vb == nil {
		return fmt.Errorf("scene: %w: no vertex buffer", gfx.ErrInvalidCall)
	}

	if r.Camera != nil {
		if err := r.Camera.Apply(dev); err != nil {
			return fmt.Errorf("scene: camera: %w", err)
		}
	}
	if err := dev.Clear(ClearColor); err != nil {
		return fmt.Errorf("scene: clear: %w", err)
	}
	if err := dev.BeginScene(); err != nil {
		return fmt.Errorf("scene: begin: %w", err)
	}
	r.state = StateSceneBegun

	if err := r.drawObjects(dev, vb); err != nil {
		return errors.Join(err, r.end(dev))
	}
	if err := r.end(dev); err != nil {
		return err
	}

	if err := dev.Present(); err != nil {
		return err
	}
	r.state = StatePresented
	r.frames++
	return nil
}

func (r *Renderer) drawObjects(dev Device, vb *gfx.VertexBuffer) error {
	if err := dev.SetStreamSource(vb); err != nil {
		return fmt.Errorf("scene: stream source: %w", err)
	}
	for _, o := range r.Objects {
		if err := dev.SetTransform(gfx.TransformWorld, o.World()); err != nil {
			return fmt.Errorf("scene: %s world: %w", o.Batch.Name, err)
		}
		if err := dev.DrawPrimitive(gfx.TriangleList, o.Batch.StartVertex, o.Batch.PrimitiveCount); err != nil {
			return fmt.Errorf("scene: draw %s: %w", o.Batch.Name, err)
		}
		o.Spinner.Advance()
	}
	if r.Overlay != nil {
		if err := r.Overlay.Draw(dev); err != nil {
			return fmt.Errorf("scene: overlay: %w", err)
		}
	}
	return nil
}

func (r *Renderer) end(dev Device) error {
	if err := dev.EndScene(); err != nil {
		r.state = StateIdle
		return fmt.Errorf("scene: end: %w", err)
	}
	r.state = StateSceneEnded
	return nil
}
