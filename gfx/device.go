package gfx

import (
	"fmt"
	"math"

	"objects3d/hal"
)

// AdapterCount returns the number of adapters. The software device has one.
func AdapterCount() int { return 1 }

// Adapter returns the identifier of adapter n.
func Adapter(n int) (AdapterIdentifier, error) {
	if n != 0 {
		return AdapterIdentifier{}, fmt.Errorf("%w: adapter %d", ErrNotAvailable, n)
	}
	return AdapterIdentifier{Description: "Software RGB565 rasterizer", Driver: "objects3d/gfx"}, nil
}

// CheckDeviceFormat picks the back buffer format for a color depth on the display.
func CheckDeviceFormat(disp hal.Display, adapter int, depth int) (Format, error) {
	if _, err := Adapter(adapter); err != nil {
		return FormatUnknown, err
	}
	if disp == nil || disp.Framebuffer() == nil {
		return FormatUnknown, fmt.Errorf("%w: no display", ErrInvalidCall)
	}
	fb := disp.Framebuffer()
	if depth == 16 && fb.Format() == hal.PixelFormatRGB565 {
		return FormatR5G6B5, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %d-bit format", ErrNotAvailable, depth)
}

// Device is a software graphics device bound to one display.
//
// A Device is not safe for concurrent use.
type Device struct {
	disp    hal.Display
	adapter int
	typ     DeviceType
	pp      PresentParams

	serial   uint64
	lost     bool
	released bool
	inScene  bool

	states     [renderStateCount]uint32
	transforms [transformCount]Mat4
	material   Material
	stream     *VertexBuffer

	back *Surface

	nextID   uint64
	volatile map[uint64]*VertexBuffer
	buffers  map[uint64]*VertexBuffer

	stats Stats
}

// CreateDevice creates a device presenting to disp.
func CreateDevice(disp hal.Display, adapter int, typ DeviceType, pp PresentParams) (*Device, error) {
	if _, err := Adapter(adapter); err != nil {
		return nil, err
	}
	switch typ {
	case DeviceTypeHAL, DeviceTypeRef, DeviceTypeNullRef:
	default:
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, typ)
	}
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("%w: no display", ErrInvalidCall)
	}

	d := &Device{
		disp:     disp,
		adapter:  adapter,
		typ:      typ,
		volatile: make(map[uint64]*VertexBuffer),
		buffers:  make(map[uint64]*VertexBuffer),
	}
	if err := d.applyPresentParams(pp); err != nil {
		return nil, err
	}
	d.restoreDefaults()
	d.serial = disp.ModeSerial()
	return d, nil
}

func (d *Device) applyPresentParams(pp PresentParams) error {
	if pp.Window == nil || pp.Window.Closed() {
		return fmt.Errorf("%w: no window", ErrInvalidCall)
	}
	fb := d.disp.Framebuffer()
	if fb == nil {
		return fmt.Errorf("%w: no display", ErrInvalidCall)
	}
	if pp.BackBufferFormat != FormatR5G6B5 {
		return fmt.Errorf("%w: back buffer format %v", ErrNotAvailable, pp.BackBufferFormat)
	}
	if pp.BackBufferWidth == 0 {
		pp.BackBufferWidth = fb.Width()
	}
	if pp.BackBufferHeight == 0 {
		pp.BackBufferHeight = fb.Height()
	}
	if pp.BackBufferWidth < 0 || pp.BackBufferHeight < 0 {
		return fmt.Errorf("%w: back buffer %dx%d", ErrInvalidCall, pp.BackBufferWidth, pp.BackBufferHeight)
	}
	if d.back == nil || d.back.W != pp.BackBufferWidth || d.back.H != pp.BackBufferHeight {
		d.back = NewSurface(pp.BackBufferWidth, pp.BackBufferHeight)
	}
	d.pp = pp
	return nil
}

func (d *Device) restoreDefaults() {
	d.states = defaultRenderStates()
	for i := range d.transforms {
		d.transforms[i] = Mat4Identity()
	}
	d.material = Material{}
	d.stream = nil
	d.inScene = false
}

func (d *Device) Type() DeviceType             { return d.typ }
func (d *Device) Adapter() int                 { return d.adapter }
func (d *Device) PresentParams() PresentParams { return d.pp }
func (d *Device) Stats() Stats                 { return d.stats }
func (d *Device) BackBuffer() *Surface         { return d.back }
func (d *Device) Material() Material           { return d.material }
func (d *Device) StreamSource() *VertexBuffer  { return d.stream }
func (d *Device) Released() bool               { return d.released }
func (d *Device) VolatileCount() int           { return len(d.volatile) }
func (d *Device) RenderState(rs RenderState) uint32 {
	if rs >= renderStateCount {
		return 0
	}
	return d.states[rs]
}

func (d *Device) Transform(ts TransformState) Mat4 {
	if ts >= transformCount {
		return Mat4{}
	}
	return d.transforms[ts]
}

// checkLost latches the lost state once the display mode changes or the
// output becomes occluded.
func (d *Device) checkLost() {
	if d.disp.ModeSerial() != d.serial || d.disp.Occluded() {
		d.lost = true
	}
}

// TestCooperativeLevel reports nil when the device can render, ErrDeviceLost
// while it cannot be reset, and ErrDeviceNotReset once Reset may be called.
func (d *Device) TestCooperativeLevel() error {
	if d.released {
		return ErrInvalidCall
	}
	d.checkLost()
	if !d.lost {
		return nil
	}
	if d.disp.Occluded() {
		return ErrDeviceLost
	}
	return ErrDeviceNotReset
}

// Reset restores a lost device. Every PoolDefault resource must be released
// first. All render states, transforms and the material return to defaults.
func (d *Device) Reset(pp PresentParams) error {
	if d.released {
		return ErrInvalidCall
	}
	if n := len(d.volatile); n > 0 {
		return fmt.Errorf("%w: %d default pool resources outstanding", ErrInvalidCall, n)
	}
	if d.disp.Occluded() {
		return ErrDeviceLost
	}
	if err := d.applyPresentParams(pp); err != nil {
		return err
	}
	d.restoreDefaults()
	d.serial = d.disp.ModeSerial()
	d.lost = false
	d.stats.Resets++
	return nil
}

// CreateVertexBuffer creates a buffer holding n vertices.
func (d *Device) CreateVertexBuffer(n int, usage Usage, pool Pool) (*VertexBuffer, error) {
	if d.released || n <= 0 {
		return nil, ErrInvalidCall
	}
	switch pool {
	case PoolDefault, PoolManaged:
	default:
		return nil, ErrInvalidCall
	}
	d.nextID++
	b := &VertexBuffer{
		dev:   d,
		id:    d.nextID,
		usage: usage,
		pool:  pool,
		data:  make([]Vertex, n),
	}
	d.buffers[b.id] = b
	if pool == PoolDefault {
		d.volatile[b.id] = b
	}
	return b, nil
}

func (d *Device) forget(b *VertexBuffer) {
	delete(d.buffers, b.id)
	delete(d.volatile, b.id)
	if d.stream == b {
		d.stream = nil
	}
}

func (d *Device) SetRenderState(rs RenderState, v uint32) error {
	if d.released || rs >= renderStateCount {
		return ErrInvalidCall
	}
	d.states[rs] = v
	return nil
}

func (d *Device) SetTransform(ts TransformState, m Mat4) error {
	if d.released || ts >= transformCount {
		return ErrInvalidCall
	}
	d.transforms[ts] = m
	return nil
}

func (d *Device) SetMaterial(m Material) error {
	if d.released {
		return ErrInvalidCall
	}
	d.material = m
	return nil
}

// SetStreamSource binds b for subsequent draws; nil unbinds.
func (d *Device) SetStreamSource(b *VertexBuffer) error {
	if d.released {
		return ErrInvalidCall
	}
	if b != nil && (b.dev != d || b.released) {
		return ErrInvalidCall
	}
	d.stream = b
	return nil
}

// Clear fills the back buffer with c.
func (d *Device) Clear(c Color) error {
	if d.released {
		return ErrInvalidCall
	}
	if d.lost || d.typ == DeviceTypeNullRef {
		return nil
	}
	d.back.Clear(c)
	return nil
}

func (d *Device) BeginScene() error {
	if d.released || d.inScene {
		return ErrInvalidCall
	}
	d.inScene = true
	return nil
}

func (d *Device) EndScene() error {
	if d.released || !d.inScene {
		return ErrInvalidCall
	}
	d.inScene = false
	return nil
}

// DrawPrimitive draws count primitives from the bound stream starting at
// vertex start.
func (d *Device) DrawPrimitive(pt PrimitiveType, start, count int) error {
	if d.released || !d.inScene || d.stream == nil || d.stream.locked {
		return ErrInvalidCall
	}
	n := pt.VertexCount(count)
	if n <= 0 || start < 0 || start+n > d.stream.Len() {
		return fmt.Errorf("%w: %d primitives at %d exceed %d vertices", ErrInvalidCall, count, start, d.stream.Len())
	}
	verts := d.stream.data[start : start+n]
	if d.typ == DeviceTypeRef {
		for i, v := range verts {
			if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
				return fmt.Errorf("%w: vertex %d is not finite", ErrInvalidCall, start+i)
			}
		}
	}
	d.stats.DrawCalls++
	if d.lost || d.typ == DeviceTypeNullRef {
		return nil
	}
	d.rasterize(pt, verts)
	return nil
}

// Present copies the back buffer to the display.
func (d *Device) Present() error {
	if d.released || d.inScene {
		return ErrInvalidCall
	}
	d.checkLost()
	if d.lost {
		return ErrDeviceLost
	}
	fb := d.disp.Framebuffer()
	if fb == nil {
		return fmt.Errorf("%w: display gone", ErrDriverInternal)
	}
	if d.typ != DeviceTypeNullRef {
		d.back.copyTo(fb)
	}
	if err := fb.Present(); err != nil {
		return fmt.Errorf("%w: %v", ErrDriverInternal, err)
	}
	d.stats.Frames++
	return nil
}

// Release frees the device and every resource still alive on it. It returns
// how many resources were still alive.
func (d *Device) Release() int {
	if d.released {
		return 0
	}
	leaked := len(d.buffers)
	for _, b := range d.buffers {
		b.released = true
		b.data = nil
	}
	d.buffers = map[uint64]*VertexBuffer{}
	d.volatile = map[uint64]*VertexBuffer{}
	d.stream = nil
	d.released = true
	return leaked
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
