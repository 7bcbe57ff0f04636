// Package resources owns the graphics device and the shared vertex buffer,
// and recycles them when the device is lost.
package resources

import (
	"errors"
	"fmt"
	"log/slog"

	"objects3d/gfx"
	"objects3d/hal"
	"objects3d/internal/geometry"
	"objects3d/internal/logx"
)

// DeviceStates is the fixed-function state block applied after creation and
// after every reset.
type DeviceStates struct {
	Lighting  bool
	Ambient   uint32
	Material  gfx.Material
	CullMode  uint32
	Wireframe bool

	FogEnable bool
	FogColor  uint32
	FogMode   uint32
	FogStart  float32
	FogEnd    float32
}

// DefaultStates returns the demo's state block: lighting off, fog configured
// but disabled, counter-clockwise culling.
func DefaultStates() DeviceStates {
	return DeviceStates{
		Lighting: false,
		Ambient:  0x007fbfbf,
		Material: gfx.Material{Ambient: gfx.ColorValue{R: 0.75}},
		CullMode: gfx.CullCCW,

		FogEnable: false,
		FogColor:  0x00FFFFFF,
		FogMode:   gfx.FogLinear,
		FogStart:  7.0,
		FogEnd:    8.5,
	}
}

// StateSetter is the part of a device the state block is applied to.
type StateSetter interface {
	SetRenderState(rs gfx.RenderState, v uint32) error
	SetMaterial(m gfx.Material) error
}

// Apply writes the state block to dev.
func (s DeviceStates) Apply(dev StateSetter) error {
	fill := uint32(gfx.FillSolid)
	if s.Wireframe {
		fill = gfx.FillWireframe
	}
	states := []struct {
		rs gfx.RenderState
		v  uint32
	}{
		{gfx.RSLighting, boolState(s.Lighting)},
		{gfx.RSFogEnable, boolState(s.FogEnable)},
		{gfx.RSFogColor, s.FogColor},
		{gfx.RSFogVertexMode, s.FogMode},
		{gfx.RSFogStart, gfx.F2DW(s.FogStart)},
		{gfx.RSFogEnd, gfx.F2DW(s.FogEnd)},
		{gfx.RSAmbient, s.Ambient},
		{gfx.RSCullMode, s.CullMode},
		{gfx.RSFillMode, fill},
	}
	for _, st := range states {
		if err := dev.SetRenderState(st.rs, st.v); err != nil {
			return fmt.Errorf("render state %d: %w", st.rs, err)
		}
	}
	if err := dev.SetMaterial(s.Material); err != nil {
		return fmt.Errorf("material: %w", err)
	}
	return nil
}

func boolState(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Manager holds the device and its volatile resources.
type Manager struct {
	disp   hal.Display
	states DeviceStates
	log    *slog.Logger

	dev *gfx.Device
	pp  gfx.PresentParams
	vb  *gfx.VertexBuffer

	table geometry.Table
}

// New returns a manager for devices on disp. log may be nil.
func New(disp hal.Display, states DeviceStates, log *slog.Logger) *Manager {
	return &Manager{disp: disp, states: states, log: logx.OrNop(log)}
}

func (m *Manager) Device() *gfx.Device              { return m.dev }
func (m *Manager) Buffer() *gfx.VertexBuffer        { return m.vb }
func (m *Manager) Batches() []geometry.Batch        { return m.table.Batches }
func (m *Manager) States() DeviceStates             { return m.states }
func (m *Manager) PresentParams() gfx.PresentParams { return m.pp }

// Initialize creates the device and applies the state block.
func (m *Manager) Initialize(adapter int, typ gfx.DeviceType, pp gfx.PresentParams) (*gfx.Device, error) {
	if m.dev != nil {
		return nil, fmt.Errorf("resources: %w: device already created", gfx.ErrInvalidCall)
	}
	id, err := gfx.Adapter(adapter)
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	dev, err := gfx.CreateDevice(m.disp, adapter, typ, pp)
	if err != nil {
		return nil, fmt.Errorf("resources: create device: %w", err)
	}
	if err := m.states.Apply(dev); err != nil {
		dev.Release()
		return nil, fmt.Errorf("resources: %w", err)
	}
	m.dev = dev
	m.pp = dev.PresentParams()
	m.log.Info("device created",
		"adapter", adapter,
		"description", id.Description,
		"type", typ,
		"backbuffer", fmt.Sprintf("%dx%d %v", m.pp.BackBufferWidth, m.pp.BackBufferHeight, m.pp.BackBufferFormat),
	)
	return dev, nil
}

// UploadGeometry copies the vertex table into a new write-only buffer. The
// table is retained so the buffer can be rebuilt after a reset.
func (m *Manager) UploadGeometry(vertices []gfx.Vertex, batches []geometry.Batch) (*gfx.VertexBuffer, error) {
	tbl := geometry.Table{
		Vertices: append([]gfx.Vertex(nil), vertices...),
		Batches:  append([]geometry.Batch(nil), batches...),
	}
	if len(tbl.Vertices) == 0 {
		return nil, fmt.Errorf("resources: %w: empty vertex table", gfx.ErrInvalidCall)
	}
	if err := tbl.Validate(); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	m.table = tbl
	if err := m.upload(); err != nil {
		return nil, err
	}
	return m.vb, nil
}

func (m *Manager) upload() error {
	if m.dev == nil {
		return fmt.Errorf("resources: %w: no device", gfx.ErrInvalidCall)
	}
	if m.vb != nil {
		return fmt.Errorf("resources: %w: buffer already created", gfx.ErrInvalidCall)
	}
	vb, err := m.dev.CreateVertexBuffer(len(m.table.Vertices), gfx.UsageWriteOnly, gfx.PoolDefault)
	if err != nil {
		return fmt.Errorf("resources: create vertex buffer: %w", err)
	}
	data, err := vb.Lock(0, 0)
	if err != nil {
		vb.Release()
		return fmt.Errorf("resources: lock vertex buffer: %w", err)
	}
	copy(data, m.table.Vertices)
	if err := vb.Unlock(); err != nil {
		vb.Release()
		return fmt.Errorf("resources: unlock vertex buffer: %w", err)
	}
	m.vb = vb
	m.log.Debug("vertex buffer uploaded", "id", vb.ID(), "vertices", vb.Len())
	return nil
}

// Health reports the device's cooperative level.
func (m *Manager) Health() error {
	if m.dev == nil {
		return fmt.Errorf("resources: %w: no device", gfx.ErrInvalidCall)
	}
	return m.dev.TestCooperativeLevel()
}

// HandleDeviceLost recycles resources for a lost device.
//
// While the device cannot be reset the volatile buffer is released and nil is
// returned so the caller skips the frame. Once it can be reset the device is
// reset, the state block re-applied and the buffer rebuilt. Other errors are
// returned as they are.
func (m *Manager) HandleDeviceLost(status error) error {
	switch {
	case status == nil:
		return nil
	case errors.Is(status, gfx.ErrDeviceLost):
		m.ReleaseBuffer()
		return nil
	case errors.Is(status, gfx.ErrDeviceNotReset):
		m.ReleaseBuffer()
		if err := m.dev.Reset(m.pp); err != nil {
			if errors.Is(err, gfx.ErrDeviceLost) {
				return nil
			}
			return fmt.Errorf("resources: reset: %w", err)
		}
		if err := m.states.Apply(m.dev); err != nil {
			return fmt.Errorf("resources: %w", err)
		}
		if err := m.upload(); err != nil {
			return err
		}
		m.log.Info("device reset", "resets", m.dev.Stats().Resets, "buffer", m.vb.ID())
		return nil
	default:
		return status
	}
}

// ReleaseBuffer frees the vertex buffer, if any.
func (m *Manager) ReleaseBuffer() {
	if m.vb == nil {
		return
	}
	m.vb.Release()
	m.vb = nil
}

// ReleaseDevice frees the device, if any. Resources still alive on it are
// freed with it and logged.
func (m *Manager) ReleaseDevice() {
	if m.dev == nil {
		return
	}
	if n := m.dev.Release(); n > 0 {
		m.log.Warn("device released with live resources", "count", n)
	}
	m.dev = nil
}

// Release frees the buffer, then the device. It is safe to call more than once.
func (m *Manager) Release() {
	m.ReleaseBuffer()
	m.ReleaseDevice()
}
