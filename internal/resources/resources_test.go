package resources

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects3d/gfx"
	"objects3d/hal"
	"objects3d/internal/geometry"
)

func newManager(t *testing.T) (*hal.Host, *Manager) {
	t.Helper()
	h, err := hal.New(hal.HostConfig{})
	require.NoError(t, err)
	require.NoError(t, h.Window().Open(hal.WindowOptions{Title: "res", Width: 80, Height: 48}))

	m := New(h.Display(), DefaultStates(), nil)
	_, err = m.Initialize(0, gfx.DeviceTypeHAL, gfx.PresentParams{
		BackBufferFormat: gfx.FormatR5G6B5,
		Windowed:         true,
		Window:           h.Window(),
	})
	require.NoError(t, err)
	t.Cleanup(m.Release)
	return h, m
}

func upload(t *testing.T, m *Manager) *gfx.VertexBuffer {
	t.Helper()
	tbl := geometry.Scene()
	vb, err := m.UploadGeometry(tbl.Vertices, tbl.Batches)
	require.NoError(t, err)
	return vb
}

func drawAll(m *Manager) error {
	dev := m.Device()
	if err := dev.BeginScene(); err != nil {
		return err
	}
	if err := dev.SetStreamSource(m.Buffer()); err != nil {
		return err
	}
	for _, b := range m.Batches() {
		if err := dev.DrawPrimitive(gfx.TriangleList, b.StartVertex, b.PrimitiveCount); err != nil {
			return err
		}
	}
	if err := dev.EndScene(); err != nil {
		return err
	}
	return dev.Present()
}

func TestInitializeAppliesStates(t *testing.T) {
	_, m := newManager(t)
	dev := m.Device()

	assert.Equal(t, uint32(0), dev.RenderState(gfx.RSLighting))
	assert.Equal(t, uint32(0), dev.RenderState(gfx.RSFogEnable))
	assert.Equal(t, uint32(0x00FFFFFF), dev.RenderState(gfx.RSFogColor))
	assert.Equal(t, gfx.FogLinear, dev.RenderState(gfx.RSFogVertexMode))
	assert.Equal(t, float32(7.0), gfx.DW2F(dev.RenderState(gfx.RSFogStart)))
	assert.Equal(t, float32(8.5), gfx.DW2F(dev.RenderState(gfx.RSFogEnd)))
	assert.Equal(t, uint32(0x007fbfbf), dev.RenderState(gfx.RSAmbient))
	assert.Equal(t, gfx.CullCCW, dev.RenderState(gfx.RSCullMode))
	assert.Equal(t, gfx.FillSolid, dev.RenderState(gfx.RSFillMode))
	assert.Equal(t, float32(0.75), dev.Material().Ambient.R)

	_, err := m.Initialize(0, gfx.DeviceTypeHAL, m.PresentParams())
	assert.ErrorIs(t, err, gfx.ErrInvalidCall)
}

func TestWireframeState(t *testing.T) {
	h, err := hal.New(hal.HostConfig{})
	require.NoError(t, err)
	require.NoError(t, h.Window().Open(hal.WindowOptions{Title: "res", Width: 8, Height: 8}))

	st := DefaultStates()
	st.Wireframe = true
	m := New(h.Display(), st, nil)
	defer m.Release()
	_, err = m.Initialize(0, gfx.DeviceTypeRef, gfx.PresentParams{BackBufferFormat: gfx.FormatR5G6B5, Window: h.Window()})
	require.NoError(t, err)
	assert.Equal(t, gfx.FillWireframe, m.Device().RenderState(gfx.RSFillMode))
}

func TestUploadGeometry(t *testing.T) {
	_, m := newManager(t)
	vb := upload(t, m)

	assert.Equal(t, 48, vb.Len())
	assert.Equal(t, gfx.PoolDefault, vb.Pool())
	assert.Equal(t, gfx.UsageWriteOnly, vb.Usage())

	data, err := vb.Lock(12, 1)
	require.NoError(t, err)
	assert.Equal(t, geometry.Scene().Vertices[12], data[0])
	require.NoError(t, vb.Unlock())

	_, err = m.UploadGeometry(nil, nil)
	assert.ErrorIs(t, err, gfx.ErrInvalidCall)
}

func TestUploadRejectsBadBatch(t *testing.T) {
	_, m := newManager(t)
	tbl := geometry.Scene()
	_, err := m.UploadGeometry(tbl.Vertices[:20], tbl.Batches)

	var be *geometry.BatchError
	assert.ErrorAs(t, err, &be)
	assert.Nil(t, m.Buffer())
}

func TestRecoveryAfterModeChange(t *testing.T) {
	h, m := newManager(t)
	first := upload(t, m)
	require.NoError(t, drawAll(m))

	h.ChangeDisplayMode()
	status := m.Health()
	require.ErrorIs(t, status, gfx.ErrDeviceNotReset)
	require.NoError(t, m.HandleDeviceLost(status))

	assert.True(t, first.Released())
	require.NotNil(t, m.Buffer())
	assert.NotEqual(t, first.ID(), m.Buffer().ID())
	assert.Equal(t, uint32(0), m.Device().RenderState(gfx.RSLighting), "state block re-applied")

	require.NoError(t, m.Health())
	require.NoError(t, drawAll(m))
	assert.Equal(t, uint64(2), m.Device().Stats().Frames)
}

func TestRecoveryWhileMinimized(t *testing.T) {
	h, m := newManager(t)
	first := upload(t, m)

	h.SetMinimized(true)
	status := m.Health()
	require.ErrorIs(t, status, gfx.ErrDeviceLost)
	require.NoError(t, m.HandleDeviceLost(status))
	assert.True(t, first.Released())
	assert.Nil(t, m.Buffer())

	// Still minimized: nothing changes.
	require.NoError(t, m.HandleDeviceLost(m.Health()))
	assert.Nil(t, m.Buffer())

	h.SetMinimized(false)
	require.NoError(t, m.HandleDeviceLost(m.Health()))
	require.NotNil(t, m.Buffer())
	require.NoError(t, m.Health())
	require.NoError(t, drawAll(m))
}

func TestHandleDeviceLostPassesOtherErrors(t *testing.T) {
	_, m := newManager(t)
	upload(t, m)

	boom := errors.New("boom")
	assert.Same(t, boom, m.HandleDeviceLost(boom))
	assert.NoError(t, m.HandleDeviceLost(nil))
	assert.NotNil(t, m.Buffer())
}

func TestReleaseIsIdempotent(t *testing.T) {
	_, m := newManager(t)
	vb := upload(t, m)
	dev := m.Device()

	m.Release()
	assert.True(t, vb.Released())
	assert.True(t, dev.Released())
	assert.Nil(t, m.Device())
	m.Release()

	assert.ErrorIs(t, m.Health(), gfx.ErrInvalidCall)
}

func TestInitializeFailureLeavesNothing(t *testing.T) {
	h, err := hal.New(hal.HostConfig{})
	require.NoError(t, err)

	m := New(h.Display(), DefaultStates(), nil)
	_, err = m.Initialize(0, gfx.DeviceTypeHAL, gfx.PresentParams{BackBufferFormat: gfx.FormatR5G6B5, Window: h.Window()})
	assert.ErrorIs(t, err, gfx.ErrInvalidCall)
	assert.Nil(t, m.Device())
	m.Release()
}
