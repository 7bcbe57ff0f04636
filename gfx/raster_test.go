package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frontFacing returns a triangle that is clockwise on screen with identity
// transforms: bottom-left, top-left, top-right.
func frontFacing(color uint32) []Vertex {
	return []Vertex{
		{X: -0.5, Y: -0.5, Z: 0.5, Color: color},
		{X: -0.5, Y: 0.5, Z: 0.5, Color: color},
		{X: 0.5, Y: 0.5, Z: 0.5, Color: color},
	}
}

func uploadTriangle(t *testing.T, d *Device, tri []Vertex) *VertexBuffer {
	t.Helper()
	vb, err := d.CreateVertexBuffer(len(tri), UsageWriteOnly, PoolDefault)
	require.NoError(t, err)
	data, err := vb.Lock(0, 0)
	require.NoError(t, err)
	copy(data, tri)
	require.NoError(t, vb.Unlock())
	return vb
}

func drawOne(t *testing.T, d *Device, vb *VertexBuffer) {
	t.Helper()
	require.NoError(t, d.Clear(RGB(0, 0, 0)))
	require.NoError(t, d.BeginScene())
	require.NoError(t, d.SetStreamSource(vb))
	require.NoError(t, d.DrawPrimitive(TriangleList, 0, 1))
	require.NoError(t, d.EndScene())
}

// Inside the upper-left half of the test triangle: NDC (-0.25, 0.25).
const insideX, insideY = 24, 18

func TestCullCCWKeepsClockwise(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 0))

	vb := uploadTriangle(t, d, frontFacing(0xFFFF0000))
	drawOne(t, d, vb)

	got := d.BackBuffer().Pixel(insideX, insideY)
	assert.Equal(t, uint8(255), got.R)
	assert.Zero(t, got.G)
	assert.Equal(t, uint64(1), d.Stats().Triangles)
}

func TestCullCCWDropsCounterClockwise(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 0))

	tri := frontFacing(0xFFFF0000)
	tri[1], tri[2] = tri[2], tri[1]
	vb := uploadTriangle(t, d, tri)
	drawOne(t, d, vb)

	assert.Equal(t, RGB(0, 0, 0), d.BackBuffer().Pixel(insideX, insideY))
	assert.Zero(t, d.Stats().Triangles)

	require.NoError(t, d.SetRenderState(RSCullMode, CullNone))
	drawOne(t, d, vb)
	assert.Equal(t, uint8(255), d.BackBuffer().Pixel(insideX, insideY).R)
}

func TestLightingUsesMaterialAmbient(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 1))
	require.NoError(t, d.SetRenderState(RSAmbient, 0x007fbfbf))
	require.NoError(t, d.SetMaterial(Material{Ambient: ColorValue{R: 0.75}}))

	vb := uploadTriangle(t, d, frontFacing(0xFF00FF00))
	drawOne(t, d, vb)

	got := d.BackBuffer().Pixel(insideX, insideY)
	assert.NotZero(t, got.R)
	assert.Zero(t, got.G)
	assert.Zero(t, got.B)
}

func TestLinearFogBlendsTowardFogColor(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 0))
	require.NoError(t, d.SetRenderState(RSFogEnable, 1))
	require.NoError(t, d.SetRenderState(RSFogVertexMode, FogLinear))
	require.NoError(t, d.SetRenderState(RSFogColor, 0x00FFFFFF))
	require.NoError(t, d.SetRenderState(RSFogStart, F2DW(0)))
	require.NoError(t, d.SetRenderState(RSFogEnd, F2DW(0.25)))

	// View depth 0.5 is past the fog end: fully fogged.
	vb := uploadTriangle(t, d, frontFacing(0xFF000000))
	drawOne(t, d, vb)
	assert.Equal(t, RGB(255, 255, 255), d.BackBuffer().Pixel(insideX, insideY))
}

func TestWireframeLeavesInteriorEmpty(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 0))
	require.NoError(t, d.SetRenderState(RSFillMode, FillWireframe))

	vb := uploadTriangle(t, d, frontFacing(0xFFFF0000))
	drawOne(t, d, vb)
	assert.Equal(t, RGB(0, 0, 0), d.BackBuffer().Pixel(insideX, insideY))
}

func TestTrivialClipDropsBehindNearPlane(t *testing.T) {
	_, d := newTestDevice(t, DeviceTypeHAL)
	require.NoError(t, d.SetRenderState(RSLighting, 0))

	tri := frontFacing(0xFFFF0000)
	tri[0].Z = -0.5
	vb := uploadTriangle(t, d, tri)
	drawOne(t, d, vb)
	assert.Zero(t, d.Stats().Triangles)
}
