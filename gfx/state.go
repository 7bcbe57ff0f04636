package gfx

import (
	"fmt"
	"math"
	"strings"

	"objects3d/hal"
)

// DeviceType selects how the device rasterizes.
type DeviceType uint8

const (
	// DeviceTypeHAL rasterizes into the back buffer.
	DeviceTypeHAL DeviceType = iota + 1
	// DeviceTypeRef rasterizes like HAL and validates every vertex it reads.
	DeviceTypeRef
	// DeviceTypeNullRef accepts every call and draws nothing.
	DeviceTypeNullRef
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeHAL:
		return "hal"
	case DeviceTypeRef:
		return "ref"
	case DeviceTypeNullRef:
		return "nullref"
	}
	return fmt.Sprintf("DeviceType(%d)", uint8(t))
}

// ParseDeviceType parses "hal", "ref" or "nullref".
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hal":
		return DeviceTypeHAL, nil
	case "ref":
		return DeviceTypeRef, nil
	case "nullref":
		return DeviceTypeNullRef, nil
	}
	return 0, fmt.Errorf("%w: device type %q", ErrNotAvailable, s)
}

// Format is a surface pixel format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatR5G6B5
	FormatX8R8G8B8
)

func (f Format) String() string {
	switch f {
	case FormatR5G6B5:
		return "R5G6B5"
	case FormatX8R8G8B8:
		return "X8R8G8B8"
	}
	return "UNKNOWN"
}

// PresentParams describes the swap chain.
type PresentParams struct {
	// Zero width or height means "use the display size".
	BackBufferWidth  int
	BackBufferHeight int
	BackBufferFormat Format
	Windowed         bool
	Window           hal.Window
}

// Pool selects the memory class of a resource.
type Pool uint8

const (
	// PoolDefault resources are volatile: they must be released before Reset.
	PoolDefault Pool = iota
	// PoolManaged resources survive Reset.
	PoolManaged
)

// Usage flags for resource creation.
type Usage uint32

const (
	UsageWriteOnly Usage = 1 << 3
)

// PrimitiveType selects how DrawPrimitive reads vertices.
type PrimitiveType uint8

const (
	PointList PrimitiveType = iota + 1
	LineList
	TriangleList
)

// VertexCount returns how many vertices n primitives consume.
func (p PrimitiveType) VertexCount(n int) int {
	switch p {
	case PointList:
		return n
	case LineList:
		return n * 2
	case TriangleList:
		return n * 3
	}
	return 0
}

// TransformState names a transform slot.
type TransformState uint8

const (
	TransformWorld TransformState = iota
	TransformView
	TransformProjection

	transformCount
)

// RenderState names a fixed-function state value.
type RenderState uint8

const (
	RSLighting RenderState = iota
	RSCullMode
	RSFillMode
	RSFogEnable
	RSFogColor
	RSFogVertexMode
	RSFogStart
	RSFogEnd
	RSAmbient

	renderStateCount
)

// CullMode values for RSCullMode. Front faces are clockwise on screen.
const (
	CullNone uint32 = iota + 1
	CullCW
	CullCCW
)

// FillMode values for RSFillMode.
const (
	FillPoint uint32 = iota + 1
	FillWireframe
	FillSolid
)

// FogMode values for RSFogVertexMode.
const (
	FogNone uint32 = iota
	FogExp
	FogExp2
	FogLinear
)

// F2DW stores a float in a render state value.
func F2DW(f float32) uint32 { return math.Float32bits(f) }

// DW2F reads a float stored with F2DW.
func DW2F(v uint32) float32 { return math.Float32frombits(v) }

func defaultRenderStates() [renderStateCount]uint32 {
	var s [renderStateCount]uint32
	s[RSLighting] = 1
	s[RSCullMode] = CullCCW
	s[RSFillMode] = FillSolid
	s[RSFogEnable] = 0
	s[RSFogColor] = 0
	s[RSFogVertexMode] = FogNone
	s[RSFogStart] = F2DW(0)
	s[RSFogEnd] = F2DW(1)
	s[RSAmbient] = 0
	return s
}

// Material is the fixed-function surface description used when lighting is on.
type Material struct {
	Diffuse  ColorValue
	Ambient  ColorValue
	Specular ColorValue
	Emissive ColorValue
	Power    float32
}

// AdapterIdentifier describes an adapter.
type AdapterIdentifier struct {
	Description string
	Driver      string
}

// Stats counts device work since creation.
type Stats struct {
	Frames    uint64
	DrawCalls uint64
	Triangles uint64
	Resets    uint64
}
