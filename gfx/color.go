package gfx

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// ARGB unpacks a 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Packed returns the color as 0xAARRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Lerp blends c toward o by t in [0, 1]. Alpha is kept from c.
func (c Color) Lerp(o Color, t float32) Color {
	t = clampF32(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(clampF32(float32(a)+(float32(b)-float32(a))*t, 0, 255))
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: c.A}
}

// ColorValue is a floating point color used by materials.
type ColorValue struct {
	R, G, B, A float32
}

// Modulate multiplies the value with an 8-bit color, channel by channel.
func (v ColorValue) Modulate(c Color) Color {
	ch := func(f float32, b uint8) uint8 {
		return uint8(clampF32(f*float32(b), 0, 255))
	}
	return Color{R: ch(v.R, c.R), G: ch(v.G, c.G), B: ch(v.B, c.B), A: ch(v.A, c.A)}
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}
