package gfx

import "objects3d/hal"

// Surface is an RGB565 pixel surface. Out-of-bounds writes are clipped.
type Surface struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// NewSurface allocates a w x h surface.
func NewSurface(w, h int) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Surface{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
}

func (s *Surface) Size() (w, h int) { return s.W, s.H }

func (s *Surface) Clear(c Color) {
	if s == nil || s.Buf == nil || s.Stride <= 0 || s.W <= 0 || s.H <= 0 {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for y := 0; y < s.H; y++ {
		row := y * s.Stride
		for x := 0; x < s.W; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(s.Buf) {
				continue
			}
			s.Buf[off] = lo
			s.Buf[off+1] = hi
		}
	}
}

func (s *Surface) SetPixel(x, y int, c Color) {
	if s == nil || s.Buf == nil || s.Stride <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	off := y*s.Stride + x*2
	if off < 0 || off+1 >= len(s.Buf) {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	s.Buf[off] = byte(p)
	s.Buf[off+1] = byte(p >> 8)
}

// Pixel returns the color at x, y expanded back to 8 bits per channel.
func (s *Surface) Pixel(x, y int) Color {
	if s == nil || x < 0 || y < 0 || x >= s.W || y >= s.H {
		return Color{}
	}
	off := y*s.Stride + x*2
	if off < 0 || off+1 >= len(s.Buf) {
		return Color{}
	}
	p := uint16(s.Buf[off]) | uint16(s.Buf[off+1])<<8
	r := uint8(((p >> 11) & 0x1F) * 255 / 31)
	g := uint8(((p >> 5) & 0x3F) * 255 / 63)
	b := uint8((p & 0x1F) * 255 / 31)
	return RGB(r, g, b)
}

// copyTo writes the surface into fb row by row, clipped to the smaller size.
func (s *Surface) copyTo(fb hal.Framebuffer) {
	dst := fb.Buffer()
	stride := fb.StrideBytes()
	w := min(s.W, fb.Width())
	h := min(s.H, fb.Height())
	for y := 0; y < h; y++ {
		src := s.Buf[y*s.Stride : y*s.Stride+w*2]
		off := y * stride
		if off+len(src) > len(dst) {
			return
		}
		copy(dst[off:], src)
	}
}
