package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	presents uint64
	fail     error
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.presents++
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func (f *hostFramebuffer) presentCount() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

// toRGBA converts the RGB565 contents into dst, which must be width*height*4 bytes.
func (f *hostFramebuffer) toRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

func (f *hostFramebuffer) image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.toRGBA(img.Pix)
	return img
}

type hostDisplay struct {
	mu        sync.Mutex
	fb        *hostFramebuffer
	serial    uint64
	minimized bool
}

func (d *hostDisplay) Framebuffer() Framebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fb == nil {
		return nil
	}
	return d.fb
}

func (d *hostDisplay) ModeSerial() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.serial
}

func (d *hostDisplay) Occluded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.minimized
}

func (d *hostDisplay) attach(fb *hostFramebuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb = fb
}

func (d *hostDisplay) framebuffer() *hostFramebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fb
}

func (d *hostDisplay) modeChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serial++
}

func (d *hostDisplay) setMinimized(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minimized = on
}
