// Package hud draws a small text overlay with the frame rate into the back buffer.
package hud

import (
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"objects3d/gfx"
	"objects3d/internal/scene"
)

var font = &proggy.TinySZ8pt7b

const (
	marginX    = 4
	lineHeight = 10
)

// Target is a device the overlay can draw into.
type Target interface {
	BackBuffer() *gfx.Surface
	Stats() gfx.Stats
}

// HUD shows the title, frames per second and the device reset count.
type HUD struct {
	Title string
	Color color.RGBA

	// Now defaults to time.Now.
	Now func() time.Time

	windowStart  time.Time
	windowFrames uint64
	fps          float64
}

// New returns a HUD with white text.
func New(title string) *HUD {
	return &HUD{Title: title, Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}}
}

// FPS returns the rate measured over the last full second.
func (h *HUD) FPS() float64 { return h.fps }

func (h *HUD) tick() {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	t := now()
	if h.windowStart.IsZero() {
		h.windowStart = t
	}
	h.windowFrames++
	if el := t.Sub(h.windowStart); el >= time.Second {
		h.fps = float64(h.windowFrames) / el.Seconds()
		h.windowStart = t
		h.windowFrames = 0
	}
}

// Lines returns the text the overlay draws for st.
func (h *HUD) Lines(st gfx.Stats) []string {
	return []string{
		h.Title,
		fmt.Sprintf("fps %.1f", h.fps),
		fmt.Sprintf("frame %d  resets %d", st.Frames, st.Resets),
	}
}

// Draw implements scene.Overlay. Devices without a back buffer are skipped.
func (h *HUD) Draw(dev scene.Device) error {
	h.tick()
	t, ok := dev.(Target)
	if !ok {
		return nil
	}
	s := t.BackBuffer()
	if s == nil {
		return nil
	}
	d := &surfaceDisplayer{s: s}
	for i, line := range h.Lines(t.Stats()) {
		if line == "" {
			continue
		}
		tinyfont.WriteLine(d, font, marginX, int16((i+1)*lineHeight), line, h.Color)
	}
	return nil
}

// surfaceDisplayer lets tinyfont draw into a gfx.Surface.
type surfaceDisplayer struct {
	s *gfx.Surface
}

func (d *surfaceDisplayer) Size() (x, y int16) {
	w, h := d.s.Size()
	return int16(w), int16(h)
}

func (d *surfaceDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int(x), int(y), gfx.RGBA(c.R, c.G, c.B, c.A))
}

func (d *surfaceDisplayer) Display() error { return nil }
