package hal

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"
)

// HostConfig configures the desktop/headless HAL.
type HostConfig struct {
	// LogPath, when set, receives log lines instead of stdout. The file is
	// truncated on open.
	LogPath string
}

// Host is the desktop HAL. The ebiten backend and the headless runner both
// feed it; tests drive it directly through the simulation methods.
type Host struct {
	logger *hostLogger
	disp   *hostDisplay
	win    *hostWindow
	in     *hostInput
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (*Host, error) {
	logger := &hostLogger{w: os.Stdout}
	if cfg.LogPath != "" {
		f, err := os.Create(cfg.LogPath)
		if err != nil {
			return nil, fmt.Errorf("open log %q: %w", cfg.LogPath, err)
		}
		logger.w = f
		logger.c = f
	}
	disp := &hostDisplay{}
	return &Host{
		logger: logger,
		disp:   disp,
		win:    newHostWindow(disp),
		in:     newHostInput(),
	}, nil
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Window() Window   { return h.win }
func (h *Host) Display() Display { return h.disp }
func (h *Host) Input() Input     { return h.in }

// Close releases the log file, if any.
func (h *Host) Close() error {
	return h.logger.close()
}

// PostEvent queues a window message for the next PumpMessages.
func (h *Host) PostEvent(ev Event) { h.win.post(ev) }

// MoveMouse adds relative motion to the mouse device.
func (h *Host) MoveMouse(dx, dy int) { h.in.ms.move(dx, dy) }

// SetKey updates the polled keyboard state.
func (h *Host) SetKey(code KeyCode, down bool) { h.in.kbd.set(code, down) }

// ChangeDisplayMode simulates a display mode change, which loses the device.
func (h *Host) ChangeDisplayMode() { h.disp.modeChanged() }

// SetMinimized marks the output as occluded or visible.
func (h *Host) SetMinimized(on bool) { h.disp.setMinimized(on) }

// FailPresent makes every framebuffer Present return err; nil clears it.
func (h *Host) FailPresent(err error) {
	if fb := h.disp.framebuffer(); fb != nil {
		fb.setFail(err)
	}
}

// FailInput makes the input system fail to open and devices fail to acquire.
func (h *Host) FailInput(err error) { h.in.setFail(err) }

// Presents returns how many frames reached the framebuffer.
func (h *Host) Presents() uint64 {
	fb := h.disp.framebuffer()
	if fb == nil {
		return 0
	}
	return fb.presentCount()
}

// Snapshot returns a copy of the framebuffer as RGBA, or nil before the window opens.
func (h *Host) Snapshot() *image.RGBA {
	fb := h.disp.framebuffer()
	if fb == nil {
		return nil
	}
	return fb.image()
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

func (l *hostLogger) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.c == nil {
		return nil
	}
	err := l.c.Close()
	l.c = nil
	l.w = io.Discard
	return err
}
