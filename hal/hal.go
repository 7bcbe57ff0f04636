package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrStop is returned by a loop step to end the run without an error.
	ErrStop = errors.New("stop")

	ErrWindowOpen   = errors.New("window already open")
	ErrNoWindow     = errors.New("window not open")
	ErrWindowSize   = errors.New("invalid window size")
	ErrNotAcquired  = errors.New("input device not acquired")
	ErrInputClosed  = errors.New("input system not open")
	ErrInvalidLevel = errors.New("invalid cooperative level")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// BitsPerPixel returns the color depth of the format.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 16
	}
	return 0
}

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer and the display mode.
type Display interface {
	// Framebuffer returns nil until a window is open.
	Framebuffer() Framebuffer

	// ModeSerial changes every time the display mode changes (for example a
	// fullscreen toggle).
	ModeSerial() uint64

	// Occluded reports whether the output is currently not visible (minimized).
	Occluded() bool
}

// WindowOptions describes the window to open.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window is the top-level application window and its message queue.
type Window interface {
	Open(opts WindowOptions) error

	// PumpMessages dispatches every pending event to h. Events h does not
	// handle get the default treatment.
	PumpMessages(h EventHandler)

	Fullscreen() bool
	Closed() bool
	Close()
}

// CoopLevel describes how an input device is shared with other applications.
type CoopLevel uint8

const (
	CoopForeground CoopLevel = 1 << iota
	CoopBackground
	CoopExclusive
	CoopNonExclusive
)

func (l CoopLevel) valid() bool {
	fg, bg := l&CoopForeground != 0, l&CoopBackground != 0
	ex, nx := l&CoopExclusive != 0, l&CoopNonExclusive != 0
	return fg != bg && ex != nx
}

// InputDevice is the acquisition lifecycle shared by keyboards and mice.
type InputDevice interface {
	SetCooperativeLevel(w Window, level CoopLevel) error
	Acquire() error
	Unacquire()
	Release()
}

// KeyState is a polled snapshot of every key, indexed by KeyCode.
type KeyState [KeyCount]bool

// Keyboard is a polled keyboard device.
type Keyboard interface {
	InputDevice
	State(dst *KeyState) error
}

// MouseState is the relative motion since the previous State call.
type MouseState struct {
	DX, DY  int
	Wheel   int
	Buttons [MouseButtonCount]bool
}

// Mouse is a polled relative mouse device.
type Mouse interface {
	InputDevice
	State() (MouseState, error)
}

// Input is the input system. Devices are only usable between Open and Close.
type Input interface {
	Open() error
	Keyboard() Keyboard
	Mouse() Mouse
	Close()
}

// HAL provides the only contact point between the program and the platform.
type HAL interface {
	Logger() Logger
	Window() Window
	Display() Display
	Input() Input
}
