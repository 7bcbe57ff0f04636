package gfx

import "errors"

var (
	// ErrDeviceLost means the device is lost and cannot be reset yet.
	ErrDeviceLost = errors.New("gfx: device lost")

	// ErrDeviceNotReset means the device is lost but can be reset now.
	ErrDeviceNotReset = errors.New("gfx: device not reset")

	ErrInvalidCall    = errors.New("gfx: invalid call")
	ErrNotAvailable   = errors.New("gfx: not available")
	ErrDriverInternal = errors.New("gfx: driver internal error")
)

// IsLost reports whether err is a recoverable device loss.
func IsLost(err error) bool {
	return errors.Is(err, ErrDeviceLost) || errors.Is(err, ErrDeviceNotReset)
}
