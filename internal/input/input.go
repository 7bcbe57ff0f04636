// Package input samples the mouse and keyboard and consumes window events.
package input

import (
	"fmt"

	"objects3d/hal"
	"objects3d/internal/camera"
)

// Level is the cooperative level both devices are acquired with.
const Level = hal.CoopBackground | hal.CoopNonExclusive

// QuitFlag is a one-way latch. Once set it stays set.
type QuitFlag struct {
	set bool
}

func (q *QuitFlag) Set()        { q.set = true }
func (q *QuitFlag) IsSet() bool { return q.set }

// Sampler owns the keyboard and mouse devices.
type Sampler struct {
	// PollKeyboard makes Sample snapshot the keyboard into Keys.
	PollKeyboard bool
	Keys         hal.KeyState

	in     hal.Input
	target *camera.Target

	opened bool
	kbd    hal.Keyboard
	ms     hal.Mouse
}

// NewSampler returns a sampler that folds mouse motion into target.
func NewSampler(in hal.Input, target *camera.Target) *Sampler {
	return &Sampler{in: in, target: target}
}

// Initialize opens the input system and acquires the keyboard, then the mouse.
func (s *Sampler) Initialize(w hal.Window) error {
	if s.in == nil {
		return fmt.Errorf("input: %w", hal.ErrNotImplemented)
	}
	if err := s.in.Open(); err != nil {
		return fmt.Errorf("input: open: %w", err)
	}
	s.opened = true

	kbd := s.in.Keyboard()
	if err := acquire(kbd, w); err != nil {
		return fmt.Errorf("input: keyboard: %w", err)
	}
	s.kbd = kbd

	ms := s.in.Mouse()
	if err := acquire(ms, w); err != nil {
		return fmt.Errorf("input: mouse: %w", err)
	}
	s.ms = ms
	return nil
}

func acquire(d hal.InputDevice, w hal.Window) error {
	if d == nil {
		return hal.ErrNotImplemented
	}
	if err := d.SetCooperativeLevel(w, Level); err != nil {
		d.Release()
		return err
	}
	if err := d.Acquire(); err != nil {
		d.Release()
		return err
	}
	return nil
}

// Sample folds the mouse delta since the last call into the target.
func (s *Sampler) Sample() error {
	if s.ms == nil {
		return hal.ErrNotAcquired
	}
	st, err := s.ms.State()
	if err != nil {
		return fmt.Errorf("input: mouse state: %w", err)
	}
	s.target.Move(st.DX, st.DY)

	if s.PollKeyboard && s.kbd != nil {
		if err := s.kbd.State(&s.Keys); err != nil {
			return fmt.Errorf("input: keyboard state: %w", err)
		}
	}
	return nil
}

// Release frees the mouse, the keyboard and the input system, in that order.
func (s *Sampler) Release() {
	if s.ms != nil {
		s.ms.Unacquire()
		s.ms.Release()
		s.ms = nil
	}
	if s.kbd != nil {
		s.kbd.Unacquire()
		s.kbd.Release()
		s.kbd = nil
	}
	if s.opened {
		s.in.Close()
		s.opened = false
	}
}

// Events handles window messages for the demo.
type Events struct {
	Quit   *QuitFlag
	Target *camera.Target

	// OnKey, when set, sees every key the demo does not use itself.
	OnKey func(hal.KeyCode) bool
}

func (e *Events) KeyDown(code hal.KeyCode) bool {
	switch code {
	case hal.KeyEscape:
		e.Quit.Set()
		return true
	case hal.KeyNumpad6:
		e.Target.Nudge(1)
		return true
	case hal.KeyNumpad4:
		e.Target.Nudge(-1)
		return true
	}
	if e.OnKey != nil {
		return e.OnKey(code)
	}
	return false
}

func (e *Events) Close() bool {
	e.Quit.Set()
	return true
}

func (e *Events) MouseDown(b hal.MouseButton) bool {
	if b != hal.MouseLeft {
		return false
	}
	e.Quit.Set()
	return true
}
