package hal

import "sync"

type hostInput struct {
	mu   sync.Mutex
	open bool
	fail error
	kbd  *hostKeyboard
	ms   *hostMouse
}

func newHostInput() *hostInput {
	in := &hostInput{}
	in.kbd = &hostKeyboard{dev: hostDevice{in: in}}
	in.ms = &hostMouse{dev: hostDevice{in: in}}
	return in
}

func (in *hostInput) Open() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.fail != nil {
		return in.fail
	}
	in.open = true
	return nil
}

func (in *hostInput) Keyboard() Keyboard { return in.kbd }
func (in *hostInput) Mouse() Mouse       { return in.ms }

func (in *hostInput) Close() {
	in.mu.Lock()
	in.open = false
	in.mu.Unlock()
	in.kbd.Release()
	in.ms.Release()
}

func (in *hostInput) isOpen() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.open
}

func (in *hostInput) failure() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.fail
}

func (in *hostInput) setFail(err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.fail = err
}

// hostDevice holds the acquisition state common to both devices.
type hostDevice struct {
	mu       sync.Mutex
	in       *hostInput
	level    CoopLevel
	acquired bool
}

func (d *hostDevice) SetCooperativeLevel(w Window, level CoopLevel) error {
	if !d.in.isOpen() {
		return ErrInputClosed
	}
	if w == nil || w.Closed() {
		return ErrNoWindow
	}
	if !level.valid() {
		return ErrInvalidLevel
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = level
	return nil
}

func (d *hostDevice) Acquire() error {
	if !d.in.isOpen() {
		return ErrInputClosed
	}
	if err := d.in.failure(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.level == 0 {
		return ErrInvalidLevel
	}
	d.acquired = true
	return nil
}

func (d *hostDevice) Unacquire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquired = false
}

func (d *hostDevice) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquired = false
	d.level = 0
}

func (d *hostDevice) isAcquired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acquired
}

type hostKeyboard struct {
	dev hostDevice

	mu   sync.Mutex
	keys KeyState
}

func (k *hostKeyboard) SetCooperativeLevel(w Window, level CoopLevel) error {
	return k.dev.SetCooperativeLevel(w, level)
}
func (k *hostKeyboard) Acquire() error { return k.dev.Acquire() }
func (k *hostKeyboard) Unacquire()     { k.dev.Unacquire() }
func (k *hostKeyboard) Release()       { k.dev.Release() }

func (k *hostKeyboard) State(dst *KeyState) error {
	if !k.dev.isAcquired() {
		return ErrNotAcquired
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	*dst = k.keys
	return nil
}

func (k *hostKeyboard) set(code KeyCode, down bool) {
	if code >= KeyCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[code] = down
}

type hostMouse struct {
	dev hostDevice

	mu    sync.Mutex
	state MouseState
}

func (m *hostMouse) SetCooperativeLevel(w Window, level CoopLevel) error {
	return m.dev.SetCooperativeLevel(w, level)
}
func (m *hostMouse) Acquire() error { return m.dev.Acquire() }
func (m *hostMouse) Unacquire()     { m.dev.Unacquire() }
func (m *hostMouse) Release()       { m.dev.Release() }

// State returns the motion accumulated since the last call.
func (m *hostMouse) State() (MouseState, error) {
	if !m.dev.isAcquired() {
		return MouseState{}, ErrNotAcquired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state
	m.state.DX, m.state.DY, m.state.Wheel = 0, 0, 0
	return st, nil
}

func (m *hostMouse) move(dx, dy int) {
	if !m.dev.isAcquired() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.DX += dx
	m.state.DY += dy
}

func (m *hostMouse) wheel(d int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Wheel += d
}

func (m *hostMouse) button(b MouseButton, down bool) {
	if b >= MouseButtonCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Buttons[b] = down
}
