package hal

import "sync"

const eventQueueSize = 64

type hostWindow struct {
	mu         sync.Mutex
	disp       *hostDisplay
	opts       WindowOptions
	open       bool
	closed     bool
	fullscreen bool
	queue      []Event

	// Backend hooks, nil in headless mode.
	onOpen       func(WindowOptions)
	onFullscreen func(bool)
	onClose      func()
}

func newHostWindow(disp *hostDisplay) *hostWindow {
	return &hostWindow{disp: disp, queue: make([]Event, 0, eventQueueSize)}
}

func (w *hostWindow) Open(opts WindowOptions) error {
	w.mu.Lock()
	if w.open {
		w.mu.Unlock()
		return ErrWindowOpen
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		w.mu.Unlock()
		return ErrWindowSize
	}
	w.opts = opts
	w.open = true
	w.closed = false
	w.fullscreen = opts.Fullscreen
	hook := w.onOpen
	w.mu.Unlock()

	w.disp.attach(newHostFramebuffer(opts.Width, opts.Height))
	if hook != nil {
		hook(opts)
	}
	return nil
}

func (w *hostWindow) PumpMessages(h EventHandler) {
	w.mu.Lock()
	pending := append([]Event(nil), w.queue...)
	w.queue = w.queue[:0]
	w.mu.Unlock()

	for _, ev := range pending {
		if Dispatch(h, ev) {
			continue
		}
		w.defaultHandling(ev)
	}
}

func (w *hostWindow) defaultHandling(ev Event) {
	switch ev.Kind {
	case EventClose:
		w.Close()
	case EventKeyDown:
		if ev.Key == KeyF11 {
			w.toggleFullscreen()
		}
	}
}

func (w *hostWindow) toggleFullscreen() {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return
	}
	w.fullscreen = !w.fullscreen
	on := w.fullscreen
	hook := w.onFullscreen
	w.mu.Unlock()

	w.disp.modeChanged()
	if hook != nil {
		hook(on)
	}
}

func (w *hostWindow) post(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) >= eventQueueSize {
		return
	}
	w.queue = append(w.queue, ev)
}

func (w *hostWindow) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *hostWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *hostWindow) isOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *hostWindow) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.open = false
	w.queue = w.queue[:0]
	hook := w.onClose
	w.mu.Unlock()

	if hook != nil {
		hook()
	}
}
