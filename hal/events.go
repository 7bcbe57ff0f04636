package hal

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF11
	KeySpace
	KeyNumpad4
	KeyNumpad6

	KeyCount
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	MouseButtonCount
)

// EventKind is the kind of a window message.
type EventKind uint8

const (
	EventKeyDown EventKind = iota + 1
	EventClose
	EventMouseDown
)

// Event is one queued window message.
type Event struct {
	Kind   EventKind
	Key    KeyCode
	Button MouseButton
}

// EventHandler consumes window messages. Each method reports whether the
// message was handled; unhandled messages fall through to default handling.
type EventHandler interface {
	KeyDown(code KeyCode) bool
	Close() bool
	MouseDown(b MouseButton) bool
}

// Dispatch delivers ev to h and reports whether h handled it.
func Dispatch(h EventHandler, ev Event) bool {
	if h == nil {
		return false
	}
	switch ev.Kind {
	case EventKeyDown:
		return h.KeyDown(ev.Key)
	case EventClose:
		return h.Close()
	case EventMouseDown:
		return h.MouseDown(ev.Button)
	}
	return false
}
