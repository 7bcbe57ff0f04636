package gfx

// Vertex is a position plus a packed 0xAARRGGBB diffuse color.
type Vertex struct {
	X, Y, Z float32
	Color   uint32
}

// VertexBuffer holds vertices owned by a device.
type VertexBuffer struct {
	dev      *Device
	id       uint64
	usage    Usage
	pool     Pool
	data     []Vertex
	locked   bool
	released bool
}

// ID identifies the buffer; every created buffer gets a new one.
func (b *VertexBuffer) ID() uint64 { return b.id }

// Len returns the capacity in vertices.
func (b *VertexBuffer) Len() int { return len(b.data) }

func (b *VertexBuffer) Pool() Pool   { return b.pool }
func (b *VertexBuffer) Usage() Usage { return b.usage }

func (b *VertexBuffer) Released() bool { return b.released }

// Lock returns count vertices starting at offset for writing. A count of 0
// locks through the end of the buffer.
func (b *VertexBuffer) Lock(offset, count int) ([]Vertex, error) {
	if b.released || b.locked {
		return nil, ErrInvalidCall
	}
	if count == 0 {
		count = len(b.data) - offset
	}
	if offset < 0 || count < 0 || offset+count > len(b.data) {
		return nil, ErrInvalidCall
	}
	b.locked = true
	return b.data[offset : offset+count : offset+count], nil
}

func (b *VertexBuffer) Unlock() error {
	if b.released || !b.locked {
		return ErrInvalidCall
	}
	b.locked = false
	return nil
}

// Release frees the buffer. Releasing twice is a no-op.
func (b *VertexBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.locked = false
	b.data = nil
	if b.dev != nil {
		b.dev.forget(b)
	}
}
