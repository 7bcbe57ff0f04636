// Package geometry holds the static vertex table of the demo scene.
package geometry

import "objects3d/gfx"

// Vertex is one position plus a packed 0xAARRGGBB diffuse color.
type Vertex = gfx.Vertex

// Batch is a contiguous run of triangles inside the shared vertex buffer.
type Batch struct {
	Name           string
	StartVertex    int
	PrimitiveCount int
}

// VertexCount returns how many vertices the batch draws.
func (b Batch) VertexCount() int { return gfx.TriangleList.VertexCount(b.PrimitiveCount) }

// End returns the index one past the batch's last vertex.
func (b Batch) End() int { return b.StartVertex + b.VertexCount() }

const (
	red   = 0x00FF0000
	green = 0x0000FF00
	blue  = 0x000000FF

	cubeFrontBack = 0xFF0000FF
	cubeTopBottom = 0xFFFF0000
	cubeSides     = 0xFF00FF00
)

var pyramid = [...]Vertex{
	{X: -1, Y: -1, Z: -1, Color: green}, {X: 0, Y: 1, Z: 0, Color: red}, {X: 1, Y: -1, Z: -1, Color: blue},
	{X: 1, Y: -1, Z: -1, Color: blue}, {X: 0, Y: 1, Z: 0, Color: red}, {X: 1, Y: -1, Z: 1, Color: green},
	{X: 1, Y: -1, Z: 1, Color: green}, {X: 0, Y: 1, Z: 0, Color: red}, {X: -1, Y: -1, Z: 1, Color: blue},
	{X: -1, Y: -1, Z: 1, Color: blue}, {X: 0, Y: 1, Z: 0, Color: red}, {X: -1, Y: -1, Z: -1, Color: green},
}

// quad expands four corners into two clockwise triangles: a b c, c d a.
func quad(color uint32, a, b, c, d [3]float32) [6]Vertex {
	v := func(p [3]float32) Vertex { return Vertex{X: p[0], Y: p[1], Z: p[2], Color: color} }
	return [6]Vertex{v(a), v(b), v(c), v(c), v(d), v(a)}
}

func cube() []Vertex {
	faces := [...][6]Vertex{
		// front, back
		quad(cubeFrontBack, [3]float32{-1, -1, -1}, [3]float32{-1, 1, -1}, [3]float32{1, 1, -1}, [3]float32{1, -1, -1}),
		quad(cubeFrontBack, [3]float32{1, -1, 1}, [3]float32{1, 1, 1}, [3]float32{-1, 1, 1}, [3]float32{-1, -1, 1}),
		// top, bottom
		quad(cubeTopBottom, [3]float32{-1, 1, -1}, [3]float32{-1, 1, 1}, [3]float32{1, 1, 1}, [3]float32{1, 1, -1}),
		quad(cubeTopBottom, [3]float32{1, -1, -1}, [3]float32{1, -1, 1}, [3]float32{-1, -1, 1}, [3]float32{-1, -1, -1}),
		// left, right
		quad(cubeSides, [3]float32{-1, -1, 1}, [3]float32{-1, 1, 1}, [3]float32{-1, 1, -1}, [3]float32{-1, -1, -1}),
		quad(cubeSides, [3]float32{1, -1, -1}, [3]float32{1, 1, -1}, [3]float32{1, 1, 1}, [3]float32{1, -1, 1}),
	}
	out := make([]Vertex, 0, len(faces)*6)
	for _, f := range faces {
		out = append(out, f[:]...)
	}
	return out
}

// Table is the vertex data plus the batches that index into it.
type Table struct {
	Vertices []Vertex
	Batches  []Batch
}

// Scene returns a fresh copy of the pyramid and cube table.
func Scene() Table {
	verts := make([]Vertex, 0, len(pyramid)+36)
	verts = append(verts, pyramid[:]...)
	verts = append(verts, cube()...)
	return Table{
		Vertices: verts,
		Batches: []Batch{
			{Name: "pyramid", StartVertex: 0, PrimitiveCount: 4},
			{Name: "cube", StartVertex: len(pyramid), PrimitiveCount: 12},
		},
	}
}

// Validate checks that every batch lies inside the vertex table.
func (t Table) Validate() error {
	for _, b := range t.Batches {
		if b.StartVertex < 0 || b.PrimitiveCount <= 0 || b.End() > len(t.Vertices) {
			return &BatchError{Batch: b, Len: len(t.Vertices)}
		}
	}
	return nil
}

// BatchError reports a batch that does not fit the table.
type BatchError struct {
	Batch Batch
	Len   int
}

func (e *BatchError) Error() string {
	return "geometry: batch " + e.Batch.Name + " out of range"
}
