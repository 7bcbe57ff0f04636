package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneBatches(t *testing.T) {
	tbl := Scene()
	require.Len(t, tbl.Vertices, 48)
	require.Len(t, tbl.Batches, 2)

	assert.Equal(t, Batch{Name: "pyramid", StartVertex: 0, PrimitiveCount: 4}, tbl.Batches[0])
	assert.Equal(t, Batch{Name: "cube", StartVertex: 12, PrimitiveCount: 12}, tbl.Batches[1])
	assert.Equal(t, tbl.Batches[0].End(), tbl.Batches[1].StartVertex)
	assert.Equal(t, len(tbl.Vertices), tbl.Batches[1].End())
	assert.NoError(t, tbl.Validate())
}

func TestSceneVertexData(t *testing.T) {
	v := Scene().Vertices

	assert.Equal(t, Vertex{X: -1, Y: -1, Z: -1, Color: 0x0000FF00}, v[0])
	assert.Equal(t, Vertex{X: 0, Y: 1, Z: 0, Color: 0x00FF0000}, v[1])
	assert.Equal(t, Vertex{X: -1, Y: -1, Z: -1, Color: 0x0000FF00}, v[11])

	// Cube front face starts at 12, back at 18, right face ends the table.
	assert.Equal(t, Vertex{X: -1, Y: -1, Z: -1, Color: 0xFF0000FF}, v[12])
	assert.Equal(t, Vertex{X: 1, Y: 1, Z: -1, Color: 0xFF0000FF}, v[14])
	assert.Equal(t, Vertex{X: 1, Y: -1, Z: 1, Color: 0xFF0000FF}, v[18])
	assert.Equal(t, uint32(0xFFFF0000), v[24].Color)
	assert.Equal(t, Vertex{X: 1, Y: -1, Z: -1, Color: 0xFF00FF00}, v[47])

	for i, p := range v {
		for _, c := range []float32{p.X, p.Y, p.Z} {
			assert.True(t, c == -1 || c == 0 || c == 1, "vertex %d", i)
		}
	}
}

func TestSceneReturnsCopy(t *testing.T) {
	a := Scene()
	a.Vertices[0].X = 42
	assert.Equal(t, float32(-1), Scene().Vertices[0].X)
}

func TestValidateRejectsOverrun(t *testing.T) {
	tbl := Scene()
	tbl.Batches = append(tbl.Batches, Batch{Name: "extra", StartVertex: 45, PrimitiveCount: 2})

	var be *BatchError
	require.ErrorAs(t, tbl.Validate(), &be)
	assert.Equal(t, "extra", be.Batch.Name)
}
