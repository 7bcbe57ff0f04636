package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects3d/gfx"
)

func TestSpinnerWrapsIntoRange(t *testing.T) {
	for _, step := range []float64{PyramidStep, CubeStep} {
		s := Spinner{Step: step}
		for n := 1; n <= 5000; n++ {
			s.Advance()
			want := math.Mod(float64(n)*step, 2*math.Pi)
			require.InDelta(t, want, s.Radians(), 1e-9, "step %v frame %d", step, n)
			require.Less(t, s.Radians(), 2*math.Pi)
			require.GreaterOrEqual(t, s.Radians(), 0.0)
		}
	}
}

func TestSpinnerLargeStep(t *testing.T) {
	s := Spinner{Step: 5 * math.Pi}
	s.Advance()
	assert.InDelta(t, math.Pi, s.Radians(), 1e-12)

	s = Spinner{Step: -0.5}
	s.Advance()
	assert.InDelta(t, 2*math.Pi-0.5, s.Radians(), 1e-12)
}

func TestTargetMouseFold(t *testing.T) {
	moves := [][2]int{{10, 0}, {-3, 7}, {25, -40}, {0, 1}, {-100, 12}}
	tgt := Target{X: 0.5, Y: -0.25}

	var sx, sy int
	for _, m := range moves {
		tgt.Move(m[0], m[1])
		sx += m[0]
		sy += m[1]
	}
	assert.InDelta(t, 0.5+float64(sx)/10, float64(tgt.X), 1e-5)
	assert.InDelta(t, -0.25-float64(sy)/10, float64(tgt.Y), 1e-5)

	tgt.Nudge(1)
	tgt.Nudge(-1)
	tgt.Nudge(1)
	assert.InDelta(t, 1.5+float64(sx)/10, float64(tgt.X), 1e-5)
}

func TestProjectionIsConstant(t *testing.T) {
	a := NewController()
	b := NewController()
	assert.Equal(t, a.ProjectionMatrix(), b.ProjectionMatrix())
	assert.Equal(t, Projection(FovY, Aspect, ZNear, ZFar), a.ProjectionMatrix())

	a.Target.Move(50, 50)
	assert.Equal(t, b.ProjectionMatrix(), a.ProjectionMatrix())
}

func TestWorldRotatesThenTranslates(t *testing.T) {
	// A quarter turn takes +X to -Z before the pyramid moves left.
	p := gfx.TransformCoord(gfx.V3(1, 0, 0), PyramidWorld(math.Pi/2))
	assert.InDelta(t, -2, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)

	c := gfx.TransformCoord(gfx.V3(0, 0, 0), CubeWorld(1.3))
	assert.InDelta(t, 2, c.X, 1e-6)
	assert.InDelta(t, 0, c.Y, 1e-6)
	assert.InDelta(t, 0, c.Z, 1e-6)

	assert.Equal(t, gfx.Mat4Translate(gfx.V3(2, 0, 0)), CubeWorld(0))
}

type recorder map[gfx.TransformState]gfx.Mat4

func (r recorder) SetTransform(ts gfx.TransformState, m gfx.Mat4) error {
	r[ts] = m
	return nil
}

func TestControllerApplyFollowsTarget(t *testing.T) {
	c := NewController()
	rec := recorder{}
	require.NoError(t, c.Apply(rec))
	require.Contains(t, rec, gfx.TransformView)
	require.Contains(t, rec, gfx.TransformProjection)

	// The origin sits straight ahead of the eye.
	o := gfx.TransformCoord(gfx.V3(0, 0, 0), rec[gfx.TransformView])
	assert.InDelta(t, 0, o.X, 1e-6)
	assert.InDelta(t, EyeDistance, o.Z, 1e-5)

	c.Target.Move(20, 0)
	require.NoError(t, c.Apply(rec))
	o = gfx.TransformCoord(gfx.V3(0, 0, 0), rec[gfx.TransformView])
	assert.Less(t, o.X, float32(0), "looking right moves the origin left")
	assert.Equal(t, c.ProjectionMatrix(), rec[gfx.TransformProjection])
}
