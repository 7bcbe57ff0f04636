package gfx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	if got := Mat4Mul(a, b); got != b {
		t.Fatalf("identity*a mismatch")
	}
	if got := Mat4Mul(b, a); got != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestMat4MulAppliesLeftFirst(t *testing.T) {
	rot := Mat4RotateY(math.Pi / 2)
	trans := Mat4Translate(V3(-2, 0, 0))

	// Rotate about the object origin, then place it.
	got := TransformCoord(V3(1, 0, 0), Mat4Mul(rot, trans))
	assertVec3(t, V3(-2, 0, -1), got)

	// The other order moves first and swings the point around the world origin.
	got = TransformCoord(V3(1, 0, 0), Mat4Mul(trans, rot))
	assertVec3(t, V3(0, 0, 1), got)
}

func TestYawPitchRollOrder(t *testing.T) {
	const p, r = 0.3, 0.3
	want := Mat4Mul(Mat4RotateZ(r), Mat4RotateX(p))
	got := Mat4YawPitchRoll(0, p, r)
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "element %d", i)
	}
}

func TestLookAtLH(t *testing.T) {
	m := Mat4LookAtLH(V3(0, 0, -8), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
	assertVec3(t, V3(0, 0, 8), TransformCoord(V3(0, 0, 0), m))
	// +X in the world stays on the right.
	assertVec3(t, V3(2, 0, 8), TransformCoord(V3(2, 0, 0), m))
}

func TestPerspectiveFovLHDepthRange(t *testing.T) {
	m := Mat4PerspectiveFovLH(math.Pi/4, 800.0/480.0, 1, 100)

	assert.InDelta(t, 0, TransformCoord(V3(0, 0, 1), m).Z, eps)
	assert.InDelta(t, 1, TransformCoord(V3(0, 0, 100), m).Z, eps)

	// The top edge of the frustum at depth d is d*tan(fov/2).
	d := float32(10)
	top := d * float32(math.Tan(math.Pi/8))
	assert.InDelta(t, 1, TransformCoord(V3(0, top, d), m).Y, eps)
}

func TestPerspectiveFovLHIdempotent(t *testing.T) {
	a := Mat4PerspectiveFovLH(math.Pi/4, 800.0/480.0, 1, 100)
	b := Mat4PerspectiveFovLH(math.Pi/4, 800.0/480.0, 1, 100)
	assert.Equal(t, a, b)
}

func TestOrthoLH(t *testing.T) {
	m := Mat4OrthoLH(4, 2, 0, 10)
	assertVec3(t, V3(1, 1, 0.5), TransformCoord(V3(2, 1, 5), m))
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Normalize(Vec3{}))
	assert.InDelta(t, 1, Len(Normalize(V3(3, 4, 0))), eps)
}
