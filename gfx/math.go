package gfx

import "github.com/chewxy/math32"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4D vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a row-major 4x4 matrix used with row vectors: m[row*4+col].
//
// Translation lives in m[12], m[13], m[14].
type Mat4 [16]float32

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) float32 {
	return math32.Sqrt(Dot(v, v))
}

func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a*b. With row vectors the result applies a first, then b.
func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] =
				a[row*4+0]*b[0*4+col] +
					a[row*4+1]*b[1*4+col] +
					a[row*4+2]*b[2*4+col] +
					a[row*4+3]*b[3*4+col]
		}
	}
	return out
}

// Transform returns v*m.
func Transform(v Vec4, m Mat4) Vec4 {
	return Vec4{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		W: v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// TransformCoord transforms a point (w=1) and divides by the resulting w.
func TransformCoord(v Vec3, m Mat4) Vec3 {
	p := Transform(Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}, m)
	if p.W == 0 {
		return Vec3{}
	}
	return Vec3{X: p.X / p.W, Y: p.Y / p.W, Z: p.Z / p.W}
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

func Mat4RotateX(rad float32) Mat4 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotateY(rad float32) Mat4 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotateZ(rad float32) Mat4 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4YawPitchRoll rotates by roll (Z), then pitch (X), then yaw (Y).
func Mat4YawPitchRoll(yaw, pitch, roll float32) Mat4 {
	return Mat4Mul(Mat4Mul(Mat4RotateZ(roll), Mat4RotateX(pitch)), Mat4RotateY(yaw))
}

// Mat4LookAtLH builds a left-handed view matrix.
func Mat4LookAtLH(eye, at, up Vec3) Mat4 {
	z := Normalize(at.Sub(eye))
	x := Normalize(Cross(up, z))
	y := Cross(z, x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-Dot(x, eye), -Dot(y, eye), -Dot(z, eye), 1,
	}
}

// Mat4PerspectiveFovLH builds a left-handed perspective projection mapping view depth
// [zNear, zFar] to [0, 1].
func Mat4PerspectiveFovLH(fovY, aspect, zNear, zFar float32) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	ys := 1 / math32.Tan(fovY/2)
	xs := ys / aspect
	q := zFar / (zFar - zNear)
	return Mat4{
		xs, 0, 0, 0,
		0, ys, 0, 0,
		0, 0, q, 1,
		0, 0, -zNear * q, 0,
	}
}

// Mat4OrthoLH builds a left-handed orthographic projection of the given view volume size.
func Mat4OrthoLH(w, h, zNear, zFar float32) Mat4 {
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	fn := zFar - zNear
	if fn == 0 {
		fn = 1
	}
	return Mat4{
		2 / w, 0, 0, 0,
		0, 2 / h, 0, 0,
		0, 0, 1 / fn, 0,
		0, 0, -zNear / fn, 1,
	}
}
