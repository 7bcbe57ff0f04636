package gfx

type screenVertex struct {
	x, y int
	c    Color
}

func (d *Device) rasterize(pt PrimitiveType, verts []Vertex) {
	wv := Mat4Mul(d.transforms[TransformWorld], d.transforms[TransformView])
	wvp := Mat4Mul(wv, d.transforms[TransformProjection])

	switch pt {
	case TriangleList:
		for i := 0; i+2 < len(verts); i += 3 {
			d.drawTriangle(wv, wvp, verts[i], verts[i+1], verts[i+2])
		}
	case LineList:
		for i := 0; i+1 < len(verts); i += 2 {
			p0, ok0 := d.project(wv, wvp, verts[i])
			p1, ok1 := d.project(wv, wvp, verts[i+1])
			if ok0 && ok1 {
				drawLine(d.back, p0.x, p0.y, p1.x, p1.y, p0.c)
			}
		}
	case PointList:
		for _, v := range verts {
			if p, ok := d.project(wv, wvp, v); ok {
				d.back.SetPixel(p.x, p.y, p.c)
			}
		}
	}
}

func (d *Device) drawTriangle(wv, wvp Mat4, v0, v1, v2 Vertex) {
	p0, ok0 := d.project(wv, wvp, v0)
	p1, ok1 := d.project(wv, wvp, v1)
	p2, ok2 := d.project(wv, wvp, v2)
	// Trivial clip: drop the triangle if any vertex is outside the near/far range.
	if !ok0 || !ok1 || !ok2 {
		return
	}

	area := edgeFn(p0.x, p0.y, p1.x, p1.y, p2.x, p2.y)
	if area == 0 {
		return
	}
	switch d.states[RSCullMode] {
	case CullCCW:
		if area > 0 {
			return
		}
	case CullCW:
		if area < 0 {
			return
		}
	}
	d.stats.Triangles++

	switch d.states[RSFillMode] {
	case FillPoint:
		d.back.SetPixel(p0.x, p0.y, p0.c)
		d.back.SetPixel(p1.x, p1.y, p1.c)
		d.back.SetPixel(p2.x, p2.y, p2.c)
	case FillWireframe:
		drawLine(d.back, p0.x, p0.y, p1.x, p1.y, p0.c)
		drawLine(d.back, p1.x, p1.y, p2.x, p2.y, p1.c)
		drawLine(d.back, p2.x, p2.y, p0.x, p0.y, p2.c)
	default:
		if area < 0 {
			p1, p2 = p2, p1
		}
		fillTriangle(d.back, p0, p1, p2)
	}
}

// project takes a vertex to screen space. It reports false when the vertex is
// in front of the near plane or behind the far plane.
func (d *Device) project(wv, wvp Mat4, v Vertex) (screenVertex, bool) {
	p := Transform(Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}, wvp)
	if p.W <= 0 || p.Z < 0 || p.Z > p.W {
		return screenVertex{}, false
	}
	invW := 1 / p.W
	nx := p.X * invW
	ny := p.Y * invW

	w, h := d.back.Size()
	sx := (nx*0.5 + 0.5) * float32(w-1)
	sy := (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return screenVertex{x: int(sx + 0.5), y: int(sy + 0.5), c: d.shade(wv, v)}, true
}

// shade computes the vertex color: the diffuse color when lighting is off, the
// material ambient term when it is on, then linear fog.
func (d *Device) shade(wv Mat4, v Vertex) Color {
	c := ARGB(v.Color)
	if d.states[RSLighting] != 0 {
		a := c.A
		c = d.material.Ambient.Modulate(ARGB(d.states[RSAmbient]))
		c.A = a
	}
	if d.states[RSFogEnable] != 0 && d.states[RSFogVertexMode] == FogLinear {
		start := DW2F(d.states[RSFogStart])
		end := DW2F(d.states[RSFogEnd])
		if end != start {
			z := Transform(Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}, wv).Z
			f := clampF32((end-z)/(end-start), 0, 1)
			c = c.Lerp(ARGB(d.states[RSFogColor]), 1-f)
		}
	}
	return c
}

func drawLine(s *Surface, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangle fills a triangle with positive edgeFn area using Gouraud-shaded
// vertex colors.
func fillTriangle(s *Surface, v0, v1, v2 screenVertex) {
	w, h := s.Size()
	minX, maxX := min(v0.x, v1.x, v2.x), max(v0.x, v1.x, v2.x)
	minY, maxY := min(v0.y, v1.y, v2.y), max(v0.y, v1.y, v2.y)
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, w-1), min(maxY, h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area <= 0 {
		return
	}
	invArea := 1.0 / float32(area)

	r0, g0, b0 := float32(v0.c.R), float32(v0.c.G), float32(v0.c.B)
	r1, g1, b1 := float32(v1.c.R), float32(v1.c.G), float32(v1.c.B)
	r2, g2, b2 := float32(v2.c.R), float32(v2.c.G), float32(v2.c.B)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, x, y)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, x, y)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			rr := uint8(clampF32(a0*r0+a1*r1+a2*r2, 0, 255))
			gg := uint8(clampF32(a0*g0+a1*g1+a2*g2, 0, 255))
			bb := uint8(clampF32(a0*b0+a1*b1+a2*b2, 0, 255))
			s.SetPixel(x, y, Color{R: rr, G: gg, B: bb, A: 0xFF})
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
