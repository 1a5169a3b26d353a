package primitive

import "github.com/chewxy/math32"

// Build generates two triangles covering the rectangle.
func (g Rectangle) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	n := [3]float32{0, 0, 1}
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{g.X1, g.Y1, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
			{Position: [3]float32{g.X2, g.Y1, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{g.X1, g.Y2, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{g.X2, g.Y2, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
		},
		Indices: []uint32{0, 1, 2, 1, 3, 2},
		ExtentS: g.X2 - g.X1,
		ExtentT: g.Y2 - g.Y1,
	}
	m.computeBounds()
	return m, nil
}

// Build generates the triangle with texture coordinates that keep its
// proportions: P1 at the origin, P2 along S.
func (g Triangle) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	n := normalize(cross(sub(g.P2, g.P1), sub(g.P3, g.P1)))

	a := length(sub(g.P2, g.P1))
	b := length(sub(g.P3, g.P2))
	c := length(sub(g.P1, g.P3))
	cosA := (a*a - b*b + c*c) / (2 * a * c)
	sinA := math32.Sqrt(math32.Max(0, 1-cosA*cosA))

	m := &Mesh{
		Vertices: []Vertex{
			{Position: g.P1, Normal: n, TexCoord: [2]float32{0, 1}},
			{Position: g.P2, Normal: n, TexCoord: [2]float32{1, 1}},
			{Position: g.P3, Normal: n, TexCoord: [2]float32{c * cosA / a, 1 - c*sinA/a}},
		},
		Indices: []uint32{0, 1, 2},
		ExtentS: a,
		ExtentT: a,
	}
	m.computeBounds()
	return m, nil
}
