package primitive

import "github.com/chewxy/math32"

// Build generates the cylinder side surface.
func (g Cylinder) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	m := &Mesh{}
	// Slope of the side for normals on cones.
	slope := (g.Base - g.Top) / g.Height

	for st := 0; st <= g.Stacks; st++ {
		v := float32(st) / float32(g.Stacks)
		r := g.Base + (g.Top-g.Base)*v
		z := g.Height * v
		for sl := 0; sl <= g.Slices; sl++ {
			u := float32(sl) / float32(g.Slices)
			ang := u * 2 * math32.Pi
			ca, sa := math32.Cos(ang), math32.Sin(ang)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{r * ca, r * sa, z},
				Normal:   normalize([3]float32{ca, sa, slope}),
				TexCoord: [2]float32{u, 1 - v},
			})
		}
	}
	m.grid(0, g.Slices, g.Stacks)
	m.ExtentS = 2 * math32.Pi * math32.Max(g.Base, g.Top)
	m.ExtentT = g.Height
	m.computeBounds()
	return m, nil
}

// Build generates a UV sphere.
func (g Sphere) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	m := &Mesh{}
	for st := 0; st <= g.Stacks; st++ {
		v := float32(st) / float32(g.Stacks)
		phi := v * math32.Pi // 0 at +Z pole
		sp, cp := math32.Sin(phi), math32.Cos(phi)
		for sl := 0; sl <= g.Slices; sl++ {
			u := float32(sl) / float32(g.Slices)
			theta := u * 2 * math32.Pi
			n := [3]float32{sp * math32.Cos(theta), sp * math32.Sin(theta), cp}
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{n[0] * g.Radius, n[1] * g.Radius, n[2] * g.Radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
	}
	m.grid(0, g.Slices, g.Stacks)
	m.ExtentS = 2 * math32.Pi * g.Radius
	m.ExtentT = math32.Pi * g.Radius
	m.computeBounds()
	return m, nil
}

// Build generates the torus.
func (g Torus) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	m := &Mesh{}
	for lp := 0; lp <= g.Loops; lp++ {
		v := float32(lp) / float32(g.Loops)
		phi := v * 2 * math32.Pi
		cp, sp := math32.Cos(phi), math32.Sin(phi)
		for sl := 0; sl <= g.Slices; sl++ {
			u := float32(sl) / float32(g.Slices)
			theta := u * 2 * math32.Pi
			ct, st := math32.Cos(theta), math32.Sin(theta)
			r := g.Outer + g.Inner*ct
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{r * cp, r * sp, g.Inner * st},
				Normal:   [3]float32{ct * cp, ct * sp, st},
				TexCoord: [2]float32{v, u},
			})
		}
	}
	m.grid(0, g.Slices, g.Loops)
	m.ExtentS = 2 * math32.Pi * g.Outer
	m.ExtentT = 2 * math32.Pi * g.Inner
	m.computeBounds()
	return m, nil
}
