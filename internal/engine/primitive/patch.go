package primitive

// Build tessellates the Bezier surface into PartsU x PartsV quads.
func (g Patch) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	degU, degV := g.PointsU-1, g.PointsV-1
	m := &Mesh{ExtentS: 1, ExtentT: 1}

	for iv := 0; iv <= g.PartsV; iv++ {
		v := float32(iv) / float32(g.PartsV)
		bv := bernstein(degV, v)
		dbv := bernsteinDeriv(degV, v)
		for iu := 0; iu <= g.PartsU; iu++ {
			u := float32(iu) / float32(g.PartsU)
			bu := bernstein(degU, u)
			dbu := bernsteinDeriv(degU, u)

			var p, du, dv [3]float32
			for i := 0; i <= degU; i++ {
				for j := 0; j <= degV; j++ {
					cp := g.ControlPoints[i*g.PointsV+j]
					w, wu, wv := bu[i]*bv[j], dbu[i]*bv[j], bu[i]*dbv[j]
					for k := 0; k < 3; k++ {
						p[k] += w * cp[k]
						du[k] += wu * cp[k]
						dv[k] += wv * cp[k]
					}
				}
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   normalize(cross(du, dv)),
				TexCoord: [2]float32{u, 1 - v},
			})
		}
	}
	m.grid(0, g.PartsU, g.PartsV)
	m.computeBounds()
	return m, nil
}

// bernstein evaluates all Bernstein basis polynomials of degree n at t.
func bernstein(n int, t float32) []float32 {
	b := make([]float32, n+1)
	b[0] = 1
	for k := 1; k <= n; k++ {
		// De Casteljau style update from degree k-1 to k.
		prev := float32(0)
		for i := 0; i <= k; i++ {
			cur := b[i]
			b[i] = (1-t)*cur + t*prev
			prev = cur
		}
	}
	return b
}

// bernsteinDeriv returns the derivatives of the degree-n basis at t.
func bernsteinDeriv(n int, t float32) []float32 {
	d := make([]float32, n+1)
	if n == 0 {
		return d
	}
	lower := bernstein(n-1, t)
	for i := 0; i <= n; i++ {
		var a, b float32
		if i > 0 {
			a = lower[i-1]
		}
		if i < n {
			b = lower[i]
		}
		d[i] = float32(n) * (a - b)
	}
	return d
}
