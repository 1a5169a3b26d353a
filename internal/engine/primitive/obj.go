package primitive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Build loads the OBJ file.
func (g Model) Build() (*Mesh, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	f, err := os.Open(g.File)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	defer f.Close()

	m, err := DecodeOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", g.File, err)
	}
	return m, nil
}

type objIndex struct {
	v, vt, vn int
}

// DecodeOBJ reads positions, texture coordinates, normals and faces from a
// Wavefront OBJ stream. Polygons are fan-triangulated. Materials, groups and
// smoothing directives are ignored.
func DecodeOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions [][3]float32
		texcoords [][2]float32
		normals   [][3]float32
	)
	m := &Mesh{ExtentS: 1, ExtentT: 1}
	seen := make(map[objIndex]uint32)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, [3]float32{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			texcoords = append(texcoords, [2]float32{p[0], 1 - p[1]})
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, normalize([3]float32{p[0], p[1], p[2]}))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				vi, ok := seen[idx]
				if !ok {
					v := Vertex{Position: positions[idx.v]}
					if idx.vt >= 0 {
						v.TexCoord = texcoords[idx.vt]
					}
					if idx.vn >= 0 {
						v.Normal = normals[idx.vn]
					}
					vi = uint32(len(m.Vertices))
					m.Vertices = append(m.Vertices, v)
					seen[idx] = vi
				}
				face = append(face, vi)
			}
			for i := 1; i+1 < len(face); i++ {
				m.Indices = append(m.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("no faces: %w", ErrInvalidGeometry)
	}

	fillMissingNormals(m)
	m.computeBounds()
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef parses v, v/vt, v//vn or v/vt/vn. OBJ indices are 1-based and
// may be negative (relative to the end).
func parseFaceRef(ref string, nv, nvt, nvn int) (objIndex, error) {
	parts := strings.Split(ref, "/")
	idx := objIndex{vt: -1, vn: -1}

	resolve := func(s string, count int) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("bad index %q", s)
		}
		if n < 0 {
			n = count + n + 1
		}
		if n < 1 || n > count {
			return 0, fmt.Errorf("index %d out of range (1..%d)", n, count)
		}
		return n - 1, nil
	}

	var err error
	if idx.v, err = resolve(parts[0], nv); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.vt, err = resolve(parts[1], nvt); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.vn, err = resolve(parts[2], nvn); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// fillMissingNormals assigns face normals to vertices that have none.
func fillMissingNormals(m *Mesh) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		n := normalize(cross(sub(pb, pa), sub(pc, pa)))
		for _, vi := range [3]uint32{a, b, c} {
			if m.Vertices[vi].Normal == ([3]float32{}) {
				m.Vertices[vi].Normal = n
			}
		}
	}
}
