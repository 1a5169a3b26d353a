// Package primitive builds triangle meshes for the scene's leaf geometry:
// rectangles, triangles, cylinders, spheres, tori, Bezier patches and OBJ
// model files.
package primitive

import (
	"github.com/chewxy/math32"
)

// Vertex is a mesh vertex with position, normal and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is indexed triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// ExtentS and ExtentT are the surface size in world units that the
	// unit texture square spans. Texture lengths from the scene file are
	// divided into these to get the repeat count.
	ExtentS, ExtentT float32
}

// TexScale returns the texture coordinate multipliers for the given texture
// lengths. Lengths of exactly 1 keep the unit mapping.
func (m *Mesh) TexScale(lengthS, lengthT float32) [2]float32 {
	if lengthS == 1 && lengthT == 1 {
		return [2]float32{1, 1}
	}
	es, et := m.ExtentS, m.ExtentT
	if es == 0 {
		es = 1
	}
	if et == 0 {
		et = 1
	}
	return [2]float32{es / lengthS, et / lengthT}
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// computeBounds updates Bounds from the vertex positions.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	b := Bounds{
		Min: [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			b.Min[i] = math32.Min(b.Min[i], v.Position[i])
			b.Max[i] = math32.Max(b.Max[i], v.Position[i])
		}
	}
	m.Bounds = b
}

// grid appends indices for a (cols+1) x (rows+1) vertex grid starting at base.
func (m *Mesh) grid(base uint32, cols, rows int) {
	stride := uint32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			a := base + uint32(r)*stride + uint32(c)
			b := a + stride
			m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func length(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func normalize(v [3]float32) [3]float32 {
	l := length(v)
	if l < 0.0001 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
