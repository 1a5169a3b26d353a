package primitive

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleValidation(t *testing.T) {
	tests := []struct {
		name string
		r    Rectangle
		ok   bool
	}{
		{"valid", Rectangle{0, 0, 2, 1}, true},
		{"x2 equals x1", Rectangle{1, 0, 1, 1}, false},
		{"x2 less than x1", Rectangle{2, 0, 1, 1}, false},
		{"y2 equals y1", Rectangle{0, 1, 1, 1}, false},
		{"y2 less than y1", Rectangle{0, 2, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.r.Build()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidGeometry))
			}
		})
	}
}

func TestRectangleMesh(t *testing.T) {
	m, err := Rectangle{-1, -2, 3, 2}.Build()
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, 2, m.Triangles())
	assert.Equal(t, [3]float32{-1, -2, 0}, m.Bounds.Min)
	assert.Equal(t, [3]float32{3, 2, 0}, m.Bounds.Max)

	assert.Equal(t, [2]float32{1, 1}, m.TexScale(1, 1))
	assert.Equal(t, [2]float32{2, 0.5}, m.TexScale(2, 8))
}

func TestQuadricCounts(t *testing.T) {
	cyl, err := Cylinder{Base: 1, Top: 0.5, Height: 2, Slices: 8, Stacks: 3}.Build()
	require.NoError(t, err)
	assert.Len(t, cyl.Vertices, 9*4)
	assert.Equal(t, 8*3*2, cyl.Triangles())
	assert.InDelta(t, 2, cyl.Bounds.Max[2], 1e-6)

	sph, err := Sphere{Radius: 2, Slices: 10, Stacks: 5}.Build()
	require.NoError(t, err)
	assert.Equal(t, 10*5*2, sph.Triangles())
	for _, v := range sph.Vertices {
		assert.InDelta(t, 2, length(v.Position), 1e-4)
	}

	tor, err := Torus{Inner: 0.25, Outer: 1, Slices: 6, Loops: 12}.Build()
	require.NoError(t, err)
	assert.Equal(t, 6*12*2, tor.Triangles())
	assert.InDelta(t, 1.25, tor.Bounds.Max[0], 1e-4)
}

func TestInvalidQuadrics(t *testing.T) {
	for _, g := range []Geometry{
		Cylinder{Base: 1, Top: 1, Height: 0, Slices: 8, Stacks: 1},
		Sphere{Radius: 1, Slices: 2, Stacks: 2},
		Torus{Inner: 0, Outer: 1, Slices: 4, Loops: 4},
		Triangle{P1: [3]float32{0, 0, 0}, P2: [3]float32{1, 1, 1}, P3: [3]float32{2, 2, 2}},
		Patch{PointsU: 2, PointsV: 2, PartsU: 1, PartsV: 1},
		Model{},
	} {
		assert.ErrorIs(t, Validate(g), ErrInvalidGeometry, g.Kind())
	}
}

func TestBilinearPatchIsFlat(t *testing.T) {
	p := Patch{
		PointsU: 2, PointsV: 2, PartsU: 4, PartsV: 4,
		ControlPoints: [][3]float32{
			{-1, -1, 0}, {-1, 1, 0},
			{1, -1, 0}, {1, 1, 0},
		},
	}
	m, err := p.Build()
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 25)
	for _, v := range m.Vertices {
		assert.InDelta(t, 0, v.Position[2], 1e-6)
		assert.InDelta(t, 1, abs32(v.Normal[2]), 1e-5)
	}
	// Center of the patch.
	assert.InDelta(t, 0, m.Vertices[12].Position[0], 1e-6)
	assert.InDelta(t, 0, m.Vertices[12].Position[1], 1e-6)
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	for _, tt := range []float32{0, 0.3, 0.5, 1} {
		var sum float32
		for _, b := range bernstein(3, tt) {
			sum += b
		}
		assert.InDelta(t, 1, sum, 1e-6)
	}
}

func TestDecodeOBJ(t *testing.T) {
	src := `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`
	m, err := DecodeOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, 2, m.Triangles())
	assert.Equal(t, [3]float32{0, 0, 1}, m.Vertices[0].Normal)

	_, err = DecodeOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n"))
	assert.Error(t, err)

	_, err = DecodeOBJ(strings.NewReader("v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
