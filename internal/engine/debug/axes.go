// Package debug provides debug visualization utilities.
package debug

// Axis is one line of the world axes gizmo.
type Axis struct {
	Name  string
	To    [3]float32
	Color [3]float32
}

// Axes returns the X, Y and Z axes of the given length, drawn from the
// origin in red, green and blue. A length of zero or less returns nil.
func Axes(length float32) []Axis {
	if length <= 0 {
		return nil
	}
	return []Axis{
		{Name: "x", To: [3]float32{length, 0, 0}, Color: [3]float32{1, 0, 0}},
		{Name: "y", To: [3]float32{0, length, 0}, Color: [3]float32{0, 1, 0}},
		{Name: "z", To: [3]float32{0, 0, length}, Color: [3]float32{0, 0, 1}},
	}
}

// AxisVertices creates line vertices for the axes: two endpoints per axis,
// format [x, y, z] per vertex.
func AxisVertices(axes []Axis) []float32 {
	out := make([]float32, 0, len(axes)*6)
	for _, a := range axes {
		out = append(out, 0, 0, 0, a.To[0], a.To[1], a.To[2])
	}
	return out
}
