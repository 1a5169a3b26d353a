package primitive

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned for parameters that cannot produce a mesh.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry is one of the supported primitive shapes.
type Geometry interface {
	// Kind returns the scene file tag for this geometry.
	Kind() string
	// Build generates the mesh.
	Build() (*Mesh, error)

	sealed()
}

func invalid(kind, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", kind, fmt.Sprintf(format, args...), ErrInvalidGeometry)
}

// Rectangle is an axis-aligned rectangle in the XY plane facing +Z.
type Rectangle struct {
	X1, Y1, X2, Y2 float32
}

// Triangle is a single triangle.
type Triangle struct {
	P1, P2, P3 [3]float32
}

// Cylinder is an open cylinder along +Z. Base and Top are radii.
type Cylinder struct {
	Base, Top, Height float32
	Slices, Stacks    int
}

// Sphere is centered on the origin with poles on the Z axis.
type Sphere struct {
	Radius         float32
	Slices, Stacks int
}

// Torus lies in the XY plane. Inner is the tube radius, Outer the distance
// from the center to the tube.
type Torus struct {
	Inner, Outer  float32
	Slices, Loops int
}

// Patch is a Bezier surface. ControlPoints has PointsU*PointsV entries in
// U-major order.
type Patch struct {
	PointsU, PointsV int
	PartsU, PartsV   int
	ControlPoints    [][3]float32
}

// Model is a mesh loaded from a Wavefront OBJ file.
type Model struct {
	File string
}

func (Rectangle) sealed() {}
func (Triangle) sealed()  {}
func (Cylinder) sealed()  {}
func (Sphere) sealed()    {}
func (Torus) sealed()     {}
func (Patch) sealed()     {}
func (Model) sealed()     {}

func (Rectangle) Kind() string { return "rectangle" }
func (Triangle) Kind() string  { return "triangle" }
func (Cylinder) Kind() string  { return "cylinder" }
func (Sphere) Kind() string    { return "sphere" }
func (Torus) Kind() string     { return "torus" }
func (Patch) Kind() string     { return "patch" }
func (Model) Kind() string     { return "model" }

// Validate checks the parameters without building the mesh.
func Validate(g Geometry) error {
	switch g := g.(type) {
	case Rectangle:
		if g.X2 <= g.X1 || g.Y2 <= g.Y1 {
			return invalid(g.Kind(), "x2 > x1 and y2 > y1 required, got (%v,%v)-(%v,%v)", g.X1, g.Y1, g.X2, g.Y2)
		}
	case Triangle:
		if length(cross(sub(g.P2, g.P1), sub(g.P3, g.P1))) == 0 {
			return invalid(g.Kind(), "vertices are collinear")
		}
	case Cylinder:
		if g.Base < 0 || g.Top < 0 || (g.Base == 0 && g.Top == 0) {
			return invalid(g.Kind(), "radii must be non-negative and not both zero")
		}
		if g.Height <= 0 {
			return invalid(g.Kind(), "height must be positive, got %v", g.Height)
		}
		if g.Slices < 3 || g.Stacks < 1 {
			return invalid(g.Kind(), "need slices >= 3 and stacks >= 1, got %d/%d", g.Slices, g.Stacks)
		}
	case Sphere:
		if g.Radius <= 0 {
			return invalid(g.Kind(), "radius must be positive, got %v", g.Radius)
		}
		if g.Slices < 3 || g.Stacks < 2 {
			return invalid(g.Kind(), "need slices >= 3 and stacks >= 2, got %d/%d", g.Slices, g.Stacks)
		}
	case Torus:
		if g.Inner <= 0 || g.Outer <= 0 {
			return invalid(g.Kind(), "radii must be positive")
		}
		if g.Slices < 3 || g.Loops < 3 {
			return invalid(g.Kind(), "need slices >= 3 and loops >= 3, got %d/%d", g.Slices, g.Loops)
		}
	case Patch:
		if g.PointsU < 2 || g.PointsV < 2 {
			return invalid(g.Kind(), "need at least 2 points in each direction")
		}
		if g.PartsU < 1 || g.PartsV < 1 {
			return invalid(g.Kind(), "parts must be positive")
		}
		if len(g.ControlPoints) != g.PointsU*g.PointsV {
			return invalid(g.Kind(), "expected %d control points, got %d", g.PointsU*g.PointsV, len(g.ControlPoints))
		}
	case Model:
		if g.File == "" {
			return invalid(g.Kind(), "file is empty")
		}
	default:
		return fmt.Errorf("unknown geometry %T: %w", g, ErrInvalidGeometry)
	}
	return nil
}
