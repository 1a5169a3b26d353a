package graph

import (
	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// Material holds shading parameters.
type Material struct {
	ID        string
	Shininess float32
	Emission  [4]float32
	Ambient   [4]float32
	Diffuse   [4]float32
	Specular  [4]float32
}

// TextureDef binds a texture ID to an image file.
type TextureDef struct {
	ID   string
	File string
}

// OpKind is a transformation step.
type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotate
	OpScale
)

func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpRotate:
		return "rotate"
	case OpScale:
		return "scale"
	}
	return "unknown"
}

// Op is one transformation step. Vec is used by translate and scale, Axis
// and Angle (radians) by rotate.
type Op struct {
	Kind  OpKind
	Vec   math.Vec3
	Axis  math.Axis
	Angle float32
}

// Matrix returns the step's matrix.
func (o Op) Matrix() math.Mat4 {
	switch o.Kind {
	case OpTranslate:
		return math.Translate(o.Vec.X, o.Vec.Y, o.Vec.Z)
	case OpRotate:
		return math.Rotate(o.Axis, o.Angle)
	case OpScale:
		return math.Scale(o.Vec.X, o.Vec.Y, o.Vec.Z)
	}
	return math.Identity()
}

// Transformation is a named sequence of steps.
type Transformation struct {
	ID  string
	Ops []Op
}

// Compose multiplies the steps in document order.
func Compose(ops []Op) math.Mat4 {
	m := math.Identity()
	for _, op := range ops {
		m = m.Mul(op.Matrix())
	}
	return m
}

// Matrix returns the composed matrix.
func (t Transformation) Matrix() math.Mat4 { return Compose(t.Ops) }

// PrimitiveDef is a named leaf geometry.
type PrimitiveDef struct {
	ID       string
	Geometry primitive.Geometry
}

// Globals are the scene-wide settings from the scene and ambient blocks.
type Globals struct {
	Root        string
	AxisLength  float32
	Ambient     [4]float32
	Background  [4]float32
	DefaultView string
}
