// Package camera provides the scene's named views and the interactive orbit
// camera layered on top of them.
package camera

import (
	"github.com/Faultbox/checkers3d/pkg/math"
)

// Kind distinguishes projection types.
type Kind int

const (
	Perspective Kind = iota
	Ortho
)

func (k Kind) String() string {
	if k == Ortho {
		return "ortho"
	}
	return "perspective"
}

// View is a camera definition from the scene file.
type View struct {
	ID   string
	Kind Kind

	Near, Far float32
	// Angle is the vertical field of view in degrees (perspective only).
	Angle float32
	// Frustum bounds (ortho only).
	Left, Right, Top, Bottom float32

	From math.Vec3
	To   math.Vec3
	Up   math.Vec3
}

// Position returns the eye position.
func (v View) Position() math.Vec3 { return v.From }

// Target returns the point the view looks at.
func (v View) Target() math.Vec3 { return v.To }

// Fov returns the vertical field of view in radians.
func (v View) Fov() float32 { return math.Radians(v.Angle) }

// ViewMatrix returns the world-to-eye matrix.
func (v View) ViewMatrix() math.Mat4 {
	up := v.Up
	if up == (math.Vec3{}) {
		up = math.Vec3{Y: 1}
	}
	return math.LookAt(v.From, v.To, up)
}

// Projection returns the projection matrix for the given aspect ratio.
func (v View) Projection(aspect float32) math.Mat4 {
	if v.Kind == Ortho {
		return math.Ortho(v.Left, v.Right, v.Bottom, v.Top, v.Near, v.Far)
	}
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(v.Fov(), aspect, v.Near, v.Far)
}

// Lerp blends two views. Identity, projection kind and frustum bounds come
// from a until t reaches 1.
func Lerp(a, b View, t float32) View {
	if t >= 1 {
		return b
	}
	t = math.Clamp(t, 0, 1)
	out := a
	out.From = a.From.Lerp(b.From, t)
	out.To = a.To.Lerp(b.To, t)
	out.Up = a.Up.Lerp(b.Up, t)
	out.Near = math.Lerp(a.Near, b.Near, t)
	out.Far = math.Lerp(a.Far, b.Far, t)
	out.Angle = math.Lerp(a.Angle, b.Angle, t)
	return out
}
