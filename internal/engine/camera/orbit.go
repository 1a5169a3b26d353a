package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/checkers3d/pkg/math"
)

// OrbitCamera orbits around the target of the active view. Dragging and
// zooming modify the orbit; View() folds it back into a View so the rest of
// the renderer only ever deals with views.
type OrbitCamera struct {
	base View

	// Spherical coordinates around base.To
	Distance  float32
	RotationX float32 // Pitch (radians)
	RotationY float32 // Yaw (radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera with default limits.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10,
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Attach starts orbiting from the given view, preserving its eye position.
func (c *OrbitCamera) Attach(v View) {
	c.base = v
	offset := v.From.Sub(v.To)
	c.Distance = offset.Length()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		return
	}
	c.RotationX = math32.Asin(math.Clamp(offset.Y/c.Distance, -1, 1))
	c.RotationY = math32.Atan2(offset.X, offset.Z)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cx, sx := math32.Cos(c.RotationX), math32.Sin(c.RotationX)
	x := c.Distance * cx * math32.Sin(c.RotationY)
	y := c.Distance * sx
	z := c.Distance * cx * math32.Cos(c.RotationY)
	return c.base.To.Add(math.Vec3{X: x, Y: y, Z: z})
}

// View returns the attached view with the orbiting eye position.
func (c *OrbitCamera) View() View {
	v := c.base
	v.From = c.Position()
	return v
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
