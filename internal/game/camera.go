package game

import (
	"github.com/Faultbox/checkers3d/internal/engine/animation"
	"github.com/Faultbox/checkers3d/internal/engine/camera"
)

// cameraRig is the active viewpoint: a free orbit camera that can be flown
// to another view.
type cameraRig struct {
	orbit    *camera.OrbitCamera
	flight   *animation.Camera
	duration float64
}

func newCameraRig(duration float64) *cameraRig {
	return &cameraRig{orbit: camera.NewOrbitCamera(), duration: duration}
}

// Set jumps to v.
func (c *cameraRig) Set(v camera.View) {
	c.flight = nil
	c.orbit.Attach(v)
}

// FlyTo starts a transition from the current viewpoint to v.
func (c *cameraRig) FlyTo(v camera.View) {
	c.flight = animation.NewCamera(c.View(), v, c.duration)
}

// Flying reports whether a transition is in progress.
func (c *cameraRig) Flying() bool { return c.flight != nil }

func (c *cameraRig) Update(t float64) {
	if c.flight == nil {
		return
	}
	c.flight.Update(t)
	if c.flight.Done() {
		c.orbit.Attach(c.flight.Target())
		c.flight = nil
	}
}

func (c *cameraRig) View() camera.View {
	if c.flight != nil {
		return c.flight.View()
	}
	return c.orbit.View()
}

// Drag and Zoom are ignored mid-flight.
func (c *cameraRig) Drag(dx, dy int) {
	if c.flight == nil {
		c.orbit.HandleDrag(float32(dx), float32(dy))
	}
}

func (c *cameraRig) Zoom(delta int) {
	if c.flight == nil {
		c.orbit.HandleZoom(float32(delta))
	}
}
