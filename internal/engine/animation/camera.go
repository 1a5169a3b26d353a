package animation

import (
	"github.com/Faultbox/checkers3d/internal/engine/camera"
)

// Camera moves the viewpoint from one view to another.
type Camera struct {
	clock
	from, to camera.View
	duration float64
	current  camera.View
	done     bool
}

// NewCamera creates a camera transition lasting duration seconds.
func NewCamera(from, to camera.View, duration float64) *Camera {
	return &Camera{from: from, to: to, duration: duration, current: from}
}

func (*Camera) sealed() {}

// Update advances the transition. The first update fixes the start time.
func (a *Camera) Update(t float64) {
	a.tick(t)
	p := progress(t, a.start, a.duration)
	a.current = camera.Lerp(a.from, a.to, smoothstep(p))
	a.done = p >= 1
}

// Started reports whether Update has been called.
func (a *Camera) Started() bool { return a.started }

// Done reports whether the target view has been reached.
func (a *Camera) Done() bool { return a.done }

// View returns the current interpolated view.
func (a *Camera) View() camera.View { return a.current }

// Target returns the destination view.
func (a *Camera) Target() camera.View { return a.to }

func smoothstep(p float32) float32 {
	return p * p * (3 - 2*p)
}
