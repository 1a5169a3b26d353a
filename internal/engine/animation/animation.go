// Package animation implements time-driven transforms for scene components,
// board pieces and the camera.
//
// All animations are driven by Update with a monotonically increasing time in
// seconds. The set of animation kinds is closed: KeyFrame, Camera, Move and
// Bounce.
package animation

import "github.com/Faultbox/checkers3d/pkg/math"

// Animation is implemented by every animation kind in this package.
type Animation interface {
	// Update advances the animation to time t (seconds).
	Update(t float64)
	// Started reports whether the animation has produced a pose yet.
	Started() bool
	// Done reports whether the final pose has been reached.
	Done() bool

	sealed()
}

// MatrixSink receives a transform to compose into the current model matrix.
type MatrixSink interface {
	MultMatrix(m math.Mat4)
}

// progress returns the clamped fraction of duration elapsed since start.
func progress(t, start, duration float64) float32 {
	if duration <= 0 {
		return 1
	}
	p := (t - start) / duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return float32(p)
}

// clock tracks the first update an animation saw, which is its logical start.
type clock struct {
	started bool
	start   float64
}

func (c *clock) tick(t float64) {
	if !c.started {
		c.started = true
		c.start = t
	}
}
