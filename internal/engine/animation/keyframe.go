package animation

import (
	"fmt"
	"sort"

	"github.com/Faultbox/checkers3d/pkg/math"
)

// Rotation is one rotation channel of a keyframe. Angle is in radians.
type Rotation struct {
	Axis  math.Axis
	Angle float32
}

// Key is a timestamped pose.
type Key struct {
	Instant     float64
	Translation math.Vec3
	// Rotations are applied in order; scene files list them Z, Y, X.
	Rotations []Rotation
	Scale     math.Vec3
}

// Matrix composes the pose as translate * scale * rotations.
func (k Key) Matrix() math.Mat4 {
	m := math.Translate(k.Translation.X, k.Translation.Y, k.Translation.Z)
	m = m.Mul(math.Scale(k.Scale.X, k.Scale.Y, k.Scale.Z))
	for _, r := range k.Rotations {
		m = m.Mul(math.Rotate(r.Axis, r.Angle))
	}
	return m
}

// KeyFrame interpolates between timestamped poses.
type KeyFrame struct {
	ID   string
	keys []Key

	started   bool
	startTime float64
	matrix    math.Mat4
	last      float64
}

// NewKeyFrame validates the keys and builds an animation. Keys must be
// non-empty with non-negative, strictly increasing instants, and every key
// must list the same rotation axes in the same order.
func NewKeyFrame(id string, keys []Key) (*KeyFrame, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("animation %q: no keyframes", id)
	}
	for i, k := range keys {
		if k.Instant < 0 {
			return nil, fmt.Errorf("animation %q: keyframe %d has negative instant %v", id, i, k.Instant)
		}
		if i > 0 && k.Instant <= keys[i-1].Instant {
			return nil, fmt.Errorf("animation %q: keyframe instants must increase (%v after %v)", id, k.Instant, keys[i-1].Instant)
		}
		if len(k.Rotations) != len(keys[0].Rotations) {
			return nil, fmt.Errorf("animation %q: keyframe %d has %d rotations, expected %d", id, i, len(k.Rotations), len(keys[0].Rotations))
		}
		for j, r := range k.Rotations {
			if r.Axis != keys[0].Rotations[j].Axis {
				return nil, fmt.Errorf("animation %q: keyframe %d rotation %d axis %s differs from %s", id, i, j, r.Axis, keys[0].Rotations[j].Axis)
			}
		}
	}
	cp := make([]Key, len(keys))
	copy(cp, keys)
	return &KeyFrame{ID: id, keys: cp, matrix: math.Identity()}, nil
}

func (*KeyFrame) sealed() {}

// Keys returns the keyframes in instant order.
func (a *KeyFrame) Keys() []Key { return a.keys }

// Started reports whether t has reached the first keyframe.
func (a *KeyFrame) Started() bool { return a.started }

// StartTime returns the first update time at which the animation started.
func (a *KeyFrame) StartTime() float64 { return a.startTime }

// Done reports whether the last update was at or after the final keyframe.
func (a *KeyFrame) Done() bool {
	return a.started && a.last >= a.keys[len(a.keys)-1].Instant
}

// Matrix returns the current transform; identity until started.
func (a *KeyFrame) Matrix() math.Mat4 { return a.matrix }

// Update moves the animation to time t.
func (a *KeyFrame) Update(t float64) {
	if t < a.keys[0].Instant {
		return
	}
	if !a.started {
		a.started = true
		a.startTime = t
	}
	a.last = t
	a.matrix = a.Pose(t).Matrix()
}

// Pose returns the interpolated pose at t, clamped to the first and last keys.
func (a *KeyFrame) Pose(t float64) Key {
	// First key strictly after t.
	next := sort.Search(len(a.keys), func(i int) bool { return a.keys[i].Instant > t })
	if next == len(a.keys) {
		return a.keys[len(a.keys)-1]
	}
	if next == 0 {
		return a.keys[0]
	}

	k1, k2 := a.keys[next-1], a.keys[next]
	p := float32((t - k1.Instant) / (k2.Instant - k1.Instant))

	pose := Key{
		Instant:     t,
		Translation: k1.Translation.Lerp(k2.Translation, p),
		Scale:       k1.Scale.Lerp(k2.Scale, p),
		Rotations:   make([]Rotation, len(k1.Rotations)),
	}
	for i, r := range k1.Rotations {
		pose.Rotations[i] = Rotation{Axis: r.Axis, Angle: math.Lerp(r.Angle, k2.Rotations[i].Angle, p)}
	}
	return pose
}

// Apply multiplies the current transform into sink once started.
func (a *KeyFrame) Apply(sink MatrixSink) {
	if !a.started {
		return
	}
	sink.MultMatrix(a.matrix)
}
