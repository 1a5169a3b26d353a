package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/checkers3d/pkg/math"
)

func zyx(z, y, x float32) []Rotation {
	return []Rotation{{math.AxisZ, z}, {math.AxisY, y}, {math.AxisX, x}}
}

func key(instant float64, tx float32) Key {
	return Key{
		Instant:     instant,
		Translation: math.Vec3{X: tx},
		Rotations:   zyx(0, 0, 0),
		Scale:       math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

type recordingSink struct {
	calls []math.Mat4
}

func (s *recordingSink) MultMatrix(m math.Mat4) { s.calls = append(s.calls, m) }

func TestKeyFrameBeforeFirstInstant(t *testing.T) {
	a, err := NewKeyFrame("a", []Key{key(2, 0), key(4, 10)})
	require.NoError(t, err)

	a.Update(1)
	assert.False(t, a.Started())
	assert.Equal(t, math.Identity(), a.Matrix())

	sink := &recordingSink{}
	a.Apply(sink)
	assert.Empty(t, sink.calls, "apply must be a no-op before start")
}

func TestKeyFrameMidpoint(t *testing.T) {
	a, err := NewKeyFrame("a", []Key{key(0, 0), key(10, 10)})
	require.NoError(t, err)

	a.Update(5)
	require.True(t, a.Started())
	m := a.Matrix()
	assert.InDelta(t, 5, m[12], 1e-6)
	assert.InDelta(t, 0, m[13], 1e-6)
	assert.InDelta(t, 0, m[14], 1e-6)
}

func TestKeyFrameClampsAfterLast(t *testing.T) {
	last := Key{
		Instant:     3,
		Translation: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotations:   zyx(0.5, 0.25, 0.1),
		Scale:       math.Vec3{X: 2, Y: 2, Z: 2},
	}
	a, err := NewKeyFrame("a", []Key{key(0, 0), key(1, 4), last})
	require.NoError(t, err)

	for _, tt := range []float64{3, 7, 100} {
		a.Update(tt)
		assert.True(t, a.Matrix().ApproxEqual(last.Matrix(), 1e-6), "t=%v should clamp to the last pose", tt)
		assert.True(t, a.Done())
	}
}

func TestKeyFrameBinarySearchBrackets(t *testing.T) {
	a, err := NewKeyFrame("a", []Key{key(0, 0), key(1, 10), key(2, 30), key(4, 30), key(5, 50)})
	require.NoError(t, err)

	tests := []struct {
		t    float64
		want float32
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.5, 20},
		{3, 30},
		{4.5, 40},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, a.Pose(tt.t).Translation.X, 1e-5, "t=%v", tt.t)
	}
}

func TestKeyFrameRotationChannels(t *testing.T) {
	k1 := key(0, 0)
	k2 := key(2, 0)
	k2.Rotations = zyx(2, 4, 6)
	a, err := NewKeyFrame("a", []Key{k1, k2})
	require.NoError(t, err)

	pose := a.Pose(1)
	require.Len(t, pose.Rotations, 3)
	assert.Equal(t, math.AxisZ, pose.Rotations[0].Axis)
	assert.InDelta(t, 1, pose.Rotations[0].Angle, 1e-6)
	assert.InDelta(t, 2, pose.Rotations[1].Angle, 1e-6)
	assert.InDelta(t, 3, pose.Rotations[2].Angle, 1e-6)
}

func TestKeyMatrixOrder(t *testing.T) {
	k := Key{
		Translation: math.Vec3{X: 1},
		Rotations:   zyx(0.3, 0.2, 0.1),
		Scale:       math.Vec3{X: 2, Y: 2, Z: 2},
	}
	want := math.Translate(1, 0, 0).
		Mul(math.Scale(2, 2, 2)).
		Mul(math.RotateZ(0.3)).
		Mul(math.RotateY(0.2)).
		Mul(math.RotateX(0.1))
	assert.Equal(t, want, k.Matrix())
}

func TestNewKeyFrameValidation(t *testing.T) {
	_, err := NewKeyFrame("empty", nil)
	assert.Error(t, err)

	_, err = NewKeyFrame("neg", []Key{key(-1, 0)})
	assert.Error(t, err)

	_, err = NewKeyFrame("order", []Key{key(1, 0), key(1, 0)})
	assert.Error(t, err)

	bad := key(2, 0)
	bad.Rotations = []Rotation{{math.AxisX, 0}}
	_, err = NewKeyFrame("axes", []Key{key(1, 0), bad})
	assert.Error(t, err)
}

func TestKeyFrameApply(t *testing.T) {
	a, err := NewKeyFrame("a", []Key{key(1, 0), key(10, 10)})
	require.NoError(t, err)

	sink := &recordingSink{}
	a.Update(0.5)
	a.Apply(sink)
	assert.Empty(t, sink.calls, "nothing before the first key")
	assert.False(t, a.Started())
	assert.Equal(t, math.Identity(), a.Matrix())

	a.Update(2)
	a.Apply(sink)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, 2.0, a.StartTime())
}
