package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/checkers3d/pkg/math"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack()
	assert.Equal(t, math.Identity(), s.Top())

	s.Push()
	s.Mult(math.Translate(1, 0, 0))
	s.Push()
	s.Mult(math.Scale(2, 2, 2))
	assert.Equal(t, 2, s.Depth())

	p := s.Top().TransformPoint([3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{3, 2, 2}, p, "scale applies before the parent translation")

	s.Pop()
	assert.Equal(t, math.Translate(1, 0, 0), s.Top())
	s.Pop()
	assert.Equal(t, math.Identity(), s.Top())
	assert.Zero(t, s.Depth())
}

func TestStackUnderflowAndReset(t *testing.T) {
	s := NewStack()
	s.Mult(math.Translate(0, 5, 0))
	s.Pop()
	assert.Equal(t, math.Identity(), s.Top())

	s.Push()
	s.Push()
	s.Mult(math.Translate(1, 2, 3))
	s.Reset()
	assert.Equal(t, math.Identity(), s.Top())
	assert.Zero(t, s.Depth())
}
