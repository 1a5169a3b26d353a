package renderer

import "github.com/Faultbox/checkers3d/pkg/math"

// Stack is a model matrix stack. The top starts as the identity.
type Stack struct {
	top   math.Mat4
	saved []math.Mat4
}

// NewStack creates a stack holding the identity.
func NewStack() *Stack {
	return &Stack{top: math.Identity(), saved: make([]math.Mat4, 0, 32)}
}

// Push saves the current top.
func (s *Stack) Push() {
	s.saved = append(s.saved, s.top)
}

// Pop restores the last saved matrix. Popping an empty stack resets to the
// identity.
func (s *Stack) Pop() {
	if len(s.saved) == 0 {
		s.top = math.Identity()
		return
	}
	s.top = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Mult post-multiplies the top by m, so m applies first to vertices.
func (s *Stack) Mult(m math.Mat4) {
	s.top = s.top.Mul(m)
}

// Top returns the current matrix.
func (s *Stack) Top() math.Mat4 { return s.top }

// Depth returns the number of saved matrices.
func (s *Stack) Depth() int { return len(s.saved) }

// Reset empties the stack.
func (s *Stack) Reset() {
	s.top = math.Identity()
	s.saved = s.saved[:0]
}
