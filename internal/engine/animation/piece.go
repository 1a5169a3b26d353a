package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/checkers3d/pkg/math"
)

// Move carries a piece from one board position to another along an arc.
type Move struct {
	clock
	from, to math.Vec3
	height   float32
	duration float64
	pos      math.Vec3
	done     bool
}

// NewMove creates a piece move. height is the apex of the arc above the
// straight line between from and to.
func NewMove(from, to math.Vec3, height float32, duration float64) *Move {
	return &Move{from: from, to: to, height: height, duration: duration, pos: from}
}

func (*Move) sealed() {}

// Update advances the move.
func (a *Move) Update(t float64) {
	a.tick(t)
	p := progress(t, a.start, a.duration)
	a.pos = arc(a.from, a.to, a.height, p)
	a.done = p >= 1
}

// Started reports whether Update has been called.
func (a *Move) Started() bool { return a.started }

// Done reports whether the piece has landed.
func (a *Move) Done() bool { return a.done }

// Position returns the current piece position.
func (a *Move) Position() math.Vec3 { return a.pos }

// Matrix returns the translation to the current position.
func (a *Move) Matrix() math.Mat4 {
	return math.Translate(a.pos.X, a.pos.Y, a.pos.Z)
}

// Bounce knocks a captured piece off the board: after delay seconds it hops
// to a resting point beside the board while shrinking away.
type Bounce struct {
	clock
	from, to math.Vec3
	height   float32
	delay    float64
	duration float64
	pos      math.Vec3
	scale    float32
	done     bool
}

// NewBounce creates a capture animation.
func NewBounce(from, to math.Vec3, height float32, delay, duration float64) *Bounce {
	return &Bounce{from: from, to: to, height: height, delay: delay, duration: duration, pos: from, scale: 1}
}

func (*Bounce) sealed() {}

// Update advances the bounce.
func (a *Bounce) Update(t float64) {
	a.tick(t)
	p := progress(t, a.start+a.delay, a.duration)
	// Two hops: a high one to the halfway point and a lower one to the end.
	if p < 0.5 {
		mid := a.from.Lerp(a.to, 0.5)
		a.pos = arc(a.from, mid, a.height, p*2)
	} else {
		mid := a.from.Lerp(a.to, 0.5)
		a.pos = arc(mid, a.to, a.height/2, (p-0.5)*2)
	}
	a.scale = 1 - p
	a.done = p >= 1
}

// Started reports whether Update has been called.
func (a *Bounce) Started() bool { return a.started }

// Done reports whether the piece has left the board.
func (a *Bounce) Done() bool { return a.done }

// Matrix returns the translation and shrink for the current frame.
func (a *Bounce) Matrix() math.Mat4 {
	return math.Translate(a.pos.X, a.pos.Y, a.pos.Z).Mul(math.Scale(a.scale, a.scale, a.scale))
}

// Visible reports whether the piece still has a size worth drawing.
func (a *Bounce) Visible() bool { return a.scale > 0 }

func arc(from, to math.Vec3, height float32, p float32) math.Vec3 {
	pos := from.Lerp(to, p)
	pos.Y += height * math32.Sin(p*math32.Pi)
	return pos
}
