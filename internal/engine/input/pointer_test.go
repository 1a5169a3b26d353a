package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func down(x, y int) Event { return Event{Type: EventMouseDown, MouseX: x, MouseY: y, Button: sdl.BUTTON_LEFT} }
func up(x, y int) Event   { return Event{Type: EventMouseUp, MouseX: x, MouseY: y, Button: sdl.BUTTON_LEFT} }
func move(x, y int) Event { return Event{Type: EventMouseMove, MouseX: x, MouseY: y} }

func TestPointerClick(t *testing.T) {
	var p Pointer
	assert.Equal(t, Gesture{}, p.Handle(down(100, 50)))
	g := p.Handle(move(102, 51))
	assert.Zero(t, g.DX, "jitter below the threshold is not a drag")
	assert.False(t, p.Dragging())

	g = p.Handle(up(102, 51))
	assert.True(t, g.Click)
	assert.Equal(t, 102, g.X)
	assert.Equal(t, 51, g.Y)
}

func TestPointerDrag(t *testing.T) {
	var p Pointer
	p.Handle(down(10, 10))

	g := p.Handle(move(30, 10))
	assert.True(t, p.Dragging())
	assert.Equal(t, 20, g.DX)

	g = p.Handle(move(35, 7))
	assert.Equal(t, 5, g.DX)
	assert.Equal(t, -3, g.DY)

	g = p.Handle(up(35, 7))
	assert.False(t, g.Click, "releasing a drag is not a click")
	assert.False(t, p.Dragging())
}

func TestPointerIgnoresOtherButtons(t *testing.T) {
	var p Pointer
	p.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT})
	assert.Equal(t, Gesture{}, p.Handle(move(50, 50)))
	assert.False(t, p.Handle(Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT}).Click)
	assert.False(t, p.Handle(up(0, 0)).Click, "no press was seen")
}
