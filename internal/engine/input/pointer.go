package input

import "github.com/veandco/go-sdl2/sdl"

// DragThreshold is how far, in pixels, the left button must travel while
// held before a press counts as a drag instead of a click.
const DragThreshold = 4

// Pointer turns raw left-button events into clicks and drags.
type Pointer struct {
	pressed  bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

// Gesture is the outcome of feeding one event to a Pointer.
type Gesture struct {
	// Click is set when the button was released without dragging.
	Click bool
	X, Y  int
	// DX and DY are the drag motion since the previous event.
	DX, DY int
}

// Handle processes one event.
func (p *Pointer) Handle(e Event) Gesture {
	switch e.Type {
	case EventMouseDown:
		if e.Button != sdl.BUTTON_LEFT {
			return Gesture{}
		}
		p.pressed = true
		p.dragging = false
		p.startX, p.startY = e.MouseX, e.MouseY
		p.lastX, p.lastY = e.MouseX, e.MouseY

	case EventMouseMove:
		if !p.pressed {
			return Gesture{}
		}
		if !p.dragging && (abs(e.MouseX-p.startX) > DragThreshold || abs(e.MouseY-p.startY) > DragThreshold) {
			p.dragging = true
		}
		g := Gesture{X: e.MouseX, Y: e.MouseY}
		if p.dragging {
			g.DX, g.DY = e.MouseX-p.lastX, e.MouseY-p.lastY
		}
		p.lastX, p.lastY = e.MouseX, e.MouseY
		return g

	case EventMouseUp:
		if e.Button != sdl.BUTTON_LEFT || !p.pressed {
			return Gesture{}
		}
		p.pressed = false
		if !p.dragging {
			return Gesture{Click: true, X: e.MouseX, Y: e.MouseY}
		}
		p.dragging = false
	}
	return Gesture{}
}

// Dragging reports whether a drag is in progress.
func (p *Pointer) Dragging() bool { return p.dragging }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
