package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600}, true},
		{"window moved", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED}, Event{}, false},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_M}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_M}, true},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_M}}, Event{}, false},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_M}}, Event{}, false},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2}, Event{Type: EventMouseWheel, WheelY: 2}, true},
		{"wheel flipped", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			Event{Type: EventMouseWheel, WheelY: -2}, true},
		{"button up", &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 3, Y: 4},
			Event{Type: EventMouseUp, MouseX: 3, MouseY: 4, Button: sdl.BUTTON_LEFT}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindings(t *testing.T) {
	b := DefaultBindings()
	assert.Equal(t, CommandReload, b.Command(Event{Type: EventKeyDown, Key: sdl.SCANCODE_R}))
	assert.Equal(t, CommandNone, b.Command(Event{Type: EventKeyDown, Key: sdl.SCANCODE_Q}))
	assert.Equal(t, CommandNone, b.Command(Event{Type: EventMouseDown, Key: sdl.SCANCODE_R}))
	assert.Equal(t, "toggle-highlights", CommandToggleHighlights.String())
}
