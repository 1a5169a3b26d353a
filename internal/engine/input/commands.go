package input

import "github.com/veandco/go-sdl2/sdl"

// Command is a keyboard action of the viewer.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandCycleMaterials
	CommandNextView
	CommandToggleHighlights
	CommandReload
	CommandScreenshot
)

var commandNames = map[Command]string{
	CommandNone:             "none",
	CommandQuit:             "quit",
	CommandCycleMaterials:   "cycle-materials",
	CommandNextView:         "next-view",
	CommandToggleHighlights: "toggle-highlights",
	CommandReload:           "reload",
	CommandScreenshot:       "screenshot",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// Bindings maps keys to commands.
type Bindings map[sdl.Scancode]Command

// DefaultBindings returns M, V, H, R, F12 and Escape.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE: CommandQuit,
		sdl.SCANCODE_M:      CommandCycleMaterials,
		sdl.SCANCODE_V:      CommandNextView,
		sdl.SCANCODE_H:      CommandToggleHighlights,
		sdl.SCANCODE_R:      CommandReload,
		sdl.SCANCODE_F12:    CommandScreenshot,
	}
}

// Command returns the command bound to a key-down event.
func (b Bindings) Command(e Event) Command {
	if e.Type != EventKeyDown {
		return CommandNone
	}
	return b[e.Key]
}
