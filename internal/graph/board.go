package graph

import "github.com/Faultbox/checkers3d/pkg/math"

// Action is what a board UI button does when clicked.
type Action string

const (
	ActionPlay    Action = "play"
	ActionHome    Action = "home"
	ActionRematch Action = "rematch"
	ActionReplay  Action = "replay"
	ActionUndo    Action = "undo"
)

// Actions lists every known button action.
var Actions = []Action{ActionPlay, ActionHome, ActionRematch, ActionReplay, ActionUndo}

// ValidAction reports whether a is a known action.
func ValidAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// TileMaterials are the materials used to draw board tiles.
type TileMaterials struct {
	White    string
	Black    string
	Selected string
	Possible string
}

// Button is a clickable component placed by the game layer.
type Button struct {
	Action    Action
	Component string
	Position  math.Vec3
}

// BoardLayout describes how the checkers board is drawn on top of the scene.
type BoardLayout struct {
	Position math.Vec3
	TileSize float32

	// Template components.
	Tile       string
	WhitePiece string
	BlackPiece string
	King       string

	Materials TileMaterials

	// PlayerViews are the view IDs for player 1 and 2. Either may be empty.
	PlayerViews [2]string

	Buttons []Button
}

// TileCenter returns the world position of the center of tile (row, col).
// Rows run along +Z and columns along +X from Position.
func (b *BoardLayout) TileCenter(row, col int) math.Vec3 {
	return math.Vec3{
		X: b.Position.X + (float32(col)+0.5)*b.TileSize,
		Y: b.Position.Y,
		Z: b.Position.Z + (float32(row)+0.5)*b.TileSize,
	}
}

// Button returns the button bound to action.
func (b *BoardLayout) Button(a Action) (Button, bool) {
	for _, btn := range b.Buttons {
		if btn.Action == a {
			return btn, true
		}
	}
	return Button{}, false
}

// Templates returns every component the board references.
func (b *BoardLayout) Templates() []string {
	ids := []string{b.Tile, b.WhitePiece, b.BlackPiece}
	if b.King != "" {
		ids = append(ids, b.King)
	}
	for _, btn := range b.Buttons {
		ids = append(ids, btn.Component)
	}
	return ids
}
