// Package states implements the checkers game state machine.
package states

import (
	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// State is one phase of a match. The set of states is closed: Menu, Turn,
// Picked, MoveAnim, EndGame and Replay.
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called once when the state becomes current.
	Enter()

	// OnClick consumes a picked object and returns the next state, which
	// may be the receiver itself.
	OnClick(target Target) State

	// Update advances the state to time t, in seconds since the clock
	// started, and returns the next state.
	Update(t float64) State

	// Display draws what the state shows on the board.
	Display(v View)

	sealed()
}

// Target is something the player can click.
type Target interface {
	target()
}

// TileTarget is a board square.
type TileTarget struct {
	Pos checkers.Pos
}

// ButtonTarget is a UI control on the board.
type ButtonTarget struct {
	Action graph.Action
}

// SceneTarget is any other pickable scene component.
type SceneTarget struct {
	Component string
}

func (TileTarget) target()   {}
func (ButtonTarget) target() {}
func (SceneTarget) target()  {}

// BoardView describes one frame of the board.
type BoardView struct {
	Board *checkers.Board
	// Selected is the picked tile, if any.
	Selected *checkers.Pos
	// Possible are the legal destinations of the selected piece.
	Possible []checkers.Pos
	// Hidden tiles have their piece drawn elsewhere this frame.
	Hidden []checkers.Pos
	// Pickable tiles are registered for the pick pass.
	Pickable bool
}

// IsPossible reports whether pos is a highlighted destination.
func (v BoardView) IsPossible(pos checkers.Pos) bool {
	return containsPos(v.Possible, pos)
}

// IsHidden reports whether the piece on pos must be skipped.
func (v BoardView) IsHidden(pos checkers.Pos) bool {
	return containsPos(v.Hidden, pos)
}

// View draws game objects. The game loop implements it on top of the scene
// renderer.
type View interface {
	DrawBoard(b BoardView)
	DrawPiece(p checkers.Piece, m math.Mat4)
	DrawButtons(actions ...graph.Action)
}

func containsPos(list []checkers.Pos, pos checkers.Pos) bool {
	for _, p := range list {
		if p == pos {
			return true
		}
	}
	return false
}
