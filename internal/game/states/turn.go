package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
)

// Menu waits for the Play button.
type Menu struct {
	m *Match
}

// NewMenu creates the menu state.
func NewMenu(m *Match) *Menu {
	return &Menu{m: m}
}

func (*Menu) sealed()      {}
func (*Menu) Name() string { return "menu" }

// Enter puts a fresh board on the table.
func (s *Menu) Enter() {
	s.m.NewGame()
}

// OnClick starts a game when Play is pressed.
func (s *Menu) OnClick(t Target) State {
	if b, ok := t.(ButtonTarget); ok && b.Action == graph.ActionPlay {
		return NewTurn(s.m, checkers.Player1)
	}
	return s
}

func (s *Menu) Update(float64) State { return s }

func (s *Menu) Display(v View) {
	v.DrawBoard(BoardView{Board: s.m.Board})
	v.DrawButtons(graph.ActionPlay)
}

// Turn waits for a player to pick a tile.
type Turn struct {
	m      *Match
	player checkers.Player
	// fresh is false when returning to the same turn after a deselect.
	fresh bool
	// chain is the piece that must keep capturing, if any.
	chain *checkers.Pos
}

// NewTurn starts player's turn.
func NewTurn(m *Match, player checkers.Player) *Turn {
	return &Turn{m: m, player: player, fresh: true}
}

func resumeTurn(m *Match, player checkers.Player) *Turn {
	return &Turn{m: m, player: player}
}

// continueCapture gives player another turn in which only the piece at pos
// may move, and only by capturing.
func continueCapture(m *Match, player checkers.Player, pos checkers.Pos) *Turn {
	return &Turn{m: m, player: player, fresh: true, chain: &pos}
}

func (*Turn) sealed()      {}
func (*Turn) Name() string { return "turn" }

// Player returns whose turn it is.
func (s *Turn) Player() checkers.Player { return s.player }

// Chain returns the piece that must continue capturing.
func (s *Turn) Chain() (checkers.Pos, bool) {
	if s.chain == nil {
		return checkers.Pos{}, false
	}
	return *s.chain, true
}

func (s *Turn) Enter() {
	if s.fresh {
		s.m.Events.TurnStarted(s.player)
	}
}

func (s *Turn) OnClick(t Target) State {
	switch t := t.(type) {
	case TileTarget:
		if s.chain == nil {
			return NewPicked(s.m, s.player, t.Pos)
		}
		if t.Pos == *s.chain {
			return pickChained(s.m, s.player, t.Pos)
		}
	case ButtonTarget:
		return historyAction(s.m, s.player, t.Action, s)
	}
	return s
}

func (s *Turn) Update(float64) State { return s }

func (s *Turn) Display(v View) {
	v.DrawBoard(BoardView{Board: s.m.Board, Selected: s.chain, Pickable: true})
	v.DrawButtons(graph.ActionUndo, graph.ActionReplay)
}

// Picked holds a selected tile and the legal destinations of its piece.
type Picked struct {
	m        *Match
	player   checkers.Player
	tile     checkers.Pos
	possible []checkers.Pos
	chained  bool
}

// NewPicked selects tile for player. Destinations are only offered for the
// player's own pieces.
func NewPicked(m *Match, player checkers.Player, tile checkers.Pos) *Picked {
	s := &Picked{m: m, player: player, tile: tile}
	if p, ok := m.Board.Piece(tile); ok && p.Color == player.Color() {
		s.possible = m.Board.PossibleMoves(tile)
	}
	return s
}

// pickChained selects the piece that is in the middle of a capture chain.
// Only capturing destinations are offered.
func pickChained(m *Match, player checkers.Player, tile checkers.Pos) *Picked {
	s := NewPicked(m, player, tile)
	s.chained = true
	var captures []checkers.Pos
	for _, to := range s.possible {
		if len(m.Board.Captures(tile, to)) > 0 {
			captures = append(captures, to)
		}
	}
	s.possible = captures
	return s
}

func (*Picked) sealed()      {}
func (*Picked) Name() string { return "picked" }

// Player returns whose turn it is.
func (s *Picked) Player() checkers.Player { return s.player }

// Tile returns the selected tile.
func (s *Picked) Tile() checkers.Pos { return s.tile }

// Possible returns the legal destinations of the selected piece.
func (s *Picked) Possible() []checkers.Pos { return s.possible }

func (s *Picked) Enter() {}

func (s *Picked) OnClick(t Target) State {
	switch t := t.(type) {
	case TileTarget:
		switch {
		case containsPos(s.possible, t.Pos):
			mv, err := s.m.Play(s.player, s.tile, t.Pos)
			if err != nil {
				// Destinations come from the same board, so this is a bug.
				s.m.log.Error("move rejected",
					zap.Stringer("from", s.tile),
					zap.Stringer("to", t.Pos),
					zap.Error(err))
				return s.back()
			}
			return NewMoveAnim(s.m, mv)
		case t.Pos == s.tile:
			return s.back()
		case s.chained:
			return s
		default:
			return NewPicked(s.m, s.player, t.Pos)
		}
	case ButtonTarget:
		if next := historyAction(s.m, s.player, t.Action, nil); next != nil {
			return next
		}
	}
	return s.back()
}

// back deselects the tile, keeping any capture chain.
func (s *Picked) back() *Turn {
	t := resumeTurn(s.m, s.player)
	if s.chained {
		tile := s.tile
		t.chain = &tile
	}
	return t
}

func (s *Picked) Update(float64) State { return s }

func (s *Picked) Display(v View) {
	tile := s.tile
	v.DrawBoard(BoardView{
		Board:    s.m.Board,
		Selected: &tile,
		Possible: s.possible,
		Pickable: true,
	})
	v.DrawButtons(graph.ActionUndo, graph.ActionReplay)
}

// historyAction handles the undo and replay buttons. It returns fallback for
// any other action or when there is nothing to undo or replay.
func historyAction(m *Match, player checkers.Player, a graph.Action, fallback State) State {
	switch a {
	case graph.ActionUndo:
		if mv, ok := m.Undo(); ok {
			m.log.Debug("undo", zap.Stringer("move", mv))
			return NewTurn(m, mv.Player)
		}
	case graph.ActionReplay:
		if m.Seq.Len() > 0 {
			return NewReplay(m, player)
		}
	}
	return fallback
}
