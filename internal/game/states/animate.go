package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/animation"
	"github.com/Faultbox/checkers3d/internal/game/checkers"
)

// moveAnimation flies a piece to its destination and knocks captured pieces
// off the board.
type moveAnimation struct {
	move     *checkers.GameMove
	piece    *animation.Move
	bounces  []*animation.Bounce
	captured []checkers.Piece
}

func newMoveAnimation(m *Match, mv *checkers.GameMove) *moveAnimation {
	size := m.tileSize()
	a := &moveAnimation{
		move:  mv,
		piece: animation.NewMove(m.TileCenter(mv.From), m.TileCenter(mv.To), m.Timing.Height*size, m.Timing.Move),
	}
	for _, pos := range mv.Captured {
		p, _ := mv.Board.Piece(pos)
		a.captured = append(a.captured, p)
		a.bounces = append(a.bounces, animation.NewBounce(
			m.TileCenter(pos), m.graveyard(p.Color, pos.Row),
			m.Timing.Height*size, m.Timing.BounceDelay, m.Timing.Bounce))
	}
	return a
}

func (a *moveAnimation) update(t float64) {
	a.piece.Update(t)
	for _, b := range a.bounces {
		b.Update(t)
	}
}

func (a *moveAnimation) done() bool {
	if !a.piece.Done() {
		return false
	}
	for _, b := range a.bounces {
		if !b.Done() {
			return false
		}
	}
	return true
}

// display draws the resulting board with the moved piece in flight. The
// piece keeps its pre-promotion look until it lands.
func (a *moveAnimation) display(v View) {
	v.DrawBoard(BoardView{Board: a.move.Result, Hidden: []checkers.Pos{a.move.To}})

	piece := a.move.Piece
	if a.piece.Done() {
		piece, _ = a.move.Result.Piece(a.move.To)
	}
	v.DrawPiece(piece, a.piece.Matrix())

	for i, b := range a.bounces {
		if b.Visible() {
			v.DrawPiece(a.captured[i], b.Matrix())
		}
	}
}

// MoveAnim animates a move that has already been played and then decides
// who plays next.
type MoveAnim struct {
	m    *Match
	anim *moveAnimation
}

// NewMoveAnim animates mv, which must be executed and recorded.
func NewMoveAnim(m *Match, mv *checkers.GameMove) *MoveAnim {
	return &MoveAnim{m: m, anim: newMoveAnimation(m, mv)}
}

func (*MoveAnim) sealed()      {}
func (*MoveAnim) Name() string { return "move" }

// Move returns the animated move.
func (s *MoveAnim) Move() *checkers.GameMove { return s.anim.move }

func (s *MoveAnim) Enter() {
	s.m.Events.Moved(s.anim.move)
}

// OnClick ignores clicks until the pieces have landed.
func (s *MoveAnim) OnClick(Target) State { return s }

func (s *MoveAnim) Update(t float64) State {
	s.anim.update(t)
	if !s.anim.done() {
		return s
	}
	return s.outcome()
}

func (s *MoveAnim) outcome() State {
	mv := s.anim.move
	board := mv.Result
	if !board.HasMoves(mv.Player.Other().Color()) {
		return NewEndGame(s.m, mv.Player)
	}
	if mv.Capture() && !mv.Promoted && board.CanCapture(mv.To) {
		return continueCapture(s.m, mv.Player, mv.To)
	}
	return NewTurn(s.m, mv.Player.Other())
}

func (s *MoveAnim) Display(v View) {
	s.anim.display(v)
}

// Replay plays back every recorded move from the initial board, then hands
// the turn back to the player who requested it.
type Replay struct {
	m      *Match
	player checkers.Player
	moves  []*checkers.GameMove
	next   int
	anim   *moveAnimation
}

// NewReplay prepares a replay of the match history.
func NewReplay(m *Match, player checkers.Player) *Replay {
	return &Replay{m: m, player: player}
}

func (*Replay) sealed()      {}
func (*Replay) Name() string { return "replay" }

func (s *Replay) Enter() {
	moves, err := s.m.Seq.Replay()
	if err != nil {
		s.m.log.Error("replay failed", zap.Error(err))
		return
	}
	s.moves = moves
	s.m.log.Debug("replay", zap.Int("moves", len(moves)))
}

// OnClick ignores clicks while replaying.
func (s *Replay) OnClick(Target) State { return s }

func (s *Replay) Update(t float64) State {
	if s.anim != nil {
		s.anim.update(t)
		if !s.anim.done() {
			return s
		}
	}
	if s.next >= len(s.moves) {
		return resumeTurn(s.m, s.player)
	}
	s.anim = newMoveAnimation(s.m, s.moves[s.next])
	s.next++
	s.anim.update(t)
	return s
}

func (s *Replay) Display(v View) {
	if s.anim == nil {
		v.DrawBoard(BoardView{Board: s.m.Seq.Initial()})
		return
	}
	s.anim.display(v)
}
