package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
)

// EndGame shows the final position until the players go home or ask for a
// rematch.
type EndGame struct {
	m      *Match
	winner checkers.Player
}

// NewEndGame ends the match in favour of winner.
func NewEndGame(m *Match, winner checkers.Player) *EndGame {
	return &EndGame{m: m, winner: winner}
}

func (*EndGame) sealed()      {}
func (*EndGame) Name() string { return "endgame" }

// Winner returns the player who won.
func (s *EndGame) Winner() checkers.Player { return s.winner }

// Enter counts the win.
func (s *EndGame) Enter() {
	s.m.addWin(s.winner)
	s.m.log.Info("game over",
		zap.Stringer("winner", s.winner),
		zap.Int("moves", s.m.Seq.Len()),
		zap.Int("player1", s.m.Score(checkers.Player1)),
		zap.Int("player2", s.m.Score(checkers.Player2)))
	s.m.Events.GameOver(s.winner, s.m)
}

func (s *EndGame) OnClick(t Target) State {
	b, ok := t.(ButtonTarget)
	if !ok {
		return s
	}
	switch b.Action {
	case graph.ActionHome:
		return NewMenu(s.m)
	case graph.ActionRematch:
		s.m.NewGame()
		return NewTurn(s.m, checkers.Player1)
	}
	return s
}

func (s *EndGame) Update(float64) State { return s }

func (s *EndGame) Display(v View) {
	v.DrawBoard(BoardView{Board: s.m.Board})
	v.DrawButtons(graph.ActionHome, graph.ActionRematch)
}
