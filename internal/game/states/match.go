package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/internal/logger"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// Timing holds animation durations in seconds.
type Timing struct {
	Move        float64
	Bounce      float64
	BounceDelay float64
	// Height is the apex of a moving piece's arc, in tile sizes.
	Height float32
}

// DefaultTiming returns the durations used when nothing is configured.
func DefaultTiming() Timing {
	return Timing{Move: 0.8, Bounce: 1.0, BounceDelay: 0.4, Height: 1.5}
}

// Events receives notifications the game loop turns into camera moves,
// sounds and saved records.
type Events interface {
	TurnStarted(p checkers.Player)
	Moved(m *checkers.GameMove)
	GameOver(winner checkers.Player, m *Match)
}

// NopEvents ignores every notification.
type NopEvents struct{}

func (NopEvents) TurnStarted(checkers.Player)      {}
func (NopEvents) Moved(*checkers.GameMove)         {}
func (NopEvents) GameOver(checkers.Player, *Match) {}

// Match is the data shared by all states: the current board, the move
// history and the scoreboard.
type Match struct {
	Board  *checkers.Board
	Seq    *checkers.Sequence
	Layout *graph.BoardLayout
	Timing Timing
	Events Events

	score [2]int
	log   *zap.Logger
}

// NewMatch creates a match on a fresh board. layout may be nil, in which
// case tiles are one unit wide starting at the origin.
func NewMatch(layout *graph.BoardLayout, timing Timing, events Events) *Match {
	if events == nil {
		events = NopEvents{}
	}
	m := &Match{
		Layout: layout,
		Timing: timing,
		Events: events,
		log:    logger.Named("game"),
	}
	m.NewGame()
	return m
}

// NewGame resets the board and the move history. The score is kept.
func (m *Match) NewGame() {
	m.Board = checkers.NewBoard()
	m.Seq = checkers.NewSequence(m.Board)
}

// Score returns the number of games won by p.
func (m *Match) Score(p checkers.Player) int {
	return m.score[p]
}

func (m *Match) addWin(p checkers.Player) {
	m.score[p]++
}

// Play validates, executes and records a move and replaces the board.
func (m *Match) Play(player checkers.Player, from, to checkers.Pos) (*checkers.GameMove, error) {
	mv, err := m.Seq.Play(player, from, to)
	if err != nil {
		return nil, err
	}
	m.Board = mv.Result
	return mv, nil
}

// Undo drops the last move and restores the board it was played on.
func (m *Match) Undo() (*checkers.GameMove, bool) {
	mv, ok := m.Seq.Pop()
	if !ok {
		return nil, false
	}
	m.Board = mv.Board
	return mv, true
}

// TileCenter returns the world position of a tile's centre.
func (m *Match) TileCenter(pos checkers.Pos) math.Vec3 {
	if m.Layout == nil {
		return math.Vec3{X: float32(pos.Col) + 0.5, Z: float32(pos.Row) + 0.5}
	}
	return m.Layout.TileCenter(pos.Row, pos.Col)
}

func (m *Match) tileSize() float32 {
	if m.Layout == nil || m.Layout.TileSize <= 0 {
		return 1
	}
	return m.Layout.TileSize
}

// graveyard returns where a captured piece of colour c comes to rest: beside
// the board, on the side of its own player.
func (m *Match) graveyard(c checkers.Color, row int) math.Vec3 {
	col := -1
	if c == checkers.Black {
		col = checkers.Size
	}
	return m.TileCenter(checkers.Pos{Row: row, Col: col})
}
