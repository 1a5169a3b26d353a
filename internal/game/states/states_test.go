package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/math"
)

type recordedEvents struct {
	turns   []checkers.Player
	moves   []*checkers.GameMove
	winners []checkers.Player
}

func (e *recordedEvents) TurnStarted(p checkers.Player)        { e.turns = append(e.turns, p) }
func (e *recordedEvents) Moved(m *checkers.GameMove)           { e.moves = append(e.moves, m) }
func (e *recordedEvents) GameOver(w checkers.Player, _ *Match) { e.winners = append(e.winners, w) }

type drawnPiece struct {
	piece checkers.Piece
	at    math.Mat4
}

type recordingView struct {
	boards  []BoardView
	pieces  []drawnPiece
	buttons []graph.Action
}

func (v *recordingView) DrawBoard(b BoardView) { v.boards = append(v.boards, b) }
func (v *recordingView) DrawPiece(p checkers.Piece, m math.Mat4) {
	v.pieces = append(v.pieces, drawnPiece{p, m})
}
func (v *recordingView) DrawButtons(a ...graph.Action) { v.buttons = append(v.buttons, a...) }

func pos(row, col int) checkers.Pos { return checkers.Pos{Row: row, Col: col} }

func tile(row, col int) TileTarget { return TileTarget{Pos: pos(row, col)} }

func button(a graph.Action) ButtonTarget { return ButtonTarget{Action: a} }

func newTestOrchestrator(t *testing.T) (*Orchestrator, *recordedEvents) {
	t.Helper()
	ev := &recordedEvents{}
	o := NewOrchestrator(NewMatch(nil, DefaultTiming(), ev))
	require.IsType(t, &Menu{}, o.Current())
	return o, ev
}

// startGame leaves the menu and installs board as the starting position.
func startGame(t *testing.T, o *Orchestrator, board *checkers.Board) {
	t.Helper()
	o.Click(button(graph.ActionPlay))
	require.IsType(t, &Turn{}, o.Current())
	if board != nil {
		o.Match().Board = board
		o.Match().Seq = checkers.NewSequence(board)
	}
}

// settle ticks in 100ms steps until the state is no longer animating.
func settle(t *testing.T, o *Orchestrator, from int64) int64 {
	t.Helper()
	ms := from
	for i := 0; i < 200; i++ {
		switch o.Current().(type) {
		case *MoveAnim, *Replay:
			ms += 100
			o.Tick(ms)
		default:
			return ms
		}
	}
	t.Fatalf("still animating in %s", o.Current().Name())
	return ms
}

func TestPlayMoveEndToEnd(t *testing.T) {
	o, ev := newTestOrchestrator(t)

	o.Click(button(graph.ActionPlay))
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())

	o.Click(tile(2, 2))
	picked, ok := o.Current().(*Picked)
	require.True(t, ok)
	assert.Equal(t, pos(2, 2), picked.Tile())
	assert.ElementsMatch(t, []checkers.Pos{pos(3, 1), pos(3, 3)}, picked.Possible())

	o.Click(tile(3, 3))
	anim, ok := o.Current().(*MoveAnim)
	require.True(t, ok)
	assert.Equal(t, pos(3, 3), anim.Move().To)
	assert.Equal(t, 1, o.Match().Seq.Len())

	o.Tick(1000)
	require.IsType(t, &MoveAnim{}, o.Current())
	o.Tick(1400)
	require.IsType(t, &MoveAnim{}, o.Current(), "piece still in the air")
	o.Tick(2000)

	turn, ok = o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player2, turn.Player())

	p, occupied := o.Match().Board.Piece(pos(3, 3))
	require.True(t, occupied)
	assert.Equal(t, checkers.White, p.Color)
	_, occupied = o.Match().Board.Piece(pos(2, 2))
	assert.False(t, occupied)

	assert.Equal(t, []checkers.Player{checkers.Player1, checkers.Player2}, ev.turns)
	assert.Len(t, ev.moves, 1)
}

func TestMenuIgnoresEverythingButPlay(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	menu := o.Current()

	for _, target := range []Target{
		tile(2, 2),
		button(graph.ActionUndo),
		button(graph.ActionRematch),
		SceneTarget{Component: "table"},
	} {
		o.Click(target)
		assert.Same(t, menu, o.Current())
	}
}

func TestTurnIgnoresNonTileClicks(t *testing.T) {
	o, ev := newTestOrchestrator(t)
	startGame(t, o, nil)
	turn := o.Current()

	o.Click(SceneTarget{Component: "table"})
	o.Click(button(graph.ActionHome))
	o.Click(nil)
	assert.Same(t, turn, o.Current())

	o.Click(button(graph.ActionUndo))
	assert.Same(t, turn, o.Current(), "nothing to undo")
	o.Click(button(graph.ActionReplay))
	assert.Same(t, turn, o.Current(), "nothing to replay")
	assert.Len(t, ev.turns, 1)
}

func TestPickedTransitions(t *testing.T) {
	o, ev := newTestOrchestrator(t)
	startGame(t, o, nil)

	o.Click(tile(2, 2))
	require.IsType(t, &Picked{}, o.Current())

	// Reselect.
	o.Click(tile(2, 4))
	picked := o.Current().(*Picked)
	assert.Equal(t, pos(2, 4), picked.Tile())

	// Same tile deselects without announcing a new turn.
	o.Click(tile(2, 4))
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())
	assert.Len(t, ev.turns, 1)

	// Non-tile click deselects.
	o.Click(tile(2, 0))
	o.Click(SceneTarget{Component: "table"})
	assert.IsType(t, &Turn{}, o.Current())

	// A tile that is not a destination reselects.
	o.Click(tile(2, 2))
	o.Click(tile(4, 4))
	picked = o.Current().(*Picked)
	assert.Equal(t, pos(4, 4), picked.Tile())
	assert.Empty(t, picked.Possible())
	assert.Zero(t, o.Match().Seq.Len())
}

func TestOpponentPieceOffersNoDestinations(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	startGame(t, o, nil)

	o.Click(tile(5, 1))
	picked := o.Current().(*Picked)
	assert.Empty(t, picked.Possible())

	o.Click(tile(4, 0))
	assert.IsType(t, &Picked{}, o.Current(), "cannot move the opponent's piece")
	assert.Zero(t, o.Match().Seq.Len())
}

func TestMoveAnimIgnoresClicks(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	startGame(t, o, nil)
	o.Click(tile(2, 2))
	o.Click(tile(3, 3))
	anim := o.Current()

	o.Click(tile(5, 5))
	o.Click(button(graph.ActionUndo))
	assert.Same(t, anim, o.Current())
}

func TestForcedCaptureKeepsTurn(t *testing.T) {
	board := checkers.EmptyBoard()
	board.Place(pos(2, 2), checkers.Piece{Color: checkers.White})
	board.Place(pos(0, 0), checkers.Piece{Color: checkers.White})
	board.Place(pos(3, 3), checkers.Piece{Color: checkers.Black})
	board.Place(pos(5, 5), checkers.Piece{Color: checkers.Black})

	o, ev := newTestOrchestrator(t)
	startGame(t, o, board)

	o.Click(tile(2, 2))
	o.Click(tile(4, 4))
	anim := o.Current().(*MoveAnim)
	assert.Equal(t, []checkers.Pos{pos(3, 3)}, anim.Move().Captured)

	ms := settle(t, o, 0)
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player(), "another capture is available")
	assert.Equal(t, []checkers.Player{checkers.Player1, checkers.Player1}, ev.turns)
	chain, ok := turn.Chain()
	require.True(t, ok)
	assert.Equal(t, pos(4, 4), chain)

	// Only the capturing piece may be picked.
	o.Click(tile(0, 0))
	assert.Same(t, turn, o.Current())

	o.Click(tile(4, 4))
	picked := o.Current().(*Picked)
	assert.Equal(t, []checkers.Pos{pos(6, 6)}, picked.Possible(), "plain steps are not offered")

	// Reselecting is ignored and deselecting keeps the chain.
	o.Click(tile(0, 0))
	assert.Same(t, picked, o.Current())
	o.Click(tile(4, 4))
	turn = o.Current().(*Turn)
	_, ok = turn.Chain()
	assert.True(t, ok)

	o.Click(tile(4, 4))
	o.Click(tile(6, 6))
	require.IsType(t, &MoveAnim{}, o.Current())
	settle(t, o, ms)
	assert.IsType(t, &EndGame{}, o.Current())
}

func TestLastCaptureEndsGame(t *testing.T) {
	board := checkers.EmptyBoard()
	board.Place(pos(2, 2), checkers.Piece{Color: checkers.White})
	board.Place(pos(3, 3), checkers.Piece{Color: checkers.Black})

	o, ev := newTestOrchestrator(t)
	startGame(t, o, board)

	o.Click(tile(2, 2))
	o.Click(tile(4, 4))
	settle(t, o, 0)

	end, ok := o.Current().(*EndGame)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, end.Winner())
	assert.Equal(t, 1, o.Match().Score(checkers.Player1))
	assert.Equal(t, 0, o.Match().Score(checkers.Player2))
	assert.Equal(t, []checkers.Player{checkers.Player1}, ev.winners)

	// Clicks other than home and rematch do not count the win again.
	o.Click(tile(4, 4))
	o.Click(button(graph.ActionPlay))
	assert.Same(t, end, o.Current())
	assert.Equal(t, 1, o.Match().Score(checkers.Player1))

	o.Click(button(graph.ActionRematch))
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())
	assert.Equal(t, 12, o.Match().Board.Count(checkers.Black), "fresh board")
	assert.Zero(t, o.Match().Seq.Len())
	assert.Equal(t, 1, o.Match().Score(checkers.Player1), "score survives a rematch")
}

func TestEndGameHome(t *testing.T) {
	m := NewMatch(nil, DefaultTiming(), nil)
	end := NewEndGame(m, checkers.Player2)
	end.Enter()
	assert.Equal(t, 1, m.Score(checkers.Player2))

	next := end.OnClick(button(graph.ActionHome))
	assert.IsType(t, &Menu{}, next)
}

func TestUndoRestoresBoard(t *testing.T) {
	o, ev := newTestOrchestrator(t)
	startGame(t, o, nil)
	initial := o.Match().Board

	o.Click(tile(2, 2))
	o.Click(tile(3, 3))
	settle(t, o, 0)
	require.IsType(t, &Turn{}, o.Current())
	require.NotSame(t, initial, o.Match().Board)

	o.Click(button(graph.ActionUndo))
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())
	assert.Same(t, initial, o.Match().Board)
	assert.Zero(t, o.Match().Seq.Len())
	assert.Equal(t, checkers.Player1, ev.turns[len(ev.turns)-1])
}

func TestUndoFromPicked(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	startGame(t, o, nil)
	o.Click(tile(2, 2))
	o.Click(tile(3, 3))
	settle(t, o, 0)

	o.Click(tile(5, 5))
	require.IsType(t, &Picked{}, o.Current())
	o.Click(button(graph.ActionUndo))

	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())
}

func TestReplayResumesTurn(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	startGame(t, o, nil)

	o.Click(tile(2, 2))
	o.Click(tile(3, 3))
	ms := settle(t, o, 0)
	o.Click(tile(5, 5))
	o.Click(tile(4, 4))
	ms = settle(t, o, ms)
	require.IsType(t, &Turn{}, o.Current())
	latest := o.Match().Board

	o.Click(button(graph.ActionReplay))
	replay, ok := o.Current().(*Replay)
	require.True(t, ok)
	assert.Len(t, replay.moves, 2)

	o.Click(tile(2, 4))
	assert.Same(t, replay, o.Current(), "clicks are ignored while replaying")

	ms += 100
	o.Tick(ms)
	view := &recordingView{}
	o.Display(view)
	require.Len(t, view.pieces, 1)
	assert.Equal(t, checkers.White, view.pieces[0].piece.Color)

	settle(t, o, ms)
	turn, ok := o.Current().(*Turn)
	require.True(t, ok)
	assert.Equal(t, checkers.Player1, turn.Player())
	assert.Same(t, latest, o.Match().Board)
	assert.Equal(t, 2, o.Match().Seq.Len())
}

func TestDisplay(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	view := &recordingView{}
	o.Display(view)
	assert.Equal(t, []graph.Action{graph.ActionPlay}, view.buttons)
	require.Len(t, view.boards, 1)
	assert.False(t, view.boards[0].Pickable)

	startGame(t, o, nil)
	o.Click(tile(2, 2))
	view = &recordingView{}
	o.Display(view)
	require.Len(t, view.boards, 1)
	b := view.boards[0]
	assert.True(t, b.Pickable)
	require.NotNil(t, b.Selected)
	assert.Equal(t, pos(2, 2), *b.Selected)
	assert.True(t, b.IsPossible(pos(3, 3)))
	assert.False(t, b.IsPossible(pos(3, 2)))
	assert.ElementsMatch(t, []graph.Action{graph.ActionUndo, graph.ActionReplay}, view.buttons)

	o.Click(tile(3, 3))
	o.Tick(0)
	view = &recordingView{}
	o.Display(view)
	require.Len(t, view.boards, 1)
	b = view.boards[0]
	assert.False(t, b.Pickable)
	assert.True(t, b.IsHidden(pos(3, 3)))
	require.Len(t, view.pieces, 1)
	from := o.Match().TileCenter(pos(2, 2))
	assert.InDelta(t, from.X, view.pieces[0].at[12], 1e-5, "piece starts on its source tile")
	assert.Empty(t, view.buttons)
}

func TestTileCenterUsesLayout(t *testing.T) {
	layout := &graph.BoardLayout{Position: math.Vec3{X: -4, Y: 1, Z: -4}, TileSize: 2}
	m := NewMatch(layout, DefaultTiming(), nil)

	c := m.TileCenter(pos(0, 0))
	assert.Equal(t, math.Vec3{X: -3, Y: 1, Z: -3}, c)
	assert.Equal(t, float32(2), m.tileSize())

	m = NewMatch(nil, DefaultTiming(), nil)
	assert.Equal(t, math.Vec3{X: 7.5, Z: 0.5}, m.TileCenter(pos(0, 7)))
}

func TestClockStartsAtFirstTick(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Tick(5000)
	assert.Zero(t, o.Now())
	o.Tick(5500)
	assert.InDelta(t, 0.5, o.Now(), 1e-9)

	o.Reset()
	assert.IsType(t, &Menu{}, o.Current())
	o.Tick(9000)
	assert.Zero(t, o.Now())
}
