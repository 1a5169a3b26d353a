package checkers

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(row, col int) Pos { return Pos{Row: row, Col: col} }

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 12, b.Count(White))
	assert.Equal(t, 12, b.Count(Black))

	p, ok := b.Piece(at(0, 0))
	require.True(t, ok)
	assert.Equal(t, White, p.Color)
	_, ok = b.Piece(at(0, 1))
	assert.False(t, ok, "light tiles stay empty")
	p, _ = b.Piece(at(7, 7))
	assert.Equal(t, Black, p.Color)

	tile, _ := b.Tile(at(7, 1))
	assert.True(t, tile.Edge)
	assert.True(t, tile.Promotes(White))
	assert.False(t, tile.Promotes(Black))
}

func TestManMovesForwardOnly(t *testing.T) {
	b := EmptyBoard()
	b.Place(at(2, 2), Piece{Color: White})
	assert.ElementsMatch(t, []Pos{at(3, 1), at(3, 3)}, b.PossibleMoves(at(2, 2)))

	b = EmptyBoard()
	b.Place(at(5, 3), Piece{Color: Black})
	assert.ElementsMatch(t, []Pos{at(4, 2), at(4, 4)}, b.PossibleMoves(at(5, 3)))

	// Board edge.
	b = EmptyBoard()
	b.Place(at(2, 0), Piece{Color: White})
	assert.Equal(t, []Pos{at(3, 1)}, b.PossibleMoves(at(2, 0)))

	assert.Empty(t, b.PossibleMoves(at(4, 4)), "empty tile")
}

func TestManCapture(t *testing.T) {
	b := EmptyBoard()
	b.Place(at(2, 2), Piece{Color: White})
	b.Place(at(3, 3), Piece{Color: Black})
	assert.ElementsMatch(t, []Pos{at(3, 1), at(4, 4)}, b.PossibleMoves(at(2, 2)))

	m := NewMove(b, Player1, at(2, 2), at(4, 4))
	require.NoError(t, m.Validate())
	next, err := m.Execute()
	require.NoError(t, err)

	assert.Equal(t, []Pos{at(3, 3)}, m.Captured)
	assert.True(t, m.Capture())
	assert.Equal(t, 0, next.Count(Black))
	_, ok := next.Piece(at(4, 4))
	assert.True(t, ok)

	// Blocked landing and own pieces are not jumped.
	b.Place(at(4, 4), Piece{Color: Black})
	b.Place(at(3, 1), Piece{Color: White})
	assert.Empty(t, b.PossibleMoves(at(2, 2)))
}

func TestKingRays(t *testing.T) {
	b := EmptyBoard()
	b.Place(at(3, 3), Piece{Color: White, King: true})
	b.Place(at(1, 1), Piece{Color: White})             // own piece stops the ray at once
	b.Place(at(5, 5), Piece{Color: Black})             // jumped
	b.Place(at(6, 6), Piece{Color: Black})             // second piece ends the ray
	b.Place(at(5, 1), Piece{Color: Black})             // jumped, landing beyond
	b.Place(at(1, 5), Piece{Color: Black, King: true}) // jumped, landing beyond

	moves := b.PossibleMoves(at(3, 3))
	assert.ElementsMatch(t, []Pos{
		at(2, 2),
		at(4, 4),
		at(4, 2), at(6, 0),
		at(2, 4), at(0, 6),
	}, moves)
	assert.NotContains(t, moves, at(7, 7))

	assert.Equal(t, []Pos{at(5, 1)}, b.Captures(at(3, 3), at(6, 0)))
	assert.Empty(t, b.Captures(at(3, 3), at(4, 4)))
	assert.True(t, b.CanCapture(at(3, 3)))
}

func TestKingSecondOpponentWithoutLanding(t *testing.T) {
	b := EmptyBoard()
	b.Place(at(0, 0), Piece{Color: White, King: true})
	b.Place(at(1, 1), Piece{Color: Black})
	b.Place(at(2, 2), Piece{Color: Black})

	assert.Empty(t, b.PossibleMoves(at(0, 0)))
}

func TestPromotion(t *testing.T) {
	b := EmptyBoard()
	b.Place(at(6, 0), Piece{Color: White})

	m := NewMove(b, Player1, at(6, 0), at(7, 1))
	require.NoError(t, m.Validate())
	next, err := m.Execute()
	require.NoError(t, err)

	p, _ := next.Piece(at(7, 1))
	assert.True(t, p.King)
	assert.True(t, m.Promoted)
	kingMoves := next.PossibleMoves(at(7, 1))
	assert.Contains(t, kingMoves, at(6, 0))
	assert.Contains(t, kingMoves, at(1, 7))
}

func TestExecuteIsNonDestructive(t *testing.T) {
	b := NewBoard()
	before := b.String()

	m := NewMove(b, Player1, at(2, 2), at(3, 3))
	require.NoError(t, m.Validate())
	next, err := m.Execute()
	require.NoError(t, err)

	assert.Equal(t, before, b.String())
	assert.Same(t, b, m.Board)
	assert.NotSame(t, b, next)
	_, ok := next.Piece(at(3, 3))
	assert.True(t, ok)
	_, ok = b.Piece(at(3, 3))
	assert.False(t, ok)
}

func TestValidateErrors(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		name     string
		player   Player
		from, to Pos
		want     error
	}{
		{"empty source", Player1, at(3, 3), at(4, 4), ErrEmptyTile},
		{"other player's piece", Player1, at(5, 1), at(4, 0), ErrWrongPlayer},
		{"occupied destination", Player1, at(1, 1), at(2, 2), ErrOccupied},
		{"not diagonal", Player1, at(2, 2), at(3, 2), ErrIllegalMove},
		{"too far", Player1, at(2, 2), at(4, 4), ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMove(b, tt.player, tt.from, tt.to)
			assert.ErrorIs(t, m.Validate(), tt.want)
			assert.False(t, m.Validated())
		})
	}
}

func TestExecuteRequiresValidation(t *testing.T) {
	m := NewMove(NewBoard(), Player1, at(2, 2), at(3, 3))
	_, err := m.Execute()
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestHasMoves(t *testing.T) {
	b := EmptyBoard()
	assert.False(t, b.HasMoves(White))

	b.Place(at(7, 1), Piece{Color: White})
	assert.False(t, b.HasMoves(White), "a man on the far row is stuck")
	assert.True(t, NewBoard().HasMoves(Black))
}

func TestSequenceUndo(t *testing.T) {
	seq := NewSequence(NewBoard())
	start := seq.Current()

	m1, err := seq.Play(Player1, at(2, 2), at(3, 3))
	require.NoError(t, err)
	_, err = seq.Play(Player2, at(5, 5), at(4, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Len())

	last, ok := seq.Pop()
	require.True(t, ok)
	assert.Equal(t, Player2, last.Player)
	assert.Same(t, m1.Result, seq.Current())
	assert.Same(t, m1.Result, last.Board, "undo restores the board the move was validated against")

	seq.Pop()
	assert.Same(t, start, seq.Current())
	_, ok = seq.Pop()
	assert.False(t, ok)

	assert.ErrorIs(t, seq.Append(NewMove(start, Player1, at(2, 2), at(3, 3))), ErrNotExecuted)
}

func TestSequenceReplay(t *testing.T) {
	seq := NewSequence(NewBoard())
	_, err := seq.Play(Player1, at(2, 2), at(3, 3))
	require.NoError(t, err)
	_, err = seq.Play(Player2, at(5, 5), at(4, 4))
	require.NoError(t, err)
	_, err = seq.Play(Player1, at(3, 3), at(5, 5))
	require.NoError(t, err)

	replayed, err := seq.Replay()
	require.NoError(t, err)
	require.Len(t, replayed, 3)
	assert.Equal(t, []Pos{at(4, 4)}, replayed[2].Captured)
	assert.Equal(t, seq.Current().String(), replayed[2].Result.String())
}

func TestRecordRoundTrip(t *testing.T) {
	seq := NewSequence(NewBoard())
	_, err := seq.Play(Player1, at(2, 2), at(3, 3))
	require.NoError(t, err)
	_, err = seq.Play(Player2, at(5, 5), at(4, 4))
	require.NoError(t, err)

	winner := Player1
	rec := NewRecord(seq, &winner)
	_, err = uuid.Parse(rec.MatchID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec.MatchID, loaded.MatchID)
	assert.Equal(t, "player1", loaded.Winner)
	assert.Equal(t, rec.Moves, loaded.Moves)

	rebuilt, err := loaded.Sequence()
	require.NoError(t, err)
	assert.Equal(t, seq.Current().String(), rebuilt.Current().String())
}

func TestRecordRejectsIllegalMoves(t *testing.T) {
	rec := Record{MatchID: uuid.NewString(), Moves: []MoveRecord{
		{Player: "player1", From: at(2, 2).Index(), To: at(4, 4).Index()},
	}}
	_, err := rec.Sequence()
	assert.ErrorIs(t, err, ErrIllegalMove)

	rec.Moves[0].Player = "referee"
	_, err = rec.Sequence()
	assert.Error(t, err)
}
