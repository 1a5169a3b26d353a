package checkers

import (
	"errors"
	"fmt"
)

// Move errors. With validation gating execution these indicate a caller
// bug rather than a user mistake.
var (
	ErrEmptyTile    = errors.New("no piece on source tile")
	ErrWrongPlayer  = errors.New("piece belongs to the other player")
	ErrOccupied     = errors.New("destination tile is occupied")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotValidated = errors.New("move executed before validation")
)

var diagonals = [4][2]int{{1, -1}, {1, 1}, {-1, -1}, {-1, 1}}

// PossibleMoves returns the legal destinations for the piece at from.
//
// Men step one tile diagonally forward onto an empty tile, or jump forward
// over one adjacent opposing piece onto the empty tile behind it. Kings
// slide along all four diagonals; a ray may pass over one opposing piece,
// after which every empty tile is a capture landing, and ends at a piece of
// their own colour or at a second piece.
func (b *Board) PossibleMoves(from Pos) []Pos {
	p, ok := b.Piece(from)
	if !ok {
		return nil
	}
	if p.King {
		return b.kingMoves(from, p.Color)
	}
	return b.manMoves(from, p.Color)
}

func (b *Board) manMoves(from Pos, c Color) []Pos {
	var out []Pos
	dr := c.Forward()
	for _, dc := range [2]int{-1, 1} {
		step := from.add(dr, dc)
		if !step.Valid() {
			continue
		}
		other, occupied := b.Piece(step)
		if !occupied {
			out = append(out, step)
			continue
		}
		if other.Color == c {
			continue
		}
		land := step.add(dr, dc)
		if _, blocked := b.Piece(land); land.Valid() && !blocked {
			out = append(out, land)
		}
	}
	return out
}

func (b *Board) kingMoves(from Pos, c Color) []Pos {
	var out []Pos
	for _, d := range diagonals {
		jumped := false
		for cur := from.add(d[0], d[1]); cur.Valid(); cur = cur.add(d[0], d[1]) {
			other, occupied := b.Piece(cur)
			if !occupied {
				out = append(out, cur)
				continue
			}
			if other.Color == c || jumped {
				break
			}
			jumped = true
		}
	}
	return out
}

// CanMove reports whether from → to is among the possible moves.
func (b *Board) CanMove(from, to Pos) bool {
	for _, p := range b.PossibleMoves(from) {
		if p == to {
			return true
		}
	}
	return false
}

// Captures returns the opposing pieces strictly between from and to on
// their shared diagonal.
func (b *Board) Captures(from, to Pos) []Pos {
	p, ok := b.Piece(from)
	if !ok {
		return nil
	}
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 || abs(dr) != abs(dc) {
		return nil
	}
	sr, sc := dr/abs(dr), dc/abs(dc)

	var out []Pos
	for cur := from.add(sr, sc); cur != to; cur = cur.add(sr, sc) {
		if other, ok := b.Piece(cur); ok && other.Color != p.Color {
			out = append(out, cur)
		}
	}
	return out
}

// CanCapture reports whether the piece at from has a capturing move.
func (b *Board) CanCapture(from Pos) bool {
	for _, to := range b.PossibleMoves(from) {
		if len(b.Captures(from, to)) > 0 {
			return true
		}
	}
	return false
}

// HasMoves reports whether colour c has any legal move.
func (b *Board) HasMoves(c Color) bool {
	for _, t := range b.tiles {
		if t.occupied && t.piece.Color == c && len(b.PossibleMoves(t.Pos)) > 0 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GameMove is one move by one player against a specific board.
type GameMove struct {
	Piece  Piece
	From   Pos
	To     Pos
	Player Player
	// Board is the position the move was validated against. It is never
	// modified.
	Board *Board

	// Set by Execute.
	Captured []Pos
	Promoted bool
	Result   *Board

	validated bool
}

// NewMove prepares a move. Call Validate before Execute.
func NewMove(b *Board, player Player, from, to Pos) *GameMove {
	return &GameMove{From: from, To: to, Player: player, Board: b}
}

// Validate checks the move against its board.
func (m *GameMove) Validate() error {
	p, ok := m.Board.Piece(m.From)
	if !ok {
		return fmt.Errorf("%s: %w", m.From, ErrEmptyTile)
	}
	if p.Color != m.Player.Color() {
		return fmt.Errorf("%s at %s: %w", p.Color, m.From, ErrWrongPlayer)
	}
	if _, occupied := m.Board.Piece(m.To); occupied {
		return fmt.Errorf("%s: %w", m.To, ErrOccupied)
	}
	if !m.Board.CanMove(m.From, m.To) {
		return fmt.Errorf("%s to %s: %w", m.From, m.To, ErrIllegalMove)
	}
	m.Piece = p
	m.validated = true
	return nil
}

// Validated reports whether Validate succeeded.
func (m *GameMove) Validated() bool { return m.validated }

// Execute applies the move to a clone of its board and returns the clone.
func (m *GameMove) Execute() (*Board, error) {
	if !m.validated {
		return nil, ErrNotValidated
	}
	next := m.Board.Clone()
	m.Captured = m.Board.Captures(m.From, m.To)
	for _, c := range m.Captured {
		next.Remove(c)
	}

	piece := m.Piece
	next.Remove(m.From)
	if t, _ := next.Tile(m.To); !piece.King && t.Promotes(piece.Color) {
		piece.King = true
		m.Promoted = true
	}
	next.Place(m.To, piece)

	m.Result = next
	return next, nil
}

// Capture reports whether the move took at least one piece.
func (m *GameMove) Capture() bool { return len(m.Captured) > 0 }

func (m *GameMove) String() string {
	sep := "-"
	if m.Capture() {
		sep = "x"
	}
	return fmt.Sprintf("%s %s%s%s", m.Player, m.From, sep, m.To)
}
