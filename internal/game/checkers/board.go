// Package checkers implements the board model and move rules of the game.
//
// A Board is a value: executing a move clones it and edits the clone, so a
// board referenced by a recorded move never changes afterwards.
package checkers

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns.
const Size = 8

// Color is the colour of a piece or a tile.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Opponent returns the other colour.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row direction the colour's men move in.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// Player is a participant. Player1 plays white and moves first.
type Player int

const (
	Player1 Player = iota
	Player2
)

func (p Player) String() string {
	if p == Player2 {
		return "player2"
	}
	return "player1"
}

// ParsePlayer parses the String form.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "player1":
		return Player1, nil
	case "player2":
		return Player2, nil
	}
	return Player1, fmt.Errorf("unknown player %q", s)
}

// Color returns the colour the player moves.
func (p Player) Color() Color {
	if p == Player2 {
		return Black
	}
	return White
}

// Other returns the opponent.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Pos is a board coordinate.
type Pos struct {
	Row, Col int
}

// Valid reports whether the position is on the board.
func (p Pos) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Index returns the row-major tile index.
func (p Pos) Index() int { return p.Row*Size + p.Col }

// PosFromIndex is the inverse of Index.
func PosFromIndex(i int) Pos { return Pos{Row: i / Size, Col: i % Size} }

func (p Pos) add(dr, dc int) Pos { return Pos{Row: p.Row + dr, Col: p.Col + dc} }

func (p Pos) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// Piece is a checker.
type Piece struct {
	Color Color
	King  bool
}

// Tile is one square of the board.
type Tile struct {
	Pos   Pos
	Color Color
	// Edge is set on the last row of each side; a piece of the opposite
	// colour reaching it is crowned.
	Edge bool

	piece    Piece
	occupied bool
}

// Piece returns the piece on the tile, if any.
func (t Tile) Piece() (Piece, bool) { return t.piece, t.occupied }

// Occupied reports whether a piece stands on the tile.
func (t Tile) Occupied() bool { return t.occupied }

// Promotes reports whether a piece of colour c is crowned on this tile.
func (t Tile) Promotes(c Color) bool {
	if !t.Edge {
		return false
	}
	if c == White {
		return t.Pos.Row == Size-1
	}
	return t.Pos.Row == 0
}

// Board is the 8x8 grid in row-major order.
type Board struct {
	tiles [Size * Size]Tile
}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() *Board {
	b := &Board{}
	for i := range b.tiles {
		pos := PosFromIndex(i)
		c := White
		if (pos.Row+pos.Col)%2 == 0 {
			c = Black
		}
		b.tiles[i] = Tile{Pos: pos, Color: c, Edge: pos.Row == 0 || pos.Row == Size-1}
	}
	return b
}

// NewBoard returns the starting position: twelve white men on the dark
// tiles of rows 0-2 and twelve black men on rows 5-7.
func NewBoard() *Board {
	b := EmptyBoard()
	for i := range b.tiles {
		t := &b.tiles[i]
		if t.Color != Black {
			continue
		}
		switch {
		case t.Pos.Row < 3:
			t.piece, t.occupied = Piece{Color: White}, true
		case t.Pos.Row >= Size-3:
			t.piece, t.occupied = Piece{Color: Black}, true
		}
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Tile returns the tile at pos.
func (b *Board) Tile(pos Pos) (Tile, bool) {
	if !pos.Valid() {
		return Tile{}, false
	}
	return b.tiles[pos.Index()], true
}

// Tiles returns every tile in row-major order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles[:])
	return out
}

// Piece returns the piece at pos.
func (b *Board) Piece(pos Pos) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	return b.tiles[pos.Index()].Piece()
}

// Place puts a piece on pos, replacing any piece there. It is meant for
// setting up positions; moves go through GameMove.
func (b *Board) Place(pos Pos, p Piece) {
	if !pos.Valid() {
		return
	}
	t := &b.tiles[pos.Index()]
	t.piece, t.occupied = p, true
}

// Remove clears pos.
func (b *Board) Remove(pos Pos) {
	if !pos.Valid() {
		return
	}
	t := &b.tiles[pos.Index()]
	t.piece, t.occupied = Piece{}, false
}

// Count returns how many pieces of colour c are on the board.
func (b *Board) Count(c Color) int {
	n := 0
	for _, t := range b.tiles {
		if t.occupied && t.piece.Color == c {
			n++
		}
	}
	return n
}

// String draws the board with row 7 at the top. w/b are men, W/B kings.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Size; col++ {
			p, ok := b.Piece(Pos{row, col})
			switch {
			case !ok:
				sb.WriteByte('.')
			case p.Color == White && p.King:
				sb.WriteByte('W')
			case p.Color == White:
				sb.WriteByte('w')
			case p.King:
				sb.WriteByte('B')
			default:
				sb.WriteByte('b')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
