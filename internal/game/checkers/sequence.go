package checkers

import (
	"errors"
	"fmt"
)

// ErrNotExecuted is returned when appending a move that has no result.
var ErrNotExecuted = errors.New("move has not been executed")

// Sequence is the ordered list of executed moves of one game.
type Sequence struct {
	initial *Board
	moves   []*GameMove
}

// NewSequence starts an empty sequence from the given position.
func NewSequence(initial *Board) *Sequence {
	return &Sequence{initial: initial}
}

// Initial returns the starting position.
func (s *Sequence) Initial() *Board { return s.initial }

// Append records an executed move.
func (s *Sequence) Append(m *GameMove) error {
	if m.Result == nil {
		return ErrNotExecuted
	}
	s.moves = append(s.moves, m)
	return nil
}

// Pop removes and returns the last move.
func (s *Sequence) Pop() (*GameMove, bool) {
	if len(s.moves) == 0 {
		return nil, false
	}
	m := s.moves[len(s.moves)-1]
	s.moves[len(s.moves)-1] = nil
	s.moves = s.moves[:len(s.moves)-1]
	return m, true
}

// Len returns the number of recorded moves.
func (s *Sequence) Len() int { return len(s.moves) }

// Moves returns the recorded moves in order.
func (s *Sequence) Moves() []*GameMove { return s.moves }

// Current returns the position after the last move.
func (s *Sequence) Current() *Board {
	if len(s.moves) == 0 {
		return s.initial
	}
	return s.moves[len(s.moves)-1].Result
}

// Replay re-validates and re-executes every move from the initial position
// and returns the fresh moves. It fails if the recording is inconsistent.
func (s *Sequence) Replay() ([]*GameMove, error) {
	board := s.initial
	out := make([]*GameMove, 0, len(s.moves))
	for i, rec := range s.moves {
		m := NewMove(board, rec.Player, rec.From, rec.To)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
		next, err := m.Execute()
		if err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
		out = append(out, m)
		board = next
	}
	return out, nil
}

// Play validates, executes and records a move on the current position.
func (s *Sequence) Play(player Player, from, to Pos) (*GameMove, error) {
	m := NewMove(s.Current(), player, from, to)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := m.Execute(); err != nil {
		return nil, err
	}
	return m, s.Append(m)
}
