package checkers

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Record is a finished game stored on disk.
type Record struct {
	MatchID string         `yaml:"match_id"`
	Played  time.Time      `yaml:"played"`
	Winner  string         `yaml:"winner,omitempty"`
	Moves   []MoveRecord   `yaml:"moves"`
	Score   map[string]int `yaml:"score,omitempty"`
}

// MoveRecord stores a move as row-major tile indices.
type MoveRecord struct {
	Player string `yaml:"player"`
	From   int    `yaml:"from"`
	To     int    `yaml:"to"`
}

// NewRecord captures the moves of seq. winner may be nil for unfinished
// games.
func NewRecord(seq *Sequence, winner *Player) Record {
	r := Record{
		MatchID: uuid.NewString(),
		Played:  time.Now().UTC().Truncate(time.Second),
	}
	if winner != nil {
		r.Winner = winner.String()
	}
	for _, m := range seq.Moves() {
		r.Moves = append(r.Moves, MoveRecord{
			Player: m.Player.String(),
			From:   m.From.Index(),
			To:     m.To.Index(),
		})
	}
	return r
}

// Save writes the record as YAML.
func (r Record) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// LoadRecord reads a YAML record.
func LoadRecord(path string) (Record, error) {
	var r Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read record: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to parse record: %w", err)
	}
	if _, err := uuid.Parse(r.MatchID); err != nil {
		return r, fmt.Errorf("record match_id: %w", err)
	}
	return r, nil
}

// Sequence rebuilds the game from the standard starting position,
// validating every move.
func (r Record) Sequence() (*Sequence, error) {
	seq := NewSequence(NewBoard())
	for i, mr := range r.Moves {
		player, err := ParsePlayer(mr.Player)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		from, to := PosFromIndex(mr.From), PosFromIndex(mr.To)
		if !from.Valid() || !to.Valid() || mr.From < 0 || mr.To < 0 {
			return nil, fmt.Errorf("move %d: tile out of range: %w", i+1, ErrIllegalMove)
		}
		if _, err := seq.Play(player, from, to); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return seq, nil
}
