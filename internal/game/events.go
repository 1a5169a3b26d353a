package game

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/audio"
	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/game/states"
)

// player is the sound sink. *audio.Manager implements it.
type player interface {
	Play(e audio.Effect) error
}

// matchEvents reacts to game events: it flies the camera to the active
// player's view, plays sounds and writes replay records.
type matchEvents struct {
	camera *cameraRig
	// views are the per-player camera views; a zero View means none.
	views     [2]camera.View
	hasView   [2]bool
	sounds    player
	recordDir string
	log       *zap.Logger
}

var _ states.Events = (*matchEvents)(nil)

func (e *matchEvents) TurnStarted(p checkers.Player) {
	if e.camera != nil && e.hasView[p] {
		e.camera.FlyTo(e.views[p])
	}
}

func (e *matchEvents) Moved(m *checkers.GameMove) {
	effect := audio.EffectMove
	if m.Capture() {
		effect = audio.EffectCapture
	}
	e.play(effect)
}

func (e *matchEvents) GameOver(winner checkers.Player, m *states.Match) {
	e.play(audio.EffectGameOver)
	if e.recordDir == "" {
		return
	}
	path, err := saveRecord(e.recordDir, m.Seq, winner)
	if err != nil {
		e.log.Error("saving replay record", zap.Error(err))
		return
	}
	e.log.Info("replay record saved", zap.String("path", path))
}

func (e *matchEvents) play(effect audio.Effect) {
	if e.sounds == nil {
		return
	}
	if err := e.sounds.Play(effect); err != nil {
		e.log.Debug("sound effect", zap.String("effect", string(effect)), zap.Error(err))
	}
}

// saveRecord writes seq as <dir>/<match id>.yaml and returns the path.
func saveRecord(dir string, seq *checkers.Sequence, winner checkers.Player) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating record dir: %w", err)
	}
	rec := checkers.NewRecord(seq, &winner)
	path := filepath.Join(dir, rec.MatchID+".yaml")
	if err := rec.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
