// Package audio plays the game's sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Effect names a sound effect.
type Effect string

// Game sound effects.
const (
	EffectMove     Effect = "move"
	EffectCapture  Effect = "capture"
	EffectGameOver Effect = "gameover"
)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager decodes sound effects once and mixes them on demand.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// mixer lets effects overlap
	mixer  *beep.Mixer
	sounds map[Effect]*beep.Buffer
	log    *zap.Logger
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
		sounds:       make(map[Effect]*beep.Buffer),
		log:          logger.Named("audio"),
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effect volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Load decodes WAV data for e, resampled to the playback rate.
func (m *Manager) Load(e Effect, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", e, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		format.SampleRate = m.sampleRate
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)

	m.mu.Lock()
	m.sounds[e] = buf
	m.mu.Unlock()
	return nil
}

// LoadFile reads a WAV file for e.
func (m *Manager) LoadFile(e Effect, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s sound: %w", e, err)
	}
	return m.Load(e, data)
}

// Loaded reports whether e has a sound and its length in samples.
func (m *Manager) Loaded(e Effect) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.sounds[e]
	if !ok {
		return 0, false
	}
	return buf.Len(), true
}

// Play starts e. Effects without a loaded sound are silently skipped.
func (m *Manager) Play(e Effect) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	buf, ok := m.sounds[e]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if !ok {
		m.log.Debug("no sound for effect", zap.String("effect", string(e)))
		return nil
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   gainExponent(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// gainExponent converts a 0-1 linear volume to the base-2 exponent
// effects.Volume expects: 1 is 0, 0.5 is -1.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
