// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Game     GameConfig     `yaml:"game"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig selects the scene file and how it is loaded.
type SceneConfig struct {
	File string `yaml:"file"`
	// ReservedLights are light slots kept free for the application.
	ReservedLights int `yaml:"reserved_lights"`
}

// GameConfig holds timing and bookkeeping for the checkers game.
type GameConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval"`
	MoveDuration   time.Duration `yaml:"move_duration"`
	BounceDuration time.Duration `yaml:"bounce_duration"`
	BounceDelay    time.Duration `yaml:"bounce_delay"`
	CameraDuration time.Duration `yaml:"camera_duration"`
	// ArcHeight is the apex of a moving piece, in tile sizes.
	ArcHeight float32 `yaml:"arc_height"`
	// RecordDir receives a replay record per finished game. Empty disables
	// recording.
	RecordDir string `yaml:"record_dir"`
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MasterVolume  float32 `yaml:"master_volume"`
	SFXVolume     float32 `yaml:"sfx_volume"`
	MoveSound     string  `yaml:"move_sound"`
	CaptureSound  string  `yaml:"capture_sound"`
	GameOverSound string  `yaml:"gameover_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "checkers3d",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			File:           "scenes/checkers.xml",
			ReservedLights: 1,
		},
		Game: GameConfig{
			UpdateInterval: 50 * time.Millisecond,
			MoveDuration:   800 * time.Millisecond,
			BounceDuration: time.Second,
			BounceDelay:    400 * time.Millisecond,
			CameraDuration: 1500 * time.Millisecond,
			ArcHeight:      1.5,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would break the game loop.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Scene.File == "" {
		errs = append(errs, errors.New("scene: no file"))
	}
	if c.Scene.ReservedLights < 0 {
		errs = append(errs, fmt.Errorf("scene: negative reserved_lights %d", c.Scene.ReservedLights))
	}
	if c.Game.UpdateInterval <= 0 {
		errs = append(errs, fmt.Errorf("game: update_interval must be positive, got %v", c.Game.UpdateInterval))
	}
	for name, d := range map[string]time.Duration{
		"move_duration":   c.Game.MoveDuration,
		"bounce_duration": c.Game.BounceDuration,
		"camera_duration": c.Game.CameraDuration,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("game: %s must be positive, got %v", name, d))
		}
	}
	if c.Game.BounceDelay < 0 {
		errs = append(errs, fmt.Errorf("game: negative bounce_delay %v", c.Game.BounceDelay))
	}
	for name, v := range map[string]float32{
		"master_volume": c.Audio.MasterVolume,
		"sfx_volume":    c.Audio.SFXVolume,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("audio: %s %v outside [0, 1]", name, v))
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}
