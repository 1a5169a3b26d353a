package config

import (
	"flag"
	"io"
)

// Flags are the command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config     string
	Debug      bool
	Scene      string
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	RecordDir  string
	Mute       bool

	// SaveConfig writes the effective config and exits instead of playing.
	SaveConfig bool
}

// ParseFlags parses args, usually os.Args[1:]. Usage errors are written to
// output.
func ParseFlags(args []string, output io.Writer) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("checkers3d", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Scene, "scene", "", "Scene file to load")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.RecordDir, "record-dir", "", "Directory for finished match records")
	fs.BoolVar(&f.Mute, "mute", false, "Disable sound effects")
	fs.BoolVar(&f.SaveConfig, "save-config", false, "Write the effective config to -config or the user config dir and exit")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// apply writes the overrides into cfg.
func (f Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Scene != "" {
		cfg.Scene.File = f.Scene
	}
	switch {
	case f.Fullscreen:
		cfg.Graphics.Fullscreen = true
	case f.Windowed:
		cfg.Graphics.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.RecordDir != "" {
		cfg.Game.RecordDir = f.RecordDir
	}
	if f.Mute {
		cfg.Audio.Enabled = false
	}
}
