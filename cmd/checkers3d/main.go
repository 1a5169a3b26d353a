// Command checkers3d loads a scene file and plays checkers on it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/config"
	"github.com/Faultbox/checkers3d/internal/game"
	"github.com/Faultbox/checkers3d/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := config.ParseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkers3d: %v\n", err)
		return 1
	}

	if flags.SaveConfig {
		save := cfg.Save
		if flags.Config != "" {
			save = func() error { return cfg.SaveTo(flags.Config) }
		}
		if err := save(); err != nil {
			fmt.Fprintf(os.Stderr, "checkers3d: %v\n", err)
			return 1
		}
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "checkers3d: logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("scene", cfg.Scene.File),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))
	logger.Sugar.Debugf("config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game loop failed", zap.Error(err))
		return 1
	}
	logger.Info("bye")
	return 0
}
