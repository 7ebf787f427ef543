package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

// newLogger builds the process logger from --log-level and --log-file.
// Interactive commands pass quiet so that nothing is written over the
// alternate screen unless a log file was given.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case flagLogFile != "":
		if dir := filepath.Dir(flagLogFile); dir != "" {
			//nolint:errcheck // OpenFile reports the real problem
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// configureGame loads the game configuration and hands it, the difficulty
// preset and the logger to the match-three package.
func configureGame(configPath, difficulty string, logger *log.Logger) error {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		return err
	}
	if _, err := cfg.TileColors(); err != nil {
		return err
	}

	match3.SetConfig(cfg)
	match3.SetPreset(preset)
	match3.SetLogger(logger)
	logger.Debug("game configured", "config", configPath, "difficulty", preset,
		"rows", cfg.Board.Rows, "columns", cfg.Board.Columns, "types", cfg.Board.Types)
	return nil
}
