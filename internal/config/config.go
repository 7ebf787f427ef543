// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-three game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Match3Config contains all configuration for a match-three round.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Timer      TimerConfig      `yaml:"timer"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Generation GenerationConfig `yaml:"generation"`
	Tiles      TilesConfig      `yaml:"tiles"`
}

// BoardConfig defines the board shape and palette size.
type BoardConfig struct {
	Rows       int  `yaml:"rows"`
	Columns    int  `yaml:"columns"`
	Types      int  `yaml:"types"`
	WrapAround bool `yaml:"wrap_around"`
}

// TimingConfig defines animation durations in milliseconds.
type TimingConfig struct {
	SwapMS        int `yaml:"swap_ms"`
	FallMSPerTile int `yaml:"fall_ms_per_tile"`
	DisappearMS   int `yaml:"disappear_ms"`
	AppearMS      int `yaml:"appear_ms"`
}

// TimerConfig defines the round timer.
type TimerConfig struct {
	MaxSeconds float64 `yaml:"max_seconds"`
}

// ScoringConfig defines the per-group rewards and how they grow per level.
type ScoringConfig struct {
	BasePoints            int     `yaml:"base_points"`
	BaseBonusSeconds      float64 `yaml:"base_bonus_seconds"`
	LevelPointsStep       int     `yaml:"level_points_step"`
	LevelBonusSecondsStep float64 `yaml:"level_bonus_seconds_step"`
}

// GenerationConfig bounds initial board generation.
type GenerationConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// TilesConfig holds optional per-type colors, in palette order.
type TilesConfig struct {
	Colors []string `yaml:"colors"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ToBoardConfig converts the YAML config into the simulation config.
// The wrap argument overrides board.wrap_around so one file serves both modes.
func (c Match3Config) ToBoardConfig(wrap bool) match3.Config {
	return match3.Config{
		Rows:                c.Board.Rows,
		Columns:             c.Board.Columns,
		Types:               c.Board.Types,
		WrapAround:          wrap,
		SwapDuration:        ms(c.Timing.SwapMS),
		FallDurationPerTile: ms(c.Timing.FallMSPerTile),
		DisappearDuration:   ms(c.Timing.DisappearMS),
		AppearDuration:      ms(c.Timing.AppearMS),
		TimerMax:            time.Duration(c.Timer.MaxSeconds * float64(time.Second)),
		BasePoints:          c.Scoring.BasePoints,
		BaseBonusSeconds:    c.Scoring.BaseBonusSeconds,
		LevelPointsStep:     c.Scoring.LevelPointsStep,
		LevelBonusStep:      c.Scoring.LevelBonusSecondsStep,
		MaxGenerateAttempts: c.Generation.MaxAttempts,
	}
}

// TileColors resolves tiles.colors into screen colors. Missing entries fall
// back to the built-in palette.
func (c Match3Config) TileColors() ([]core.Color, error) {
	colors := DefaultTileColors()
	for i, name := range c.Tiles.Colors {
		if i >= len(colors) {
			return nil, fmt.Errorf("tiles.colors: %d entries, only %d tile types exist", len(c.Tiles.Colors), len(colors))
		}
		col, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("tiles.colors[%d]: %w", i, err)
		}
		colors[i] = col
	}
	return colors, nil
}

// DefaultTileColors returns one color per match3.AllTileTypes entry.
func DefaultTileColors() []core.Color {
	return []core.Color{
		core.ColorBrightRed,
		core.ColorBrightGreen,
		core.ColorWhite,
		core.ColorOrange,
		core.ColorBrightCyan,
		core.ColorBrightYellow,
		core.ColorMagenta,
		core.ColorBrightBlue,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
