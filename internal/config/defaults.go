package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default configuration: an 8x8 board with
// six tile types and a one minute timer.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Rows:    8,
			Columns: 8,
			Types:   6,
		},
		Timing: TimingConfig{
			SwapMS:        200,
			FallMSPerTile: 80,
			DisappearMS:   350,
			AppearMS:      350,
		},
		Timer: TimerConfig{
			MaxSeconds: 60,
		},
		Scoring: ScoringConfig{
			BasePoints:            10,
			BaseBonusSeconds:      1,
			LevelPointsStep:       2,
			LevelBonusSecondsStep: 0.25,
		},
		Generation: GenerationConfig{
			MaxAttempts: 100,
		},
	}
}
