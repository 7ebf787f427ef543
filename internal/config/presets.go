package config

import (
	"fmt"
	"strings"
)

// Presets lists the accepted difficulty names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a difficulty name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(name))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// Describe returns a one-line summary for menus.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "5 tile types, 90s timer"
	case DifficultyNormal:
		return "as configured"
	case DifficultyHard:
		return "7 tile types, 45s timer, smaller bonuses"
	case DifficultyFixed:
		return "no level progression"
	default:
		return ""
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Fewer tile types make runs and cascades more likely; more types make
// stalemates more likely.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Types = 5
		cfg.Timer.MaxSeconds = 90
		cfg.Scoring.BaseBonusSeconds *= 1.5
	case DifficultyHard:
		cfg.Board.Types = 7
		cfg.Timer.MaxSeconds = 45
		cfg.Scoring.BaseBonusSeconds *= 0.5
		cfg.Scoring.LevelBonusSecondsStep *= 0.5
	case DifficultyFixed:
		cfg.Scoring.LevelPointsStep = 0
		cfg.Scoring.LevelBonusSecondsStep = 0
	}
}
