package match3

import (
	"fmt"
	"time"
)

// Config is fixed for the lifetime of a round.
type Config struct {
	Rows       int
	Columns    int
	Types      int
	WrapAround bool

	SwapDuration        time.Duration
	FallDurationPerTile time.Duration
	DisappearDuration   time.Duration
	AppearDuration      time.Duration

	TimerMax time.Duration

	BasePoints          int
	BaseBonusSeconds    float64
	LevelPointsStep     int
	LevelBonusStep      float64
	MaxGenerateAttempts int

	Seed int64
}

// DefaultConfig returns the standard 8x8 board with six tile types.
func DefaultConfig() Config {
	return Config{
		Rows:                8,
		Columns:             8,
		Types:               6,
		SwapDuration:        200 * time.Millisecond,
		FallDurationPerTile: 80 * time.Millisecond,
		DisappearDuration:   350 * time.Millisecond,
		AppearDuration:      350 * time.Millisecond,
		TimerMax:            60 * time.Second,
		BasePoints:          10,
		BaseBonusSeconds:    1,
		LevelPointsStep:     2,
		LevelBonusStep:      0.25,
		MaxGenerateAttempts: 100,
	}
}

// Validate checks the config can produce a board.
func (c Config) Validate() error {
	if c.Types <= 0 {
		return fmt.Errorf("%w: types=%d", ErrEmptyTypeSet, c.Types)
	}
	if c.Types > len(AllTileTypes) {
		return fmt.Errorf("%w: types=%d exceeds %d", ErrInvalidConfig, c.Types, len(AllTileTypes))
	}
	if c.Rows < 3 || c.Columns < 3 {
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, c.Rows, c.Columns)
	}
	if c.SwapDuration < 0 || c.FallDurationPerTile < 0 || c.DisappearDuration < 0 || c.AppearDuration < 0 {
		return fmt.Errorf("%w: negative animation duration", ErrInvalidConfig)
	}
	if c.TimerMax <= 0 {
		return fmt.Errorf("%w: timer max must be positive", ErrInvalidConfig)
	}
	if c.BasePoints < 0 || c.BaseBonusSeconds < 0 {
		return fmt.Errorf("%w: negative scoring base", ErrInvalidConfig)
	}
	return nil
}
