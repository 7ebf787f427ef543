// Package match3 provides the match-three puzzle game for the terminal
// platform. It drives a match3.Board tick by tick, plays the board's
// animation requests back as tick-counted animations and renders the result.
package match3

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode selects how the board edges behave.
type Mode string

const (
	ModeLinear Mode = "linear"
	ModeWrap   Mode = "wrap"
)

// Game implements the match-three game.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // overrides the package preset when set
	cfg    config.Match3Config
	colors []core.Color
	logger *log.Logger

	board *m3.Board
	sink  m3.Poster
	err   error

	tick     uint64
	tickRate int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused   bool
	tooSmall bool
	shaking  bool

	cursor  m3.Position
	pressed *m3.Position // cell under the last pointer press
	hovered *m3.Position

	anims  []*animation
	banner banner
}

// Package-level variables for configuration
var (
	settingsMu       sync.RWMutex
	selectedConfig   = config.DefaultMatch3Config()
	selectedPreset   = config.DifficultyNormal
	packageLogger    *log.Logger
	configuredColors []core.Color
)

// SetConfig sets the configuration used by the next Reset.
func SetConfig(cfg config.Match3Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedConfig = cfg
	configuredColors = nil
}

// SetPreset sets the difficulty preset applied on top of the configuration.
func SetPreset(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedPreset = p
}

// GetPreset returns the currently selected difficulty preset.
func GetPreset() config.DifficultyPreset {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return selectedPreset
}

// SetLogger sets the logger handed to new boards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	packageLogger = l
}

func settings(override config.DifficultyPreset) (config.Match3Config, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	cfg := selectedConfig
	preset := selectedPreset
	if override != "" {
		preset = override
	}
	config.ApplyMatch3Preset(&cfg, preset)
	return cfg, packageLogger
}

// New creates a new match-three game with a bounded board.
func New() *Game {
	return &Game{mode: ModeLinear}
}

// NewWrap creates a new match-three game whose board wraps at the edges.
func NewWrap() *Game {
	return &Game{mode: ModeWrap}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_wrap", func() registry.Game {
		return NewWrap()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeWrap {
		return "match3_wrap"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeWrap {
		return "Match Three (Wrap-around)"
	}
	return "Match Three"
}

// UsePreset sets a difficulty for this game instance, overriding SetPreset.
func (g *Game) UsePreset(p config.DifficultyPreset) {
	g.preset = p
}

// Reset builds a fresh board from the selected configuration.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, logger := settings(g.preset)
	g.ResetWith(rc, cfg, logger)
}

// ResetWith builds a fresh board from an explicit configuration. A nil
// logger discards output.
func (g *Game) ResetWith(rc core.RuntimeConfig, cfg config.Match3Config, logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g.cfg = cfg
	g.logger = logger.WithPrefix(g.ID())
	g.tick = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.paused = false
	g.shaking = false
	g.pressed = nil
	g.hovered = nil
	g.anims = nil
	g.banner = banner{}
	g.err = nil

	colors, err := cfg.TileColors()
	if err != nil {
		g.logger.Warn("invalid tile colors, using defaults", "err", err)
		colors = config.DefaultTileColors()
	}
	g.colors = colors

	bc := cfg.ToBoardConfig(g.mode == ModeWrap)
	bc.Seed = rc.Seed
	board, err := m3.New(bc, m3.WithPresenter(g), m3.WithLogger(g.logger))
	if err != nil {
		g.board = nil
		g.err = fmt.Errorf("new board: %w", err)
		g.logger.Error("cannot start round", "err", err)
		g.Resize(rc.ScreenW, rc.ScreenH)
		return
	}
	g.board = board
	g.cursor = m3.P(bc.Rows-1, 0)
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Columns
	minW := cols*cellWidth + 2
	minH := rows*cellHeight + 2 + hudHeight + 1
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.board.Phase() != m3.PhaseGameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.advanceAnimations()
	g.banner.step()
	g.board.Tick(g.frameDuration())

	if err := g.board.Err(); err != nil && g.err == nil {
		g.err = err
	}

	return core.StepResult{State: g.State()}
}

// frameDuration is the simulated time covered by one tick.
func (g *Game) frameDuration() time.Duration {
	return time.Second / time.Duration(g.tickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{GameOver: true, Phase: "error"}
	}
	return core.GameState{
		Score:    g.board.Score(),
		Level:    g.board.Level(),
		Phase:    g.board.Phase().String(),
		GameOver: g.board.Phase() == m3.PhaseGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Board exposes the underlying board for the simulator and tests.
func (g *Game) Board() *m3.Board {
	return g.board
}

// Err returns the error that stopped the round, if any.
func (g *Game) Err() error {
	return g.err
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Space: Select | Mouse: Click/Drag | H: Hints | R: New board | P: Pause | Q: Quit"
}
