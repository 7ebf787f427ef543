package match3

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func newGame(t *testing.T, mode Mode, cfg config.Match3Config) *Game {
	t.Helper()
	g := &Game{mode: mode}
	g.ResetWith(testRuntime(), cfg, nil)
	if err := g.Err(); err != nil {
		t.Fatalf("ResetWith: %v", err)
	}
	return g
}

// runUntilSettled steps with empty input until the board waits on the
// player and no animation is running.
func runUntilSettled(t *testing.T, g *Game) {
	t.Helper()
	empty := core.NewInputFrame()
	for i := 0; i < 2000; i++ {
		if g.Board().Settled() && g.Animating() == 0 {
			return
		}
		g.Step(empty)
	}
	t.Fatalf("board did not settle, phase %s, %d animations", g.Board().Phase(), g.Animating())
}

// ptr is a pointer event aimed at the glyph of a board cell.
type ptr struct {
	pos  m3.Position
	kind core.PointerKind
}

func pointerFrame(g *Game, events ...ptr) core.InputFrame {
	in := core.NewInputFrame()
	for _, ev := range events {
		x, y := g.CellOrigin(ev.pos)
		in.AddPointer(core.PointerEvent{X: x, Y: y, Kind: ev.kind})
	}
	return in
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "match3" {
		t.Errorf("New().ID() = %q", New().ID())
	}
	if NewWrap().ID() != "match3_wrap" {
		t.Errorf("NewWrap().ID() = %q", NewWrap().ID())
	}
	for _, id := range []string{"match3", "match3_wrap"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("created game has ID %q, want %q", g.ID(), id)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	for _, mode := range []Mode{ModeLinear, ModeWrap} {
		t.Run(string(mode), func(t *testing.T) {
			g1 := newGame(t, mode, config.DefaultMatch3Config())
			g2 := newGame(t, mode, config.DefaultMatch3Config())

			// Play the first hinted move on both, then idle.
			mv := g1.Board().Moves()[0]
			drag := pointerFrame(g1, ptr{mv.From, core.PointerPress}, ptr{mv.To, core.PointerRelease})
			empty := core.NewInputFrame()
			for i := 0; i < 300; i++ {
				in := empty
				if i == 5 {
					in = drag
				}
				g1.Step(in)
				g2.Step(in)
			}

			if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
				t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
			}
		})
	}
}

func TestPointerClickSelects(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())
	p := m3.P(3, 4)

	g.Step(pointerFrame(g, ptr{p, core.PointerPress}, ptr{p, core.PointerRelease}))

	sel := g.Board().Selected()
	if sel == nil || sel.Pos != p {
		t.Fatalf("expected %s selected, got %v", p, sel)
	}
	if g.Cursor() != p {
		t.Errorf("cursor should follow the click, got %s", g.Cursor())
	}

	// Clicking the selected tile again clears the selection.
	g.Step(pointerFrame(g, ptr{p, core.PointerPress}, ptr{p, core.PointerRelease}))
	if g.Board().Selected() != nil {
		t.Error("second click should deselect")
	}
}

func TestDragPlaysHintedMove(t *testing.T) {
	for _, mode := range []Mode{ModeLinear, ModeWrap} {
		t.Run(string(mode), func(t *testing.T) {
			g := newGame(t, mode, config.DefaultMatch3Config())
			mv := g.Board().Moves()[0]

			g.Step(pointerFrame(g, ptr{mv.From, core.PointerPress}, ptr{mv.To, core.PointerRelease}))
			if g.Board().Phase() != m3.PhaseSwapping {
				t.Fatalf("expected Swapping after drag, got %s", g.Board().Phase())
			}
			if g.Animating() != 2 {
				t.Errorf("expected 2 swap animations, got %d", g.Animating())
			}

			runUntilSettled(t, g)

			stats := g.Board().Stats()
			if stats.Swaps != 1 || stats.Undos != 0 {
				t.Errorf("expected one kept swap, got %+v", stats)
			}
			if g.Board().Score() < 10 {
				t.Errorf("a hinted move should score, got %d", g.Board().Score())
			}
		})
	}
}

func TestKeyboardCursor(t *testing.T) {
	step := func(g *Game, a core.Action) {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}

	lin := newGame(t, ModeLinear, config.DefaultMatch3Config())
	if lin.Cursor() != m3.P(7, 0) {
		t.Fatalf("cursor should start top-left, got %s", lin.Cursor())
	}
	step(lin, core.ActionUp)
	step(lin, core.ActionLeft)
	if lin.Cursor() != m3.P(7, 0) {
		t.Errorf("linear cursor should stop at the edge, got %s", lin.Cursor())
	}
	step(lin, core.ActionDown)
	step(lin, core.ActionRight)
	if lin.Cursor() != m3.P(6, 1) {
		t.Errorf("expected (6,1), got %s", lin.Cursor())
	}

	step(lin, core.ActionConfirm)
	if sel := lin.Board().Selected(); sel == nil || sel.Pos != m3.P(6, 1) {
		t.Errorf("confirm should select the cursor tile, got %v", sel)
	}
	step(lin, core.ActionBack)
	if lin.Board().Selected() != nil {
		t.Error("back should clear the selection")
	}

	wrap := newGame(t, ModeWrap, config.DefaultMatch3Config())
	step(wrap, core.ActionUp)
	step(wrap, core.ActionLeft)
	if wrap.Cursor() != m3.P(0, 7) {
		t.Errorf("wrap cursor should wrap around, got %s", wrap.Cursor())
	}
}

func TestHintToggle(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())

	in := core.NewInputFrame()
	in.Set(core.ActionHint)
	g.Step(in)

	if !g.Board().HintsShown() {
		t.Fatal("hint action should show hints")
	}
	for _, tile := range g.Board().Hints() {
		if tile.Overlay != m3.OverlayHighlighted {
			t.Errorf("hint %s should be highlighted, overlay %s", tile, tile.Overlay)
		}
	}

	g.Step(in)
	if g.Board().HintsShown() {
		t.Error("second hint action should hide hints")
	}
}

func TestHover(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())
	p := m3.P(2, 2)

	g.Step(pointerFrame(g, ptr{p, core.PointerMotion}))
	tile, err := g.Board().Grid().Get(p)
	if err != nil {
		t.Fatal(err)
	}
	if tile.Overlay != m3.OverlayHover {
		t.Fatalf("expected hover overlay, got %s", tile.Overlay)
	}

	out := core.NewInputFrame()
	out.AddPointer(core.PointerEvent{X: 0, Y: 0, Kind: core.PointerMotion})
	g.Step(out)
	if tile.Overlay != m3.OverlayNone {
		t.Errorf("leaving the board should clear hover, got %s", tile.Overlay)
	}
}

func TestGamePause(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)

	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.Board().Remaining()
	empty := core.NewInputFrame()
	for i := 0; i < 60; i++ {
		g.Step(empty)
	}
	if g.Board().Remaining() != before {
		t.Errorf("timer should not run while paused: %v -> %v", before, g.Board().Remaining())
	}

	g.Step(in)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestTimerExpiryAndRestart(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Timer.MaxSeconds = 0.1
	g := newGame(t, ModeLinear, cfg)

	empty := core.NewInputFrame()
	for i := 0; i < 10 && !g.State().GameOver; i++ {
		g.Step(empty)
	}
	if !g.State().GameOver {
		t.Fatalf("expected game over, phase %s", g.State().Phase)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	if g.Board().Phase() != m3.PhaseResetting {
		t.Errorf("restart should regenerate the board, phase %s", g.Board().Phase())
	}
	if g.State().Score != 0 {
		t.Errorf("restart after game over should clear the score, got %d", g.State().Score)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Board.Types = 0

	g := New()
	g.ResetWith(testRuntime(), cfg, nil)

	if !errors.Is(g.Err(), m3.ErrEmptyTypeSet) {
		t.Fatalf("expected ErrEmptyTypeSet, got %v", g.Err())
	}
	if !g.State().GameOver {
		t.Error("a game without a board should report game over")
	}

	screen := core.NewScreen(80, 24)
	g.Step(core.NewInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start round") {
		t.Error("render should explain the failure")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	rc := testRuntime()
	rc.ScreenW, rc.ScreenH = 20, 10
	g.ResetWith(rc, config.DefaultMatch3Config(), nil)

	if !g.State().Paused {
		t.Error("a too small window should pause the game")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resizing up should resume without a reset")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Match Three", "Score: 0", "Level 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}

	// Every tile's glyph sits where CellOrigin says.
	for _, tile := range g.Board().Grid().Tiles() {
		x, y := g.CellOrigin(tile.Pos)
		cell := screen.GetCell(x, y)
		if cell.Rune != symbol(tile.Type) {
			t.Fatalf("tile %s drawn as %q", tile, cell.Rune)
		}
		if cell.Fg != config.DefaultTileColors()[tile.Type] {
			t.Fatalf("tile %s drawn in %s", tile, cell.Fg)
		}
	}

	// Cursor cell is reversed.
	x, y := g.CellOrigin(g.Cursor())
	if !screen.GetCell(x, y).Attr.Has(core.AttrReverse) {
		t.Error("cursor cell should be drawn reversed")
	}
}

func TestCellMappingRoundTrip(t *testing.T) {
	g := newGame(t, ModeLinear, config.DefaultMatch3Config())
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := m3.P(r, c)
			x, y := g.CellOrigin(p)
			got, ok := g.cellAt(x, y)
			if !ok || got != p {
				t.Errorf("cellAt(CellOrigin(%s)) = %s, %v", p, got, ok)
			}
		}
	}
	if _, ok := g.cellAt(0, 0); ok {
		t.Error("HUD area should not map to a cell")
	}
}

func TestTicksFor(t *testing.T) {
	g := &Game{tickRate: 60}
	if n := g.ticksFor(200 * time.Millisecond); n != 12 {
		t.Errorf("200ms at 60fps = %d ticks, want 12", n)
	}
	if n := g.ticksFor(time.Second / 60); n != 1 {
		t.Errorf("one frame at 60fps = %d ticks, want 1", n)
	}
	if n := g.ticksFor(201 * time.Millisecond); n != 13 {
		t.Errorf("201ms at 60fps = %d ticks, want 13", n)
	}
	if n := g.ticksFor(0); n != 1 {
		t.Errorf("zero duration should still take one tick, got %d", n)
	}
}

func TestAnimationPosition(t *testing.T) {
	// A swap across the wrap seam takes the short way.
	a := &animation{kind: animMove, from: m3.P(0, 7), to: m3.P(0, 0), duration: 10}
	if _, col := a.position(8, 8, true); col != 7 {
		t.Errorf("start col = %v, want 7", col)
	}
	a.elapsed = 10
	if _, col := a.position(8, 8, true); col != 0 {
		t.Errorf("end col = %v, want 0", col)
	}

	// Refills fall from above the board and are not folded.
	drop := &animation{kind: animMove, from: m3.P(9, 2), to: m3.P(3, 2), duration: 10}
	if row, _ := drop.position(8, 8, true); row != 9 {
		t.Errorf("refill start row = %v, want 9", row)
	}
}

func TestUsePreset(t *testing.T) {
	tests := []struct {
		preset    config.DifficultyPreset
		wantTypes int
		wantMax   time.Duration
	}{
		{config.DifficultyEasy, 5, 90 * time.Second},
		{config.DifficultyHard, 7, 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			g := New()
			g.UsePreset(tt.preset)
			g.Reset(testRuntime())

			if err := g.Err(); err != nil {
				t.Fatalf("Reset: %v", err)
			}
			bc := g.Board().Config()
			if bc.Types != tt.wantTypes || bc.TimerMax != tt.wantMax {
				t.Errorf("preset %s: types=%d timer=%v", tt.preset, bc.Types, bc.TimerMax)
			}
		})
	}
}
