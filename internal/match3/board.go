package match3

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the state of the turn state machine.
type Phase uint8

const (
	PhaseInPlay Phase = iota
	PhaseSwapping
	PhaseRemoving
	PhaseDropping
	PhaseResetting
	PhaseNoMoreMoves
	PhaseGameOver
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseInPlay:
		return "InPlay"
	case PhaseSwapping:
		return "Swapping"
	case PhaseRemoving:
		return "Removing"
	case PhaseDropping:
		return "Dropping"
	case PhaseResetting:
		return "Resetting"
	case PhaseNoMoreMoves:
		return "NoMoreMoves"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Stats counts what happened on a board since it was created.
type Stats struct {
	Swaps      int
	Undos      int
	Cascades   int
	MaxCombo   int
	Stalemates int
	Resets     int
	GameOvers  int
	Levels     int
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRandom replaces the seeded source used for generation and refill.
func WithRandom(r Random) Option {
	return func(b *Board) {
		if r != nil {
			b.rng = r
		}
	}
}

// WithPresenter attaches the presentation boundary. If p implements Binder
// it is bound to the new board.
func WithPresenter(p Presenter) Option {
	return func(b *Board) {
		if p != nil {
			b.presenter = p
		}
	}
}

// WithGrid starts the board from g instead of a generated grid. g must be
// full and match the configured dimensions.
func WithGrid(g *Grid) Option {
	return func(b *Board) {
		b.grid = g
	}
}

type swapRecord struct {
	a, b Position
}

// Board is the turn state machine. It owns the grid, the score engine and
// the round timer. All state changes happen while draining the event inbox,
// one event at a time.
type Board struct {
	cfg       Config
	types     TypeSet
	rng       Random
	logger    *log.Logger
	presenter Presenter
	gen       *Generator

	grid  *Grid
	score *ScoreEngine
	timer *RoundTimer

	phase    Phase
	selected *Tile
	undo     *swapRecord

	// action identifies the batch of animations currently awaited; waiting
	// holds the tile IDs of that batch that have not completed yet.
	action  uint64
	waiting map[uint64]bool

	analysis    Analysis
	hintsShown  bool
	highlighted []*Tile
	shaking     bool
	expired     bool

	stats Stats
	err   error
	inbox inbox
}

// New validates cfg, generates a starting board and returns it in InPlay
// (or NoMoreMoves if a supplied grid has no move).
func New(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	types, err := NewTypeSet(cfg.Types)
	if err != nil {
		return nil, err
	}

	b := &Board{
		cfg:       cfg,
		types:     types,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		logger:    discardLogger(),
		presenter: NopPresenter{},
		waiting:   make(map[uint64]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	if binder, ok := b.presenter.(Binder); ok {
		binder.Bind(b)
	}

	b.gen = NewGenerator(cfg, types, b.rng, b.logger)
	b.score = NewScoreEngine(cfg.BasePoints, cfg.BaseBonusSeconds, cfg.LevelPointsStep, cfg.LevelBonusStep)
	b.timer = NewRoundTimer(cfg.TimerMax)

	if b.grid == nil {
		g, err := b.gen.Generate()
		if err != nil {
			return nil, err
		}
		b.grid = g
	} else if b.grid.Rows() != cfg.Rows || b.grid.Columns() != cfg.Columns || !b.grid.Full() {
		return nil, fmt.Errorf("%w: supplied grid is %dx%d, want full %dx%d",
			ErrInvalidConfig, b.grid.Rows(), b.grid.Columns(), cfg.Rows, cfg.Columns)
	}

	b.settle()
	return b, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Post queues an event. It is safe to call from any goroutine.
func (b *Board) Post(e Event) {
	b.inbox.push(e)
}

// Process handles queued events until the inbox is empty, including any
// events posted by the presenter while handling. Nested calls return
// immediately.
func (b *Board) Process() {
	if !b.inbox.claim() {
		return
	}
	b.drain()
}

// drain handles events until the inbox is empty and then gives up the
// consumer claim. The caller must hold the claim.
func (b *Board) drain() {
	for {
		e, ok := b.inbox.pop()
		if !ok {
			return
		}
		b.handle(e)
	}
}

// Dispatch posts e and processes the inbox.
func (b *Board) Dispatch(e Event) {
	b.Post(e)
	b.Process()
}

// Pending reports how many events are queued.
func (b *Board) Pending() int {
	return b.inbox.len()
}

// Select dispatches a click on the tile at p. A second click on an
// adjacent tile starts a swap; a click on the selected tile clears it.
func (b *Board) Select(p Position) {
	b.Dispatch(TileSelected{Pos: p})
}

// Deselect dispatches a release on the tile at p. It toggles the selection
// the same way Select does.
func (b *Board) Deselect(p Position) {
	b.Dispatch(TileDeselected{Pos: p})
}

// DragRelease dispatches a drag from p that ended over target.
func (b *Board) DragRelease(p, target Position) {
	b.Dispatch(TileDragReleased{Pos: p, Target: target})
}

// Hover dispatches the pointer entering the tile at p.
func (b *Board) Hover(p Position) {
	b.Dispatch(HoverEntered{Pos: p})
}

// Unhover dispatches the pointer leaving the tile at p.
func (b *Board) Unhover(p Position) {
	b.Dispatch(HoverExited{Pos: p})
}

// ShowHints turns the hint overlay on or off.
func (b *Board) ShowHints(active bool) {
	b.Dispatch(HintsToggled{Active: active})
}

// Reset dispatches a request for a fresh board. It is ignored unless the
// board is in NoMoreMoves or GameOver.
func (b *Board) Reset() {
	b.Dispatch(ResetRequested{})
}

// RequestSwap swaps the tiles at a and c directly, bypassing selection.
// Queued events are handled first. It fails with ErrBusy outside InPlay or
// while another goroutine is processing events, ErrOutOfRange for a bad
// position and ErrInvalidSwap when the tiles are not adjacent.
func (b *Board) RequestSwap(a, c Position) error {
	if !b.inbox.claim() {
		return fmt.Errorf("%w: events are being processed", ErrBusy)
	}
	for {
		e, ok := b.inbox.next()
		if !ok {
			break
		}
		b.handle(e)
	}
	err := b.swap(a, c)
	b.drain()
	return err
}

func (b *Board) swap(a, c Position) error {
	if b.phase != PhaseInPlay {
		return fmt.Errorf("%w: phase is %s", ErrBusy, b.phase)
	}
	if _, err := b.grid.Get(a); err != nil {
		return err
	}
	if _, err := b.grid.Get(c); err != nil {
		return err
	}
	if !b.grid.IsAdjacent(a, c, b.cfg.WrapAround) {
		return fmt.Errorf("%w: %s and %s", ErrInvalidSwap, a, c)
	}
	b.clearSelection()
	b.startSwap(a, c, true)
	return nil
}

// Tick advances the round timer by dt. The tick is queued behind pending
// events, so a tick from another goroutine is handled by whichever caller
// is draining the inbox.
func (b *Board) Tick(dt time.Duration) {
	b.Dispatch(TimerTicked{Elapsed: dt})
}

func (b *Board) handleTick(dt time.Duration) {
	switch b.timer.Tick(dt) {
	case TimerExpired:
		b.onTimerExpired()
	case TimerCapped:
		b.onTimerCapped()
	}
}

func (b *Board) handle(e Event) {
	switch ev := e.(type) {
	case TileSelected:
		b.handleSelect(ev.Pos)
	case TileDeselected:
		b.handleSelect(ev.Pos)
	case TileDragReleased:
		b.handleDrag(ev.Pos, ev.Target)
	case HoverEntered:
		b.handleHover(ev.Pos, true)
	case HoverExited:
		b.handleHover(ev.Pos, false)
	case HintsToggled:
		b.hintsShown = ev.Active
		b.refreshHighlights()
	case ResetRequested:
		b.handleReset()
	case TimerTicked:
		b.handleTick(ev.Elapsed)
	case MoveCompleted:
		b.handleMoveCompleted(ev)
	case DisappearCompleted:
		b.handleDisappearCompleted(ev)
	case AppearCompleted:
		b.handleAppearCompleted(ev)
	default:
		b.logger.Warn("unknown event dropped", "event", fmt.Sprintf("%T", e))
	}
}

func (b *Board) handleSelect(p Position) {
	if b.phase != PhaseInPlay {
		b.logger.Debug("selection ignored", "pos", p, "phase", b.phase)
		return
	}
	t, err := b.grid.Get(p)
	if err != nil || t == nil {
		b.logger.Debug("selection outside board", "pos", p)
		return
	}

	switch {
	case b.selected == nil:
		b.selectTile(t)
	case b.selected == t:
		b.clearSelection()
	case b.grid.IsAdjacent(b.selected.Pos, p, b.cfg.WrapAround):
		from := b.selected.Pos
		b.clearSelection()
		b.startSwap(from, p, true)
	default:
		b.clearSelection()
		b.selectTile(t)
	}
}

func (b *Board) handleDrag(p, target Position) {
	if b.phase != PhaseInPlay {
		return
	}
	if p == target {
		b.handleSelect(p)
		return
	}
	b.clearSelection()
	b.handleSelect(p)
	b.handleSelect(target)
}

func (b *Board) handleHover(p Position, enter bool) {
	if b.phase == PhaseSwapping {
		return
	}
	t, err := b.grid.Get(p)
	if err != nil || t == nil {
		return
	}
	switch {
	case enter && t.Overlay == OverlayNone:
		t.Overlay = OverlayHover
	case !enter && t.Overlay == OverlayHover:
		t.Overlay = OverlayNone
	}
}

func (b *Board) selectTile(t *Tile) {
	b.selected = t
	t.Selected = true
	t.Overlay = OverlaySelected
}

func (b *Board) clearSelection() {
	if b.selected == nil {
		return
	}
	t := b.selected
	b.selected = nil
	t.Selected = false
	t.Overlay = OverlayNone
	if b.hintsShown && b.phase == PhaseInPlay && b.analysis.IsHint(t) {
		t.Overlay = OverlayHighlighted
	}
}

func (b *Board) startSwap(a, c Position, undoable bool) {
	if err := b.grid.Swap(a, c); err != nil {
		b.logger.Error("swap failed", "a", a, "b", c, "err", err)
		return
	}
	if undoable {
		b.undo = &swapRecord{a: a, b: c}
		b.stats.Swaps++
		b.clearHighlights()
	} else {
		b.undo = nil
		b.stats.Undos++
	}
	b.setPhase(PhaseSwapping)
	b.logger.Debug("swap started", "a", a, "b", c, "undo", !undoable)

	ta := b.grid.at(c.Row, c.Col)
	tc := b.grid.at(a.Row, a.Col)
	id := b.beginBatch(ta, tc)
	b.presenter.OnMoveStart(Motion{Tile: ta, From: a, To: c, Duration: b.cfg.SwapDuration, Done: MoveCompleted{TileID: ta.ID, Action: id}})
	b.presenter.OnMoveStart(Motion{Tile: tc, From: c, To: a, Duration: b.cfg.SwapDuration, Done: MoveCompleted{TileID: tc.ID, Action: id}})
}

// beginBatch starts a new animation batch waiting on tiles.
func (b *Board) beginBatch(tiles ...*Tile) uint64 {
	b.action++
	clear(b.waiting)
	for _, t := range tiles {
		b.waiting[t.ID] = true
	}
	return b.action
}

// complete records a finished animation. It reports true when the signal
// was the last one of the current batch in the expected phase.
func (b *Board) complete(kind string, tileID, action uint64, phases ...Phase) bool {
	inPhase := false
	for _, p := range phases {
		if b.phase == p {
			inPhase = true
			break
		}
	}
	if !inPhase || action != b.action || !b.waiting[tileID] {
		b.logger.Debug("stale signal dropped", "kind", kind, "tile", tileID, "action", action, "current", b.action, "phase", b.phase)
		return false
	}
	delete(b.waiting, tileID)
	return len(b.waiting) == 0
}

func (b *Board) handleMoveCompleted(e MoveCompleted) {
	if b.complete("move", e.TileID, e.Action, PhaseSwapping, PhaseDropping) {
		b.recheck()
	}
}

func (b *Board) handleDisappearCompleted(e DisappearCompleted) {
	if !b.complete("disappear", e.TileID, e.Action, PhaseRemoving) {
		return
	}
	drops := FlattenDrops(DropAndRefill(b.grid, b.types, b.rng))
	b.setPhase(PhaseDropping)
	tiles := make([]*Tile, len(drops))
	for i, d := range drops {
		tiles[i] = d.Tile
	}
	id := b.beginBatch(tiles...)
	if len(drops) == 0 {
		b.recheck()
		return
	}
	for _, d := range drops {
		b.presenter.OnMoveStart(Motion{
			Tile:     d.Tile,
			From:     d.From,
			To:       d.To,
			Duration: b.cfg.FallDurationPerTile * time.Duration(d.Distance),
			Done:     MoveCompleted{TileID: d.Tile.ID, Action: id},
		})
	}
}

func (b *Board) handleAppearCompleted(e AppearCompleted) {
	if b.complete("appear", e.TileID, e.Action, PhaseResetting) {
		b.settle()
	}
}

// recheck runs after every swap and every drop has fully landed.
func (b *Board) recheck() {
	groups := FindMatches(b.grid, b.cfg.WrapAround)
	if len(groups) > 0 {
		points, bonus := b.score.Tally(groups)
		combo := b.score.Multiplier() - 1
		b.stats.Cascades++
		b.stats.MaxCombo = max(b.stats.MaxCombo, combo)
		b.undo = nil
		b.timer.AddSeconds(bonus)
		b.logger.Debug("cascade step", "groups", len(groups), "points", points, "bonus", bonus, "combo", combo)
		b.presenter.OnScoreChanged(b.score.Total())
		b.presenter.OnTimerSecondsAdded(bonus)

		b.setPhase(PhaseRemoving)
		marked := MarkedTiles(b.grid)
		id := b.beginBatch(marked...)
		for _, t := range marked {
			t.Overlay = OverlayNone
			b.presenter.OnDisappear(t, b.cfg.DisappearDuration, DisappearCompleted{TileID: t.ID, Action: id})
		}
		return
	}

	if u := b.undo; u != nil {
		b.startSwap(u.a, u.b, false)
		return
	}

	b.score.ResetCombo()
	b.settle()
}

// settle enters InPlay and decides what the quiet board allows.
func (b *Board) settle() {
	b.setPhase(PhaseInPlay)
	if b.expired {
		b.gameOver()
		return
	}
	b.analysis = AnalyzeMoves(b.grid, b.cfg.WrapAround)
	if !b.analysis.HasAnyMove {
		b.stats.Stalemates++
		b.logger.Debug("no more moves")
		b.clearSelection()
		b.setPhase(PhaseNoMoreMoves)
		b.timer.Pause()
		b.setShake(true)
		return
	}
	b.refreshHighlights()
}

func (b *Board) handleReset() {
	if b.phase != PhaseNoMoreMoves && b.phase != PhaseGameOver {
		b.logger.Debug("reset ignored", "phase", b.phase)
		return
	}
	prev := b.phase
	g, err := b.gen.Generate()
	if err != nil {
		b.err = err
		b.logger.Error("board regeneration failed", "err", err)
		return
	}

	b.setShake(false)
	b.clearSelection()
	b.clearHighlights()
	b.setPhase(PhaseResetting)
	b.stats.Resets++

	if prev == PhaseGameOver {
		b.score.Reset()
		b.timer.Reset()
		b.presenter.OnScoreChanged(b.score.Total())
	} else {
		b.timer.Resume()
	}
	b.score.ResetCombo()
	b.expired = false
	b.undo = nil
	b.grid = g

	tiles := g.Tiles()
	id := b.beginBatch(tiles...)
	for _, t := range tiles {
		b.presenter.OnAppear(t, b.cfg.AppearDuration, AppearCompleted{TileID: t.ID, Action: id})
	}
}

func (b *Board) onTimerExpired() {
	b.logger.Debug("timer expired", "phase", b.phase)
	b.presenter.OnTimerExpired()
	if b.phase == PhaseInPlay {
		b.gameOver()
		return
	}
	b.expired = true
}

func (b *Board) onTimerCapped() {
	b.score.AdvanceLevel()
	b.timer.Reset()
	b.stats.Levels++
	b.logger.Info("level advanced", "level", b.score.Level(), "base_points", b.score.BasePoints(), "base_bonus", b.score.BaseBonus())
	b.presenter.OnTimerCapped()
	b.presenter.OnLevelAdvanced(b.score.Level(), b.score.BasePoints(), b.score.BaseBonus())
}

func (b *Board) gameOver() {
	b.expired = false
	b.clearSelection()
	b.clearHighlights()
	b.setPhase(PhaseGameOver)
	b.timer.Pause()
	b.stats.GameOvers++
	b.logger.Info("game over", "score", b.score.Total(), "level", b.score.Level())
	b.setShake(true)
}

func (b *Board) setPhase(p Phase) {
	if b.phase == p {
		return
	}
	from := b.phase
	b.phase = p
	b.presenter.OnPhaseChanged(from, p)
}

func (b *Board) setShake(active bool) {
	if b.shaking == active {
		return
	}
	b.shaking = active
	for _, t := range b.grid.Tiles() {
		b.presenter.OnShake(t, active)
	}
}

func (b *Board) clearHighlights() {
	for _, t := range b.highlighted {
		if t.Overlay == OverlayHighlighted {
			t.Overlay = OverlayNone
		}
		b.presenter.OnHighlight(t, false)
	}
	b.highlighted = nil
}

// refreshHighlights puts the hint overlay on the current hints when hints
// are shown and the board is waiting for the player.
func (b *Board) refreshHighlights() {
	b.clearHighlights()
	if !b.hintsShown || b.phase != PhaseInPlay {
		return
	}
	for _, t := range b.analysis.Hints {
		if t.Overlay != OverlaySelected {
			t.Overlay = OverlayHighlighted
		}
		b.highlighted = append(b.highlighted, t)
		b.presenter.OnHighlight(t, true)
	}
}

// Phase returns the current turn phase.
func (b *Board) Phase() Phase {
	return b.phase
}

// Grid returns the live grid. Callers must not modify it.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Config returns the config the board was built with.
func (b *Board) Config() Config {
	return b.cfg
}

// Score returns the total score of the round.
func (b *Board) Score() int {
	return b.score.Total()
}

// Level returns the current level.
func (b *Board) Level() int {
	return b.score.Level()
}

// Multiplier returns the factor the next cascade step will be scored with.
// It is 1 while the board waits for the player and grows during a cascade.
func (b *Board) Multiplier() int {
	return b.score.Multiplier()
}

// Selected returns the selected tile, or nil.
func (b *Board) Selected() *Tile {
	return b.selected
}

// Hints returns the tiles that can start a matching swap.
func (b *Board) Hints() []*Tile {
	return b.analysis.Hints
}

// Moves returns every swap that would produce a match.
func (b *Board) Moves() []Move {
	return b.analysis.Moves
}

// HintsShown reports whether the hint overlay is on.
func (b *Board) HintsShown() bool {
	return b.hintsShown
}

// Stats returns the counters gathered since the board was built.
func (b *Board) Stats() Stats {
	return b.stats
}

// Remaining returns the time left on the round timer.
func (b *Board) Remaining() time.Duration {
	return b.timer.Remaining()
}

// TimerFraction returns the remaining time as a fraction of the maximum.
func (b *Board) TimerFraction() float64 {
	return b.timer.Fraction()
}

// Err returns the last board regeneration failure, if any.
func (b *Board) Err() error { return b.err }

// Settled reports whether the board is waiting on the player.
func (b *Board) Settled() bool {
	switch b.phase {
	case PhaseInPlay, PhaseNoMoreMoves, PhaseGameOver:
		return true
	}
	return false
}
