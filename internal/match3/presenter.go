package match3

import "time"

// Motion describes a tile sliding from one cell to another. From may lie
// above the board for a freshly spawned tile. Done must be posted back to
// the board once the animation has finished.
type Motion struct {
	Tile     *Tile
	From     Position
	To       Position
	Duration time.Duration
	Done     Event
}

// Presenter receives everything the board wants shown. Durations are
// decided by the board; playing them back is up to the presenter, which
// must post each Done event exactly once.
type Presenter interface {
	OnMoveStart(m Motion)
	OnAppear(t *Tile, d time.Duration, done Event)
	OnDisappear(t *Tile, d time.Duration, done Event)
	OnHighlight(t *Tile, active bool)
	OnShake(t *Tile, active bool)

	OnScoreChanged(total int)
	OnTimerSecondsAdded(seconds float64)
	OnLevelAdvanced(level, basePoints int, baseBonus float64)
	OnTimerExpired()
	OnTimerCapped()

	OnPhaseChanged(from, to Phase)
}

// Binder is implemented by presenters that need the board they are
// attached to. New calls Bind once the board exists.
type Binder interface {
	Bind(p Poster)
}

// NopPresenter ignores every callback. Embed it to implement only the
// callbacks you care about.
type NopPresenter struct{}

// OnMoveStart implements Presenter. It never posts Done.
func (NopPresenter) OnMoveStart(Motion) {}

// OnAppear implements Presenter. It never posts done.
func (NopPresenter) OnAppear(*Tile, time.Duration, Event) {}

// OnDisappear implements Presenter. It never posts done.
func (NopPresenter) OnDisappear(*Tile, time.Duration, Event) {}

// OnHighlight implements Presenter.
func (NopPresenter) OnHighlight(*Tile, bool) {}

// OnShake implements Presenter.
func (NopPresenter) OnShake(*Tile, bool) {}

// OnScoreChanged implements Presenter.
func (NopPresenter) OnScoreChanged(int) {}

// OnTimerSecondsAdded implements Presenter.
func (NopPresenter) OnTimerSecondsAdded(float64) {}

// OnLevelAdvanced implements Presenter.
func (NopPresenter) OnLevelAdvanced(int, int, float64) {}

// OnTimerExpired implements Presenter.
func (NopPresenter) OnTimerExpired() {}

// OnTimerCapped implements Presenter.
func (NopPresenter) OnTimerCapped() {}

// OnPhaseChanged implements Presenter.
func (NopPresenter) OnPhaseChanged(Phase, Phase) {}

// InstantPresenter completes every animation immediately. With it a whole
// turn, cascades included, settles inside a single Dispatch.
type InstantPresenter struct {
	NopPresenter
	sink Poster
}

// Bind implements Binder.
func (p *InstantPresenter) Bind(sink Poster) { p.sink = sink }

// OnMoveStart posts m.Done right away.
func (p *InstantPresenter) OnMoveStart(m Motion) {
	p.post(m.Done)
}

// OnAppear posts done right away.
func (p *InstantPresenter) OnAppear(_ *Tile, _ time.Duration, done Event) {
	p.post(done)
}

// OnDisappear posts done right away.
func (p *InstantPresenter) OnDisappear(_ *Tile, _ time.Duration, done Event) {
	p.post(done)
}

func (p *InstantPresenter) post(e Event) {
	if p.sink != nil {
		p.sink.Post(e)
	}
}
