package match3

import (
	"sync"
	"time"
)

// Event is an input to the board. Player input and animation completions
// both arrive as events and are handled one at a time by Process.
type Event interface {
	event()
}

// TileSelected is a click or key press on a tile.
type TileSelected struct{ Pos Position }

// TileDeselected is handled exactly like TileSelected.
type TileDeselected struct{ Pos Position }

// TileDragReleased is a drag from Pos that ended over Target.
type TileDragReleased struct{ Pos, Target Position }

// HoverEntered and HoverExited track the pointer over a tile.
type HoverEntered struct{ Pos Position }
type HoverExited struct{ Pos Position }

// HintsToggled shows or hides the hint overlay.
type HintsToggled struct{ Active bool }

// ResetRequested asks for a fresh board after a stalemate or game over.
type ResetRequested struct{}

// TimerTicked advances the round timer by Elapsed.
type TimerTicked struct{ Elapsed time.Duration }

// MoveCompleted reports that a tile finished a swap or fall animation.
type MoveCompleted struct {
	TileID uint64
	Action uint64
}

// DisappearCompleted reports that a removed tile finished fading out.
type DisappearCompleted struct {
	TileID uint64
	Action uint64
}

// AppearCompleted reports that a new board tile finished fading in.
type AppearCompleted struct {
	TileID uint64
	Action uint64
}

func (TileSelected) event()       {}
func (TileDeselected) event()     {}
func (TileDragReleased) event()   {}
func (HoverEntered) event()       {}
func (HoverExited) event()        {}
func (HintsToggled) event()       {}
func (ResetRequested) event()     {}
func (TimerTicked) event()        {}
func (MoveCompleted) event()      {}
func (DisappearCompleted) event() {}
func (AppearCompleted) event()    {}

// Poster accepts events. *Board implements it.
type Poster interface {
	Post(e Event)
}

// inbox is a FIFO that may be written from any goroutine and is drained by
// a single consumer at a time.
type inbox struct {
	mu       sync.Mutex
	queue    []Event
	draining bool
}

func (q *inbox) push(e Event) {
	q.mu.Lock()
	q.queue = append(q.queue, e)
	q.mu.Unlock()
}

// claim makes the caller the consumer. It fails if another drain is active.
func (q *inbox) claim() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.draining {
		return false
	}
	q.draining = true
	return true
}

// next returns the next event without giving up the consumer claim.
func (q *inbox) next() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return nil, false
	}
	e := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return e, true
}

// pop returns the next event. When the queue is empty it releases the
// consumer claim under the same lock, so a concurrent push is never
// stranded.
func (q *inbox) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		q.draining = false
		return nil, false
	}
	e := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return e, true
}

func (q *inbox) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}
