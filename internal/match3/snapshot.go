package match3

import "time"

// Snapshot is a copy of the observable board state. It holds slices, so
// compare snapshots with reflect.DeepEqual.
type Snapshot struct {
	Phase      Phase
	Score      int
	Level      int
	Multiplier int
	BasePoints int
	Remaining  time.Duration
	Selected   *Position
	HasAnyMove bool
	Hints      []Position
	Types      [][]int
}

// Snapshot captures the board state. Two boards built from the same
// config and seed and fed the same events produce equal snapshots.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      b.phase,
		Score:      b.score.Total(),
		Level:      b.score.Level(),
		Multiplier: b.score.Multiplier(),
		BasePoints: b.score.BasePoints(),
		Remaining:  b.timer.Remaining(),
		HasAnyMove: b.analysis.HasAnyMove,
		Types:      b.grid.Types(),
	}
	if b.selected != nil {
		p := b.selected.Pos
		s.Selected = &p
	}
	for _, t := range b.analysis.Hints {
		s.Hints = append(s.Hints, t.Pos)
	}
	return s
}
