package match3

// Shape names the near-match template a move was found with.
type Shape uint8

const (
	ShapeStraight Shape = iota
	ShapeX
	ShapeLyingL
	ShapeStandingL
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeStraight:
		return "Straight"
	case ShapeX:
		return "X"
	case ShapeLyingL:
		return "LyingL"
	case ShapeStandingL:
		return "StandingL"
	default:
		return "Unknown"
	}
}

// Move is a swap that creates at least one run. From is the tile that slides
// into To to complete the run; it is the tile reported as a hint.
type Move struct {
	From  Position
	To    Position
	Shape Shape
}

// Analysis is the result of a move scan.
type Analysis struct {
	HasAnyMove bool
	Hints      []*Tile
	Moves      []Move
}

// IsHint reports whether t is one of the hint tiles.
func (a Analysis) IsHint(t *Tile) bool {
	for _, h := range a.Hints {
		if h == t {
			return true
		}
	}
	return false
}

// template gives, relative to the moving tile, the step into the target cell
// and the two cells that must already hold the moving tile's type.
type template struct {
	shape    Shape
	step     Position
	partners [2]Position
}

var (
	up    = P(1, 0)
	down  = P(-1, 0)
	left  = P(0, -1)
	right = P(0, 1)
)

func add(a, b Position) Position {
	return Position{Row: a.Row + b.Row, Col: a.Col + b.Col}
}

func scale(a Position, k int) Position {
	return Position{Row: a.Row * k, Col: a.Col * k}
}

// templates:
//
//	Straight:   step d, partners at 2d and 3d (the run continues past the target)
//	X:          step d, partners at d+e and d-e (the target sits between them)
//	LyingL:     vertical step d, partners at d+e and d+2e along the row
//	StandingL:  horizontal step d, partners at d+e and d+2e along the column
var templates = buildTemplates()

func buildTemplates() []template {
	var out []template
	for _, d := range []Position{up, down, left, right} {
		out = append(out, template{ShapeStraight, d, [2]Position{scale(d, 2), scale(d, 3)}})
	}
	for _, d := range []Position{up, down} {
		out = append(out, template{ShapeX, d, [2]Position{add(d, left), add(d, right)}})
	}
	for _, d := range []Position{left, right} {
		out = append(out, template{ShapeX, d, [2]Position{add(d, up), add(d, down)}})
	}
	for _, d := range []Position{up, down} {
		for _, e := range []Position{left, right} {
			out = append(out, template{ShapeLyingL, d, [2]Position{add(d, e), add(d, scale(e, 2))}})
		}
	}
	for _, d := range []Position{left, right} {
		for _, e := range []Position{up, down} {
			out = append(out, template{ShapeStandingL, d, [2]Position{add(d, e), add(d, scale(e, 2))}})
		}
	}
	return out
}

// AnalyzeMoves tests every tile against every template. In wrap mode offsets
// are folded onto the torus instead of being bounds checked; a folded offset
// that lands on the moving tile or its target is rejected.
func AnalyzeMoves(g *Grid, wrap bool) Analysis {
	var a Analysis
	seen := make(map[Move]bool)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			t := g.at(r, c)
			if t == nil {
				continue
			}
			hinted := false
			for _, tpl := range templates {
				target, ok := matchTemplate(g, t, tpl, wrap)
				if !ok {
					continue
				}
				key := Move{From: t.Pos, To: target}
				if !seen[key] {
					seen[key] = true
					a.Moves = append(a.Moves, Move{From: t.Pos, To: target, Shape: tpl.shape})
				}
				if !hinted {
					a.Hints = append(a.Hints, t)
					hinted = true
				}
			}
		}
	}

	a.HasAnyMove = len(a.Hints) > 0
	return a
}

func matchTemplate(g *Grid, t *Tile, tpl template, wrap bool) (Position, bool) {
	target := add(t.Pos, tpl.step)
	p1 := add(t.Pos, tpl.partners[0])
	p2 := add(t.Pos, tpl.partners[1])

	if wrap {
		target, p1, p2 = g.wrapPos(target), g.wrapPos(p1), g.wrapPos(p2)
		if target == t.Pos || p1 == t.Pos || p2 == t.Pos || p1 == target || p2 == target || p1 == p2 {
			return target, false
		}
	} else if !g.InBounds(target) || !g.InBounds(p1) || !g.InBounds(p2) {
		return target, false
	}

	dst := g.at(target.Row, target.Col)
	a := g.at(p1.Row, p1.Col)
	b := g.at(p2.Row, p2.Col)
	if dst == nil || a == nil || b == nil || dst.Type == t.Type {
		return target, false
	}
	return target, a.Type == t.Type && b.Type == t.Type
}
