package match3

// Axis is the direction a run lies along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// MatchGroup is one maximal run of three or more same-type tiles along one axis.
// Tiles are in scan order.
type MatchGroup struct {
	Axis  Axis
	Type  TileType
	Tiles []*Tile
}

// Size returns the number of tiles in the run.
func (m MatchGroup) Size() int {
	return len(m.Tiles)
}

// Positions returns the positions of the run's tiles in scan order.
func (m MatchGroup) Positions() []Position {
	out := make([]Position, len(m.Tiles))
	for i, t := range m.Tiles {
		out[i] = t.Pos
	}
	return out
}

// FindMatches scans every row, then every column, and returns the runs found.
// Every tile of every group is marked for removal. A tile crossed by a
// horizontal and a vertical run appears in both groups but is marked once.
func FindMatches(g *Grid, wrap bool) []MatchGroup {
	groups := findGroups(g, wrap)
	for _, grp := range groups {
		for _, t := range grp.Tiles {
			t.MarkedForRemoval = true
		}
	}
	return groups
}

// HasMatches reports whether any run exists without marking anything.
func HasMatches(g *Grid, wrap bool) bool {
	return len(findGroups(g, wrap)) > 0
}

// MarkedTiles returns the distinct tiles currently marked for removal in
// row-major order.
func MarkedTiles(g *Grid) []*Tile {
	var out []*Tile
	for _, t := range g.Tiles() {
		if t.MarkedForRemoval {
			out = append(out, t)
		}
	}
	return out
}

func findGroups(g *Grid, wrap bool) []MatchGroup {
	var groups []MatchGroup
	line := make([]*Tile, 0, max(g.rows, g.cols))

	for r := 0; r < g.rows; r++ {
		line = line[:0]
		for c := 0; c < g.cols; c++ {
			line = append(line, g.at(r, c))
		}
		groups = append(groups, scanLine(line, Horizontal, wrap)...)
	}

	for c := 0; c < g.cols; c++ {
		line = line[:0]
		for r := 0; r < g.rows; r++ {
			line = append(line, g.at(r, c))
		}
		groups = append(groups, scanLine(line, Vertical, wrap)...)
	}

	return groups
}

func scanLine(line []*Tile, axis Axis, wrap bool) []MatchGroup {
	if wrap && !hasGap(line) {
		return scanCyclic(line, axis)
	}
	return scanLinear(line, axis)
}

// scanLinear counts the current run left to right. The third tile of a run
// opens a group seeded with the last three tiles; later tiles of the same run
// extend that group instead of opening another one.
func scanLinear(line []*Tile, axis Axis) []MatchGroup {
	var groups []MatchGroup
	count := 0

	for i, t := range line {
		if t == nil {
			count = 0
			continue
		}
		if i > 0 && line[i-1] != nil && line[i-1].Type == t.Type {
			count++
		} else {
			count = 1
		}

		switch {
		case count == 3:
			groups = append(groups, MatchGroup{
				Axis:  axis,
				Type:  t.Type,
				Tiles: []*Tile{line[i-2], line[i-1], t},
			})
		case count > 3:
			last := &groups[len(groups)-1]
			last.Tiles = append(last.Tiles, t)
		}
	}

	return groups
}

// scanCyclic treats the line as a ring. Walking starts at a run boundary so a
// run straddling the index wrap point is seen whole. A ring of one type is a
// single run and is walked once.
func scanCyclic(line []*Tile, axis Axis) []MatchGroup {
	n := len(line)
	if n == 0 {
		return nil
	}

	start := -1
	for i := 0; i < n; i++ {
		if line[i].Type != line[mod(i-1, n)].Type {
			start = i
			break
		}
	}

	if start < 0 {
		if n < 3 {
			return nil
		}
		tiles := make([]*Tile, n)
		copy(tiles, line)
		return []MatchGroup{{Axis: axis, Type: line[0].Type, Tiles: tiles}}
	}

	var groups []MatchGroup
	for i := 0; i < n; {
		head := line[(start+i)%n]
		j := i + 1
		for j < n && line[(start+j)%n].Type == head.Type {
			j++
		}
		if j-i >= 3 {
			tiles := make([]*Tile, 0, j-i)
			for k := i; k < j; k++ {
				tiles = append(tiles, line[(start+k)%n])
			}
			groups = append(groups, MatchGroup{Axis: axis, Type: head.Type, Tiles: tiles})
		}
		i = j
	}
	return groups
}

func hasGap(line []*Tile) bool {
	for _, t := range line {
		if t == nil {
			return true
		}
	}
	return false
}
