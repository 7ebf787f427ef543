package match3

import (
	"fmt"
	"strings"
)

// Grid owns the rows x columns mapping from Position to Tile.
// Cells are stored as cells[row][col]; row 0 is the bottom row.
type Grid struct {
	rows   int
	cols   int
	cells  [][]*Tile
	nextID uint64
}

// NewGrid creates an empty grid. Every cell is nil until filled.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.cells = make([][]*Tile, rows)
	for r := range g.cells {
		g.cells[r] = make([]*Tile, cols)
	}
	return g
}

// GridFromTypes builds a fully populated grid. types[r][c] becomes the tile at
// row r, column c, so types[0] is the bottom row. All rows must have equal length.
func GridFromTypes(types [][]TileType) *Grid {
	cols := 0
	if len(types) > 0 {
		cols = len(types[0])
	}
	g := NewGrid(len(types), cols)
	for r, row := range types {
		for c, t := range row {
			g.NewTile(t, P(r, c))
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.cols
}

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Get returns the tile at p.
func (g *Grid) Get(p Position) (*Tile, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("get %s on %dx%d grid: %w", p, g.rows, g.cols, ErrOutOfRange)
	}
	return g.cells[p.Row][p.Col], nil
}

// Set places t at p and updates its stored position. A nil t clears the cell.
func (g *Grid) Set(p Position, t *Tile) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set %s on %dx%d grid: %w", p, g.rows, g.cols, ErrOutOfRange)
	}
	g.cells[p.Row][p.Col] = t
	if t != nil {
		t.Pos = p
	}
	return nil
}

// Swap exchanges the occupants of a and b. Each tile's stored position is
// updated to its new cell. Adjacency is not checked here.
func (g *Grid) Swap(a, b Position) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("swap %s<->%s on %dx%d grid: %w", a, b, g.rows, g.cols, ErrOutOfRange)
	}
	ta, tb := g.cells[a.Row][a.Col], g.cells[b.Row][b.Col]
	g.cells[a.Row][a.Col] = tb
	g.cells[b.Row][b.Col] = ta
	if tb != nil {
		tb.Pos = a
	}
	if ta != nil {
		ta.Pos = b
	}
	return nil
}

// IsAdjacent reports whether a and b are orthogonal neighbours. With wrap set,
// cells on opposite edges of the same row or column are neighbours as well.
func (g *Grid) IsAdjacent(a, b Position, wrap bool) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr*dr+dc*dc == 1 {
		return true
	}
	if !wrap {
		return false
	}
	if dr == 0 && g.cols > 2 && abs(dc) == g.cols-1 {
		return true
	}
	if dc == 0 && g.rows > 2 && abs(dr) == g.rows-1 {
		return true
	}
	return false
}

// NewTile creates a tile of type t with a fresh ID and places it at p.
// Out-of-range positions panic: callers construct positions from the grid's
// own dimensions.
func (g *Grid) NewTile(t TileType, p Position) *Tile {
	g.nextID++
	tile := &Tile{ID: g.nextID, Type: t}
	if err := g.Set(p, tile); err != nil {
		panic(err)
	}
	return tile
}

// Tiles returns all non-nil tiles in row-major order starting at row 0.
func (g *Grid) Tiles() []*Tile {
	tiles := make([]*Tile, 0, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if t := g.cells[r][c]; t != nil {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// Types returns a copy of the tile types, indexed [row][col]. Empty cells are
// reported as -1 cast through int.
func (g *Grid) Types() [][]int {
	out := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if t := g.cells[r][c]; t != nil {
				out[r][c] = int(t.Type)
			} else {
				out[r][c] = -1
			}
		}
	}
	return out
}

// ClearMarks resets MarkedForRemoval on every tile.
func (g *Grid) ClearMarks() {
	for _, t := range g.Tiles() {
		t.MarkedForRemoval = false
	}
}

// Full reports whether every cell holds a tile.
func (g *Grid) Full() bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] == nil {
				return false
			}
		}
	}
	return true
}

// String renders the grid with the top row first, one glyph per tile.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := g.rows - 1; r >= 0; r-- {
		for c := 0; c < g.cols; c++ {
			if t := g.cells[r][c]; t != nil {
				sb.WriteRune(t.Type.Glyph())
			} else {
				sb.WriteRune('.')
			}
		}
		if r > 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// at returns the tile at (row, col) with no bounds check.
func (g *Grid) at(row, col int) *Tile {
	return g.cells[row][col]
}

// wrapPos folds p onto the torus.
func (g *Grid) wrapPos(p Position) Position {
	return Position{Row: mod(p.Row, g.rows), Col: mod(p.Col, g.cols)}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
