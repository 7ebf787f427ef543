// Package match3 implements the simulation core of a match-three puzzle game:
// the tile grid, run detection (linear and toroidal), the destroy/compact/refill
// cascade, combo scoring, move analysis for hints and stalemate detection, and
// the turn state machine that sequences them.
//
// The package is UI-agnostic and deterministic for a given random source.
// Presentation is reached only through the Presenter interface, and animation
// completion comes back as Events posted to the Board.
package match3

import "fmt"

// TileType identifies the kind of a tile.
type TileType uint8

// The full tile enumeration. A session plays with a prefix of it.
const (
	Apple TileType = iota
	Broccoli
	Coconut
	Loaf
	MilkCarton
	Orange
	Cherry
	Grape
)

// AllTileTypes is the fixed enumeration in palette order.
var AllTileTypes = []TileType{Apple, Broccoli, Coconut, Loaf, MilkCarton, Orange, Cherry, Grape}

// String returns the display name of the type.
func (t TileType) String() string {
	switch t {
	case Apple:
		return "Apple"
	case Broccoli:
		return "Broccoli"
	case Coconut:
		return "Coconut"
	case Loaf:
		return "Loaf"
	case MilkCarton:
		return "MilkCarton"
	case Orange:
		return "Orange"
	case Cherry:
		return "Cherry"
	case Grape:
		return "Grape"
	default:
		return fmt.Sprintf("TileType(%d)", uint8(t))
	}
}

// Glyph returns a single-rune symbol used by text renderers and test fixtures.
func (t TileType) Glyph() rune {
	if int(t) < len(glyphs) {
		return glyphs[t]
	}
	return '?'
}

var glyphs = []rune{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H'}

// TypeSet is the palette of tile types active for a round.
type TypeSet []TileType

// NewTypeSet returns the first n types of AllTileTypes.
func NewTypeSet(n int) (TypeSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d types requested", ErrEmptyTypeSet, n)
	}
	if n > len(AllTileTypes) {
		return nil, fmt.Errorf("%w: %d types requested, only %d exist", ErrInvalidConfig, n, len(AllTileTypes))
	}
	set := make(TypeSet, n)
	copy(set, AllTileTypes[:n])
	return set, nil
}

// Random picks a type uniformly from the set.
func (s TypeSet) Random(rng Random) TileType {
	return s[rng.Intn(len(s))]
}

// Contains reports whether t is part of the set.
func (s TypeSet) Contains(t TileType) bool {
	for _, x := range s {
		if x == t {
			return true
		}
	}
	return false
}

// Position addresses a grid cell. Row 0 is the bottom row.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Overlay is the transient visual marker carried by a tile.
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayHover
	OverlaySelected
	OverlayHighlighted
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "None"
	case OverlayHover:
		return "Hover"
	case OverlaySelected:
		return "Selected"
	case OverlayHighlighted:
		return "Highlighted"
	default:
		return "Unknown"
	}
}

// Tile is one piece on the board. Identity is the pointer; the logical slot
// is wherever the grid holds it, mirrored in Pos.
type Tile struct {
	ID               uint64
	Type             TileType
	Pos              Position
	Selected         bool
	MarkedForRemoval bool
	Overlay          Overlay
}

// String returns a compact description for logs and test failures.
func (t *Tile) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d@%s", t.Type, t.ID, t.Pos)
}
