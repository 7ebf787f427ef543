package match3

import "fmt"

// typesOf parses rows of glyphs 'A'..'H', listed top row first.
func typesOf(rows ...string) [][]TileType {
	out := make([][]TileType, len(rows))
	for i, row := range rows {
		r := len(rows) - 1 - i
		out[r] = make([]TileType, 0, len(row))
		for _, ch := range row {
			if ch < 'A' || ch > 'H' {
				panic(fmt.Sprintf("bad glyph %q", ch))
			}
			out[r] = append(out[r], TileType(ch-'A'))
		}
	}
	return out
}

func gridOf(rows ...string) *Grid {
	return GridFromTypes(typesOf(rows...))
}

// stalemateTypes is an 8x8 board with six types, no runs and no move, in
// either linear or wrap mode. Cell (r, c) holds type (2r+c) mod 6.
func stalemateTypes() [][]TileType {
	out := make([][]TileType, 8)
	for r := range out {
		out[r] = make([]TileType, 8)
		for c := range out[r] {
			out[r][c] = TileType((2*r + c) % 6)
		}
	}
	return out
}

func stalemateGrid() *Grid {
	return GridFromTypes(stalemateTypes())
}

// oneMoveGrid is the stalemate board with (0,1) set to C. Its only move
// drops (1,0) into (0,0), completing C,C,C along the bottom row.
func oneMoveGrid() *Grid {
	types := stalemateTypes()
	types[0][1] = Coconut
	return GridFromTypes(types)
}

// withRow returns the stalemate board with row r replaced.
func withRow(r int, row string) *Grid {
	types := stalemateTypes()
	types[r] = typesOf(row)[0]
	return GridFromTypes(types)
}
