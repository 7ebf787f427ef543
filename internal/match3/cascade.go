package match3

// Drop describes one tile that moved during a cascade. Spawned tiles start
// stacked above the top edge, so From.Row may be >= the grid's row count.
type Drop struct {
	Tile     *Tile
	From     Position
	To       Position
	Distance int
	Spawned  bool
}

// DropAndRefill removes every marked tile, lets survivors fall, and fills the
// vacated top cells with new tiles drawn uniformly from types. No no-match
// constraint is applied to refills. The result is indexed by column; each
// column lists relocated survivors bottom-up, then spawned tiles bottom-up.
func DropAndRefill(g *Grid, types TypeSet, rng Random) [][]Drop {
	out := make([][]Drop, g.cols)
	for c := 0; c < g.cols; c++ {
		out[c] = dropColumn(g, c, types, rng)
	}
	return out
}

// dropColumn scans bottom to top keeping a FIFO of vacated rows. A surviving
// tile moves into the oldest vacated row and its own row joins the queue, so
// survivors keep their relative order.
func dropColumn(g *Grid, c int, types TypeSet, rng Random) []Drop {
	var drops []Drop
	vacated := make([]int, 0, g.rows)

	for r := 0; r < g.rows; r++ {
		t := g.cells[r][c]
		switch {
		case t == nil:
			vacated = append(vacated, r)
		case t.MarkedForRemoval:
			g.cells[r][c] = nil
			vacated = append(vacated, r)
		case len(vacated) > 0:
			dst := vacated[0]
			vacated = vacated[1:]
			g.cells[r][c] = nil
			g.cells[dst][c] = t
			t.Pos = P(dst, c)
			drops = append(drops, Drop{
				Tile:     t,
				From:     P(r, c),
				To:       P(dst, c),
				Distance: r - dst,
			})
			vacated = append(vacated, r)
		}
	}

	for i, r := range vacated {
		t := g.NewTile(types.Random(rng), P(r, c))
		from := P(g.rows+i, c)
		drops = append(drops, Drop{
			Tile:     t,
			From:     from,
			To:       t.Pos,
			Distance: from.Row - r,
			Spawned:  true,
		})
	}

	return drops
}

// FlattenDrops returns all drops column by column.
func FlattenDrops(cols [][]Drop) []Drop {
	var out []Drop
	for _, col := range cols {
		out = append(out, col...)
	}
	return out
}
