package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchesNoRun(t *testing.T) {
	g := withRow(3, "AABCDEFA")

	groups := FindMatches(g, false)
	assert.Empty(t, groups)
	assert.Empty(t, MarkedTiles(g))
}

func TestFindMatchesRowOfThree(t *testing.T) {
	g := withRow(3, "AAACDEFB")

	groups := FindMatches(g, false)
	require.Len(t, groups, 1)
	assert.Equal(t, Horizontal, groups[0].Axis)
	assert.Equal(t, Apple, groups[0].Type)
	assert.Equal(t, []Position{P(3, 0), P(3, 1), P(3, 2)}, groups[0].Positions())

	marked := MarkedTiles(g)
	require.Len(t, marked, 3)
	for _, tile := range marked {
		assert.Equal(t, 3, tile.Pos.Row)
	}
}

func TestFindMatchesRunAcrossWrapSeam(t *testing.T) {
	g := withRow(3, "ABCDEFAA")

	assert.Empty(t, FindMatches(g, false), "linear scan must not see the seam")

	groups := FindMatches(g, true)
	require.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].Size())
	assert.ElementsMatch(t, []Position{P(3, 6), P(3, 7), P(3, 0)}, groups[0].Positions())
}

func TestFindMatchesLongRunIsOneGroup(t *testing.T) {
	types := stalemateTypes()
	for r := 3; r <= 6; r++ {
		types[r][0] = Apple
	}
	g := GridFromTypes(types)

	groups := FindMatches(g, false)
	require.Len(t, groups, 1)
	assert.Equal(t, Vertical, groups[0].Axis)
	assert.Equal(t, 4, groups[0].Size())

	points, _ := ScoreGroups(groups, 1, 10, 1)
	assert.Equal(t, 10*2*1, points)
	points, _ = ScoreGroups(groups, 3, 10, 1)
	assert.Equal(t, 10*2*3, points)
}

func TestFindMatchesUniformRingIsWalkedOnce(t *testing.T) {
	g := gridOf(
		"BCD",
		"CDB",
		"AAA",
	)

	groups := FindMatches(g, true)
	require.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].Size())
}

func TestFindMatchesCrossUnionsMarks(t *testing.T) {
	g := gridOf(
		"CAD",
		"AAA",
		"BAC",
	)

	groups := FindMatches(g, false)
	require.Len(t, groups, 2)
	assert.Equal(t, Horizontal, groups[0].Axis)
	assert.Equal(t, Vertical, groups[1].Axis)

	assert.Len(t, MarkedTiles(g), 5, "centre tile belongs to both groups but is removed once")
}

func TestHasMatchesDoesNotMark(t *testing.T) {
	g := withRow(3, "AAACDEFB")

	assert.True(t, HasMatches(g, false))
	assert.Empty(t, MarkedTiles(g))
}

func TestFindMatchesToQuiescence(t *testing.T) {
	rng := NewScriptedRandom(3, 4, 5, 0, 1, 2, 3, 4, 5)
	types, _ := NewTypeSet(6)

	for _, wrap := range []bool{false, true} {
		g := withRow(3, "AAAADEFB")
		for i := 0; i < 20 && len(FindMatches(g, wrap)) > 0; i++ {
			DropAndRefill(g, types, rng)
		}
		assert.False(t, HasMatches(g, wrap), "wrap=%v\n%s", wrap, g)
	}
}
