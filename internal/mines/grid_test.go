package mines

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellStateString(t *testing.T) {
	testCases := []struct {
		state CellState
		want  string
	}{
		{Unknown, " "},
		{Flagged, "F"},
		{0, "0"},
		{8, "8"},
		{CorrectlyFlagged, "*"},
		{ExplodedMine, "X"},
		{UnflaggedMine, "x"},
		{FalselyFlagged, "!"},
	}
	for _, test := range testCases {
		require.Equal(t, test.want, test.state.String())
	}
}

func TestSnapshot(t *testing.T) {
	b, err := NewBoardWithMines(3, []Point{{0, 0}, {2, 2}})
	require.NoError(t, err)

	_, err = b.Reveal(0, 2)
	require.NoError(t, err)
	require.NoError(t, b.ToggleFlag(0, 0))

	v := b.Snapshot()
	require.Equal(t, 3, v.Size)
	require.Equal(t, 2, v.MineCount)
	require.Equal(t, Grid{
		Flagged, 1, 0,
		Unknown, 2, 1,
		Unknown, Unknown, Unknown,
	}, v.Grid)
	require.Equal(t, CellState(2), v.At(1, 1))
	require.Equal(t, "F 1 0 \n  2 1 \n      \n", v.String())
}

func TestDisclose(t *testing.T) {
	b, err := NewBoardWithMines(3, []Point{{0, 0}, {2, 2}})
	require.NoError(t, err)

	require.NoError(t, b.ToggleFlag(0, 0))
	require.NoError(t, b.ToggleFlag(1, 0))

	v := b.Disclose(&Point{2, 2})
	require.Equal(t, Grid{
		CorrectlyFlagged, 1, 0,
		FalselyFlagged, 2, 1,
		0, 1, ExplodedMine,
	}, v.Grid)

	v = b.Disclose(nil)
	require.Equal(t, UnflaggedMine, v.At(2, 2))

	// disclosure is a view only
	require.Zero(t, b.RevealedCount())
}
