package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a snapshot shows for one cell. Values 0 to 8 are open
// cells carrying their neighbor count.
type CellState int8

const (
	Unknown CellState = -2
	Flagged CellState = -1

	// Disclosure states, only produced once a game is over.
	CorrectlyFlagged CellState = 64 // flag on a mine
	ExplodedMine     CellState = 65 // the mine that ended the game
	FalselyFlagged   CellState = 66 // flag on a safe cell
	UnflaggedMine    CellState = 67
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "F"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	case s == CorrectlyFlagged:
		return "*"
	case s == ExplodedMine:
		return "X"
	case s == UnflaggedMine:
		return "x"
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View is a read-only copy of the board as a player (or, once disclosed,
// anyone) sees it. Grid is row-major.
type View struct {
	Size      int  `json:"size"`
	MineCount int  `json:"mine_count"`
	Grid      Grid `json:"grid"`
}

func (v View) At(row, col int) CellState {
	return v.Grid[row*v.Size+col]
}

func (v View) String() string {
	return v.Grid.ToString(v.Size)
}

// Snapshot returns what the player currently knows: hidden cells are Unknown
// or Flagged, revealed cells carry their neighbor count.
func (b *Board) Snapshot() View {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		p := Point{i / b.size, i % b.size}
		switch {
		case !c.Hidden:
			grid[i] = CellState(c.NeighborMines)
		case b.IsFlagged(p.Row, p.Col):
			grid[i] = Flagged
		default:
			grid[i] = Unknown
		}
	}
	return View{Size: b.size, MineCount: b.mineCount, Grid: grid}
}

// Disclose returns the fully uncovered board. exploded, when not nil, marks
// the mine that ended the game.
func (b *Board) Disclose(exploded *Point) View {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		p := Point{i / b.size, i % b.size}
		flagged := b.IsFlagged(p.Row, p.Col)
		switch {
		case c.HasMine && exploded != nil && *exploded == p:
			grid[i] = ExplodedMine
		case c.HasMine && flagged:
			grid[i] = CorrectlyFlagged
		case c.HasMine:
			grid[i] = UnflaggedMine
		case flagged && c.Hidden:
			grid[i] = FalselyFlagged
		default:
			grid[i] = CellState(c.NeighborMines)
		}
	}
	return View{Size: b.size, MineCount: b.mineCount, Grid: grid}
}
