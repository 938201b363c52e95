package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Inspector is the read side of a board; *mines.Board satisfies it.
type Inspector interface {
	Size() int
	Cell(row, col int) (mines.Cell, error)
	IsFlagged(row, col int) bool
}

// Render prints the board with 1-based headers. With revealAll every cell is
// shown as if it were open and flags are not drawn.
func Render(w io.Writer, b Inspector, revealAll bool) {
	size := b.Size()

	header := make([]string, size)
	for i := range size {
		header[i] = fmt.Sprint(i + 1)
	}
	separator := strings.Repeat("+---", size) + "+"

	var sb strings.Builder
	sb.WriteString("\n    " + strings.Join(header, "   ") + "\n")
	for row := range size {
		sb.WriteString(separator + "\n")
		fmt.Fprintf(&sb, "%d |", row+1)
		for col := range size {
			cell, _ := b.Cell(row, col)
			switch {
			case revealAll || !cell.Hidden:
				if cell.HasMine {
					sb.WriteString(" x |")
				} else {
					fmt.Fprintf(&sb, " %d |", cell.NeighborMines)
				}
			case b.IsFlagged(row, col):
				sb.WriteString(" F |")
			default:
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(separator + "\n")

	io.WriteString(w, sb.String())
}
