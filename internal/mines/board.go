package mines

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Log receives debug traces of board setup. Output is discarded until a
// caller replaces it.
var Log = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

type Cell struct {
	HasMine       bool
	Hidden        bool
	NeighborMines int // meaningless when HasMine
}

// Board is a square minesweeper board. It is not safe for concurrent use.
type Board struct {
	size      int
	mineCount int
	cells     []Cell
	revealed  map[Point]struct{}
	flagged   map[Point]struct{}
}

type RevealResult struct {
	Safe   bool
	Opened []Point
}

var directions = [8]Point{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

func validateConfig(size, mineCount int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive (size = %d)", ErrInvalidConfiguration, size)
	}
	if size > math.MaxInt/size {
		return fmt.Errorf("%w: size is too large (size = %d)", ErrInvalidConfiguration, size)
	}
	if mineCount < 0 {
		return fmt.Errorf("%w: mine count cannot be negative (mine_count = %d)", ErrInvalidConfiguration, mineCount)
	}
	if mineCount > size*size {
		return fmt.Errorf(
			"%w: number of mines cannot exceed total squares on the board (size = %d, mine_count = %d)",
			ErrInvalidConfiguration, size, mineCount,
		)
	}
	return nil
}

func newEmptyBoard(size, mineCount int) *Board {
	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i].Hidden = true
	}
	return &Board{
		size:      size,
		mineCount: mineCount,
		cells:     cells,
		revealed:  make(map[Point]struct{}),
		flagged:   make(map[Point]struct{}),
	}
}

// NewBoard creates a size x size board with mineCount mines placed using r.
// The same generator state always yields the same layout.
func NewBoard(size, mineCount int, r *rand.Rand) (*Board, error) {
	if err := validateConfig(size, mineCount); err != nil {
		return nil, err
	}
	b := newEmptyBoard(size, mineCount)
	b.placeMines(r)
	b.countNeighbors()
	return b, nil
}

// NewBoardWithMines creates a board with a fixed mine layout. Duplicate points
// are counted once.
func NewBoardWithMines(size int, mines []Point) (*Board, error) {
	if err := validateConfig(size, 0); err != nil {
		return nil, err
	}
	b := newEmptyBoard(size, 0)
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: mine at %s (size = %d)", ErrOutOfBounds, p, size)
		}
		c := &b.cells[b.index(p.Row, p.Col)]
		if !c.HasMine {
			c.HasMine = true
			b.mineCount++
		}
	}
	b.countNeighbors()
	return b, nil
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) checkBounds(row, col int) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("%w: %d:%d (size = %d)", ErrOutOfBounds, row, col, b.size)
	}
	return nil
}

func (b *Board) countAround(row, col int) int {
	n := 0
	for _, d := range directions {
		r, c := row+d.Row, col+d.Col
		if b.InBounds(r, c) && b.cells[b.index(r, c)].HasMine {
			n++
		}
	}
	return n
}

func (b *Board) countNeighbors() {
	for row := range b.size {
		for col := range b.size {
			c := &b.cells[b.index(row, col)]
			if !c.HasMine {
				c.NeighborMines = b.countAround(row, col)
			}
		}
	}
}

// Reveal opens the cell at row, col. Hitting a mine reports Safe = false and
// leaves the board untouched; otherwise the connected zero-count region around
// the cell is opened together with its numbered border.
func (b *Board) Reveal(row, col int) (RevealResult, error) {
	if err := b.checkBounds(row, col); err != nil {
		return RevealResult{}, err
	}
	if b.cells[b.index(row, col)].HasMine {
		return RevealResult{Safe: false}, nil
	}

	var opened []Point
	queue := []Point{{row, col}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		c := &b.cells[b.index(p.Row, p.Col)]
		if !c.Hidden {
			continue
		}
		c.Hidden = false
		b.revealed[p] = struct{}{}
		opened = append(opened, p)

		if c.NeighborMines != 0 {
			continue
		}
		for _, d := range directions {
			r, cc := p.Row+d.Row, p.Col+d.Col
			if b.InBounds(r, cc) && b.cells[b.index(r, cc)].Hidden {
				queue = append(queue, Point{r, cc})
			}
		}
	}

	return RevealResult{Safe: true, Opened: opened}, nil
}

func (b *Board) ToggleFlag(row, col int) error {
	if err := b.checkBounds(row, col); err != nil {
		return err
	}
	p := Point{row, col}
	if _, ok := b.flagged[p]; ok {
		delete(b.flagged, p)
	} else {
		b.flagged[p] = struct{}{}
	}
	return nil
}

// IsVictory reports whether every safe cell has been revealed.
func (b *Board) IsVictory() bool {
	return len(b.revealed) == b.size*b.size-b.mineCount
}

func (b *Board) Size() int { return b.size }

func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) RevealedCount() int { return len(b.revealed) }

func (b *Board) FlagCount() int { return len(b.flagged) }

func (b *Board) Cell(row, col int) (Cell, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(row, col)], nil
}

func (b *Board) IsFlagged(row, col int) bool {
	_, ok := b.flagged[Point{row, col}]
	return ok
}

func (b *Board) IsRevealed(row, col int) bool {
	_, ok := b.revealed[Point{row, col}]
	return ok
}

// Mines lists mine positions in row-major order.
func (b *Board) Mines() []Point {
	mines := make([]Point, 0, b.mineCount)
	for i, c := range b.cells {
		if c.HasMine {
			mines = append(mines, Point{i / b.size, i % b.size})
		}
	}
	return mines
}
