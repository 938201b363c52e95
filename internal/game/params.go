package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Params struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

func (p Params) Validate() error {
	switch {
	case p.Size <= 0:
		return fmt.Errorf("%w: size must be positive", mines.ErrInvalidConfiguration)
	case p.Size > math.MaxInt/p.Size:
		return fmt.Errorf("%w: size is too large", mines.ErrInvalidConfiguration)
	case p.MineCount < 0:
		return fmt.Errorf("%w: mine count cannot be negative", mines.ErrInvalidConfiguration)
	case p.MineCount > p.Size*p.Size:
		return fmt.Errorf(
			"%w: number of mines cannot exceed total squares on the board",
			mines.ErrInvalidConfiguration,
		)
	}
	return nil
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d", p.Size, p.MineCount)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d", &p.Size, &p.MineCount)
	if n != 2 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}
