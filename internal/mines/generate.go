package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

/*
 * Pick cells uniformly over the whole grid and reject the ones that already
 * hold a mine. mineCount <= size^2 keeps this finite; only the final set of
 * mined cells matters, not the order they were picked in.
 */
func (b *Board) placeMines(r *rand.Rand) {
	placed, attempts := 0, 0
	for placed < b.mineCount {
		attempts++
		i := r.IntN(len(b.cells))
		if b.cells[i].HasMine {
			continue
		}
		b.cells[i].HasMine = true
		placed++
	}

	Log.WithFields(logrus.Fields{
		"size":      b.size,
		"mineCount": b.mineCount,
		"attempts":  attempts,
	}).Debug("placed mines")
}
