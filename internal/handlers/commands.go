package handlers

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"r": 2,
	"f": 2,
	"d": 0,
}

var ErrUnknownCommand = errors.New("unknown command")

type commandResult struct {
	opened   []mines.Point
	disclose bool
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("column must be an int")
		return
	}
	return
}

// executeCommand runs one text command ("r row col", "f row col", "d", "g")
// against s.
func executeCommand(s *game.Session, c string) (res commandResult, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return res, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return res, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return res, errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return
	case "d":
		res.disclose = true
		return
	case "r":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return res, err
		}
		rr, err := s.Reveal(row, col)
		res.opened = rr.Opened
		return res, err
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return res, err
		}
		return res, s.ToggleFlag(row, col)
	}
	return res, ErrUnknownCommand
}
