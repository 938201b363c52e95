package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateNewGameDTO struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameMove int

const (
	Reveal GameMove = iota
	Flag
)

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "reveal":
		return Reveal, nil
	case "flag":
		return Flag, nil
	default:
		return 0, fmt.Errorf(`unknown move "%s", want "reveal" or "flag"`, s)
	}
}

type GameSessionDTO struct {
	GameSessionId string        `json:"game_session_id"`
	Token         string        `json:"token,omitempty"`
	Grid          mines.Grid    `json:"grid"`
	Size          int           `json:"size"`
	MineCount     int           `json:"mine_count"`
	Status        game.Status   `json:"status"`
	Flags         int           `json:"flags"`
	Revealed      int           `json:"revealed"`
	Opened        []mines.Point `json:"opened,omitempty"`
	StartedAt     int64         `json:"started_at"`
	EndedAt       *int64        `json:"ended_at,omitempty"`
	ElapsedMs     int64         `json:"elapsed_ms"`
}

func NewGameSessionDTO(gameSessionId int64, v game.View) *GameSessionDTO {
	var endedAt *int64
	if v.EndedAt != nil {
		e := v.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(gameSessionId, 10),
		Grid:          v.Grid,
		Size:          v.Size,
		MineCount:     v.MineCount,
		Status:        v.Status,
		Flags:         v.Flags,
		Revealed:      v.Revealed,
		StartedAt:     v.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
		ElapsedMs:     v.Elapsed.Milliseconds(),
	}
}
