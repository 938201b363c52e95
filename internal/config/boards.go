package config

type Boards struct {
	MaxSize int
}

// NewBoards reads BOARD_MAX_SIZE, the largest side length the server will
// allocate a board for.
func NewBoards() (*Boards, error) {
	maxSize, err := lookupInt("BOARD_MAX_SIZE", 30)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, errNotPositive("BOARD_MAX_SIZE")
	}
	return &Boards{MaxSize: maxSize}, nil
}
