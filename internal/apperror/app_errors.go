package apperror

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid room configuration")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrInvalidMove   = errors.New("invalid move")
)
