package model

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange         = errors.New("position out of range")
	ErrEmptySquare        = errors.New("no piece at from square")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrCastlingNotAllowed = errors.New("castling not allowed")
	ErrInvalidSquare      = errors.New("invalid square")
	ErrGameOver           = errors.New("game is over")
)

// MoveError wraps a rejected move with the squares involved.
type MoveError struct {
	From Position
	To   Position
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s-%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
