package service

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameExists       = errors.New("game already exists")
	ErrNotOwner         = errors.New("only the player who created this game can move")
	ErrAlreadyConnected = errors.New("player already has an active connection")
)
