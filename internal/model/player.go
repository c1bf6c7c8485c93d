package model

import "fmt"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "unknown"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// pawnDirection is the row step a pawn of this color advances by.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) pawnHomeRow() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) promotionRow() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}
