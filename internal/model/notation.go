package model

import (
	"fmt"
	"strings"
)

// ParseSquare converts a two-character coordinate such as "e2" into a board
// position. Files a-h map to columns 0-7 and rank 8 maps to row 0.
func ParseSquare(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Position{Row: BoardSize - 1 - int(rank-'1'), Col: int(file - 'a')}, nil
}

func (p Position) String() string {
	if !IsWithinBounds(p) {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, BoardSize-p.Row)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
