package model

import "fmt"

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one applied half-move and the status it produced.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      *PieceType      `json:"promotion"`
	// ExposesKing is set when the mover's own king is attacked after the move.
	ExposesKing bool `json:"exposesKing"`
	Check       bool `json:"check"`
	Checkmate   bool `json:"checkmate"`
}

func (p Ply) String() string {
	sep := "-"
	if p.CapturedPiece != nil {
		sep = "x"
	}
	s := fmt.Sprintf("%s%s%s", p.From, sep, p.To)
	switch {
	case p.CastleRookMove != nil && p.To.Col > p.From.Col:
		s = "O-O"
	case p.CastleRookMove != nil:
		s = "O-O-O"
	}
	if p.Promotion != nil {
		s += "=Q"
	}
	if p.Checkmate {
		s += "#"
	} else if p.Check {
		s += "+"
	}
	return s
}

// Move pairs the opening side's ply with the reply that followed it.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// Set files ply under its mover's color.
func (m *Move) Set(ply Ply) {
	if ply.Piece.Color == White {
		m.WhitePly = &ply
		return
	}
	m.BlackPly = &ply
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
