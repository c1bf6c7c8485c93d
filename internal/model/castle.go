package model

import "golang.org/x/exp/slices"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func isCastlingRequest(piece Piece, from, to Position) bool {
	return piece.Type == King && to.Row == from.Row && abs(to.Col-from.Col) == 2
}

// castlingSquares derives, for a king moving from -> to along its row, the
// rook's home square, the square the rook lands on and the squares strictly
// between king and rook.
func castlingSquares(from, to Position) (rookFrom, rookTo Position, between []Position) {
	row := from.Row
	if to.Col > from.Col {
		rookFrom = Position{Row: row, Col: BoardSize - 1}
		rookTo = Position{Row: row, Col: to.Col - 1}
		for col := from.Col + 1; col < rookFrom.Col; col++ {
			between = append(between, Position{Row: row, Col: col})
		}
	} else {
		rookFrom = Position{Row: row, Col: 0}
		rookTo = Position{Row: row, Col: to.Col + 1}
		for col := rookFrom.Col + 1; col < from.Col; col++ {
			between = append(between, Position{Row: row, Col: col})
		}
	}
	return rookFrom, rookTo, between
}

// CanCastle reports whether the king on from may castle towards to. The king
// and the rook on the matching corner must both be unmoved, every square
// between them empty, and neither the king's square nor any square between
// them attacked.
func (g *Game) CanCastle(from, to Position) bool {
	king, ok := g.Board.GetPieceAt(from)
	if !ok || king.Type != King || king.HasMoved {
		return false
	}
	if !IsWithinBounds(to) || !isCastlingRequest(king, from, to) {
		return false
	}

	rookFrom, _, between := castlingSquares(from, to)
	if !slices.Contains(between, to) {
		return false
	}
	rook, ok := g.Board.GetPieceAt(rookFrom)
	if !ok || rook.Type != Rook || rook.HasMoved || rook.Color != king.Color {
		return false
	}

	for _, square := range between {
		if _, occupied := g.Board.GetPieceAt(square); occupied {
			return false
		}
	}

	if g.IsSquareUnderAttack(from, king.Color) {
		return false
	}
	for _, square := range between {
		if g.IsSquareUnderAttack(square, king.Color) {
			return false
		}
	}
	return true
}

// HandleCastling relocates king and rook when CanCastle allows it and is a
// no-op otherwise.
func (g *Game) HandleCastling(from, to Position) bool {
	_, ok := g.castle(from, to)
	return ok
}

func (g *Game) castle(from, to Position) (*CastleRookMove, bool) {
	if !g.CanCastle(from, to) {
		return nil, false
	}
	rookFrom, rookTo, _ := castlingSquares(from, to)
	king, _ := g.Board.GetPieceAt(from)
	rook, _ := g.Board.GetPieceAt(rookFrom)
	king.HasMoved = true
	rook.HasMoved = true

	_ = g.Board.RemovePieceAt(from)
	_ = g.Board.RemovePieceAt(rookFrom)
	_ = g.Board.SetPieceAt(to, king)
	_ = g.Board.SetPieceAt(rookTo, rook)
	return &CastleRookMove{From: rookFrom, To: rookTo}, true
}
