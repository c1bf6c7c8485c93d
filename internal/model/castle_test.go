package model

import (
	"testing"

	"github.com/benbeisheim/chess-backend/internal/testutil"
)

func castlingBoard(t *testing.T, extra map[Position]Piece) *Board {
	t.Helper()
	pieces := map[Position]Piece{
		pos(0, 4): w(King),
		pos(0, 0): w(Rook),
		pos(0, 7): w(Rook),
		pos(7, 4): b(King),
		pos(7, 0): b(Rook),
		pos(7, 7): b(Rook),
	}
	for k, v := range extra {
		pieces[k] = v
	}
	return boardWith(t, pieces)
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name             string
		color            Color
		from, to         Position
		rookFrom, rookTo Position
	}{
		{"white king side", White, pos(0, 4), pos(0, 6), pos(0, 7), pos(0, 5)},
		{"white queen side", White, pos(0, 4), pos(0, 2), pos(0, 0), pos(0, 3)},
		{"black king side", Black, pos(7, 4), pos(7, 6), pos(7, 7), pos(7, 5)},
		{"black queen side", Black, pos(7, 4), pos(7, 2), pos(7, 0), pos(7, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGameFromBoard(castlingBoard(t, nil), tt.color)

			testutil.AssertTrue(t, game.CanCastle(tt.from, tt.to), "CanCastle")
			testutil.AssertTrue(t, game.HandleCastling(tt.from, tt.to), "HandleCastling")

			king, _ := game.Board.GetPieceAt(tt.to)
			testutil.AssertEqual(t, king, Piece{Type: King, Color: tt.color, HasMoved: true})
			rook, _ := game.Board.GetPieceAt(tt.rookTo)
			testutil.AssertEqual(t, rook, Piece{Type: Rook, Color: tt.color, HasMoved: true})

			_, ok := game.Board.GetPieceAt(tt.from)
			testutil.AssertFalse(t, ok, "king origin emptied")
			_, ok = game.Board.GetPieceAt(tt.rookFrom)
			testutil.AssertFalse(t, ok, "rook origin emptied")
		})
	}
}

func TestCastlingRejected(t *testing.T) {
	moved := func(p Piece) Piece {
		p.HasMoved = true
		return p
	}

	tests := []struct {
		name     string
		extra    map[Position]Piece
		from, to Position
	}{
		{"king has moved", map[Position]Piece{pos(0, 4): moved(w(King))}, pos(0, 4), pos(0, 6)},
		{"rook has moved", map[Position]Piece{pos(0, 7): moved(w(Rook))}, pos(0, 4), pos(0, 6)},
		{"rook missing", map[Position]Piece{pos(0, 7): w(Knight)}, pos(0, 4), pos(0, 6)},
		{"enemy rook in the corner", map[Position]Piece{pos(0, 7): b(Rook)}, pos(0, 4), pos(0, 6)},
		{"path occupied", map[Position]Piece{pos(0, 6): w(Knight)}, pos(0, 4), pos(0, 6)},
		{"queen side path occupied at b", map[Position]Piece{pos(0, 1): b(Knight)}, pos(0, 4), pos(0, 2)},
		{"path attacked", map[Position]Piece{pos(5, 5): b(Rook)}, pos(0, 4), pos(0, 6)},
		{"destination attacked", map[Position]Piece{pos(4, 2): b(Rook)}, pos(0, 4), pos(0, 2)},
		{"king in check", map[Position]Piece{pos(3, 4): b(Queen)}, pos(0, 4), pos(0, 6)},
		{"too far", nil, pos(0, 4), pos(0, 7)},
		{"one step", nil, pos(0, 4), pos(0, 5)},
		{"not along the row", nil, pos(0, 4), pos(2, 6)},
		{"no king", nil, pos(0, 3), pos(0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGameFromBoard(castlingBoard(t, tt.extra), White)
			before := game.Board.Grid()

			testutil.AssertFalse(t, game.CanCastle(tt.from, tt.to), "CanCastle")
			testutil.AssertFalse(t, game.HandleCastling(tt.from, tt.to), "HandleCastling")
			testutil.AssertEqual(t, game.Board.Grid(), before, "board unchanged")
		})
	}
}

func TestMakeMoveCastles(t *testing.T) {
	game := NewGameFromBoard(castlingBoard(t, nil), White)

	ply, err := game.MakeMove(pos(0, 4), pos(0, 6))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ply.CastleRookMove, &CastleRookMove{From: pos(0, 7), To: pos(0, 5)})
	testutil.AssertEqual(t, ply.String(), "O-O")
	testutil.AssertEqual(t, game.CurrentPlayer, Black)

	ply, err = game.MakeMove(pos(7, 4), pos(7, 2))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ply.String(), "O-O-O")

	// neither side may castle again
	testutil.AssertFalse(t, game.CanCastle(pos(0, 6), pos(0, 4)))
}

func TestMakeMoveCastlingRejectedLeavesGame(t *testing.T) {
	game := NewGameFromBoard(castlingBoard(t, map[Position]Piece{pos(5, 5): b(Rook)}), White)
	before := game.Board.Grid()

	_, err := game.MakeMove(pos(0, 4), pos(0, 6))
	testutil.AssertErrorIs(t, err, ErrCastlingNotAllowed)
	testutil.AssertEqual(t, game.Board.Grid(), before)
	testutil.AssertEqual(t, game.CurrentPlayer, White)
}

func TestHandleSpecialMovesAfterOrdinaryKingMove(t *testing.T) {
	game := NewGameFromBoard(castlingBoard(t, nil), White)

	testutil.AssertTrue(t, game.IsValidMove(pos(0, 4), pos(0, 5)))
	testutil.AssertNoError(t, game.Board.MovePiece(pos(0, 4), pos(0, 5)))
	game.HandleSpecialMoves(pos(0, 4), pos(0, 5))

	// the king already stepped, so no rook moves
	rook, _ := game.Board.GetPieceAt(pos(0, 7))
	testutil.AssertEqual(t, rook, w(Rook))
	king, _ := game.Board.GetPieceAt(pos(0, 5))
	testutil.AssertEqual(t, king, Piece{Type: King, Color: White, HasMoved: true})
}

func TestHandleSpecialMovesBeforeCommitCastles(t *testing.T) {
	game := NewGameFromBoard(castlingBoard(t, nil), White)

	game.HandleSpecialMoves(pos(0, 4), pos(0, 2))

	king, _ := game.Board.GetPieceAt(pos(0, 2))
	testutil.AssertEqual(t, king.Type, King)
	rook, _ := game.Board.GetPieceAt(pos(0, 3))
	testutil.AssertEqual(t, rook.Type, Rook)
}
