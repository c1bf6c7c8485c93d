package model

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chess-backend/internal/testutil"
)

var fenLetters = map[PieceType]byte{Pawn: 'p', Rook: 'r', Knight: 'n', Bishop: 'b', Queen: 'q', King: 'k'}

// toFEN reads row r as rank r+1, so White sits on ranks 1-2 as usual.
// Castling and en passant are left out since neither is generated here.
func toFEN(board *Board, toMove Color) string {
	var sb strings.Builder
	for row := BoardSize - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < BoardSize; col++ {
			piece, ok := board.GetPieceAt(pos(row, col))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			letter := fenLetters[piece.Type]
			if piece.Color == White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if toMove == Black {
		side = "b"
	}
	return sb.String() + " " + side + " - - 0 1"
}

func referenceMoves(board *Board, toMove Color) []SimpleMove {
	ref := dragontoothmg.ParseFen(toFEN(board, toMove))
	moves := ref.GenerateLegalMoves()
	out := make([]SimpleMove, 0, len(moves))
	for i := range moves {
		m := moves[i]
		from, to := int(m.From()), int(m.To())
		out = append(out, SimpleMove{From: pos(from/8, from%8), To: pos(to/8, to%8)})
	}
	return out
}

func pseudoLegalMoves(game *Game) []SimpleMove {
	out := []SimpleMove{}
	for _, from := range game.Board.Pieces(game.CurrentPlayer) {
		for _, to := range game.ValidMovesFrom(from) {
			out = append(out, SimpleMove{From: from, To: to})
		}
	}
	return out
}

// In quiet positions with no pins, no checks and no attacked king flight
// squares, pseudo-legal and legal move lists coincide.
func TestMoveGenerationMatchesReference(t *testing.T) {
	game := NewGame()
	line := []SimpleMove{
		{From: pos(6, 4), To: pos(4, 4)},
		{From: pos(1, 4), To: pos(3, 4)},
		{From: pos(7, 6), To: pos(5, 5)},
		{From: pos(0, 1), To: pos(2, 2)},
		{From: pos(7, 5), To: pos(4, 2)},
	}

	for i := 0; ; i++ {
		t.Run(fmt.Sprintf("ply %d", i), func(t *testing.T) {
			got := pseudoLegalMoves(game)
			want := referenceMoves(game.Board, game.CurrentPlayer)
			testutil.AssertSameElements(t, got, want, toFEN(game.Board, game.CurrentPlayer))
		})
		if i == len(line) {
			break
		}
		_, err := game.MakeMove(line[i].From, line[i].To)
		testutil.AssertNoError(t, err, "ply %d", i)
	}
}

func TestStartingPositionFEN(t *testing.T) {
	testutil.AssertEqual(t, toFEN(NewBoard(), White), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
}
