package model

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type GameState int

const (
	Ongoing GameState = iota
	Check
	Checkmate
	Stalemate
	Draw
)

func (s GameState) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "unknown"
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameState) UnmarshalText(text []byte) error {
	for state := Ongoing; state <= Draw; state++ {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}

// IsTerminal reports whether no further moves may be played.
func (s GameState) IsTerminal() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

// Game is one rules session: the board, the side to move and the last
// recorded status. Stalemate and Draw are never produced.
type Game struct {
	Board         *Board
	CurrentPlayer Color
	State         GameState
}

// NewGame sets up the standard position with Black, the side on ranks 1
// and 2, to move.
func NewGame() *Game {
	return NewGameFromBoard(NewBoard(), Black)
}

func NewGameFromBoard(board *Board, toMove Color) *Game {
	return &Game{
		Board:         board,
		CurrentPlayer: toMove,
		State:         Ongoing,
	}
}

func (g *Game) SwitchPlayer() {
	g.CurrentPlayer = g.CurrentPlayer.Opponent()
}

// IsValidMove reports whether the side to move may play from -> to under the
// piece's movement rule. It does not reject moves that leave the mover's own
// king attacked; see LeavesKingInCheck.
func (g *Game) IsValidMove(from, to Position) bool {
	if !IsWithinBounds(from) || !IsWithinBounds(to) {
		return false
	}
	piece, ok := g.Board.GetPieceAt(from)
	if !ok || piece.Color != g.CurrentPlayer {
		return false
	}
	return slices.Contains(piece.ValidMoves(from, g.Board), to)
}

// ValidMovesFrom lists the destinations of the side-to-move's piece on from.
func (g *Game) ValidMovesFrom(from Position) []Position {
	piece, ok := g.Board.GetPieceAt(from)
	if !ok || piece.Color != g.CurrentPlayer {
		return []Position{}
	}
	return piece.ValidMoves(from, g.Board)
}

func (g *Game) FindKing(color Color) (Position, bool) {
	for _, pos := range g.Board.Pieces(color) {
		if piece, _ := g.Board.GetPieceAt(pos); piece.Type == King {
			return pos, true
		}
	}
	return Position{}, false
}

// IsSquareUnderAttack reports whether any piece not of the given color has
// square among its pseudo-legal destinations.
func (g *Game) IsSquareUnderAttack(square Position, color Color) bool {
	for _, pos := range g.Board.Pieces(color.Opponent()) {
		piece, _ := g.Board.GetPieceAt(pos)
		if slices.Contains(piece.ValidMoves(pos, g.Board), square) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether the current player's king is attacked. A board
// without that king is never in check.
func (g *Game) IsInCheck() bool {
	king, ok := g.FindKing(g.CurrentPlayer)
	if !ok {
		return false
	}
	return g.IsSquareUnderAttack(king, g.CurrentPlayer)
}

// IsInCheckmate tries every pseudo-legal move of the current player on a
// cloned board and reports true only if none of them lifts the check.
func (g *Game) IsInCheckmate() bool {
	if !g.IsInCheck() {
		return false
	}
	for _, from := range g.Board.Pieces(g.CurrentPlayer) {
		piece, _ := g.Board.GetPieceAt(from)
		for _, to := range piece.ValidMoves(from, g.Board) {
			if !g.probe(from, to).IsInCheck() {
				return false
			}
		}
	}
	return true
}

// LeavesKingInCheck reports whether the current player would still be in
// check after playing from -> to. The real board is not touched.
func (g *Game) LeavesKingInCheck(from, to Position) bool {
	return g.probe(from, to).IsInCheck()
}

func (g *Game) probe(from, to Position) *Game {
	board := g.Board.Clone()
	_ = board.MakeMove(from, to)
	return &Game{Board: board, CurrentPlayer: g.CurrentPlayer, State: g.State}
}

// HandleSpecialMoves resolves castling and promotion for a move from -> to.
// It dispatches on the piece still on from when called before the move is
// committed, or on the piece standing on to once from has been vacated.
func (g *Game) HandleSpecialMoves(from, to Position) {
	piece, ok := g.Board.GetPieceAt(from)
	if !ok {
		if piece, ok = g.Board.GetPieceAt(to); !ok {
			return
		}
	}
	switch piece.Type {
	case King:
		g.HandleCastling(from, to)
	case Pawn:
		g.HandlePawnPromotion(to)
	}
}

// HandlePawnPromotion replaces a pawn standing on its far row with a queen
// of the same color.
func (g *Game) HandlePawnPromotion(to Position) bool {
	piece, ok := g.Board.GetPieceAt(to)
	if !ok || piece.Type != Pawn || to.Row != piece.Color.promotionRow() {
		return false
	}
	return g.Board.SetPieceAt(to, Piece{Type: Queen, Color: piece.Color, HasMoved: true}) == nil
}

// MakeMove plays one turn for the current player: castling when the king is
// asked to move two columns, otherwise an ordinary move followed by
// promotion. On success the turn passes and State records check or mate for
// the new side to move. A rejected move leaves the game untouched.
func (g *Game) MakeMove(from, to Position) (Ply, error) {
	fail := func(err error) (Ply, error) {
		return Ply{}, &MoveError{From: from, To: to, Err: err}
	}

	if g.State.IsTerminal() {
		return fail(ErrGameOver)
	}
	if !IsWithinBounds(from) || !IsWithinBounds(to) {
		return fail(ErrOutOfRange)
	}
	piece, ok := g.Board.GetPieceAt(from)
	if !ok {
		return fail(ErrEmptySquare)
	}
	if piece.Color != g.CurrentPlayer {
		return fail(ErrNotYourTurn)
	}

	ply := Ply{Piece: piece, From: from, To: to}
	if isCastlingRequest(piece, from, to) {
		rookMove, ok := g.castle(from, to)
		if !ok {
			return fail(ErrCastlingNotAllowed)
		}
		ply.CastleRookMove = rookMove
	} else {
		if !g.IsValidMove(from, to) {
			return fail(ErrIllegalMove)
		}
		if captured, ok := g.Board.GetPieceAt(to); ok {
			ply.CapturedPiece = &captured
		}
		if err := g.Board.MovePiece(from, to); err != nil {
			return fail(err)
		}
		g.HandleSpecialMoves(from, to)
		if moved, _ := g.Board.GetPieceAt(to); moved.Type != piece.Type {
			promotion := moved.Type
			ply.Promotion = &promotion
		}
	}

	ply.ExposesKing = g.IsInCheck()
	g.SwitchPlayer()
	ply.Check = g.IsInCheck()
	ply.Checkmate = ply.Check && g.IsInCheckmate()

	switch {
	case ply.Checkmate:
		g.State = Checkmate
	case ply.Check:
		g.State = Check
	default:
		g.State = Ongoing
	}
	return ply, nil
}
