// Package render draws boards and status lines for a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chess-backend/internal/model"
)

const (
	fileLabels = "  a b c d e f g h"
	emptyGlyph = "·"
)

var glyphs = map[model.Color]map[model.PieceType]string{
	model.White: {
		model.King:   "♔",
		model.Queen:  "♕",
		model.Rook:   "♖",
		model.Bishop: "♗",
		model.Knight: "♘",
		model.Pawn:   "♙",
	},
	model.Black: {
		model.King:   "♚",
		model.Queen:  "♛",
		model.Rook:   "♜",
		model.Bishop: "♝",
		model.Knight: "♞",
		model.Pawn:   "♟",
	},
}

func Glyph(piece model.Piece) string {
	return glyphs[piece.Color][piece.Type]
}

type Renderer struct {
	out    io.Writer
	pieces map[model.Color]*color.Color
	label  *color.Color
	empty  *color.Color
	alert  *color.Color
}

func New(out io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		out: out,
		pieces: map[model.Color]*color.Color{
			model.White: color.New(color.FgHiWhite, color.Bold),
			model.Black: color.New(color.FgHiRed, color.Bold),
		},
		label: color.New(color.FgCyan),
		empty: color.New(color.FgHiBlack),
		alert: color.New(color.FgYellow, color.Bold),
	}
	if !useColor {
		for _, c := range []*color.Color{r.pieces[model.White], r.pieces[model.Black], r.label, r.empty, r.alert} {
			c.DisableColor()
		}
	}
	return r
}

// Board prints the grid with row 0 on top, labelled as rank 8.
func (r *Renderer) Board(board *model.Board) {
	r.label.Fprintln(r.out, fileLabels)
	grid := board.Grid()
	for row, cells := range grid {
		rank := model.BoardSize - row
		r.label.Fprintf(r.out, "%d ", rank)
		for _, cell := range cells {
			if piece, ok := cell.Piece(); ok {
				r.pieces[piece.Color].Fprint(r.out, Glyph(piece))
			} else {
				r.empty.Fprint(r.out, emptyGlyph)
			}
			fmt.Fprint(r.out, " ")
		}
		r.label.Fprintf(r.out, " %d\n", rank)
	}
	r.label.Fprintln(r.out, fileLabels)
}

// Status prints check and checkmate announcements for the side to move.
func (r *Renderer) Status(game *model.Game) {
	if line := StatusLine(game); line != "" {
		r.alert.Fprintln(r.out, line)
	}
}

func (r *Renderer) Message(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func StatusLine(game *model.Game) string {
	switch {
	case game.IsInCheckmate():
		return fmt.Sprintf("Checkmate! %s wins!", title(game.CurrentPlayer.Opponent()))
	case game.IsInCheck():
		return fmt.Sprintf("%s is in check!", title(game.CurrentPlayer))
	}
	return ""
}

func TurnPrompt(player model.Color) string {
	return fmt.Sprintf("%s to move", title(player))
}

// Rejection explains why a move was refused.
func Rejection(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidSquare):
		return "Invalid input. Please try again."
	case errors.Is(err, model.ErrEmptySquare):
		return "There is no piece on that square."
	case errors.Is(err, model.ErrNotYourTurn):
		return "That piece belongs to your opponent."
	case errors.Is(err, model.ErrCastlingNotAllowed):
		return "Castling is not allowed here."
	case errors.Is(err, model.ErrGameOver):
		return "The game is over."
	}
	return "Invalid move. Please try again."
}

func title(c model.Color) string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
