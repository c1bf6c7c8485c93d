// Package console runs a two-player game over a line-based terminal.
package console

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
)

var errQuit = errors.New("quit")

type Session struct {
	game     *model.Game
	scanner  *bufio.Scanner
	renderer *render.Renderer
}

func NewSession(game *model.Game, in io.Reader, out io.Writer, useColor bool) *Session {
	return &Session{
		game:     game,
		scanner:  bufio.NewScanner(in),
		renderer: render.New(out, useColor),
	}
}

// Run plays turns until checkmate, a terminal state, "quit" or end of input.
func (s *Session) Run() error {
	for {
		s.renderer.Board(s.game.Board)

		if s.game.IsInCheckmate() {
			s.renderer.Status(s.game)
			return nil
		}
		if s.game.State.IsTerminal() {
			s.renderer.Message("Game Over!")
			return nil
		}
		s.renderer.Status(s.game)

		s.renderer.Message("%s:", render.TurnPrompt(s.game.CurrentPlayer))
		from, err := s.askSquare("Enter the source square (e.g., 'e2'): ")
		if err != nil {
			return ignoreStop(err)
		}
		to, err := s.askSquare("Enter the destination square (e.g., 'e4'): ")
		if err != nil {
			return ignoreStop(err)
		}

		ply, err := s.game.MakeMove(from, to)
		if err != nil {
			s.renderer.Message("%s", render.Rejection(err))
			continue
		}
		if ply.ExposesKing {
			s.renderer.Message("Warning: %s left its own king in check.", ply.Piece.Color)
		}
	}
}

// askSquare prompts until a well-formed square is entered.
func (s *Session) askSquare(prompt string) (model.Position, error) {
	for {
		s.renderer.Message("%s", prompt)
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return model.Position{}, err
			}
			return model.Position{}, io.EOF
		}
		line := strings.TrimSpace(s.scanner.Text())
		if strings.EqualFold(line, "quit") {
			return model.Position{}, errQuit
		}
		square, err := model.ParseSquare(line)
		if err != nil {
			s.renderer.Message("%s", render.Rejection(err))
			continue
		}
		return square, nil
	}
}

func ignoreStop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
		return nil
	}
	return err
}
