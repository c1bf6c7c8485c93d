package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a hot-seat game owned by playerID.
func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID := gs.gameManager.NewGameID()

	if err := gs.gameManager.CreateGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove parses algebraic squares and plays the move for playerID.
func (gs *GameService) HandleMove(gameID string, playerID string, from, to string) (model.Ply, error) {
	src, err := model.ParseSquare(from)
	if err != nil {
		return model.Ply{}, err
	}
	dst, err := model.ParseSquare(to)
	if err != nil {
		return model.Ply{}, err
	}

	return gs.gameManager.MakeMove(gameID, playerID, src, dst)
}

func (gs *GameService) LegalMoves(gameID string, square string) ([]model.Position, error) {
	from, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}

	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
