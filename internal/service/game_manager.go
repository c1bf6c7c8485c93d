package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/chess-backend/internal/model"
)

type GameManager struct {
	games map[string]*Session
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

// NewGameManager keeps sessions until they have been idle for ttl. A zero
// ttl disables sweeping.
func NewGameManager(ttl time.Duration) *GameManager {
	return newGameManagerWithClock(ttl, time.Now)
}

func newGameManagerWithClock(ttl time.Duration, now func() time.Time) *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
		ttl:   ttl,
		now:   now,
	}
}

// Run sweeps idle sessions every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := gm.Sweep(); n > 0 {
				log.Infof("swept %d idle games", n)
			}
		}
	}
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (gm *GameManager) Sweep() int {
	if gm.ttl <= 0 {
		return 0
	}
	cutoff := gm.now().Add(-gm.ttl)

	gm.mu.Lock()
	defer gm.mu.Unlock()

	removed := 0
	for id, session := range gm.games {
		if session.idleSince(cutoff) {
			session.closeConnections()
			delete(gm.games, id)
			removed++
		}
	}
	return removed
}

func (gm *GameManager) CreateGame(gameID, owner string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = NewSession(gameID, owner, gm.now)
	log.Infof("game %s created by %s", gameID, owner)
	return nil
}

func (gm *GameManager) NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, from, to model.Position) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}

	ply, err := game.MakeMove(playerID, from, to)
	if err != nil {
		log.Debugf("game %s: rejected move %s-%s from %s: %v", gameID, from, to, playerID, err)
		return model.Ply{}, err
	}
	log.Debugf("game %s: %s played %s", gameID, ply.Piece.Color, ply)
	return ply, nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(from), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}
