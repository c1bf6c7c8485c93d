package service

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type Clocks struct {
	White model.ClientClock `json:"white"`
	Black model.ClientClock `json:"black"`
}

// BoardView holds nil for empty squares, indexed [row][col].
type BoardView [model.BoardSize][model.BoardSize]*model.Piece

// GameState is the client view of a session.
type GameState struct {
	ID          string            `json:"id"`
	Owner       string            `json:"owner"`
	Board       BoardView         `json:"board"`
	ToMove      model.Color       `json:"toMove"`
	State       model.GameState   `json:"state"`
	IsCheck     bool              `json:"isCheck"`
	IsCheckmate bool              `json:"isCheckmate"`
	MoveHistory []model.Move      `json:"moveHistory"`
	LastMove    *model.SimpleMove `json:"lastMove"`
	Clocks      Clocks            `json:"clocks"`
}

// Session is one hot-seat game: the owner moves for both sides and any number
// of connections watch. The game itself is only touched under mu.
type Session struct {
	ID     string
	owner  string
	opener model.Color
	mu     sync.Mutex
	// sendMu is taken before mu is released so views receive states in
	// the order the moves were made.
	sendMu       sync.Mutex
	game         *model.Game
	clocks       map[model.Color]*model.Clock
	history      []model.Move
	lastMove     *model.SimpleMove
	lastActivity time.Time
	connections  *GameConnections
	now          func() time.Time
}

func NewSession(id, owner string, now func() time.Time) *Session {
	game := model.NewGame()
	return &Session{
		ID:     id,
		owner:  owner,
		opener: game.CurrentPlayer,
		game:   game,
		clocks: map[model.Color]*model.Clock{
			model.White: model.NewClock(),
			model.Black: model.NewClock(),
		},
		history:      make([]model.Move, 0),
		lastActivity: now(),
		connections:  NewGameConnections(),
		now:          now,
	}
}

func (s *Session) Owner() string {
	return s.owner
}

// MakeMove plays from -> to for whichever side is to move. Only the owner
// may move.
func (s *Session) MakeMove(playerID string, from, to model.Position) (model.Ply, error) {
	if playerID != s.owner {
		return model.Ply{}, ErrNotOwner
	}

	s.mu.Lock()
	mover := s.game.CurrentPlayer
	ply, err := s.game.MakeMove(from, to)
	if err != nil {
		s.mu.Unlock()
		return model.Ply{}, err
	}

	s.clocks[mover].Stop()
	if !s.game.State.IsTerminal() {
		s.clocks[mover.Opponent()].Start()
	}
	s.record(ply)
	s.lastMove = &model.SimpleMove{From: from, To: to}
	s.lastActivity = s.now()
	state := s.state()
	s.sendMu.Lock()
	s.mu.Unlock()

	s.broadcast(state)
	s.sendMu.Unlock()
	return ply, nil
}

// record starts a new move with each ply of the opening side and files the
// reply into it.
func (s *Session) record(ply model.Ply) {
	last := len(s.history) - 1
	if ply.Piece.Color == s.opener || last < 0 {
		s.history = append(s.history, model.Move{})
		last++
	}
	s.history[last].Set(ply)
}

func (s *Session) LegalMoves(from model.Position) []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ValidMovesFrom(from)
}

func (s *Session) GetState() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() GameState {
	gs := GameState{
		ID:          s.ID,
		Owner:       s.owner,
		ToMove:      s.game.CurrentPlayer,
		State:       s.game.State,
		IsCheck:     s.game.IsInCheck(),
		MoveHistory: append(make([]model.Move, 0, len(s.history)), s.history...),
		LastMove:    s.lastMove,
		Clocks: Clocks{
			White: s.clocks[model.White].Client(),
			Black: s.clocks[model.Black].Client(),
		},
	}
	gs.IsCheckmate = gs.IsCheck && s.game.IsInCheckmate()
	for row, cells := range s.game.Board.Grid() {
		for col, cell := range cells {
			if piece, ok := cell.Piece(); ok {
				gs.Board[row][col] = &piece
			}
		}
	}
	return gs
}

// idleSince reports whether nobody is connected and nothing happened since cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.connections.mu.RLock()
	connected := len(s.connections.connections)
	s.connections.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return connected == 0 && s.lastActivity.Before(cutoff)
}

func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	s.lastActivity = s.now()
	state := s.state()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		// keep the healthy connection, the caller closes the new one
		s.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for player %s", s.ID, playerID)

	s.send(playerID, conn, state)
	return nil
}

func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	// a stale handler must not drop a newer connection
	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		delete(s.connections.connections, playerID)
		log.Debugf("game %s: unregistered connection for player %s", s.ID, playerID)
	}
}

func (s *Session) broadcast(state GameState) {
	s.connections.mu.RLock()
	active := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		active[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range active {
		s.send(playerID, conn, state)
	}
}

func (s *Session) send(playerID string, conn Conn, state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", s.ID, err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnf("game %s: failed to send state to player %s: %v", s.ID, playerID, err)
		s.UnregisterConnection(playerID, conn)
	}
}

func (s *Session) closeConnections() {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.connections {
		_ = conn.Close()
		delete(s.connections.connections, playerID)
	}
}
