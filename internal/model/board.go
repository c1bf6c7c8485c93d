package model

import "fmt"

const BoardSize = 8

type PieceType int

const (
	Pawn PieceType = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "unknown"
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for t := Pawn; t <= King; t++ {
		if t.String() == string(text) {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

// Position is a (row, col) grid index. It encodes as an algebraic square in JSON.
type Position struct {
	Row int
	Col int
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Cell is either empty or holds exactly one piece.
type Cell struct {
	piece    Piece
	occupied bool
}

var EmptyCell = Cell{}

func Occupied(p Piece) Cell {
	return Cell{piece: p, occupied: true}
}

func (c Cell) IsEmpty() bool {
	return !c.occupied
}

func (c Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

// Board is an 8x8 grid addressed by (row, col). Rows 0 and 7 are the back
// ranks; White starts on rows 0-1 and Black on rows 6-7.
type Board struct {
	grid [BoardSize][BoardSize]Cell
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board in the standard starting setup.
func NewBoard() *Board {
	board := &Board{}
	for col := 0; col < BoardSize; col++ {
		board.grid[0][col] = Occupied(Piece{Type: backRank[col], Color: White})
		board.grid[1][col] = Occupied(Piece{Type: Pawn, Color: White})
		board.grid[6][col] = Occupied(Piece{Type: Pawn, Color: Black})
		board.grid[7][col] = Occupied(Piece{Type: backRank[col], Color: Black})
	}
	return board
}

func NewEmptyBoard() *Board {
	return &Board{}
}

// Clone returns a deep copy; the grid is a value array so a struct copy suffices.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func IsWithinBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

func (b *Board) IsWithinBounds(pos Position) bool {
	return IsWithinBounds(pos)
}

func outOfRange(pos Position) error {
	return fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, pos.Row, pos.Col)
}

// CellAt is the checked read of a single cell.
func (b *Board) CellAt(pos Position) (Cell, error) {
	if !IsWithinBounds(pos) {
		return EmptyCell, outOfRange(pos)
	}
	return b.grid[pos.Row][pos.Col], nil
}

// GetPieceAt returns the piece at pos. Off-board positions report no piece.
func (b *Board) GetPieceAt(pos Position) (Piece, bool) {
	if !IsWithinBounds(pos) {
		return Piece{}, false
	}
	return b.grid[pos.Row][pos.Col].Piece()
}

func (b *Board) SetPieceAt(pos Position, piece Piece) error {
	if !IsWithinBounds(pos) {
		return outOfRange(pos)
	}
	b.grid[pos.Row][pos.Col] = Occupied(piece)
	return nil
}

func (b *Board) RemovePieceAt(pos Position) error {
	if !IsWithinBounds(pos) {
		return outOfRange(pos)
	}
	b.grid[pos.Row][pos.Col] = EmptyCell
	return nil
}

// MakeMove relocates whatever is at from onto to, overwriting any occupant,
// and leaves HasMoved untouched. It is meant for hypothetical boards.
func (b *Board) MakeMove(from, to Position) error {
	if !IsWithinBounds(from) {
		return outOfRange(from)
	}
	if !IsWithinBounds(to) {
		return outOfRange(to)
	}
	b.grid[to.Row][to.Col] = b.grid[from.Row][from.Col]
	b.grid[from.Row][from.Col] = EmptyCell
	return nil
}

// MovePiece commits a move: like MakeMove, but the moved piece is marked as
// having moved. An empty source square is a no-op.
func (b *Board) MovePiece(from, to Position) error {
	if !IsWithinBounds(from) {
		return outOfRange(from)
	}
	if !IsWithinBounds(to) {
		return outOfRange(to)
	}
	piece, ok := b.grid[from.Row][from.Col].Piece()
	if !ok {
		return nil
	}
	piece.HasMoved = true
	b.grid[to.Row][to.Col] = Occupied(piece)
	b.grid[from.Row][from.Col] = EmptyCell
	return nil
}

// NextSquareInDirection returns the neighbour of pos one step along dir, if it
// is still on the board.
func (b *Board) NextSquareInDirection(pos, dir Position) (Position, bool) {
	next := pos.add(dir)
	return next, IsWithinBounds(next)
}

// Grid returns a copy of the cells, row by row, for rendering.
func (b *Board) Grid() [BoardSize][BoardSize]Cell {
	return b.grid
}

// Pieces returns the position of every piece of the given color in row-major order.
func (b *Board) Pieces(color Color) []Position {
	positions := []Position{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if piece, ok := b.grid[row][col].Piece(); ok && piece.Color == color {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}
