package model

var (
	rookDirs   = []Position{{Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: -1, Col: 0}, {Row: 0, Col: -1}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
	kingDirs   = queenDirs
)

// ValidMoves returns the squares the piece standing on from could reach given
// the current occupancy. Whether the move would leave the mover's own king
// attacked is not considered. Castling destinations are never included.
func (p Piece) ValidMoves(from Position, board *Board) []Position {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(from, board)
	case Rook:
		return p.slidingMoves(from, board, rookDirs)
	case Knight:
		return p.stepMoves(from, board, knightDirs)
	case Bishop:
		return p.slidingMoves(from, board, bishopDirs)
	case Queen:
		return p.slidingMoves(from, board, queenDirs)
	case King:
		return p.stepMoves(from, board, kingDirs)
	default:
		return []Position{}
	}
}

func (p Piece) isEnemy(other Piece) bool {
	return other.Color != p.Color
}

func (p Piece) pawnMoves(from Position, board *Board) []Position {
	moves := []Position{}
	dir := p.Color.pawnDirection()

	// forward 1, and forward 2 from the home row
	one := Position{Row: from.Row + dir, Col: from.Col}
	if IsWithinBounds(one) && board.grid[one.Row][one.Col].IsEmpty() {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == p.Color.pawnHomeRow() && IsWithinBounds(two) && board.grid[two.Row][two.Col].IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{1, -1} {
		target := Position{Row: from.Row + dir, Col: from.Col + dc}
		if !IsWithinBounds(target) {
			continue
		}
		if other, ok := board.grid[target.Row][target.Col].Piece(); ok && p.isEnemy(other) {
			moves = append(moves, target)
		}
	}
	return moves
}

// slidingMoves walks each direction to the edge, stopping on the first
// occupied square and including it only when it holds an enemy piece.
func (p Piece) slidingMoves(from Position, board *Board, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target, ok := board.NextSquareInDirection(from, dir)
		for ok {
			if other, occupied := board.grid[target.Row][target.Col].Piece(); occupied {
				if p.isEnemy(other) {
					moves = append(moves, target)
				}
				break
			}
			moves = append(moves, target)
			target, ok = board.NextSquareInDirection(target, dir)
		}
	}
	return moves
}

// stepMoves handles the fixed-offset pieces, knight and king.
func (p Piece) stepMoves(from Position, board *Board, offsets []Position) []Position {
	moves := []Position{}
	for _, offset := range offsets {
		target := from.add(offset)
		if !IsWithinBounds(target) {
			continue
		}
		if other, occupied := board.grid[target.Row][target.Col].Piece(); !occupied || p.isEnemy(other) {
			moves = append(moves, target)
		}
	}
	return moves
}
