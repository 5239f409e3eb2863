// Package features computes static positional features over board
// snapshots. All functions are pure: they read a position and return a
// scalar, with no shared state between calls.
package features

import "github.com/notnil/chess"

// pieceValues are the classical material values; the king is excluded.
var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// minorHomeSquares are the starting squares of each side's minor pieces.
// A minor only counts as undeveloped on its own color's home squares.
var minorHomeSquares = map[chess.Color]map[chess.Square]bool{
	chess.White: {
		chess.B1: true, chess.C1: true, chess.F1: true, chess.G1: true,
	},
	chess.Black: {
		chess.B8: true, chess.C8: true, chess.F8: true, chess.G8: true,
	},
}

// pawnPST and knightPST are the per-square positional tables. Only pawns
// and knights have tables; every other piece type contributes 0.
var pawnPST = [64]int{
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
	0, 5, 5, 0, 5, 10, 50, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// MaterialBalance returns the signed material sum, white minus black.
func MaterialBalance(board *chess.Board) int {
	score := 0
	for _, piece := range board.SquareMap() {
		val, ok := pieceValues[piece.Type()]
		if !ok {
			continue
		}
		if piece.Color() == chess.White {
			score += val
		} else {
			score -= val
		}
	}
	return score
}

// DevelopedPieces counts minor pieces of both colors that have left their
// starting squares. The count is symmetric, not perspective-adjusted.
func DevelopedPieces(board *chess.Board) int {
	dev := 0
	for sq, piece := range board.SquareMap() {
		if piece.Type() != chess.Bishop && piece.Type() != chess.Knight {
			continue
		}
		if !minorHomeSquares[piece.Color()][sq] {
			dev++
		}
	}
	return dev
}

// PieceSquareScore sums per-square table values for all pieces. White
// pieces add their square's value; black pieces subtract the value of the
// vertically mirrored square.
func PieceSquareScore(board *chess.Board) int {
	score := 0
	for sq, piece := range board.SquareMap() {
		var table *[64]int
		switch piece.Type() {
		case chess.Pawn:
			table = &pawnPST
		case chess.Knight:
			table = &knightPST
		default:
			continue
		}
		if piece.Color() == chess.White {
			score += table[sq]
		} else {
			score -= table[mirror(sq)]
		}
	}
	return score
}

// mirror flips the rank of a square while keeping its file, so white's
// tables can be reused for black.
func mirror(sq chess.Square) chess.Square {
	return sq ^ 56
}

// OpponentThreats counts the board squares currently attacked by the side
// not to move.
func OpponentThreats(pos *chess.Position) int {
	attacked := AttackedSquares(pos.Board(), pos.Turn().Other())
	count := 0
	for _, a := range attacked {
		if a {
			count++
		}
	}
	return count
}

// InCheck reports whether the side to move is in check.
func InCheck(pos *chess.Position) bool {
	board := pos.Board()
	attacked := AttackedSquares(board, pos.Turn().Other())
	for sq, piece := range board.SquareMap() {
		if piece.Type() == chess.King && piece.Color() == pos.Turn() {
			return attacked[sq]
		}
	}
	return false
}
