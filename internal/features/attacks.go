package features

import "github.com/notnil/chess"

// delta is a file/rank step. Steps are applied in board coordinates so
// attacks never wrap around the board edges.
type delta struct {
	file int
	rank int
}

var (
	knightDeltas = []delta{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingDeltas = []delta{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
	bishopDeltas = []delta{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDeltas   = []delta{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// AttackedSquares returns, for each of the 64 squares, whether it is
// attacked by at least one piece of the given color. A square occupied by
// a friendly piece still counts as attacked (defended); pawn attacks are
// the diagonal captures only, whether or not a capture is available.
func AttackedSquares(board *chess.Board, by chess.Color) [64]bool {
	var attacked [64]bool

	for sq, piece := range board.SquareMap() {
		if piece.Color() != by {
			continue
		}

		switch piece.Type() {
		case chess.Pawn:
			dir := 1
			if by == chess.Black {
				dir = -1
			}
			markSteps(&attacked, sq, []delta{{-1, dir}, {1, dir}})
		case chess.Knight:
			markSteps(&attacked, sq, knightDeltas)
		case chess.King:
			markSteps(&attacked, sq, kingDeltas)
		case chess.Bishop:
			markRays(&attacked, board, sq, bishopDeltas)
		case chess.Rook:
			markRays(&attacked, board, sq, rookDeltas)
		case chess.Queen:
			markRays(&attacked, board, sq, bishopDeltas)
			markRays(&attacked, board, sq, rookDeltas)
		}
	}

	return attacked
}

// markSteps marks single-step targets from sq that stay on the board.
func markSteps(attacked *[64]bool, sq chess.Square, deltas []delta) {
	file := int(sq) % 8
	rank := int(sq) / 8
	for _, d := range deltas {
		f, r := file+d.file, rank+d.rank
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		attacked[r*8+f] = true
	}
}

// markRays marks sliding attacks from sq along each delta, stopping at
// the first occupied square. The blocking square itself is attacked.
func markRays(attacked *[64]bool, board *chess.Board, sq chess.Square, deltas []delta) {
	file := int(sq) % 8
	rank := int(sq) / 8
	for _, d := range deltas {
		f, r := file+d.file, rank+d.rank
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			target := chess.Square(r*8 + f)
			attacked[target] = true
			if board.Piece(target) != chess.NoPiece {
				break
			}
			f += d.file
			r += d.rank
		}
	}
}
