package oracle

import "github.com/notnil/chess"

// Score is an engine evaluation relative to the side to move. When Mate is
// set, CP holds a mate distance in moves (negative when the side to move is
// getting mated) instead of centipawns.
type Score struct {
	CP   int
	Mate bool
}

// Centipawns converts the score to a single centipawn value from White's
// perspective, regardless of whose turn it is. Mate scores map to the
// mateScore magnitude, signed toward the winning side. A mate distance of
// zero means the side to move is already checkmated, so it folds to
// -mateScore before the perspective flip.
func (s Score) Centipawns(turn chess.Color, mateScore int) int {
	cp := s.CP
	if s.Mate {
		if cp > 0 {
			cp = mateScore
		} else {
			cp = -mateScore
		}
	}
	if turn == chess.Black {
		cp = -cp
	}
	return cp
}
