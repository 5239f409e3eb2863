// Package extract derives per-move feature records and quality labels from
// chess games, using an evaluation oracle for the labels.
package extract

// HistoryRef holds the short-horizon history fields carried from a recent
// move into the current record.
type HistoryRef struct {
	Piece     int
	IsCapture bool
}

// Record is the feature set computed for one move. Positional features are
// computed on the board *before* the move is applied.
type Record struct {
	// MoveNumber is the 1-based ply index within the game.
	MoveNumber int

	// Piece is the moving piece's type code in the dataset convention
	// (pawn=1 .. king=6), keeping output columns compatible with rows
	// produced by earlier tooling; 0 when the origin square is
	// unexpectedly empty.
	Piece int

	FromSquare int
	ToSquare   int

	// IsCapture includes en passant captures.
	IsCapture bool

	// IsCheck reflects the position before the move: it reports whether the
	// mover was already in check, not whether this move delivers check.
	// Downstream consumers depend on this reading.
	IsCheck bool

	IsCastle bool

	// FEN encodes the pre-move position.
	FEN string

	MaterialBalance int
	DevelopedPieces int
	PSTScore        int
	OpponentThreats int

	// Prev1 refers to the immediately prior move, Prev2 to the move before
	// that. Both are nil for the first move of a game; Prev2 is also nil
	// for the second.
	Prev1 *HistoryRef
	Prev2 *HistoryRef
}

// historyWindow keeps references to the two most recent records.
type historyWindow struct {
	last  *Record
	prior *Record
}

// push appends a finalized record, discarding the oldest reference.
func (w *historyWindow) push(r *Record) {
	w.prior, w.last = w.last, r
}
