package extract

import (
	stderrors "errors"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-dataset/internal/config"
	"github.com/lgbarn/pgn-dataset/internal/errors"
	"github.com/lgbarn/pgn-dataset/internal/features"
	"github.com/lgbarn/pgn-dataset/internal/oracle"
)

// Extractor turns games into parallel slices of feature records and labels.
// It holds no per-game state and can be reused across games.
type Extractor struct {
	oracle oracle.Oracle
	cfg    config.ExtractConfig
	log    zerolog.Logger
}

// New creates an Extractor that evaluates positions through the given oracle.
func New(o oracle.Oracle, cfg config.ExtractConfig, log zerolog.Logger) *Extractor {
	return &Extractor{
		oracle: o,
		cfg:    cfg,
		log:    log,
	}
}

// Game extracts one record and one label per mainline move. The returned
// slices always have equal length. An oracle failure other than a missing
// score aborts the game with a GameError.
func (e *Extractor) Game(g *chess.Game) ([]*Record, []Label, error) {
	moves := g.Moves()
	positions := g.Positions() // one more entry than moves: snapshots before and after each ply

	records := make([]*Record, 0, len(moves))
	labels := make([]Label, 0, len(moves))

	prevEval := 0
	var hist historyWindow

	for i, move := range moves {
		pre := positions[i]
		rec := e.moveRecord(i+1, move, pre)

		if hist.last != nil {
			rec.Prev1 = &HistoryRef{Piece: hist.last.Piece, IsCapture: hist.last.IsCapture}
		}
		if hist.prior != nil {
			rec.Prev2 = &HistoryRef{Piece: hist.prior.Piece, IsCapture: hist.prior.IsCapture}
		}

		post := positions[i+1]
		eval, err := e.evaluate(post, prevEval)
		if err != nil {
			return nil, nil, &errors.GameError{Err: err, Ply: i + 1, MoveText: move.String()}
		}

		delta := prevEval - eval
		label := LabelFor(delta, e.cfg.GoodThreshold, e.cfg.BlunderThreshold)

		e.log.Debug().
			Int("ply", i+1).
			Int("eval", eval).
			Int("delta", delta).
			Str("label", string(label)).
			Msg("move processed")

		prevEval = eval
		records = append(records, rec)
		labels = append(labels, label)
		hist.push(rec)
	}

	return records, labels, nil
}

// moveRecord computes the static features of one move on its pre-move
// position.
func (e *Extractor) moveRecord(ply int, move *chess.Move, pre *chess.Position) *Record {
	board := pre.Board()

	rec := &Record{
		MoveNumber: ply,
		FromSquare: int(move.S1()),
		ToSquare:   int(move.S2()),
		IsCapture:  move.HasTag(chess.Capture) || move.HasTag(chess.EnPassant),
		IsCheck:    features.InCheck(pre),
		IsCastle:   move.HasTag(chess.KingSideCastle) || move.HasTag(chess.QueenSideCastle),
		FEN:        pre.String(),

		MaterialBalance: features.MaterialBalance(board),
		DevelopedPieces: features.DevelopedPieces(board),
		PSTScore:        features.PieceSquareScore(board),
		OpponentThreats: features.OpponentThreats(pre),
	}

	if piece := board.Piece(move.S1()); piece != chess.NoPiece {
		rec.Piece = pieceCodes[piece.Type()]
	}

	return rec
}

// pieceCodes maps the chess library's piece types to the dataset's
// numeric codes (pawn=1 .. king=6).
var pieceCodes = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 2,
	chess.Bishop: 3,
	chess.Rook:   4,
	chess.Queen:  5,
	chess.King:   6,
}

// evaluate asks the oracle for the post-move evaluation, normalized to
// White's perspective. A missing score falls back to the previous
// evaluation, treating the move as evaluation-neutral.
func (e *Extractor) evaluate(post *chess.Position, prevEval int) (int, error) {
	score, err := e.oracle.Evaluate(post.String())
	if err != nil {
		if stderrors.Is(err, errors.ErrNoScore) {
			return prevEval, nil
		}
		return 0, err
	}
	return score.Centipawns(post.Turn(), e.cfg.MateScore), nil
}
