package extract

import (
	stderrors "errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-dataset/internal/config"
	"github.com/lgbarn/pgn-dataset/internal/errors"
	"github.com/lgbarn/pgn-dataset/internal/oracle"
	"github.com/lgbarn/pgn-dataset/internal/testutil"
)

// stubOracle replays a scripted sequence of evaluations. Scores are
// side-to-move relative, matching the engine contract.
type stubOracle struct {
	evals []stubEval
	calls int
}

type stubEval struct {
	score oracle.Score
	err   error
}

func (s *stubOracle) Evaluate(fen string) (oracle.Score, error) {
	if s.calls >= len(s.evals) {
		return oracle.Score{}, errors.ErrNoScore
	}
	ev := s.evals[s.calls]
	s.calls++
	return ev.score, ev.err
}

func (s *stubOracle) Close() error { return nil }

func newExtractor(o oracle.Oracle) *Extractor {
	return New(o, config.NewConfig().Extract, zerolog.Nop())
}

func TestGame_TwoMoveBlunder(t *testing.T) {
	// White-perspective evaluations 0 then -150: after 1...e5 the score
	// reads -150 for White, a delta of 150 against the reference side.
	// The stub returns side-to-move relative scores, so the second value
	// is reported as-is with White to move.
	stub := &stubOracle{evals: []stubEval{
		{score: oracle.Score{CP: 0}},
		{score: oracle.Score{CP: -150}},
	}}

	game := testutil.MustParseGame(t, testutil.TwoMovePGN)
	records, labels, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	if len(records) != 2 || len(labels) != 2 {
		t.Fatalf("got %d records, %d labels, want 2 and 2", len(records), len(labels))
	}
	testutil.AssertEqual(t, labels, []Label{LabelGood, LabelBlunder})
	if stub.calls != 2 {
		t.Errorf("oracle called %d times, want 2", stub.calls)
	}
}

func TestGame_FirstMoveFeatures(t *testing.T) {
	stub := &stubOracle{evals: []stubEval{
		{score: oracle.Score{CP: 0}},
		{score: oracle.Score{CP: 0}},
	}}

	game := testutil.MustParseGame(t, testutil.TwoMovePGN)
	records, _, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	rec := records[0]
	want := &Record{
		MoveNumber:      1,
		Piece:           1,  // pawn
		FromSquare:      12, // e2
		ToSquare:        28, // e4
		FEN:             "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		OpponentThreats: 22,
	}
	testutil.AssertEqual(t, rec, want, "first move record")
}

func TestGame_HistoryWindow(t *testing.T) {
	stub := &stubOracle{evals: make([]stubEval, 4)}

	game := testutil.MustParseGame(t, `[Event "Synthetic"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 *
`)
	records, labels, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	if len(records) != 4 || len(labels) != 4 {
		t.Fatalf("got %d records, %d labels, want 4 and 4", len(records), len(labels))
	}

	// First move: no history.
	if records[0].Prev1 != nil || records[0].Prev2 != nil {
		t.Error("first move should have no history fields")
	}

	// Second move: only the immediately prior move.
	testutil.AssertEqual(t, records[1].Prev1, &HistoryRef{Piece: 1}, "second move Prev1")
	if records[1].Prev2 != nil {
		t.Error("second move should have no Prev2")
	}

	// Third move onward: both.
	testutil.AssertEqual(t, records[2].Prev1, &HistoryRef{Piece: 1}, "third move Prev1")
	testutil.AssertEqual(t, records[2].Prev2, &HistoryRef{Piece: 1}, "third move Prev2")

	// Fourth move: Prev1 is the knight move, Prev2 the pawn move.
	testutil.AssertEqual(t, records[3].Prev1, &HistoryRef{Piece: 2}, "fourth move Prev1")
	testutil.AssertEqual(t, records[3].Prev2, &HistoryRef{Piece: 1}, "fourth move Prev2")
}

func TestGame_NoScoreFallsBackToPrevious(t *testing.T) {
	// Second call returns no score: the move is treated as neutral, giving
	// a zero delta and a "good" label.
	stub := &stubOracle{evals: []stubEval{
		{score: oracle.Score{CP: -30}}, // black to move: +30 for White
		{err: errors.ErrNoScore},
	}}

	game := testutil.MustParseGame(t, testutil.TwoMovePGN)
	_, labels, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, labels, []Label{LabelGood, LabelGood})
}

func TestGame_CaptureAndCastleFlags(t *testing.T) {
	stub := &stubOracle{evals: make([]stubEval, 7)}

	game := testutil.MustParseGame(t, `[Event "Synthetic"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O *
`)
	records, _, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	for i, rec := range records[:6] {
		if rec.IsCastle {
			t.Errorf("ply %d flagged as castle", i+1)
		}
	}
	if !records[6].IsCastle {
		t.Error("4. O-O should be flagged as castle")
	}
	if records[6].Piece != 6 {
		t.Errorf("castling move piece code = %d, want 6 (king)", records[6].Piece)
	}

	capGame := testutil.MustParseGame(t, `[Event "Synthetic"]
[Result "*"]

1. e4 d5 2. exd5 *
`)
	capStub := &stubOracle{evals: make([]stubEval, 3)}
	capRecords, _, err := newExtractor(capStub).Game(capGame)
	testutil.AssertNoError(t, err)

	if capRecords[0].IsCapture || capRecords[1].IsCapture {
		t.Error("opening pawn pushes are not captures")
	}
	if !capRecords[2].IsCapture {
		t.Error("2. exd5 should be flagged as capture")
	}
}

// TestGame_CheckFlagIsPreMove pins down the pre-move reading of the check
// flag: the move that delivers check is not flagged, the reply to it is.
func TestGame_CheckFlagIsPreMove(t *testing.T) {
	stub := &stubOracle{evals: make([]stubEval, 6)}

	game := testutil.MustParseGame(t, `[Event "Synthetic"]
[Result "*"]

1. e4 e5 2. Qh5 Nc6 3. Qxf7+ Kxf7 *
`)
	records, _, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	if records[4].IsCheck {
		t.Error("3. Qxf7+ delivers check but the pre-move flag must be false")
	}
	if !records[5].IsCheck {
		t.Error("3...Kxf7 is played while in check; the pre-move flag must be true")
	}
}

func TestGame_OracleFailureAborts(t *testing.T) {
	boom := stderrors.New("engine crashed")
	stub := &stubOracle{evals: []stubEval{
		{score: oracle.Score{CP: 10}},
		{err: boom},
	}}

	game := testutil.MustParseGame(t, testutil.TwoMovePGN)
	_, _, err := newExtractor(stub).Game(game)
	testutil.AssertError(t, err)

	if !stderrors.Is(err, boom) {
		t.Errorf("error should wrap the oracle failure, got %v", err)
	}
	var ge *errors.GameError
	if !stderrors.As(err, &ge) {
		t.Fatalf("error should be a GameError, got %T", err)
	}
	if ge.Ply != 2 {
		t.Errorf("GameError.Ply = %d, want 2", ge.Ply)
	}
}

func TestGame_EmptyGame(t *testing.T) {
	stub := &stubOracle{}

	game := testutil.MustParseGame(t, `[Event "Synthetic"]
[Result "*"]

*
`)
	records, labels, err := newExtractor(stub).Game(game)
	testutil.AssertNoError(t, err)

	if len(records) != 0 || len(labels) != 0 {
		t.Errorf("empty game produced %d records, %d labels", len(records), len(labels))
	}
	if stub.calls != 0 {
		t.Errorf("oracle called %d times for an empty game", stub.calls)
	}
}
