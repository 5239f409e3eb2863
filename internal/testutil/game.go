package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

// MustParseGame parses a single-game PGN string and aborts the test on
// failure. Use this in setup where parse failure should not be tolerated.
func MustParseGame(t *testing.T, pgn string) *chess.Game {
	t.Helper()
	fn, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		t.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}
	return chess.NewGame(fn)
}

// MustPosition builds a position from a FEN string, aborting on failure.
func MustPosition(t *testing.T, fen string) *chess.Position {
	t.Helper()
	fn, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("failed to parse FEN %q: %v", fen, err)
	}
	return chess.NewGame(fn).Position()
}

// MultiGamePGN returns an archive-style PGN string containing n copies of
// a short game, for exercising game-count bounds.
func MultiGamePGN(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "[Event \"Synthetic\"]\n[Site \"?\"]\n[Round \"%d\"]\n[Result \"1-0\"]\n\n1. e4 e5 2. Nf3 Nc6 1-0\n\n", i)
	}
	return sb.String()
}

// TwoMovePGN is a minimal two-ply game used by pipeline tests.
const TwoMovePGN = `[Event "Synthetic"]
[Site "?"]
[Result "*"]

1. e4 e5 *
`
