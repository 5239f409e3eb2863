package features

import (
	"testing"

	"github.com/notnil/chess"

	"github.com/lgbarn/pgn-dataset/internal/testutil"
)

func attackedCount(attacked [64]bool) int {
	n := 0
	for _, a := range attacked {
		if a {
			n++
		}
	}
	return n
}

func TestAttackedSquares_PawnDirection(t *testing.T) {
	// White pawn on d4 attacks c5 and e5; black pawn on d4 attacks c3 and e3.
	white := board(t, "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1")
	attacked := AttackedSquares(white, chess.White)
	if !attacked[chess.C5] || !attacked[chess.E5] {
		t.Error("white pawn on d4 should attack c5 and e5")
	}
	if attacked[chess.C3] || attacked[chess.E3] {
		t.Error("white pawn on d4 should not attack backwards")
	}
	if attacked[chess.D5] {
		t.Error("pawn pushes are not attacks")
	}

	black := board(t, "4k3/8/8/8/3p4/8/8/4K3 w - - 0 1")
	attacked = AttackedSquares(black, chess.Black)
	if !attacked[chess.C3] || !attacked[chess.E3] {
		t.Error("black pawn on d4 should attack c3 and e3")
	}
}

func TestAttackedSquares_PawnEdgeFiles(t *testing.T) {
	b := board(t, "4k3/8/8/8/P6P/8/8/4K3 w - - 0 1")
	attacked := AttackedSquares(b, chess.White)

	if !attacked[chess.B5] {
		t.Error("a4 pawn should attack b5")
	}
	if !attacked[chess.G5] {
		t.Error("h4 pawn should attack g5")
	}
	// No wraparound from the a-file to the h-file or back.
	if attacked[chess.H5] && !attacked[chess.G5] {
		t.Error("unexpected wraparound attack")
	}
	if attackedCount(attacked) != 2+5 { // two pawn targets plus king ring around e1
		t.Errorf("attacked count = %d, want 7", attackedCount(attacked))
	}
}

func TestAttackedSquares_SlidersStopAtBlockers(t *testing.T) {
	// White rook a1, white pawn a3: the rook attacks a2 and a3 but nothing
	// beyond, and the full first rank up to the king.
	b := board(t, "4k3/8/8/8/8/P7/8/R3K3 w - - 0 1")
	attacked := AttackedSquares(b, chess.White)

	if !attacked[chess.A2] || !attacked[chess.A3] {
		t.Error("rook should attack up to and including the blocker")
	}
	if attacked[chess.A4] {
		t.Error("rook should not attack past the blocker")
	}
	if !attacked[chess.E1] {
		t.Error("rook ray along rank 1 should reach the friendly king square")
	}
	if attacked[chess.G1] {
		t.Error("rook should not attack past the king")
	}
}

func TestAttackedSquares_KnightFromCorner(t *testing.T) {
	b := board(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	attacked := AttackedSquares(b, chess.White)

	if !attacked[chess.B3] || !attacked[chess.C2] {
		t.Error("a1 knight should attack b3 and c2")
	}
	// The remaining six knight deltas fall off the board.
	knightTargets := 0
	for sq := 0; sq < 64; sq++ {
		if attacked[sq] {
			knightTargets++
		}
	}
	if knightTargets != 2+5 { // two knight targets plus king ring around e1
		t.Errorf("attacked count = %d, want 7", knightTargets)
	}
}

func TestAttackedSquares_QueenCombinesRays(t *testing.T) {
	pos := testutil.MustPosition(t, "4k3/8/8/8/3q4/8/8/K7 w - - 0 1")
	attacked := AttackedSquares(pos.Board(), chess.Black)

	for _, sq := range []chess.Square{chess.D1, chess.D8, chess.A4, chess.H4, chess.A1, chess.H8, chess.A7, chess.G1} {
		if !attacked[sq] {
			t.Errorf("queen on d4 should attack %s", sq)
		}
	}
}
