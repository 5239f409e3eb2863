// Package oracle provides position evaluation backed by an external UCI
// engine process. One engine process is launched per oracle and reused
// serially for every request until Close.
package oracle

import (
	"github.com/freeeve/uci"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-dataset/internal/errors"
)

// Oracle evaluates chess positions given as FEN strings.
type Oracle interface {
	// Evaluate returns the engine score for the position. The score is
	// relative to the side to move. Returns errors.ErrNoScore when the
	// engine produced no usable result.
	Evaluate(fen string) (Score, error)

	// Close shuts the engine process down. Safe to call once.
	Close() error
}

// Options configures a UCI oracle.
type Options struct {
	// Depth bounds the search for each evaluation request.
	Depth int

	// HashMB is the engine hash table size in megabytes (0 = engine default).
	HashMB int

	// Threads is the engine thread count (0 = engine default).
	Threads int

	Logger zerolog.Logger
}

// UCIOracle evaluates positions through a UCI engine such as Stockfish.
// It is not safe for concurrent use; requests are expected to be serial.
type UCIOracle struct {
	eng    *uci.Engine
	depth  int
	log    zerolog.Logger
	closed bool
}

// NewUCIOracle launches the engine at path and prepares it for evaluation
// requests. The caller owns the process and must call Close.
func NewUCIOracle(path string, opts Options) (*UCIOracle, error) {
	eng, err := uci.NewEngine(path)
	if err != nil {
		return nil, errors.Wrapf(err, "starting engine %s", path)
	}

	engineOpts := uci.Options{
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
		Hash:    opts.HashMB,
		Threads: opts.Threads,
	}
	if err := eng.SetOptions(engineOpts); err != nil {
		eng.Close()
		return nil, errors.Wrap(err, "setting engine options")
	}

	opts.Logger.Info().
		Str("engine", path).
		Int("depth", opts.Depth).
		Msg("engine started")

	return &UCIOracle{
		eng:   eng,
		depth: opts.Depth,
		log:   opts.Logger,
	}, nil
}

// Evaluate sends the position to the engine and blocks until the
// depth-bounded search completes.
func (o *UCIOracle) Evaluate(fen string) (Score, error) {
	if o.closed {
		return Score{}, errors.ErrEngineClosed
	}

	if err := o.eng.SetFEN(fen); err != nil {
		return Score{}, errors.Wrap(err, "setting position")
	}

	results, err := o.eng.GoDepth(o.depth, uci.HighestDepthOnly)
	if err != nil {
		return Score{}, errors.Wrap(err, "engine search")
	}
	if len(results.Results) == 0 {
		return Score{}, errors.ErrNoScore
	}

	best := results.Results[0]
	o.log.Debug().
		Str("fen", fen).
		Int("score", best.Score).
		Bool("mate", best.Mate).
		Msg("evaluated")

	return Score{CP: best.Score, Mate: best.Mate}, nil
}

// Close terminates the engine process.
func (o *UCIOracle) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	o.eng.Close()
	o.log.Info().Msg("engine stopped")
	return nil
}
