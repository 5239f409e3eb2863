// Package dataset drives the game-to-row pipeline and serializes the
// result as CSV.
package dataset

import (
	stderrors "errors"
	"io"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-dataset/internal/config"
	"github.com/lgbarn/pgn-dataset/internal/errors"
	"github.com/lgbarn/pgn-dataset/internal/extract"
	"github.com/lgbarn/pgn-dataset/internal/oracle"
)

// Row is one labeled feature record, the unit of the output table.
type Row struct {
	Record *extract.Record
	Label  extract.Label
}

// Builder reads games from an archive stream and accumulates labeled
// feature rows, bounded by the configured game limit.
type Builder struct {
	extractor *extract.Extractor
	maxGames  int
	log       zerolog.Logger

	games int
}

// NewBuilder creates a Builder evaluating positions through the oracle.
func NewBuilder(cfg *config.Config, o oracle.Oracle, log zerolog.Logger) *Builder {
	return &Builder{
		extractor: extract.New(o, cfg.Extract, log),
		maxGames:  cfg.Extract.MaxGames,
		log:       log,
	}
}

// Build processes games from r until the archive is exhausted or the game
// limit is reached, one game at a time, and returns every move's row in
// order. An unreadable entry ends the run cleanly; an extraction failure
// aborts it.
func (b *Builder) Build(r io.Reader) ([]Row, error) {
	scanner := chess.NewScanner(r)
	var rows []Row

	b.games = 0
	for b.games < b.maxGames && scanner.Scan() {
		game := scanner.Next()
		if game == nil {
			break
		}
		b.games++

		records, labels, err := b.extractor.Game(game)
		if err != nil {
			var ge *errors.GameError
			if stderrors.As(err, &ge) {
				ge.GameNum = b.games
			}
			return nil, err
		}

		for i, rec := range records {
			rows = append(rows, Row{Record: rec, Label: labels[i]})
		}

		b.log.Debug().
			Int("game", b.games).
			Int("moves", len(records)).
			Msg("game processed")
	}

	// A scanner error means a truncated or malformed trailing entry; the
	// games read so far are kept and the run stops here.
	if err := scanner.Err(); err != nil && err != io.EOF {
		b.log.Warn().Err(err).Msg("archive scan stopped early")
	}

	b.log.Info().
		Int("games", b.games).
		Int("rows", len(rows)).
		Msg("extraction complete")

	return rows, nil
}

// Games returns the number of games processed by the last Build call.
func (b *Builder) Games() int {
	return b.games
}
