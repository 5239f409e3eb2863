// pgn-dataset converts a chess game archive into a labeled training dataset:
// one CSV row per move, with board-state features and an engine-derived
// quality label (good, inaccuracy or blunder).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-dataset/internal/config"
	"github.com/lgbarn/pgn-dataset/internal/dataset"
	"github.com/lgbarn/pgn-dataset/internal/oracle"
	"github.com/lgbarn/pgn-dataset/internal/source"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("pgn-dataset version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := setupLogger()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("dataset build failed")
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the YAML
// config file if given, then explicit flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger builds the root logger writing human-readable output to stderr.
func setupLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	if *quiet {
		level = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// run executes the pipeline: open the archive, start the engine, extract
// rows and serialize them. The engine process is released on every exit
// path, including extraction failures.
func run(cfg *config.Config, log zerolog.Logger) error {
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	arc, err := source.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer arc.Close() //nolint:errcheck // G104: cleanup on exit

	log.Info().
		Str("archive", cfg.Archive).
		Str("size", arc.Size().String()).
		Int("max_games", cfg.Extract.MaxGames).
		Msg("building dataset")

	orc, err := oracle.NewUCIOracle(cfg.Engine.Path, oracle.Options{
		Depth:   cfg.Engine.Depth,
		HashMB:  cfg.Engine.HashMB,
		Threads: cfg.Engine.Threads,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	defer orc.Close() //nolint:errcheck // G104: cleanup on exit

	builder := dataset.NewBuilder(cfg, orc, log)
	rows, err := builder.Build(arc)
	if err != nil {
		return err
	}

	if err := dataset.WriteFile(cfg.Output, rows); err != nil {
		return err
	}

	log.Info().
		Int("games", builder.Games()).
		Int("rows", len(rows)).
		Str("output", cfg.Output).
		Msg("dataset saved")

	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgn-dataset [options]\n\n")
	fmt.Fprintf(os.Stderr, "Builds a labeled per-move training dataset from a PGN archive\n")
	fmt.Fprintf(os.Stderr, "using a UCI engine for move-quality labels.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
