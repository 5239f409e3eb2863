// flags.go - Command-line flag definitions and configuration overrides
package main

import (
	"flag"

	"github.com/lgbarn/pgn-dataset/internal/config"
)

var (
	// Input/output
	configFile  = flag.String("config", "", "YAML config file (flags override its values)")
	archiveFile = flag.String("pgn", config.DefaultArchive, "Game archive path (.pgn, .pgn.bz2 or .pgn.zst)")
	enginePath  = flag.String("engine", config.DefaultEngine, "UCI engine executable path")
	outputFile  = flag.String("o", config.DefaultOutput, "Output CSV file")

	// Extraction
	maxGames      = flag.Int("max-games", config.DefaultMaxGames, "Maximum number of games to process")
	depth         = flag.Int("depth", config.DefaultDepth, "Engine search depth per evaluation")
	mateScore     = flag.Int("mate-score", config.DefaultMateScore, "Centipawn magnitude assigned to mate scores")
	goodThresh    = flag.Int("good-threshold", config.DefaultGoodThreshold, "Delta below which a move is labeled good")
	blunderThresh = flag.Int("blunder-threshold", config.DefaultBlunderThreshold, "Delta above which a move is labeled blunder")

	// Engine tuning
	hashMB  = flag.Int("hash", 0, "Engine hash table size in MB (0 = engine default)")
	threads = flag.Int("threads", 0, "Engine thread count (0 = engine default)")

	// Diagnostics
	verbose    = flag.Bool("verbose", false, "Enable per-move debug logging")
	quiet      = flag.Bool("quiet", false, "Log warnings and errors only")
	cpuProfile = flag.Bool("profile", false, "Write a CPU profile to the working directory")
	version    = flag.Bool("version", false, "Print version and exit")
)

// applyFlags overrides config values with flags the user explicitly set,
// so a config file keeps its values for untouched flags.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pgn":
			cfg.Archive = *archiveFile
		case "engine":
			cfg.Engine.Path = *enginePath
		case "o":
			cfg.Output = *outputFile
		case "max-games":
			cfg.Extract.MaxGames = *maxGames
		case "depth":
			cfg.Engine.Depth = *depth
		case "mate-score":
			cfg.Extract.MateScore = *mateScore
		case "good-threshold":
			cfg.Extract.GoodThreshold = *goodThresh
		case "blunder-threshold":
			cfg.Extract.BlunderThreshold = *blunderThresh
		case "hash":
			cfg.Engine.HashMB = *hashMB
		case "threads":
			cfg.Engine.Threads = *threads
		}
	})
}
