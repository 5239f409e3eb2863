// Package config provides configuration for pgn-dataset.
// Defaults live in NewConfig; values can be overridden from a YAML file
// and again from command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/pgn-dataset/internal/errors"
)

// Default file locations and extraction constants.
const (
	DefaultArchive = "lichess_db.pgn"
	DefaultEngine  = "stockfish"
	DefaultOutput  = "chess_dataset.csv"

	// DefaultDepth bounds engine work per position, not wall-clock time.
	DefaultDepth = 12

	// DefaultMateScore is the centipawn magnitude assigned to mate scores.
	DefaultMateScore = 10000

	// DefaultMaxGames caps how many games are read from one archive.
	DefaultMaxGames = 500

	// Label thresholds on the evaluation delta (previous minus current,
	// White's perspective): below good is "good", above blunder is
	// "blunder", anything between is "inaccuracy".
	DefaultGoodThreshold    = 20
	DefaultBlunderThreshold = 100
)

// EngineConfig holds settings for the external UCI engine process.
type EngineConfig struct {
	// Path is the engine executable path.
	Path string `yaml:"path"`

	// Depth is the search depth bound for each evaluation request.
	Depth int `yaml:"depth"`

	// HashMB is the engine hash table size in megabytes (0 = engine default).
	HashMB int `yaml:"hash_mb"`

	// Threads is the engine thread count (0 = engine default).
	Threads int `yaml:"threads"`
}

// ExtractConfig holds settings for feature extraction and labeling.
type ExtractConfig struct {
	// MaxGames caps the number of games processed from the archive.
	MaxGames int `yaml:"max_games"`

	// MateScore is the centipawn magnitude substituted for mate evaluations.
	MateScore int `yaml:"mate_score"`

	// GoodThreshold labels a move "good" when the evaluation delta is below it.
	GoodThreshold int `yaml:"good_threshold"`

	// BlunderThreshold labels a move "blunder" when the delta is above it.
	BlunderThreshold int `yaml:"blunder_threshold"`
}

// Config holds all program configuration.
type Config struct {
	// Archive is the input PGN archive path (.pgn, .pgn.bz2 or .pgn.zst).
	Archive string `yaml:"archive"`

	// Output is the CSV output path.
	Output string `yaml:"output"`

	Engine  EngineConfig  `yaml:"engine"`
	Extract ExtractConfig `yaml:"extract"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Archive: DefaultArchive,
		Output:  DefaultOutput,
		Engine: EngineConfig{
			Path:  DefaultEngine,
			Depth: DefaultDepth,
		},
		Extract: ExtractConfig{
			MaxGames:         DefaultMaxGames,
			MateScore:        DefaultMateScore,
			GoodThreshold:    DefaultGoodThreshold,
			BlunderThreshold: DefaultBlunderThreshold,
		},
	}
}

// Load reads a YAML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	b, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool reads user-specified config
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Archive == "" {
		return fmt.Errorf("archive path is empty: %w", errors.ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("output path is empty: %w", errors.ErrInvalidConfig)
	}
	if c.Engine.Path == "" {
		return fmt.Errorf("engine path is empty: %w", errors.ErrInvalidConfig)
	}
	if c.Engine.Depth < 1 {
		return fmt.Errorf("engine depth %d < 1: %w", c.Engine.Depth, errors.ErrInvalidConfig)
	}
	if c.Extract.MaxGames < 1 {
		return fmt.Errorf("max games %d < 1: %w", c.Extract.MaxGames, errors.ErrInvalidConfig)
	}
	if c.Extract.MateScore < 1 {
		return fmt.Errorf("mate score %d < 1: %w", c.Extract.MateScore, errors.ErrInvalidConfig)
	}
	if c.Extract.GoodThreshold > c.Extract.BlunderThreshold {
		return fmt.Errorf("good threshold (%d) > blunder threshold (%d): %w",
			c.Extract.GoodThreshold, c.Extract.BlunderThreshold, errors.ErrInvalidConfig)
	}
	return nil
}
