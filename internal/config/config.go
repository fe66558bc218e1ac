// Package config loads kxo.yaml.
//
// Loading starts from Default, overlays the YAML file (unknown keys are
// rejected), and validates the result against the embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/kxo/internal/search"
	"github.com/roach88/kxo/internal/tt"
	"github.com/roach88/kxo/internal/xo"
	"github.com/roach88/kxo/internal/zobrist"
)

//go:embed schema.cue
var schemaSource string

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "kxo.yaml"

// SeedFromClock selects a time-derived Zobrist seed.
const SeedFromClock = "time"

// Config is the effective runtime configuration.
type Config struct {
	// Seed is "time" or an unsigned integer (decimal or 0x hex).
	Seed           string   `yaml:"seed" json:"seed"`
	Buckets        int      `yaml:"buckets" json:"buckets"`
	MaxEntries     int      `yaml:"max_entries" json:"max_entries"`
	NegamaxDepth   int      `yaml:"negamax_depth" json:"negamax_depth"`
	MCTSIterations int      `yaml:"mcts_iterations" json:"mcts_iterations"`
	MaxGames       int      `yaml:"max_games" json:"max_games"`
	MaxQuanta      int64    `yaml:"max_quanta" json:"max_quanta"`
	Tasks          []string `yaml:"tasks" json:"tasks"`
	Display        bool     `yaml:"display" json:"display"`
	ClearScreen    bool     `yaml:"clear_screen" json:"clear_screen"`
	// Database is the SQLite history path. Empty disables recording.
	Database string `yaml:"database" json:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Seed:           SeedFromClock,
		Buckets:        tt.DefaultBuckets,
		NegamaxDepth:   search.DefaultDepth,
		MCTSIterations: search.DefaultIterations,
		Tasks:          append([]string(nil), xo.DefaultTasks...),
		Display:        true,
		ClearScreen:    true,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional loads path when it is set. An unset path falls back to
// DefaultPath if that file exists, and to Default otherwise.
func LoadOptional(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return Default(), nil
}

// Validate checks cfg against the CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	enc := c
	if enc.Tasks == nil {
		enc.Tasks = []string{}
	}
	v := def.Unify(ctx.Encode(enc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}
	return nil
}

// ResolveSeed returns the numeric seed, deriving it from now when Seed is
// "time".
func (c Config) ResolveSeed(now time.Time) (uint64, error) {
	if c.Seed == "" || c.Seed == SeedFromClock {
		return zobrist.SeedFromTime(now), nil
	}
	seed, err := strconv.ParseUint(c.Seed, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", c.Seed, err)
	}
	return seed, nil
}

// schemaError flattens CUE's error list into one line per violation.
func schemaError(err error) error {
	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 0 {
		return err
	}
	return errors.New(strings.Join(msgs, "; "))
}
