package harness

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Scenario defines one deterministic match and what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed feeds the Zobrist table and MCTS generator (decimal or 0x hex).
	Seed string `yaml:"seed"`

	// Tasks overrides the default workload list.
	Tasks []string `yaml:"tasks,omitempty"`

	// Games stops the match after that many finished games.
	Games int `yaml:"games,omitempty"`

	// MaxQuanta bounds the run. Required so a broken scenario cannot spin.
	MaxQuanta int64 `yaml:"max_quanta"`

	NegamaxDepth   int `yaml:"negamax_depth,omitempty"`
	MCTSIterations int `yaml:"mcts_iterations,omitempty"`

	// Keys is fed to the keyboard task one byte per poll, e.g. "p" or "q".
	Keys string `yaml:"keys,omitempty"`

	// Assertions validate the trace and results.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates trace or results.
type Assertion struct {
	// Type specifies the assertion type:
	// - "games": finished game count equals Count
	// - "recorded": games read back from the store equals Count
	// - "wins": games won by Winner ("O", "X" or "D") equals Count
	// - "open_moves": moves in the unfinished game equals Count
	// - "quanta_max": scheduler quanta is at most Max
	// - "trace_order": the first events of Kind are for Tasks, in order
	// - "trace_count": events of Kind for Task occur exactly Count times
	Type string `yaml:"type"`

	Count  int      `yaml:"count,omitempty"`
	Max    int64    `yaml:"max,omitempty"`
	Winner string   `yaml:"winner,omitempty"`
	Kind   string   `yaml:"kind,omitempty"`
	Task   string   `yaml:"task,omitempty"`
	Tasks  []string `yaml:"tasks,omitempty"`
}

// Assertion type constants.
const (
	AssertGames      = "games"
	AssertRecorded   = "recorded"
	AssertWins       = "wins"
	AssertOpenMoves  = "open_moves"
	AssertQuantaMax  = "quanta_max"
	AssertTraceOrder = "trace_order"
	AssertTraceCount = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// SeedValue parses Seed.
func (s *Scenario) SeedValue() (uint64, error) {
	return strconv.ParseUint(s.Seed, 0, 64)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.SeedValue(); err != nil {
		return fmt.Errorf("seed %q: must be decimal or 0x hex", s.Seed)
	}

	if s.MaxQuanta <= 0 {
		return fmt.Errorf("max_quanta is required and must be positive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertGames, AssertRecorded, AssertOpenMoves:
		return nil
	case AssertWins:
		if a.Winner == "" {
			return fmt.Errorf("wins requires winner")
		}
	case AssertQuantaMax:
		if a.Max <= 0 {
			return fmt.Errorf("quanta_max requires a positive max")
		}
	case AssertTraceOrder:
		if a.Kind == "" || len(a.Tasks) == 0 {
			return fmt.Errorf("trace_order requires kind and tasks")
		}
	case AssertTraceCount:
		if a.Kind == "" || a.Task == "" {
			return fmt.Errorf("trace_count requires kind and task")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
