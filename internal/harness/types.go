package harness

import (
	"github.com/roach88/kxo/internal/coro"
	"github.com/roach88/kxo/internal/store"
	"github.com/roach88/kxo/internal/xo"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Trace contains every scheduler event in order.
	Trace []coro.TraceEvent `json:"trace"`

	// Summary is the runtime's final report.
	Summary xo.Summary `json:"summary"`

	// Recorded holds the games read back from the store, oldest first.
	Recorded []store.Game `json:"recorded"`

	// OpenMoves is the unfinished game's move count when the run stopped.
	OpenMoves int `json:"open_moves"`

	// MoveLog is the printed move log.
	MoveLog string `json:"move_log"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []coro.TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
