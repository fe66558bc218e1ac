package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/kxo/internal/coro"
	"github.com/roach88/kxo/internal/store"
	"github.com/roach88/kxo/internal/testutil"
	"github.com/roach88/kxo/internal/xo"
)

// epoch is the deterministic clock origin for every scenario.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database. The clock advances
// one second per reading and game IDs are "<name>-1", "<name>-2", ...
// An error is returned only when the scenario could not be executed;
// assertion failures are reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	seed, err := scenario.SeedValue()
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	result := NewResult()

	rt, err := xo.New(xo.Options{
		Seed:           seed,
		NegamaxDepth:   scenario.NegamaxDepth,
		MCTSIterations: scenario.MCTSIterations,
		MaxGames:       scenario.Games,
		MaxQuanta:      scenario.MaxQuanta,
		Tasks:          scenario.Tasks,
		Input:          keys(scenario.Keys),
		Recorder:       st,
		IDs:            testutil.NewSequenceIDs(scenario.Name),
		Now:            testutil.NewStepClock(epoch, time.Second).Now,
		Observer: func(ev coro.TraceEvent) {
			result.Trace = append(result.Trace, ev)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build runtime: %w", err)
	}

	if err := rt.Run(ctx); err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}

	result.Summary = rt.Summary()
	result.OpenMoves = len(rt.MoveLog().Current())
	result.MoveLog = rt.MoveLog().String()

	result.Recorded, err = st.ListGames(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read recorded games: %w", err)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// keys returns a closed channel preloaded with s.
func keys(s string) <-chan byte {
	ch := make(chan byte, len(s))
	for i := 0; i < len(s); i++ {
		ch <- s[i]
	}
	close(ch)
	return ch
}
