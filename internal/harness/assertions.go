package harness

import (
	"fmt"

	"github.com/roach88/kxo/internal/coro"
)

// AssertionError describes a failed assertion.
type AssertionError struct {
	Index    int
	Type     string
	Expected interface{}
	Actual   interface{}
	Message  string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %d (%s) failed: %s (expected %v, got %v)",
		e.Index, e.Type, e.Message, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			err.Index = i
			err.Type = a.Type
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) *AssertionError {
	switch a.Type {
	case AssertGames:
		return expectCount("finished games", a.Count, r.Summary.Games)
	case AssertRecorded:
		return expectCount("recorded games", a.Count, len(r.Recorded))
	case AssertWins:
		return expectCount("wins for "+a.Winner, a.Count, r.Summary.Wins[a.Winner])
	case AssertOpenMoves:
		return expectCount("moves in the open game", a.Count, r.OpenMoves)
	case AssertQuantaMax:
		if r.Summary.Quanta > a.Max {
			return &AssertionError{Expected: fmt.Sprintf("<= %d", a.Max), Actual: r.Summary.Quanta, Message: "too many quanta"}
		}
		return nil
	case AssertTraceOrder:
		return assertTraceOrder(r.Trace, coro.TraceKind(a.Kind), a.Tasks)
	case AssertTraceCount:
		n := 0
		for _, ev := range r.Trace {
			if ev.Kind == coro.TraceKind(a.Kind) && ev.Task == a.Task {
				n++
			}
		}
		return expectCount(fmt.Sprintf("%s events for %s", a.Kind, a.Task), a.Count, n)
	default:
		return &AssertionError{Message: "unknown assertion type", Expected: "known type", Actual: a.Type}
	}
}

func expectCount(what string, want, got int) *AssertionError {
	if want == got {
		return nil
	}
	return &AssertionError{Expected: want, Actual: got, Message: what}
}

// assertTraceOrder checks that the first len(tasks) events of kind name tasks in order.
func assertTraceOrder(trace []coro.TraceEvent, kind coro.TraceKind, tasks []string) *AssertionError {
	var got []string
	for _, ev := range trace {
		if ev.Kind != kind {
			continue
		}
		got = append(got, ev.Task)
		if len(got) == len(tasks) {
			break
		}
	}
	if len(got) < len(tasks) {
		return &AssertionError{Expected: tasks, Actual: got, Message: fmt.Sprintf("fewer %s events than expected", kind)}
	}
	for i := range tasks {
		if got[i] != tasks[i] {
			return &AssertionError{Expected: tasks, Actual: got, Message: fmt.Sprintf("%s order differs at %d", kind, i)}
		}
	}
	return nil
}
