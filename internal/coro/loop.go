package coro

import "log/slog"

// Quantum is one bounded unit of work. Returning false stops the task: it
// is not re-enqueued and never runs again.
type Quantum func(t *Task) bool

// Loop builds an entry function that follows the bootstrap protocol and then
// runs quantum once per resume, yielding after each call.
//
// If the task record cannot be allocated the failure is logged and the
// entry returns; the task is simply absent from the schedule.
func Loop(label string, quantum Quantum) EntryFunc {
	return func(s *Scheduler, _ any) {
		t, err := s.Bootstrap(label)
		if err != nil {
			slog.Error("task bootstrap failed", "task", label, "error", err)
			return
		}

		for {
			if !quantum(t) {
				return
			}
			t.Yield()
		}
	}
}

// Forever is Loop for tasks that never stop.
func Forever(label string, work func(t *Task)) EntryFunc {
	return Loop(label, func(t *Task) bool {
		work(t)
		return true
	})
}
