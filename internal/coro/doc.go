// Package coro implements a single-threaded cooperative task scheduler.
//
// A fixed set of long-running tasks share one logical thread of control.
// Exactly one of them (or the scheduler itself) executes at any instant and
// control only changes hands at explicit suspension points.
//
// ARCHITECTURE:
//
// Continuations:
// Every task owns a goroutine that is parked on a private resume channel
// whenever the task is not running. Handing control to a task means sending
// on that channel and then parking the sender. The scheduler has its own
// continuation, a channel it parks on while tasks run. Unbuffered channel
// hand-offs give the happens-before edges, so the run queue and all state
// shared between tasks need no locks.
//
// Bootstrap protocol:
// Run calls each registered entry function once, in registration order,
// while the scheduler waits. The entry calls Bootstrap as its first act,
// which allocates the task record, enqueues it and hands control back to
// the scheduler. When the scheduler later resumes the task, Bootstrap
// returns and the entry falls into its work loop, now on its own footing.
//
// Work loop:
// Each iteration performs one bounded quantum of work and calls Yield,
// which re-enqueues the task and transfers control directly to the head of
// the run queue. An entry that returns after bootstrapping has stopped
// re-enqueueing itself: the task is done and never runs again.
//
// CRITICAL PATTERNS:
//
// Strict FIFO:
// Resume order is run-queue order. No priorities, no aging. A task appears
// in the queue at most once.
//
// Yield only at consistent points:
// Any other task may observe and mutate shared state before the yielding
// task resumes.
//
// Starvation is a defect:
// An empty run queue after bootstrap means a task forgot to re-enqueue.
// Run reports it as an ErrCodeStarved RuntimeError.
package coro
