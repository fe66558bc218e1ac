package coro

import "runtime"

// TaskState is the lifecycle state of a task.
type TaskState int

const (
	// TaskQueued means the task is in the run queue waiting to be resumed.
	TaskQueued TaskState = iota + 1
	// TaskRunning means the task holds control.
	TaskRunning
	// TaskDone means the task stopped re-enqueueing itself and will never run again.
	TaskDone
)

func (s TaskState) String() string {
	switch s {
	case TaskQueued:
		return "queued"
	case TaskRunning:
		return "running"
	case TaskDone:
		return "done"
	default:
		return "unknown"
	}
}

// Task is a cooperatively scheduled unit of work.
//
// Label, N and I are owned by the task body; the scheduler never reads them
// except for logging. Everything else belongs to the scheduler.
type Task struct {
	Label string
	N     int
	I     int

	id      int
	state   TaskState
	queued  bool
	resumes int64

	// resume is the task's continuation: the task goroutine parks on it.
	resume chan struct{}
	sched  *Scheduler
}

// ID returns the task's 1-based allocation order.
func (t *Task) ID() int {
	return t.id
}

// State returns the lifecycle state.
func (t *Task) State() TaskState {
	return t.state
}

// Resumes returns how many quanta the task has been given.
func (t *Task) Resumes() int64 {
	return t.resumes
}

// Yield is shorthand for t's scheduler Yield.
func (t *Task) Yield() {
	t.sched.Yield()
}

// park blocks until the task is resumed.
// If the scheduler shuts down first, the goroutine exits; deferred calls in
// the entry function still run.
func (t *Task) park() {
	select {
	case <-t.resume:
	case <-t.sched.done:
		runtime.Goexit()
	}
}
