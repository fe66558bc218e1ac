package coro

// runQueue is the FIFO of ready tasks.
//
// No locking: the queue is touched only by whichever goroutine currently
// holds control, and control transfers are channel hand-offs.
type runQueue struct {
	tasks []*Task
}

func newRunQueue() *runQueue {
	return &runQueue{tasks: make([]*Task, 0, 16)}
}

// Enqueue appends t to the tail.
// Returns an ErrCodeAlreadyQueued error if t is already a member.
func (q *runQueue) Enqueue(t *Task) error {
	if t.queued {
		return &RuntimeError{
			Code:    ErrCodeAlreadyQueued,
			Message: "task is already in the run queue",
			Task:    t.Label,
		}
	}
	t.queued = true
	q.tasks = append(q.tasks, t)
	return nil
}

// Dequeue removes and returns the head. Returns (nil, false) if empty.
func (q *runQueue) Dequeue() (*Task, bool) {
	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]

	// Nil out the slot so the backing array does not pin the task.
	q.tasks[0] = nil
	if len(q.tasks) == 1 {
		q.tasks = q.tasks[:0]
	} else {
		q.tasks = q.tasks[1:]
	}

	t.queued = false
	return t, true
}

// Len returns the current queue length.
func (q *runQueue) Len() int {
	return len(q.tasks)
}
