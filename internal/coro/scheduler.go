package coro

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// EntryFunc is a task entry point. It is called exactly once by Run and must
// call Bootstrap before doing anything else.
type EntryFunc func(s *Scheduler, arg any)

// Entry pairs an entry function with its argument.
type Entry struct {
	Fn  EntryFunc
	Arg any
}

// TraceKind names a scheduler trace event.
type TraceKind string

const (
	TraceBootstrap   TraceKind = "bootstrap"
	TraceAllocFailed TraceKind = "alloc_failed"
	TraceResume      TraceKind = "resume"
	TraceExit        TraceKind = "exit"
)

// TraceEvent is emitted to the observer at every lifecycle transition.
type TraceEvent struct {
	Seq    int64
	Kind   TraceKind
	Task   string
	TaskID int
}

// Scheduler is the cooperative run loop.
//
// Thread-safety model:
//   - Register(): before Run only
//   - Run(): exactly once, from one goroutine
//   - Bootstrap(), Yield(), Current(): only from inside entries/tasks
//   - Stop(): safe from any goroutine
type Scheduler struct {
	entries  []Entry
	queue    *runQueue
	clock    *Clock
	tasks    []*Task
	current  *Task
	observer func(TraceEvent)

	maxTasks  int
	maxQuanta int64
	quanta    int64

	// booting is the entry currently inside its first call, nil otherwise.
	booting *frame

	// sched is the scheduler's continuation: Run parks on it while tasks run.
	sched chan struct{}
	// done is closed at shutdown to release every parked task goroutine.
	done chan struct{}

	running atomic.Bool
	stop    atomic.Bool
	stopErr error
}

// frame tracks one entry function's goroutine.
type frame struct {
	label string
	task  *Task
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMaxTasks caps the task pool. Bootstrap beyond the cap fails with
// ErrCodeTaskAlloc. 0 means unbounded.
func WithMaxTasks(n int) Option {
	return func(s *Scheduler) {
		s.maxTasks = n
	}
}

// WithMaxQuanta makes Run return nil once n quanta have been handed out.
// 0 means run forever.
func WithMaxQuanta(n int64) Option {
	return func(s *Scheduler) {
		s.maxQuanta = n
	}
}

// WithObserver installs a trace callback. It runs on whichever goroutine
// holds control and must not block or call back into the scheduler.
func WithObserver(fn func(TraceEvent)) Option {
	return func(s *Scheduler) {
		s.observer = fn
	}
}

// WithClock sets the clock used to stamp trace events.
func WithClock(c *Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// New creates a scheduler with an empty registration list.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queue: newRunQueue(),
		clock: NewClock(),
		sched: make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends entries to the registration list.
// Entries run in the order they were registered.
func (s *Scheduler) Register(entries ...Entry) error {
	if s.running.Load() {
		return &RuntimeError{Code: ErrCodeAlreadyRunning, Message: "cannot register after Run"}
	}
	s.entries = append(s.entries, entries...)
	return nil
}

// Run bootstraps every registered entry and then resumes tasks forever.
//
// Run returns only when:
//   - Stop was called (nil),
//   - the WithMaxQuanta budget is spent (nil),
//   - ctx is cancelled (ctx.Err()),
//   - the run queue is empty after bootstrap (ErrCodeStarved).
//
// Stop and cancellation take effect at the next suspension point; a task
// that never yields cannot be interrupted.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return &RuntimeError{Code: ErrCodeAlreadyRunning, Message: "Run called twice"}
	}

	slog.Info("scheduler starting", "entries", len(s.entries))

	cancelled := ctx.Done()

	// Bootstrap phase: each entry runs on the scheduler's thread of control
	// until it hands back from Bootstrap (or returns).
	for i, e := range s.entries {
		f := &frame{label: entryLabel(i)}
		s.booting = f
		go s.enter(f, e)
		cancelled = s.wait(ctx, cancelled)
		s.booting = nil
	}

	slog.Info("scheduler bootstrapped",
		"tasks", len(s.tasks),
		"queued", s.queue.Len(),
	)

	for {
		if s.stopping() {
			return s.shutdown(s.stopErr)
		}

		next, ok := s.queue.Dequeue()
		if !ok {
			err := NewStarvedError(s.quanta)
			slog.Error("scheduler starved",
				"quanta", s.quanta,
				"tasks", len(s.tasks),
				"event", "starved",
			)
			return s.shutdown(err)
		}

		s.begin(next)
		next.resume <- struct{}{}
		cancelled = s.wait(ctx, cancelled)
	}
}

// Bootstrap turns the calling entry into a resumable task.
//
// It allocates the task record, enqueues it, and hands control back to the
// scheduler. It returns when the scheduler first resumes the task. On
// allocation failure it returns an ErrCodeTaskAlloc error immediately and
// nothing is enqueued; the entry should log and return.
func (s *Scheduler) Bootstrap(label string) (*Task, error) {
	f := s.booting
	if f == nil || f.task != nil {
		return nil, &RuntimeError{
			Code:    ErrCodeNotBooting,
			Message: "Bootstrap must be the first call of an entry function",
			Task:    label,
		}
	}

	if s.maxTasks > 0 && len(s.tasks) >= s.maxTasks {
		s.emit(TraceAllocFailed, label, 0)
		return nil, NewTaskAllocError(label, s.maxTasks)
	}

	t := &Task{
		Label:  label,
		id:     len(s.tasks) + 1,
		resume: make(chan struct{}),
		sched:  s,
	}
	s.tasks = append(s.tasks, t)
	f.task = t
	f.label = label

	if err := s.queue.Enqueue(t); err != nil {
		return nil, err
	}
	t.state = TaskQueued
	s.emit(TraceBootstrap, t.Label, t.id)
	slog.Debug("task bootstrapped", "task", t.Label, "id", t.id)

	// Hand back to the scheduler; the next resume lands right here.
	s.sched <- struct{}{}
	t.park()

	return t, nil
}

// Yield suspends the running task, re-enqueues it and transfers control to
// the next ready task. It returns when the caller is resumed.
//
// Yield panics when called outside a running task.
func (s *Scheduler) Yield() {
	t := s.current
	if t == nil {
		panic("coro: Yield called outside a running task")
	}

	if err := s.queue.Enqueue(t); err != nil {
		panic(err)
	}
	t.state = TaskQueued
	s.current = nil

	if s.stopping() {
		s.sched <- struct{}{}
		t.park()
		return
	}

	next, _ := s.queue.Dequeue()
	s.begin(next)
	if next == t {
		return
	}
	next.resume <- struct{}{}
	t.park()
}

// Stop asks Run to return at the next suspension point.
func (s *Scheduler) Stop() {
	s.stop.Store(true)
}

// Current returns the running task, or nil when the scheduler holds control.
func (s *Scheduler) Current() *Task {
	return s.current
}

// Len returns the run-queue length.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Quanta returns how many resumes have been handed out.
func (s *Scheduler) Quanta() int64 {
	return s.quanta
}

// Tasks returns every task allocated so far, in allocation order.
func (s *Scheduler) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// enter runs one entry function on its own goroutine.
func (s *Scheduler) enter(f *frame, e Entry) {
	defer s.exit(f)
	e.Fn(s, e.Arg)
}

// exit runs when an entry function returns (or its goroutine is released at
// shutdown).
func (s *Scheduler) exit(f *frame) {
	select {
	case <-s.done:
		return
	default:
	}

	if f.task == nil {
		// Returned without bootstrapping: still on the scheduler's thread of control.
		slog.Warn("entry returned before bootstrap", "entry", f.label)
		s.sched <- struct{}{}
		return
	}

	t := f.task
	t.state = TaskDone
	s.current = nil
	s.emit(TraceExit, t.Label, t.id)
	slog.Info("task exited", "task", t.Label, "id", t.id, "resumes", t.resumes)

	if s.stopping() {
		s.sched <- struct{}{}
		return
	}
	next, ok := s.queue.Dequeue()
	if !ok {
		s.sched <- struct{}{}
		return
	}
	s.begin(next)
	next.resume <- struct{}{}
}

// begin marks t as the running task for one quantum.
func (s *Scheduler) begin(t *Task) {
	s.quanta++
	t.resumes++
	t.state = TaskRunning
	s.current = t
	s.emit(TraceResume, t.Label, t.id)
}

// stopping reports whether control should return to the scheduler instead
// of the next task.
func (s *Scheduler) stopping() bool {
	if s.stop.Load() {
		return true
	}
	return s.maxQuanta > 0 && s.quanta >= s.maxQuanta
}

// wait parks the scheduler until control comes back. Cancellation of ctx is
// recorded and turned into a stop request; the returned channel is nil once
// cancellation has been seen.
func (s *Scheduler) wait(ctx context.Context, cancelled <-chan struct{}) <-chan struct{} {
	for {
		select {
		case <-s.sched:
			return cancelled
		case <-cancelled:
			slog.Info("scheduler stopping: context cancelled")
			s.stopErr = ctx.Err()
			s.stop.Store(true)
			cancelled = nil
		}
	}
}

// shutdown releases every parked task goroutine and returns err.
func (s *Scheduler) shutdown(err error) error {
	close(s.done)
	slog.Info("scheduler stopped",
		"quanta", s.quanta,
		"tasks", len(s.tasks),
		"queued", s.queue.Len(),
	)
	return err
}

func (s *Scheduler) emit(kind TraceKind, label string, id int) {
	if s.observer == nil {
		return
	}
	s.observer(TraceEvent{
		Seq:    s.clock.Next(),
		Kind:   kind,
		Task:   label,
		TaskID: id,
	})
}

func entryLabel(i int) string {
	return fmt.Sprintf("entry-%d", i)
}
