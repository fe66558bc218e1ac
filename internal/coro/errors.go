package coro

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error detected by the scheduler.
//
// Runtime errors include:
//   - Task allocation failure: the task pool is exhausted
//   - Starvation: the run queue emptied outside the bootstrap phase
//   - Protocol misuse: Bootstrap outside an entry, double registration, etc.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Task is the label of the affected task, if any.
	Task string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeTaskAlloc indicates a task record could not be allocated.
	ErrCodeTaskAlloc RuntimeErrorCode = "TASK_ALLOC"

	// ErrCodeStarved indicates the run queue is empty after bootstrap.
	ErrCodeStarved RuntimeErrorCode = "STARVED"

	// ErrCodeNotBooting indicates Bootstrap was called outside an entry's first call.
	ErrCodeNotBooting RuntimeErrorCode = "NOT_BOOTING"

	// ErrCodeAlreadyQueued indicates a task was enqueued twice.
	ErrCodeAlreadyQueued RuntimeErrorCode = "ALREADY_QUEUED"

	// ErrCodeAlreadyRunning indicates Register or Run after Run started.
	ErrCodeAlreadyRunning RuntimeErrorCode = "ALREADY_RUNNING"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Task != "" {
		return fmt.Sprintf("%s: %s (task=%s)", e.Code, e.Message, e.Task)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStarved returns true if err is a starvation error.
// Uses errors.As to handle wrapped errors.
func IsStarved(err error) bool {
	return hasCode(err, ErrCodeStarved)
}

// IsTaskAlloc returns true if err is a task allocation error.
func IsTaskAlloc(err error) bool {
	return hasCode(err, ErrCodeTaskAlloc)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewTaskAllocError creates a RuntimeError for an exhausted task pool.
func NewTaskAllocError(label string, limit int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTaskAlloc,
		Message: fmt.Sprintf("task pool exhausted (%d tasks)", limit),
		Task:    label,
	}
}

// NewStarvedError creates a RuntimeError for an empty run queue.
func NewStarvedError(quanta int64) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeStarved,
		Message: fmt.Sprintf("run queue empty after %d quanta", quanta),
	}
}
