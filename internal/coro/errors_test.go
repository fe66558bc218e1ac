package coro

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError_Format(t *testing.T) {
	err := NewTaskAllocError("ai-one", 4)
	assert.Equal(t, "TASK_ALLOC: task pool exhausted (4 tasks) (task=ai-one)", err.Error())

	starved := NewStarvedError(12)
	assert.Equal(t, "STARVED: run queue empty after 12 quanta", starved.Error())
}

func TestRuntimeError_Predicates(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", NewStarvedError(3))
	assert.True(t, IsStarved(wrapped))
	assert.False(t, IsTaskAlloc(wrapped))

	assert.True(t, IsTaskAlloc(NewTaskAllocError("x", 1)))
	assert.False(t, IsStarved(fmt.Errorf("plain")))
	assert.False(t, IsStarved(nil))
}
