package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestStepClock_FirstCallReturnsStart(t *testing.T) {
	clock := NewStepClock(epoch, time.Second)
	assert.True(t, epoch.Equal(clock.Now()))
}

func TestStepClock_AdvancesByStep(t *testing.T) {
	clock := NewStepClock(epoch, 250*time.Millisecond)

	clock.Now()
	clock.Now()
	got := clock.Now()
	assert.True(t, epoch.Add(500*time.Millisecond).Equal(got))
	assert.Equal(t, int64(3), clock.Calls())
}

func TestStepClock_Reset(t *testing.T) {
	clock := NewStepClock(epoch, time.Second)
	clock.Now()
	clock.Now()

	later := epoch.Add(time.Hour)
	clock.Reset(later)
	assert.True(t, later.Equal(clock.Now()))
	assert.Equal(t, int64(1), clock.Calls())
}

func TestStepClock_ConcurrentAccess(t *testing.T) {
	clock := NewStepClock(epoch, time.Nanosecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), clock.Calls())
	assert.True(t, epoch.Add(1000*time.Nanosecond).Equal(clock.Now()))
}
