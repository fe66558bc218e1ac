package harness

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "file name matches scenario name")

			result, err := Run(context.Background(), scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/two_games.yaml")
	require.NoError(t, err)

	first, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.NotEmpty(t, first.MoveLog)
	assert.Equal(t, first.MoveLog, second.MoveLog)
	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.Summary.Wins, second.Summary.Wins)
}

func TestRun_RecordsDeterministicIDsAndTimes(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/two_games.yaml")
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.Len(t, result.Recorded, 2)

	assert.Equal(t, "two_games-1", result.Recorded[0].ID)
	assert.Equal(t, "two_games-2", result.Recorded[1].ID)
	assert.True(t, result.Recorded[0].StartedAt.Equal(epoch))
	assert.True(t, result.Recorded[0].EndedAt.Equal(result.Recorded[1].StartedAt))
	assert.Equal(t, uint64(0x5eed), result.Recorded[0].Seed)
}

func TestRun_FailingAssertionReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "expects a game that never finishes",
		Seed:        "1",
		MaxQuanta:   4,
		Assertions:  []Assertion{{Type: AssertGames, Count: 1}},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "finished games")
}

func TestRun_UnknownTask(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_task",
		Description: "bad task",
		Seed:        "1",
		Tasks:       []string{"ai-three"},
		MaxQuanta:   4,
		Assertions:  []Assertion{{Type: AssertGames}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build runtime")
}
