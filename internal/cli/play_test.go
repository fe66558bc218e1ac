package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay_TextSummary(t *testing.T) {
	stdout, _, err := execute(t, append(quickPlay, "--games", "2")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Game 1: ")
	assert.Contains(t, stdout, "Game 2: ")
	assert.Contains(t, stdout, "Games played: 2")
	assert.Contains(t, stdout, "Seed: 0x5eed")
	assert.NotContains(t, stdout, "-------", "board is not drawn with --no-display")
}

func TestPlay_JSONSummary(t *testing.T) {
	stdout, _, err := execute(t, append(quickPlay, "--games", "1", "--format", "json")...)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["games"])
	assert.Equal(t, float64(0x5eed), data["seed"])
	assert.Contains(t, data, "cache")
}

func TestPlay_QuantaBudget(t *testing.T) {
	stdout, _, err := execute(t, "play", "--seed", "1", "--quanta", "8", "--depth", "3", "--iterations", "50", "--no-display", "--format", "json")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(8), data["quanta"])
	assert.Equal(t, float64(0), data["games"])
}

func TestPlay_VerboseLogsToStderr(t *testing.T) {
	_, stderr, err := execute(t, append(quickPlay, "--games", "1", "--verbose")...)
	require.NoError(t, err)

	assert.Contains(t, stderr, "scheduler starting")
	assert.Contains(t, stderr, "game finished")
}

func TestPlay_RecordsToDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kxo.db")

	_, _, err := execute(t, append(quickPlay, "--games", "2", "--db", dbPath)...)
	require.NoError(t, err)

	stdout, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SEQ")
	assert.Contains(t, stdout, "WINNER")
}

func TestPlay_InvalidSeed(t *testing.T) {
	stdout, _, err := execute(t, "play", "--seed", "tomorrow")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid settings")
	assert.Contains(t, stdout, "Error [E002]: invalid settings")
}

func TestPlay_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kxo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buckets: 0\n"), 0644))

	_, _, err := execute(t, "play", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestPlay_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kxo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_games: 50\nnegamax_depth: 3\nmcts_iterations: 50\n"), 0644))

	stdout, _, err := execute(t, "play", "--config", path, "--seed", "7", "--games", "1", "--no-display", "--format", "json")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["games"])
}

func TestPlay_UnexpectedArgument(t *testing.T) {
	_, _, err := execute(t, "play", "extra")
	require.Error(t, err)
}

func TestPlay_UnreadableDatabaseJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kxo.db")
	require.NoError(t, os.WriteFile(dbPath, bytes.Repeat([]byte("not a database "), 64), 0644))

	stdout, _, err := execute(t, append(quickPlay, "--games", "1", "--db", dbPath, "--format", "json")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDatabase, resp.Error.Code)
}
