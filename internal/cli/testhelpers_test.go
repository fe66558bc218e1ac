package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// execute runs the root command with args and returns stdout, stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// quickPlay keeps matches short and deterministic.
var quickPlay = []string{
	"play",
	"--seed", "0x5eed",
	"--depth", "3",
	"--iterations", "50",
	"--quanta", "20000",
	"--no-display",
}
