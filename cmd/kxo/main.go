// Command kxo runs AI vs AI tic-tac-toe on a cooperative scheduler.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/kxo/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
