package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/kxo/internal/config"
	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/store"
	"github.com/roach88/kxo/internal/xo"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [game-id]",
		Short: "Show recorded games",
		Long: `List games recorded by "kxo play --db", oldest first, or show a single
game's final board and move sequence.

Example:
  kxo history --db ./kxo.db
  kxo history --db ./kxo.db --limit 5
  kxo history --db ./kxo.db 0192f3a4-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "show at most this many games (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	setupLogging(formatter.GetErrWriter(), opts.Verbose)

	dbPath := opts.Database
	if dbPath == "" {
		cfg, err := config.LoadOptional(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		dbPath = cfg.Database
	}
	if dbPath == "" {
		return NewExitError(ExitCommandError, "no database: pass --db or set database in the config file")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, "failed to open database", err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		g, err := st.ReadGame(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("game %s not found", args[0]), nil)
			return WrapExitError(ExitFailure, "game not found", err)
		}
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, "failed to read game", err.Error())
			return WrapExitError(ExitCommandError, "failed to read game", err)
		}
		if opts.Format == "json" {
			return formatter.Success(g)
		}
		writeGame(cmd.OutOrStdout(), g)
		return nil
	}

	games, err := st.ListGames(ctx, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, "failed to list games", err.Error())
		return WrapExitError(ExitCommandError, "failed to list games", err)
	}
	formatter.VerboseLog("read %d games from %s", len(games), dbPath)

	if opts.Format == "json" {
		return formatter.Success(games)
	}
	writeGameList(cmd.OutOrStdout(), games)
	return nil
}

func writeGameList(w io.Writer, games []store.Game) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tWINNER\tMOVES\tENDED")
	for _, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			g.Seq, g.ID, g.Winner, len(g.Moves), g.EndedAt.UTC().Format(time.RFC3339))
	}
	tw.Flush()
}

func writeGame(w io.Writer, g store.Game) {
	board := game.Decompress(g.FinalBoard)
	fmt.Fprintf(w, "Game %d (%s)\n", g.Seq, g.ID)
	fmt.Fprintf(w, "Winner: %s\n", g.Winner)
	fmt.Fprintf(w, "Seed: %#x\n", g.Seed)
	fmt.Fprintf(w, "Duration: %s\n", g.EndedAt.Sub(g.StartedAt))
	fmt.Fprintf(w, "Moves: %s\n", xo.FormatMoves(g.Moves))
	fmt.Fprint(w, game.Render(&board))
}
