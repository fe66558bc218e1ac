package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/kxo/internal/config"
	"github.com/roach88/kxo/internal/coro"
	"github.com/roach88/kxo/internal/store"
	"github.com/roach88/kxo/internal/xo"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Seed       string
	Games      int
	Quanta     int64
	Depth      int
	Iterations int
	Database   string
	NoDisplay  bool

	// IDs overrides the game ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDs store.IDGenerator
	// Now overrides the wall clock (for testing).
	Now func() time.Time
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run AI vs AI matches",
		Long: `Run AI vs AI tic-tac-toe on the cooperative scheduler.

O is played by Monte Carlo tree search, X by negamax. The board is redrawn
after every move. Keys (followed by Enter on a line-buffered terminal):
  p / Ctrl-P   pause/resume
  q / Ctrl-Q   stop

Flags override values from the config file.

Example:
  kxo play
  kxo play --seed 0x5eed --games 10 --no-display --db ./kxo.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Seed, "seed", "", `Zobrist/MCTS seed ("time", decimal or 0x hex)`)
	cmd.Flags().IntVarP(&opts.Games, "games", "n", 0, "stop after this many games (0 = forever)")
	cmd.Flags().Int64Var(&opts.Quanta, "quanta", 0, "stop after this many scheduler quanta (0 = unbounded)")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "negamax search depth")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "MCTS playouts per move")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record games to this SQLite database")
	cmd.Flags().BoolVar(&opts.NoDisplay, "no-display", false, "do not draw the board")

	return cmd
}

// applyFlags overlays explicitly set flags on cfg.
func (o *PlayOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.Seed
	}
	if flags.Changed("games") {
		cfg.MaxGames = o.Games
	}
	if flags.Changed("quanta") {
		cfg.MaxQuanta = o.Quanta
	}
	if flags.Changed("depth") {
		cfg.NegamaxDepth = o.Depth
	}
	if flags.Changed("iterations") {
		cfg.MCTSIterations = o.Iterations
	}
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if o.NoDisplay {
		cfg.Display = false
	}
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	setupLogging(formatter.GetErrWriter(), opts.Verbose)

	cfg, err := config.LoadOptional(opts.Config)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, "invalid config", err.Error())
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	opts.applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		_ = formatter.Error(ErrCodeConfig, "invalid settings", err.Error())
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed, err := cfg.ResolveSeed(now())
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, "invalid seed", err.Error())
		return WrapExitError(ExitCommandError, "invalid seed", err)
	}

	var recorder xo.Recorder
	if cfg.Database != "" {
		slog.Info("opening database", "path", cfg.Database)
		st, err := store.Open(cfg.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, "failed to open database", err.Error())
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		recorder = st
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Board output goes to stdout only in text mode so JSON stays parseable.
	screen := cmd.OutOrStdout()
	if opts.Format == "json" {
		screen = io.Discard
	}

	rt, err := xo.New(xo.Options{
		Seed:           seed,
		Buckets:        cfg.Buckets,
		MaxEntries:     cfg.MaxEntries,
		NegamaxDepth:   cfg.NegamaxDepth,
		MCTSIterations: cfg.MCTSIterations,
		MaxGames:       cfg.MaxGames,
		MaxQuanta:      cfg.MaxQuanta,
		Tasks:          cfg.Tasks,
		Display:        cfg.Display,
		ClearScreen:    cfg.ClearScreen,
		Out:            screen,
		Input:          readKeys(ctx, cmd.InOrStdin()),
		Recorder:       recorder,
		IDs:            opts.IDs,
		Now:            now,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, "failed to build runtime", err.Error())
		return WrapExitError(ExitCommandError, "failed to build runtime", err)
	}

	err = rt.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	case coro.IsStarved(err):
		_ = formatter.Error(ErrCodeRuntime, "scheduler starved", err.Error())
		return WrapExitError(ExitFailure, "scheduler starved", err)
	default:
		_ = formatter.Error(ErrCodeRuntime, "runtime error", err.Error())
		return WrapExitError(ExitFailure, "runtime error", err)
	}

	sum := rt.Summary()
	if opts.Format == "json" {
		return formatter.Success(sum)
	}
	writeSummary(cmd.OutOrStdout(), sum)
	return nil
}

// readKeys forwards bytes from r until EOF or ctx is done.
func readKeys(ctx context.Context, r io.Reader) <-chan byte {
	keys := make(chan byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				select {
				case keys <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}

// writeSummary prints match results with grouped numbers.
func writeSummary(w io.Writer, s xo.Summary) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "\nGames played: %d\n", s.Games)
	winners := make([]string, 0, len(s.Wins))
	for k := range s.Wins {
		winners = append(winners, k)
	}
	sort.Strings(winners)
	for _, k := range winners {
		label := k
		if k == "D" {
			label = "draw"
		}
		p.Fprintf(w, "  %-4s %d\n", label, s.Wins[k])
	}
	p.Fprintf(w, "Quanta: %d\n", s.Quanta)
	p.Fprintf(w, "Cache: %d lookups, %d hits (%.1f%%), %d dropped, %d invalidations\n",
		s.Cache.Lookups, s.Cache.Hits, s.Cache.HitRate()*100, s.Cache.Dropped, s.Cache.Invalidations)
	fmt.Fprintf(w, "Seed: %#x\n", s.Seed)
	fmt.Fprintf(w, "Elapsed: %s\n", s.Elapsed.Round(time.Millisecond))
}
