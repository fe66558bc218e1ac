package xo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/kxo/internal/coro"
	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/search"
	"github.com/roach88/kxo/internal/store"
	"github.com/roach88/kxo/internal/tt"
	"github.com/roach88/kxo/internal/xoroshiro"
	"github.com/roach88/kxo/internal/zobrist"
)

// DefaultTasks mirrors the classic registration order: every AI is followed
// by a win check, a keyboard poll and a redraw.
var DefaultTasks = []string{
	TaskAIOne, TaskCheckWin, TaskKeyboard, TaskDraw,
	TaskAITwo, TaskCheckWin, TaskKeyboard, TaskDraw,
}

// Recorder persists finished games. *store.Store implements it.
type Recorder interface {
	SaveGame(ctx context.Context, g store.Game) (int64, error)
}

// Options configures a Runtime. Zero values select defaults.
type Options struct {
	Seed           uint64
	Buckets        int
	MaxEntries     int
	NegamaxDepth   int
	MCTSIterations int

	// MaxGames stops the scheduler after that many finished games. 0 = forever.
	MaxGames int
	// MaxQuanta bounds the whole run. 0 = unbounded.
	MaxQuanta int64

	// Tasks lists workloads by name in registration order. Empty = DefaultTasks.
	Tasks []string

	Display     bool
	ClearScreen bool

	Out      io.Writer
	Input    <-chan byte
	Recorder Recorder
	IDs      store.IDGenerator
	Now      func() time.Time

	// Observer receives scheduler trace events.
	Observer func(coro.TraceEvent)
}

// Runtime is the shared context of one match.
type Runtime struct {
	board   game.Board
	turn    game.Cell
	finish  bool
	display bool
	paused  bool

	cache *tt.Cache
	keys  *zobrist.Table
	aiOne search.Player
	aiTwo search.Player
	moves *MoveLog

	out      io.Writer
	input    <-chan byte
	clear    bool
	recorder Recorder
	ids      store.IDGenerator
	now      func() time.Time
	seed     uint64

	tasks     []string
	maxGames  int
	maxQuanta int64
	observer  func(coro.TraceEvent)

	start     time.Time
	gameStart time.Time
	games     int
	tally     map[game.Cell]int

	sched *coro.Scheduler
	ctx   context.Context
}

// New builds a runtime. It fails on unknown task names.
func New(opts Options) (*Runtime, error) {
	tasks := opts.Tasks
	if len(tasks) == 0 {
		tasks = DefaultTasks
	}
	for _, name := range tasks {
		if !knownTask(name) {
			return nil, fmt.Errorf("unknown task %q", name)
		}
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}

	var cacheOpts []tt.Option
	if opts.Buckets > 0 {
		cacheOpts = append(cacheOpts, tt.WithBuckets(opts.Buckets))
	}
	if opts.MaxEntries > 0 {
		cacheOpts = append(cacheOpts, tt.WithMaxEntries(opts.MaxEntries))
	}
	cache := tt.New(cacheOpts...)
	keys := zobrist.New(opts.Seed)

	// The MCTS stream is jumped away from the one that filled the Zobrist table.
	rng := xoroshiro.New(opts.Seed)
	rng.Jump()

	r := &Runtime{
		board:     game.NewBoard(),
		turn:      game.O,
		finish:    true,
		display:   opts.Display,
		cache:     cache,
		keys:      keys,
		aiOne:     search.NewMCTS(rng, search.WithIterations(opts.MCTSIterations)),
		aiTwo:     search.NewNegamax(cache, keys, search.WithDepth(opts.NegamaxDepth)),
		moves:     NewMoveLog(),
		out:       out,
		input:     opts.Input,
		clear:     opts.ClearScreen,
		recorder:  opts.Recorder,
		ids:       ids,
		now:       now,
		seed:      opts.Seed,
		tasks:     append([]string(nil), tasks...),
		maxGames:  opts.MaxGames,
		maxQuanta: opts.MaxQuanta,
		observer:  opts.Observer,
		tally:     make(map[game.Cell]int),
	}
	return r, nil
}

// Run registers the workloads and runs the scheduler until it stops.
// The move log is printed to the output on the way out.
func (r *Runtime) Run(ctx context.Context) error {
	r.ctx = ctx
	r.start = r.now()
	r.gameStart = r.start

	schedOpts := []coro.Option{coro.WithMaxQuanta(r.maxQuanta)}
	if r.observer != nil {
		schedOpts = append(schedOpts, coro.WithObserver(r.observer))
	}
	r.sched = coro.New(schedOpts...)

	for _, name := range r.tasks {
		if err := r.sched.Register(coro.Entry{Fn: r.entry(name), Arg: name}); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}

	slog.Info("match starting",
		"seed", fmt.Sprintf("%#x", r.seed),
		"tasks", len(r.tasks),
		"buckets", r.cache.Buckets(),
	)

	err := r.sched.Run(ctx)

	if log := r.moves.String(); log != "" {
		fmt.Fprintf(r.out, "\n%s", log)
	}
	return err
}

// Summary is a snapshot of match results.
type Summary struct {
	Games   int            `json:"games"`
	Wins    map[string]int `json:"wins"`
	Quanta  int64          `json:"quanta"`
	Cache   tt.Stats       `json:"cache"`
	Elapsed time.Duration  `json:"elapsed"`
	Seed    uint64         `json:"seed"`
}

// Summary reports results. Call it after Run returns.
func (r *Runtime) Summary() Summary {
	wins := make(map[string]int, len(r.tally))
	for c, n := range r.tally {
		wins[c.String()] = n
	}
	var quanta int64
	if r.sched != nil {
		quanta = r.sched.Quanta()
	}
	return Summary{
		Games:   r.games,
		Wins:    wins,
		Quanta:  quanta,
		Cache:   r.cache.Stats(),
		Elapsed: r.now().Sub(r.start),
		Seed:    r.seed,
	}
}

// MoveLog returns the log of every game played.
func (r *Runtime) MoveLog() *MoveLog {
	return r.moves
}
