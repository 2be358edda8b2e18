// combatsim runs dungeon combats from the command line and prints their logs as JSON.
//
// Usage:
//
//	go run ./cmd/combatsim -character hero -dungeon goblin_cave -level 1
//	go run ./cmd/combatsim -character hero -dungeon goblin_cave -level 2 -key replay -runs 100
//	go run ./cmd/combatsim -import                 # load data_path into PostgreSQL
//	go run ./cmd/combatsim -list -character hero   # dungeons and progress
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dungeonrun/internal/config"
	"github.com/udisondev/dungeonrun/internal/data"
	"github.com/udisondev/dungeonrun/internal/db"
	"github.com/udisondev/dungeonrun/internal/game/combat"
	"github.com/udisondev/dungeonrun/internal/game/dungeon"
	"github.com/udisondev/dungeonrun/internal/telemetry"
)

const ConfigPath = "config/combatsim.yaml"

type options struct {
	configPath string
	character  string
	dungeon    string
	level      int
	key        string
	runs       int
	importData bool
	list       bool
	details    bool
	stats      bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	var opts options
	flag.StringVar(&opts.configPath, "config", ConfigPath, "path to config file")
	flag.StringVar(&opts.character, "character", "", "character id")
	flag.StringVar(&opts.dungeon, "dungeon", "", "dungeon id")
	flag.IntVar(&opts.level, "level", 1, "dungeon level")
	flag.StringVar(&opts.key, "key", "", "replay key (random if empty)")
	flag.IntVar(&opts.runs, "runs", 1, "number of independent combats")
	flag.BoolVar(&opts.importData, "import", false, "import data_path catalog into PostgreSQL and exit")
	flag.BoolVar(&opts.list, "list", false, "list dungeons with the character's progress")
	flag.BoolVar(&opts.details, "details", false, "preview the dungeon level instead of fighting it")
	flag.BoolVar(&opts.stats, "stats", false, "print the character's derived stats")
	flag.Parse()

	if p := os.Getenv("DUNGEONRUN_CONFIG"); p != "" {
		opts.configPath = p
	}

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// Load config FIRST to determine log level
	cfg, err := config.LoadCombatSim(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout is reserved for JSON output
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("config loaded",
		"store", cfg.Store,
		"strategy", cfg.Combat.DamageStrategy,
		"max_rounds", cfg.Combat.MaxRounds)

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.Enabled)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("tracing shutdown", "err", err)
		}
	}()

	if opts.importData {
		return importCatalog(ctx, cfg)
	}

	chars, dungeons, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	strategy, err := cfg.Combat.Strategy()
	if err != nil {
		return fmt.Errorf("combat strategy: %w", err)
	}
	svc := dungeon.NewService(chars, dungeons, dungeon.Config{
		MaxRounds: cfg.Combat.MaxRounds,
		Strategy:  strategy,
	})

	switch {
	case opts.list:
		list, err := svc.ListDungeons(ctx, opts.character)
		if err != nil {
			return fmt.Errorf("listing dungeons: %w", err)
		}
		return printJSON(list)
	case opts.stats:
		st, err := svc.CharacterStats(ctx, opts.character)
		if err != nil {
			return fmt.Errorf("character stats: %w", err)
		}
		return printJSON(st)
	case opts.details:
		d, err := svc.DungeonDetails(ctx, opts.dungeon, opts.level, opts.character)
		if err != nil {
			return fmt.Errorf("dungeon details: %w", err)
		}
		return printJSON(d)
	}

	results, err := runCombats(ctx, svc, opts)
	if err != nil {
		return err
	}
	if len(results) == 1 {
		return printJSON(results[0])
	}
	return printJSON(results)
}

// openStore returns the character and dungeon stores for the configured backend.
func openStore(ctx context.Context, cfg config.CombatSim) (dungeon.CharacterStore, dungeon.DungeonStore, func(), error) {
	if cfg.Store == config.StoreCatalog {
		cat, err := data.LoadCatalog(cfg.DataPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading catalog: %w", err)
		}
		store := data.NewMemoryStore(cat)
		return store, store, func() {}, nil
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return db.NewCharacterRepository(database.Pool()), db.NewDungeonRepository(database.Pool()), database.Close, nil
}

func openDatabase(ctx context.Context, cfg config.CombatSim) (*db.DB, error) {
	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
	return database, nil
}

func importCatalog(ctx context.Context, cfg config.CombatSim) error {
	cat, err := data.LoadCatalog(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.ImportCatalog(ctx, database.Pool(), cat); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	return nil
}

// runCombats runs opts.runs independent combats concurrently.
// With a fixed key, run i replays key "<key>-<i>".
func runCombats(ctx context.Context, svc *dungeon.Service, opts options) ([]*combat.Result, error) {
	n := max(1, opts.runs)
	results := make([]*combat.Result, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		key := opts.key
		if key != "" && n > 1 {
			key = fmt.Sprintf("%s-%d", opts.key, i)
		}
		g.Go(func() error {
			res, err := svc.RunCombat(ctx, opts.character, opts.dungeon, opts.level, key)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n > 1 {
		wins := 0
		for _, r := range results {
			if r.Victory() {
				wins++
			}
		}
		slog.Info("combats finished", "runs", n, "victories", wins)
	}
	return results, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
