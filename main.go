package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/telemetry"
	"github.com/pthm-cable/flap/training"
	"github.com/pthm-cable/flap/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "train", "Run mode: play, train or replay")
	headless := flag.Bool("headless", false, "Run without graphics (train and replay only)")
	generations := flag.Int("generations", 0, "Generations to train (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and hall of fame")
	brainPath := flag.String("brain", "", "hall_of_fame.json to replay")
	dbPath := flag.String("db", "", "SQLite generation history (empty = use config)")
	maxTicks := flag.Int("max-ticks", -1, "Tick cap per generation (-1 = use config, 0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *maxTicks >= 0 {
		cfg.Simulation.MaxTicks = *maxTicks
	}
	if *generations > 0 {
		cfg.Training.Generations = *generations
	}
	if *dbPath != "" {
		cfg.Storage.SQLitePath = *dbPath
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	bundle, err := assets.NewBundle(cfg.Assets)
	if err != nil {
		if errors.Is(err, assets.ErrAssetMissing) {
			slog.Error("sprite missing", "dir", cfg.Assets.Dir, "error", err)
		} else {
			slog.Error("failed to load sprites", "error", err)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{
		cfg:       cfg,
		bundle:    bundle,
		seed:      rngSeed,
		outputDir: *outputDir,
		brainPath: *brainPath,
		headless:  *headless,
	}

	slog.Info("starting",
		"mode", *mode,
		"seed", rngSeed,
		"headless", *headless,
		"generations", cfg.Training.Generations,
		"max_ticks", cfg.Simulation.MaxTicks,
	)

	switch *mode {
	case "train":
		err = runTrain(ctx, opts)
	case "replay":
		err = runReplay(ctx, opts)
	case "play":
		err = runPlay(ctx, opts)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "mode", *mode, "error", err)
		stop()
		os.Exit(1)
	}
}

// options carries what every mode needs.
type options struct {
	cfg       *config.Config
	bundle    *assets.Bundle
	seed      int64
	outputDir string
	brainPath string
	headless  bool
}

// runTrain evolves a population, recording every generation, and saves the
// hall of fame when it stops.
func runTrain(ctx context.Context, opts options) error {
	cfg := opts.cfg
	rng := rand.New(rand.NewSource(opts.seed))
	runID := telemetry.NewRunID()

	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	var store *telemetry.SQLiteStore
	if cfg.Storage.SQLitePath != "" {
		store = telemetry.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err := store.Init(ctx); err != nil {
			return fmt.Errorf("generation history: %w", err)
		}
		defer store.Close()

		doc, err := cfg.YAML()
		if err != nil {
			return err
		}
		if err := store.BeginRun(ctx, runID, opts.seed, doc); err != nil {
			return err
		}
	}

	pop := training.NewPopulation(cfg, rng)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	recorder := &game.Recorder{
		Next:   pop,
		RunID:  runID,
		Output: output,
		Store:  store,
		Perf:   perf,
		Log:    cfg.Telemetry.LogGenerations,
	}

	slog.Info("training", "run_id", runID, "population", pop.Size(), "output_dir", output.Dir())

	if opts.headless {
		runner := &game.Runner{Config: cfg, Bundle: opts.bundle, Rng: rng, Perf: perf}
		err = runner.Train(ctx, recorder, cfg.Training.Generations)
	} else {
		v := newViewer(cfg, opts.bundle, rng, "Training")
		v.perf = perf
		err = v.run(ctx, recorder, cfg.Training.Generations)
		v.close()
	}

	saveChampion(pop, output, store, runID)
	return err
}

// saveChampion writes the hall of fame and the run's best network.
func saveChampion(pop *training.Population, output *telemetry.OutputManager, store *telemetry.SQLiteStore, runID string) {
	if err := output.WriteHallOfFame(pop.HallOfFame()); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}

	_, best, ok := pop.Best()
	if !ok {
		return
	}
	slog.Info("champion",
		"generation", best.Generation,
		"fitness", best.Fitness,
		"score", best.Score,
		"hall_of_fame", output.HallOfFamePath(),
	)
	if store != nil {
		// The run context may already be cancelled; the champion is still worth keeping.
		if err := store.SaveChampion(context.Background(), runID, best); err != nil {
			slog.Error("failed to store champion", "error", err)
		}
	}
}

// runReplay flies the best network of a hall of fame file.
func runReplay(ctx context.Context, opts options) error {
	if opts.brainPath == "" {
		return errors.New("-brain is required in replay mode")
	}
	brain, entry, err := telemetry.LoadBestBrain(opts.brainPath)
	if err != nil {
		return err
	}
	slog.Info("replaying", "brain", opts.brainPath, "generation", entry.Generation, "fitness", entry.Fitness)

	rng := rand.New(rand.NewSource(opts.seed))
	adapter := &soloAdapter{controller: brain, label: "replay"}

	if opts.headless {
		runner := &game.Runner{Config: opts.cfg, Bundle: opts.bundle, Rng: rng}
		return runner.Train(ctx, adapter, 1)
	}

	v := newViewer(opts.cfg, opts.bundle, rng, "Replay")
	defer v.close()
	return v.run(ctx, adapter, math.MaxInt)
}

// runPlay lets a human fly with the space bar, restarting after every crash.
func runPlay(ctx context.Context, opts options) error {
	if opts.headless {
		return errors.New("play mode needs a window")
	}

	keyboard := &ui.KeyboardController{}
	adapter := &soloAdapter{controller: keyboard, label: "play"}

	v := newViewer(opts.cfg, opts.bundle, rand.New(rand.NewSource(opts.seed)), "Play")
	v.keyboard = keyboard
	defer v.close()
	return v.run(ctx, adapter, math.MaxInt)
}

// soloAdapter runs the same single controller every generation.
type soloAdapter struct {
	controller neural.Controller
	label      string
	fitness    float64
	best       int
}

func (a *soloAdapter) Entrants(int) []game.Entrant {
	return []game.Entrant{{Controller: a.controller, Fitness: &a.fitness}}
}

func (a *soloAdapter) Complete(result game.GenerationResult) error {
	if result.Score > a.best {
		a.best = result.Score
	}
	slog.Info("round over",
		"mode", a.label,
		"round", result.Generation,
		"score", result.Score,
		"best_score", a.best,
		"fitness", result.Fitness[0],
		"ticks", result.Ticks,
	)
	return nil
}
