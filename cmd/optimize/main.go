// Package main searches the weights of a single flap controller network with
// CMA-ES, as an alternative to the population trainer.
//
// Usage: go run ./cmd/optimize -output runs/cmaes
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3000, "Tick cap per evaluation run")
	seeds := flag.Int("seeds", 3, "Number of pipe layouts per evaluation")
	maxEvals := flag.Int("max-evals", 500, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	bound := flag.Float64("bound", 5, "Absolute bound on every weight")
	initSeed := flag.Int64("init-seed", 1, "Seed of the random starting network (0 = all zeros)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Simulation.MaxTicks = *maxTicks
	cfg.Simulation.Workers = 1 // one bird per run, seeds already run in parallel

	bundle, err := assets.NewBundle(cfg.Assets)
	if err != nil {
		log.Fatalf("failed to load sprites: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create parameter vector
	var start *neural.FFNN
	if *initSeed != 0 {
		start = neural.NewFFNN(rand.New(rand.NewSource(*initSeed)), cfg.Neural.Hidden)
	}
	params := NewParamVector(cfg.Neural.Hidden, *bound, start)

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(ctx, params, evalSeeds, cfg, bundle)

	// Set up CMA-ES
	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	// Create optimization problem
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Denormalize to get raw parameter values
			raw := params.Denormalize(x)
			return evaluator.Evaluate(raw)
		},
	}

	// CMA-ES settings
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	// Population size
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	// Write header
	header := []string{"eval", "fitness", "mean_score"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	// Track evaluations and timing
	evalCount := 0
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Log clamped values to CSV (these are the values actually used)
		clamped := params.Clamp(params.Denormalize(x))
		meanScore := evaluator.LastScore()
		row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.2f", meanScore)}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		// Calculate timing
		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		_, best, _ := evaluator.Best()
		fmt.Printf("Eval %d/%d: fitness=%.1f pipes=%.1f (best=%.1f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, -fitness, meanScore, -best,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	// Run optimization
	fmt.Printf("Starting CMA-ES optimization with %d weights, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, tick cap per run: %d\n", *seeds, *maxTicks)

	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))

	best, bestFitness, bestScore := evaluator.Best()
	if best == nil {
		log.Fatal("no evaluation finished")
	}
	fmt.Printf("Best fitness: %.1f (worst-seed score %d)\n", -bestFitness, bestScore)

	// Save the winner in the hall of fame format replay mode reads
	hof := telemetry.NewHallOfFame(1, rand.New(rand.NewSource(0)))
	hof.Consider(telemetry.HallEntry{
		Generation: evalCount,
		Fitness:    -bestFitness,
		Score:      bestScore,
		Weights:    best.MarshalWeights(),
	})
	hofData, err := hof.MarshalJSON()
	if err != nil {
		log.Fatalf("failed to marshal hall of fame: %v", err)
	}
	hofPath := filepath.Join(*outputDir, "hall_of_fame.json")
	if err := os.WriteFile(hofPath, hofData, 0644); err != nil {
		log.Fatalf("failed to write hall of fame: %v", err)
	}
	fmt.Printf("Hall of fame saved to: %s\n", hofPath)

	configOutPath := filepath.Join(*outputDir, "config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write config: %v", err)
	}
}
