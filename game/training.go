package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/telemetry"
)

// ErrNoEntrants is returned when a training adapter offers an empty generation.
var ErrNoEntrants = errors.New("no entrants")

// Entrant is one controller taking part in a generation. The simulation
// zeroes Fitness when the generation starts and accumulates into it.
type Entrant struct {
	Controller neural.Controller
	Fitness    *float64
}

// GenerationResult summarises a finished generation.
type GenerationResult struct {
	Generation       int
	Fitness          []float64 // final fitness per entrant, in entrant order
	Score            int
	Ticks            int
	MalformedOutputs int
	Collisions       int
	GroundDeaths     int
	CeilingDeaths    int
	Duration         time.Duration
}

// TrainingAdapter is the seam between the simulation and whatever evolves
// the controllers. Entrants is called once per generation; Complete receives
// the outcome after every agent has been removed.
type TrainingAdapter interface {
	Entrants(generation int) []Entrant
	Complete(result GenerationResult) error
}

// Runner runs headless generations.
type Runner struct {
	Config *config.Config
	Bundle *assets.Bundle
	Rng    *rand.Rand
	Perf   *telemetry.PerfCollector // optional
}

// RunGeneration plays one generation to completion. It returns ctx.Err() if
// the context is cancelled between ticks; the partial result is still returned.
func (r *Runner) RunGeneration(ctx context.Context, generation int, entrants []Entrant) (GenerationResult, error) {
	if len(entrants) == 0 {
		return GenerationResult{Generation: generation}, fmt.Errorf("generation %d: %w", generation, ErrNoEntrants)
	}

	start := time.Now()
	sim := NewSimulation(r.Config, r.Bundle, r.Rng, entrants)
	defer sim.Close()
	if r.Perf != nil {
		sim.SetPerfCollector(r.Perf)
	}

	var err error
	for !sim.Done() {
		if err = ctx.Err(); err != nil {
			break
		}
		sim.Step()
	}

	return sim.Result(generation, time.Since(start)), err
}

// Result summarises the generation so far. Fitness is read from every
// entrant's accumulator, including entrants whose agents are gone.
func (s *Simulation) Result(generation int, d time.Duration) GenerationResult {
	result := GenerationResult{
		Generation:       generation,
		Fitness:          make([]float64, len(s.fitness)),
		Score:            s.score,
		Ticks:            s.tick,
		MalformedOutputs: s.malformed,
		Duration:         d,
	}
	result.Collisions, result.GroundDeaths, result.CeilingDeaths = s.DeathCounts()
	for i, f := range s.fitness {
		result.Fitness[i] = *f
	}
	return result
}

// Train runs generations until the count is reached, the adapter fails or
// ctx is cancelled. A cancelled generation is not reported to the adapter.
func (r *Runner) Train(ctx context.Context, adapter TrainingAdapter, generations int) error {
	for gen := 0; gen < generations; gen++ {
		result, err := r.RunGeneration(ctx, gen, adapter.Entrants(gen))
		if err != nil {
			return err
		}

		slog.Debug("generation complete",
			"generation", gen,
			"score", result.Score,
			"ticks", result.Ticks,
			"malformed", result.MalformedOutputs,
		)

		if err := adapter.Complete(result); err != nil {
			return fmt.Errorf("generation %d: %w", gen, err)
		}
	}
	return nil
}
