package main

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/neural"
)

// FitnessEvaluator flies a candidate network over a fixed set of pipe
// layouts and scores it.
type FitnessEvaluator struct {
	ctx    context.Context
	params *ParamVector
	seeds  []int64
	cfg    *config.Config
	bundle *assets.Bundle

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestNetwork *neural.FFNN
	bestScore   int
	lastScore   float64 // mean score of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. cfg must cap the generation
// length, or a perfect network would never finish.
func NewFitnessEvaluator(ctx context.Context, params *ParamVector, seeds []int64, cfg *config.Config, bundle *assets.Bundle) *FitnessEvaluator {
	return &FitnessEvaluator{
		ctx:         ctx,
		params:      params,
		seeds:       seeds,
		cfg:         cfg,
		bundle:      bundle,
		bestFitness: math.Inf(1),
	}
}

// Best returns the network from the best evaluation so far.
func (fe *FitnessEvaluator) Best() (*neural.FFNN, float64, int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestNetwork, fe.bestFitness, fe.bestScore
}

// LastScore returns the mean pipes passed in the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	score   int
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean in-game fitness across all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	nn := fe.params.Network(x)

	// Run all seeds in parallel; the network is read-only during a run
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(nn, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness float64
	var minScore = math.MaxInt
	var totalScore int
	for _, r := range results {
		totalFitness += r.fitness
		totalScore += r.score
		minScore = min(minScore, r.score)
	}

	n := float64(len(fe.seeds))
	avgFitness := -totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestNetwork = nn
		fe.bestScore = minScore
	}
	fe.lastScore = float64(totalScore) / n
	fe.mu.Unlock()

	return avgFitness
}

// runSeed plays one single-bird generation.
func (fe *FitnessEvaluator) runSeed(nn *neural.FFNN, seed int64) seedResult {
	runner := &game.Runner{
		Config: fe.cfg,
		Bundle: fe.bundle,
		Rng:    rand.New(rand.NewSource(seed)),
	}
	result, _ := runner.RunGeneration(fe.ctx, 0, []game.Entrant{{Controller: nn}})
	return seedResult{fitness: result.Fitness[0], score: result.Score}
}
