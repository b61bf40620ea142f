package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds the summary of one finished generation.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`
	Entrants   int    `csv:"entrants"`
	Score      int    `csv:"score"`
	Ticks      int    `csv:"ticks"`

	// Fitness distribution
	BestFitness   float64 `csv:"best_fitness"`
	MeanFitness   float64 `csv:"mean_fitness"`
	StdFitness    float64 `csv:"std_fitness"`
	MedianFitness float64 `csv:"median_fitness"`
	WorstFitness  float64 `csv:"worst_fitness"`

	// Outcomes
	Collisions    int `csv:"collisions"`
	GroundDeaths  int `csv:"ground_deaths"`
	CeilingDeaths int `csv:"ceiling_deaths"`
	Malformed     int `csv:"malformed_outputs"`

	DurationMS float64 `csv:"duration_ms"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	n := len(sorted)
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FitnessSummary is the distribution of one generation's fitness values.
type FitnessSummary struct {
	Best, Mean, Std, Median, Worst float64
}

// ComputeFitnessStats summarises fitness values. The input is not modified.
func ComputeFitnessStats(values []float64) FitnessSummary {
	if len(values) == 0 {
		return FitnessSummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := FitnessSummary{
		Best:   sorted[len(sorted)-1],
		Worst:  sorted[0],
		Median: Percentile(sorted, 0.5),
	}
	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	return s
}

// SetFitness fills the fitness fields from raw per-entrant values.
func (s *GenerationStats) SetFitness(values []float64) {
	f := ComputeFitnessStats(values)
	s.Entrants = len(values)
	s.BestFitness = f.Best
	s.MeanFitness = f.Mean
	s.StdFitness = f.Std
	s.MedianFitness = f.Median
	s.WorstFitness = f.Worst
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("entrants", s.Entrants),
		slog.Int("score", s.Score),
		slog.Int("ticks", s.Ticks),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("std", s.StdFitness),
		slog.Float64("median", s.MedianFitness),
		slog.Int("collisions", s.Collisions),
		slog.Int("ground_deaths", s.GroundDeaths),
		slog.Int("ceiling_deaths", s.CeilingDeaths),
		slog.Int("malformed", s.Malformed),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
