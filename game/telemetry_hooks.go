package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/flap/telemetry"
)

// Recorder wraps a TrainingAdapter and records every completed generation
// before passing it on. Every sink is optional.
type Recorder struct {
	Next   TrainingAdapter
	RunID  string
	Output *telemetry.OutputManager
	Store  *telemetry.SQLiteStore
	Perf   *telemetry.PerfCollector
	Log    bool

	last telemetry.GenerationStats
}

// Entrants implements TrainingAdapter.
func (r *Recorder) Entrants(generation int) []Entrant {
	return r.Next.Entrants(generation)
}

// Complete implements TrainingAdapter.
func (r *Recorder) Complete(result GenerationResult) error {
	stats := telemetry.GenerationStats{
		RunID:         r.RunID,
		Generation:    result.Generation,
		Score:         result.Score,
		Ticks:         result.Ticks,
		Collisions:    result.Collisions,
		GroundDeaths:  result.GroundDeaths,
		CeilingDeaths: result.CeilingDeaths,
		Malformed:     result.MalformedOutputs,
		DurationMS:    float64(result.Duration.Microseconds()) / 1000,
	}
	stats.SetFitness(result.Fitness)
	r.last = stats

	if r.Log {
		stats.LogStats()
	}

	if err := r.Output.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
	if r.Perf != nil {
		perfStats := r.Perf.Stats()
		if r.Log {
			perfStats.LogStats()
		}
		if err := r.Output.WritePerf(perfStats, result.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
	if r.Store != nil {
		if err := r.Store.SaveGeneration(context.Background(), stats); err != nil {
			slog.Error("failed to store generation", "error", err)
		}
	}

	return r.Next.Complete(result)
}

// Last returns the stats of the most recent generation.
func (r *Recorder) Last() telemetry.GenerationStats {
	return r.last
}
