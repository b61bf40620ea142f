package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFitnessStats(t *testing.T) {
	values := []float64{4, -1, 2.5, 10, 2.5}
	s := ComputeFitnessStats(values)

	if s.Best != 10 || s.Worst != -1 {
		t.Errorf("best/worst = %v/%v, want 10/-1", s.Best, s.Worst)
	}
	if math.Abs(s.Mean-3.6) > 1e-9 {
		t.Errorf("mean = %v, want 3.6", s.Mean)
	}
	if s.Median != 2.5 {
		t.Errorf("median = %v, want 2.5", s.Median)
	}
	// Sample standard deviation
	if math.Abs(s.Std-4.0218) > 1e-3 {
		t.Errorf("std = %v, want ~4.0218", s.Std)
	}
	if values[0] != 4 {
		t.Error("input slice was reordered")
	}
}

func TestComputeFitnessStatsSmall(t *testing.T) {
	if s := ComputeFitnessStats(nil); s != (FitnessSummary{}) {
		t.Errorf("empty summary = %+v", s)
	}
	s := ComputeFitnessStats([]float64{7})
	if s.Mean != 7 || s.Std != 0 || s.Median != 7 {
		t.Errorf("single summary = %+v", s)
	}
}

func TestGenerationStatsSetFitness(t *testing.T) {
	var g GenerationStats
	g.SetFitness([]float64{1, 2, 3})
	if g.Entrants != 3 || g.BestFitness != 3 || g.MeanFitness != 2 {
		t.Errorf("stats = %+v", g)
	}
}
