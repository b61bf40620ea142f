package main

import (
	"context"
	"math"
	"testing"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
)

func TestEvaluateZeroNetworkNeverJumps(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.MaxTicks = 500

	pv := NewParamVector(cfg.Neural.Hidden, 5, nil)
	fe := NewFitnessEvaluator(context.Background(), pv, []int64{1, 2}, cfg, assets.MustDefault(2))

	// All-zero weights output exactly the jump threshold, which is not a jump,
	// so the bird falls to the ground after 23 ticks on every layout.
	got := fe.Evaluate(pv.DefaultVector())
	if math.Abs(got-(-2.3)) > 1e-9 {
		t.Errorf("Evaluate(zeros) = %v, want -2.3", got)
	}

	best, fitness, score := fe.Best()
	if best == nil || fitness != got || score != 0 {
		t.Errorf("Best() = (%v, %v, %d), want the evaluated network", best, fitness, score)
	}
}
