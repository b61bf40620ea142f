package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/neural"
)

func TestParamVectorMatchesNetworkLayout(t *testing.T) {
	pv := NewParamVector(4, 5, nil)

	if got, want := pv.Dim(), neural.NumParams(4); got != want {
		t.Fatalf("Dim() = %d, want %d", got, want)
	}
	if pv.Specs[0].Name != "w1_h0_i0" || pv.Specs[pv.Dim()-1].Name != "b2" {
		t.Errorf("unexpected layout: first %q, last %q", pv.Specs[0].Name, pv.Specs[pv.Dim()-1].Name)
	}
}

func TestParamVectorDefaultsFromNetwork(t *testing.T) {
	nn := neural.NewFFNN(rand.New(rand.NewSource(3)), 3)
	pv := NewParamVector(3, 100, nn)

	got := pv.Network(pv.DefaultVector())
	obs := neural.Observation{Y: 300, GapTop: 40, GapBottom: -160}
	if a, b := nn.Decide(obs), got.Decide(obs); math.Abs(a-b) > 1e-6 {
		t.Errorf("rebuilt network decides %v, original %v", b, a)
	}
}

func TestParamVectorNormalizeAndClamp(t *testing.T) {
	pv := NewParamVector(1, 2, nil)

	raw := []float64{-2, 0, 2, 1, 7, -9}
	norm := pv.Normalize(raw)
	if norm[0] != 0 || norm[1] != 0.5 || norm[2] != 1 {
		t.Errorf("Normalize = %v", norm)
	}

	back := pv.Denormalize(norm)
	for i := 0; i < 4; i++ {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("Denormalize[%d] = %v, want %v", i, back[i], raw[i])
		}
	}

	clamped := pv.Clamp(raw)
	if clamped[4] != 2 || clamped[5] != -2 {
		t.Errorf("Clamp = %v, want out-of-range values at the bounds", clamped)
	}
}
