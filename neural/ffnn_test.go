package neural

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestNewFFNN(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	if nn == nil {
		t.Fatal("NewFFNN returned nil")
	}

	// Check dimensions
	if len(nn.W1) != 6*NumInputs {
		t.Errorf("W1 has wrong length: got %d, want %d", len(nn.W1), 6*NumInputs)
	}
	if len(nn.B1) != 6 || len(nn.W2) != 6 {
		t.Errorf("B1/W2 lengths = %d/%d, want 6/6", len(nn.B1), len(nn.W2))
	}
	if got := len(nn.Params()); got != NumParams(6) {
		t.Errorf("Params length = %d, want %d", got, NumParams(6))
	}
}

func TestNewFFNNClampsHidden(t *testing.T) {
	nn := NewFFNN(rand.New(rand.NewSource(1)), 0)
	if nn.Hidden != 1 {
		t.Errorf("Hidden = %d, want 1", nn.Hidden)
	}
}

func TestForward(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	for _, in := range [][NumInputs]float32{{0, 0, 0}, {3.5, 0.5, 1.5}, {-10, 10, 100}} {
		out := nn.Forward(in)
		if out <= 0 || out >= 1 {
			t.Errorf("Forward(%v) = %v, want (0, 1)", in, out)
		}
	}
}

func TestForwardDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	obs := Observation{Y: 350, GapTop: 120, GapBottom: 80}
	if nn.Decide(obs) != nn.Decide(obs) {
		t.Error("Decide is not deterministic")
	}
}

func TestZeroNetworkIsUndecided(t *testing.T) {
	nn := FFNNFromParams(4, nil)
	if got := nn.Decide(Observation{Y: 300, GapTop: 10, GapBottom: 190}); got != 0.5 {
		t.Errorf("zero network output = %v, want 0.5", got)
	}
}

func TestMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	original := nn.W1[0]
	nn.Mutate(rng, 0.1)

	if nn.W1[0] == original {
		t.Error("Mutate did not change weights")
	}
}

func TestMutateSparseRates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	nn := NewFFNN(rng, 6)
	before := nn.Params()
	if d := nn.MutateSparse(rng, 0, 0.3, 0, 1); d != 0 {
		t.Errorf("rate 0 delta = %v, want 0", d)
	}
	for i, p := range nn.Params() {
		if p != before[i] {
			t.Fatalf("rate 0 changed param %d", i)
		}
	}

	if d := nn.MutateSparse(rng, 1, 0.3, 0, 1); d <= 0 {
		t.Errorf("rate 1 delta = %v, want > 0", d)
	}
	changed := 0
	for i, p := range nn.Params() {
		if p != before[i] {
			changed++
		}
	}
	// Every weight mutates at rate 1; biases only at half the rate.
	if weights := 6*NumInputs + 6; changed < weights {
		t.Errorf("changed %d params, want at least %d", changed, weights)
	}
}

func TestClone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	clone := nn.Clone()

	// Clone should have same weights
	if nn.W1[0] != clone.W1[0] {
		t.Error("Clone has different weights")
	}

	// Modifying clone shouldn't affect original
	clone.W1[0] = 999
	if nn.W1[0] == 999 {
		t.Error("Clone is not independent")
	}
}

func TestParamsRoundTrip(t *testing.T) {
	nn := NewFFNN(rand.New(rand.NewSource(3)), 5)
	rebuilt := FFNNFromParams(5, nn.Params())

	obs := Observation{Y: 410, GapTop: 40, GapBottom: 160}
	if nn.Decide(obs) != rebuilt.Decide(obs) {
		t.Error("network rebuilt from params decides differently")
	}
}

func TestBrainWeightsJSON(t *testing.T) {
	nn := NewFFNN(rand.New(rand.NewSource(9)), 4)

	data, err := json.Marshal(nn.MarshalWeights())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var bw BrainWeights
	if err := json.Unmarshal(data, &bw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	loaded := UnmarshalWeights(bw)
	obs := Observation{Y: 200, GapTop: 90, GapBottom: 110}
	if loaded.Decide(obs) != nn.Decide(obs) {
		t.Error("loaded brain decides differently")
	}
}

func BenchmarkForward(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	nn := NewFFNN(rng, 6)

	inputs := [NumInputs]float32{3.5, 1.2, 0.8}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nn.Forward(inputs)
	}
}
