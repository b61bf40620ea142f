package telemetry

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flap/neural"
)

func TestHallOfFameKeepsBest(t *testing.T) {
	hof := NewHallOfFame(3, rand.New(rand.NewSource(1)))

	for i, f := range []float64{5, 1, 9, 3, 7} {
		hof.Consider(HallEntry{Generation: i, Fitness: f})
	}

	if hof.Size() != 3 {
		t.Fatalf("Size = %d, want 3", hof.Size())
	}
	want := []float64{9, 7, 5}
	for i, e := range hof.entries {
		if e.Fitness != want[i] {
			t.Errorf("entry %d fitness = %v, want %v", i, e.Fitness, want[i])
		}
	}
	if hof.Consider(HallEntry{Fitness: 2}) {
		t.Error("entry below a full hall was kept")
	}
	if best, _ := hof.Best(); best.Generation != 2 {
		t.Errorf("best generation = %d, want 2", best.Generation)
	}
}

func TestHallOfFameSample(t *testing.T) {
	hof := NewHallOfFame(5, rand.New(rand.NewSource(2)))
	if hof.Sample() != nil {
		t.Error("empty hall returned a sample")
	}

	hof.Consider(HallEntry{Fitness: 1, Weights: neural.BrainWeights{Hidden: 2, B2: 0.25}})
	w := hof.Sample()
	if w == nil || w.B2 != 0.25 {
		t.Fatalf("Sample = %+v", w)
	}
	w.B2 = 99
	if hof.entries[0].Weights.B2 != 0.25 {
		t.Error("Sample returned shared storage")
	}
}

func TestHallOfFameFileRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	brain := neural.NewFFNN(rng, 4)

	hof := NewHallOfFame(4, rng)
	hof.Consider(HallEntry{Generation: 3, Fitness: 12.5, Score: 2, Weights: brain.MarshalWeights()})
	hof.Consider(HallEntry{Generation: 1, Fitness: 4, Weights: neural.NewFFNN(rng, 4).MarshalWeights()})

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hall_of_fame.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, entry, err := LoadBestBrain(path)
	if err != nil {
		t.Fatalf("LoadBestBrain error: %v", err)
	}
	if entry.Generation != 3 || entry.Score != 2 {
		t.Errorf("best entry = %+v", entry)
	}
	obs := neural.Observation{Y: 300, GapTop: 60, GapBottom: 140}
	if loaded.Decide(obs) != brain.Decide(obs) {
		t.Error("loaded brain decides differently")
	}
}

func TestLoadHallOfFameEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hof.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHallOfFameFromFile(path, nil); !errors.Is(err, ErrEmptyHall) {
		t.Errorf("err = %v, want ErrEmptyHall", err)
	}
}
