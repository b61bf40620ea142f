package telemetry

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/pthm-cable/flap/neural"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "flap.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNewRunIDIsUUID(t *testing.T) {
	id := NewRunID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NewRunID() = %q: %v", id, err)
	}
	if id == NewRunID() {
		t.Error("two run IDs are equal")
	}
}

func TestSQLiteStoreGenerationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	runID := NewRunID()

	if err := store.BeginRun(ctx, runID, 42, []byte("screen:\n  width: 500\n")); err != nil {
		t.Fatalf("begin run: %v", err)
	}
	for gen := 2; gen >= 0; gen-- {
		g := GenerationStats{RunID: runID, Generation: gen, Score: gen, Ticks: 100 * gen, Collisions: 1}
		g.SetFitness([]float64{float64(gen), 1})
		if err := store.SaveGeneration(ctx, g); err != nil {
			t.Fatalf("save generation %d: %v", gen, err)
		}
	}
	// Replace generation 1
	if err := store.SaveGeneration(ctx, GenerationStats{RunID: runID, Generation: 1, Score: 9}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := store.Generations(ctx, runID)
	if err != nil {
		t.Fatalf("generations: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d generations, want 3", len(got))
	}
	for i, g := range got {
		if g.Generation != i {
			t.Errorf("row %d generation = %d, want ordered", i, g.Generation)
		}
	}
	if got[1].Score != 9 {
		t.Errorf("generation 1 score = %d, want replaced value 9", got[1].Score)
	}
	if got[2].Ticks != 200 || got[2].BestFitness != 2 || got[2].Collisions != 1 {
		t.Errorf("generation 2 = %+v", got[2])
	}

	other, err := store.Generations(ctx, NewRunID())
	if err != nil || len(other) != 0 {
		t.Errorf("unknown run = %v, %v", other, err)
	}
}

func TestSQLiteStoreChampion(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	runID := NewRunID()

	if _, err := store.Champion(ctx, runID); !errors.Is(err, ErrNoChampion) {
		t.Fatalf("err = %v, want ErrNoChampion", err)
	}

	brain := neural.NewFFNN(rand.New(rand.NewSource(5)), 3)
	entry := HallEntry{Generation: 4, Fitness: 31.5, Score: 6, Weights: brain.MarshalWeights()}
	if err := store.SaveChampion(ctx, runID, entry); err != nil {
		t.Fatalf("save champion: %v", err)
	}

	got, err := store.Champion(ctx, runID)
	if err != nil {
		t.Fatalf("champion: %v", err)
	}
	if got.Generation != 4 || got.Score != 6 {
		t.Errorf("champion = %+v", got)
	}
	obs := neural.Observation{Y: 250, GapTop: 30, GapBottom: 170}
	if neural.UnmarshalWeights(got.Weights).Decide(obs) != brain.Decide(obs) {
		t.Error("stored champion decides differently")
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))
	err := store.SaveGeneration(context.Background(), GenerationStats{})
	if !errors.Is(err, ErrStoreNotInitialized) {
		t.Errorf("err = %v, want ErrStoreNotInitialized", err)
	}
}
