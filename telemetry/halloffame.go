package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/pthm-cable/flap/neural"
)

// ErrEmptyHall is returned when a hall of fame file has no entries.
var ErrEmptyHall = errors.New("hall of fame is empty")

// HallEntry is one proven controller and how well it did.
type HallEntry struct {
	Generation int                 `json:"generation"`
	Fitness    float64             `json:"fitness"`
	Score      int                 `json:"score"`
	Weights    neural.BrainWeights `json:"brain"`
}

// HallOfFame keeps the best controllers seen during a run, sorted by
// descending fitness.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
	rng     *rand.Rand
}

// NewHallOfFame creates an empty hall with the given capacity.
func NewHallOfFame(maxSize int, rng *rand.Rand) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
		rng:     rng,
	}
}

// Consider offers an entry to the hall. Returns true if it was kept.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Best returns the fittest entry, or false if the hall is empty.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Sample selects an entry using tournament selection.
// Returns nil if the hall is empty.
func (hof *HallOfFame) Sample() *neural.BrainWeights {
	if len(hof.entries) == 0 {
		return nil
	}

	// Tournament selection with k=3
	const tournamentSize = 3
	best := -1
	for i := 0; i < tournamentSize; i++ {
		idx := hof.rng.Intn(len(hof.entries))
		if best < 0 || hof.entries[idx].Fitness > hof.entries[best].Fitness {
			best = idx
		}
	}

	weightsCopy := hof.entries[best].Weights
	return &weightsCopy
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame JSON file.
func LoadHallOfFameFromFile(path string, rng *rand.Rand) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyHall)
	}

	hof := NewHallOfFame(len(entries), rng)
	for _, e := range entries {
		hof.Consider(e)
	}
	return hof, nil
}

// LoadBestBrain returns the fittest network stored in a hall of fame file.
func LoadBestBrain(path string) (*neural.FFNN, HallEntry, error) {
	hof, err := LoadHallOfFameFromFile(path, rand.New(rand.NewSource(0)))
	if err != nil {
		return nil, HallEntry{}, err
	}
	best, _ := hof.Best()
	return neural.UnmarshalWeights(best.Weights), best, nil
}
