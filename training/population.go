// Package training evolves a population of network controllers using the
// simulation's training adapter seam.
package training

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/telemetry"
)

// ErrResultMismatch is returned when a generation result does not match the
// entrants handed out for it.
var ErrResultMismatch = errors.New("generation result does not match population")

const (
	hallSize       = 10
	tournamentSize = 3
)

// Population is a fixed-size set of networks evolved by elitism and sparse
// mutation. It implements game.TrainingAdapter.
type Population struct {
	cfg    config.TrainingConfig
	hidden int
	rng    *rand.Rand

	brains  []*neural.FFNN
	fitness []float64
	hall    *telemetry.HallOfFame
}

var _ game.TrainingAdapter = (*Population)(nil)

// NewPopulation creates a population of random networks.
func NewPopulation(cfg *config.Config, rng *rand.Rand) *Population {
	p := &Population{
		cfg:     cfg.Training,
		hidden:  cfg.Neural.Hidden,
		rng:     rng,
		brains:  make([]*neural.FFNN, cfg.Training.Population),
		fitness: make([]float64, cfg.Training.Population),
		hall:    telemetry.NewHallOfFame(hallSize, rng),
	}
	for i := range p.brains {
		p.brains[i] = neural.NewFFNN(rng, p.hidden)
	}
	return p
}

// Entrants implements game.TrainingAdapter.
func (p *Population) Entrants(generation int) []game.Entrant {
	out := make([]game.Entrant, len(p.brains))
	for i, b := range p.brains {
		out[i] = game.Entrant{Controller: b, Fitness: &p.fitness[i]}
	}
	return out
}

// Complete implements game.TrainingAdapter. It records the generation's best
// network in the hall of fame and breeds the next generation.
func (p *Population) Complete(result game.GenerationResult) error {
	if len(result.Fitness) != len(p.brains) {
		return fmt.Errorf("%w: %d results for %d networks", ErrResultMismatch, len(result.Fitness), len(p.brains))
	}

	order := p.rank(result.Fitness)
	best := order[0]
	p.hall.Consider(telemetry.HallEntry{
		Generation: result.Generation,
		Fitness:    result.Fitness[best],
		Score:      result.Score,
		Weights:    p.brains[best].MarshalWeights(),
	})

	p.brains = p.breed(order)
	return nil
}

// rank returns network indices sorted by descending fitness. Ties keep
// entrant order.
func (p *Population) rank(fitness []float64) []int {
	order := make([]int, len(fitness))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fitness[order[a]] > fitness[order[b]]
	})
	return order
}

// breed builds the next generation: the elite survive unchanged, one slot may
// go to a hall of fame immigrant, and the rest are mutated tournament winners.
func (p *Population) breed(order []int) []*neural.FFNN {
	n := len(p.brains)
	next := make([]*neural.FFNN, 0, n)

	for i := 0; i < p.cfg.Elite && i < n; i++ {
		next = append(next, p.brains[order[i]])
	}

	if len(next) < n && p.hall.Size() > 1 {
		if w := p.hall.Sample(); w != nil {
			immigrant := neural.UnmarshalWeights(*w)
			p.mutate(immigrant)
			next = append(next, immigrant)
		}
	}

	// Parents come from the better half.
	pool := order[:max(1, n/2)]
	for len(next) < n {
		child := p.brains[p.tournament(pool)].Clone()
		p.mutate(child)
		next = append(next, child)
	}
	return next
}

func (p *Population) tournament(pool []int) int {
	// pool is sorted best first, so the smallest drawn position wins.
	best := len(pool)
	for i := 0; i < tournamentSize; i++ {
		if pos := p.rng.Intn(len(pool)); pos < best {
			best = pos
		}
	}
	return pool[best]
}

func (p *Population) mutate(nn *neural.FFNN) {
	m := p.cfg.Mutation
	nn.MutateSparse(p.rng, float32(m.Rate), float32(m.Sigma), float32(m.BigRate), float32(m.BigSigma))
}

// HallOfFame returns the best networks seen so far.
func (p *Population) HallOfFame() *telemetry.HallOfFame {
	return p.hall
}

// Best returns the fittest network seen so far.
func (p *Population) Best() (*neural.FFNN, telemetry.HallEntry, bool) {
	e, ok := p.hall.Best()
	if !ok {
		return nil, e, false
	}
	return neural.UnmarshalWeights(e.Weights), e, true
}

// Size returns the number of networks per generation.
func (p *Population) Size() int {
	return len(p.brains)
}
