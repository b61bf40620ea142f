package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/components"
)

// Feather tuning
const (
	featherLife    = 24   // ticks
	featherGravity = 0.35 // px/tick²
	featherDrag    = 0.92
	featherSpeed   = 4.0
	maxFeathers    = 600
)

// FeatherSystem manages the feather bursts shown where a bird dies.
// Feathers are ECS entities so bursts of any size cost nothing when idle.
type FeatherSystem struct {
	world   *ecs.World
	builder *ecs.Map3[components.Position, components.Velocity, components.Life]
	filter  *ecs.Filter3[components.Position, components.Velocity, components.Life]
	rng     *rand.Rand

	count    int
	toRemove []ecs.Entity
}

// NewFeatherSystem creates an empty feather system.
func NewFeatherSystem(rng *rand.Rand) *FeatherSystem {
	world := ecs.NewWorld()
	return &FeatherSystem{
		world:   world,
		builder: ecs.NewMap3[components.Position, components.Velocity, components.Life](world),
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Life](world),
		rng:     rng,
	}
}

// Emit spawns n feathers at (x, y) flying outwards.
func (s *FeatherSystem) Emit(x, y float64, n int) {
	for i := 0; i < n && s.count < maxFeathers; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := featherSpeed * (0.4 + 0.6*s.rng.Float64())
		life := int32(featherLife/2 + s.rng.Intn(featherLife/2+1))

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{X: math.Cos(angle) * speed, Y: math.Sin(angle)*speed - 2}
		lf := components.Life{Remaining: life, Max: life}
		s.builder.NewEntity(&pos, &vel, &lf)
		s.count++
	}
}

// Update advances every feather by one tick and removes expired ones.
func (s *FeatherSystem) Update() {
	s.toRemove = s.toRemove[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, life := query.Get()

		life.Remaining--
		if life.Remaining <= 0 {
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}

		vel.Y += featherGravity
		vel.X *= featherDrag
		vel.Y *= featherDrag
		pos.X += vel.X
		pos.Y += vel.Y
	}

	// Query iteration complete; structural changes are allowed again
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
	s.count -= len(s.toRemove)
}

// Each calls fn for every live feather.
func (s *FeatherSystem) Each(fn func(pos components.Position, life components.Life)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, life := query.Get()
		fn(*pos, *life)
	}
}

// Count returns the number of live feathers.
func (s *FeatherSystem) Count() int {
	return s.count
}
