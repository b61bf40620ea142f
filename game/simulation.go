package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// State is the lifecycle state of one generation.
type State int

const (
	Running State = iota
	GenerationComplete
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GenerationComplete:
		return "generation_complete"
	default:
		return "unknown"
	}
}

// DeathCause records why an agent left the active set.
type DeathCause int

const (
	DeathCollision DeathCause = iota
	DeathGround
	DeathCeiling
)

// Death is emitted once per agent on the tick it is removed.
type Death struct {
	Entrant int // index into the generation's entrants
	X, Y    float64
	Cause   DeathCause
}

// Agent is one bird taking part in a generation.
type Agent struct {
	Body       components.Body
	Anim       components.Animation
	Controller neural.Controller
	Fitness    *float64
	Entrant    int

	malformed bool // controller returned NaN this tick
}

// Simulation runs one generation of birds against a shared stream of pipes.
type Simulation struct {
	cfg    *config.Config
	bundle *assets.Bundle
	rng    *rand.Rand
	geom   systems.PipeGeometry
	birdH  float64

	agents  []Agent
	fitness []*float64 // per entrant, outlives the agent
	pipes   []components.Pipe
	ground *systems.Ground

	state     State
	tick      int
	score     int
	malformed int
	deaths    []Death
	counts    [3]int // deaths by cause

	// Scratch reused across ticks
	doomed   []bool
	pipeGone []bool

	parallel *parallelState
	perf     *telemetry.PerfCollector
}

// NewSimulation creates a generation with one agent per entrant.
// Each entrant's fitness accumulator is reset to zero.
func NewSimulation(cfg *config.Config, bundle *assets.Bundle, rng *rand.Rand, entrants []Entrant) *Simulation {
	s := &Simulation{
		cfg:    cfg,
		bundle: bundle,
		rng:    rng,
		geom:   bundle.PipeGeometry(),
		ground: systems.NewGround(cfg.Ground.Y, bundle.GroundWidth(), cfg.Ground.ScrollVelocity),
		agents: make([]Agent, 0, len(entrants)),
	}
	_, s.birdH = bundle.BirdSize()

	for i, e := range entrants {
		fitness := e.Fitness
		if fitness == nil {
			fitness = new(float64)
		}
		*fitness = 0
		s.fitness = append(s.fitness, fitness)
		s.agents = append(s.agents, Agent{
			Body:       components.NewBody(cfg.Bird.StartX, cfg.Bird.StartY),
			Controller: e.Controller,
			Fitness:    fitness,
			Entrant:    i,
		})
	}

	s.pipes = append(s.pipes, systems.NewPipe(rng, cfg.Pipes.SpawnX, cfg.Pipes, s.geom))

	if len(s.agents) == 0 {
		s.state = GenerationComplete
	}
	if cfg.Simulation.Workers > 1 {
		s.parallel = newParallelState(cfg.Simulation.Workers)
	}
	return s
}

// SetPerfCollector enables per-phase timing.
func (s *Simulation) SetPerfCollector(p *telemetry.PerfCollector) {
	s.perf = p
}

// Step advances the simulation by one tick and returns the resulting state.
// Stepping a completed generation is a no-op.
func (s *Simulation) Step() State {
	if s.state == GenerationComplete {
		return s.state
	}
	s.tick++
	s.deaths = s.deaths[:0]

	s.startTick()

	s.startPhase(telemetry.PhaseControllers)
	ref := s.referencePipe()
	s.updateAgents(ref)

	s.startPhase(telemetry.PhaseCollisions)
	spawn := s.updatePipes()
	s.compactAgents()

	if spawn {
		s.score++
		for i := range s.agents {
			*s.agents[i].Fitness += s.cfg.Fitness.PassReward
		}
		s.pipes = append(s.pipes, systems.NewPipe(s.rng, s.cfg.Pipes.SpawnX, s.cfg.Pipes, s.geom))
	}
	s.compactPipes()

	s.startPhase(telemetry.PhaseScroll)
	s.ground.Advance()
	for i := range s.agents {
		a := &s.agents[i]
		systems.AdvanceAnimation(&a.Anim, a.Body.Tilt, s.cfg.Bird.AnimationTime)
	}

	s.startPhase(telemetry.PhaseBounds)
	s.checkBounds()
	s.compactAgents()

	if len(s.agents) == 0 {
		s.state = GenerationComplete
	}
	if limit := s.cfg.Simulation.MaxTicks; limit > 0 && s.tick >= limit {
		s.state = GenerationComplete
	}

	s.endTick()
	return s.state
}

// referencePipe returns the index of the pipe agents should steer by.
func (s *Simulation) referencePipe() int {
	if len(s.pipes) > 1 && len(s.agents) > 0 &&
		s.agents[0].Body.Pos.X > s.pipes[0].X+s.geom.Width {
		return 1
	}
	return 0
}

// observe builds the controller input for one agent.
func (s *Simulation) observe(a *Agent, ref int) neural.Observation {
	obs := neural.Observation{Y: a.Body.Pos.Y}
	if ref < len(s.pipes) {
		p := &s.pipes[ref]
		obs.GapTop = math.Abs(a.Body.Pos.Y - p.GapTop)
		obs.GapBottom = math.Abs(a.Body.Pos.Y - p.Bottom)
	}
	return obs
}

// updateAgents moves every agent, rewards survival and applies its controller's decision.
func (s *Simulation) updateAgents(ref int) {
	n := len(s.agents)
	if s.parallel != nil && n >= s.cfg.Simulation.ParallelThreshold {
		s.computeParallel(ref)
	} else {
		s.computeChunk(0, n, ref)
	}

	// Counted sequentially so the total does not depend on the worker split.
	for i := range s.agents {
		if s.agents[i].malformed {
			s.malformed++
		}
	}
}

// computeChunk runs the per-agent update for agents [i0, i1).
// Each call touches only its own agents.
func (s *Simulation) computeChunk(i0, i1, ref int) {
	phys := s.cfg.Physics
	threshold := s.cfg.Simulation.JumpThreshold
	reward := s.cfg.Fitness.SurvivalReward

	for i := i0; i < i1; i++ {
		a := &s.agents[i]
		systems.AdvanceBody(&a.Body, phys)
		*a.Fitness += reward

		out := a.Controller.Decide(s.observe(a, ref))
		a.malformed = math.IsNaN(out)
		if !a.malformed && out > threshold {
			systems.Jump(&a.Body, phys)
		}
	}
}

// updatePipes resolves collisions and passes against every pipe, then scrolls
// the pipes. It reports whether a pipe was passed this tick.
func (s *Simulation) updatePipes() (spawn bool) {
	s.doomed = resetFlags(s.doomed, len(s.agents))
	s.pipeGone = resetFlags(s.pipeGone, len(s.pipes))

	for pi := range s.pipes {
		pipe := &s.pipes[pi]
		for ai := range s.agents {
			if s.doomed[ai] {
				continue
			}
			a := &s.agents[ai]
			if systems.Collides(&a.Body, a.Anim.Frame, pipe, &s.bundle.Masks) {
				*a.Fitness += s.cfg.Fitness.CollisionPenalty
				s.doomed[ai] = true
				s.recordDeath(a, DeathCollision)
				continue
			}
			if systems.HasPassed(pipe, a.Body.Pos.X) {
				spawn = true
			}
		}

		if systems.IsOffscreen(pipe, s.geom) {
			s.pipeGone[pi] = true
		}
		systems.AdvancePipe(pipe, s.cfg.Pipes)
	}
	return spawn
}

// checkBounds marks agents that hit the ground or left the top of the screen.
func (s *Simulation) checkBounds() {
	s.doomed = resetFlags(s.doomed, len(s.agents))
	for i := range s.agents {
		a := &s.agents[i]
		switch {
		case a.Body.Pos.Y+s.birdH >= s.cfg.Ground.Y:
			s.doomed[i] = true
			s.recordDeath(a, DeathGround)
		case a.Body.Pos.Y < 0:
			s.doomed[i] = true
			s.recordDeath(a, DeathCeiling)
		}
	}
}

func (s *Simulation) recordDeath(a *Agent, cause DeathCause) {
	s.deaths = append(s.deaths, Death{Entrant: a.Entrant, X: a.Body.Pos.X, Y: a.Body.Pos.Y, Cause: cause})
	s.counts[cause]++
}

// compactAgents removes doomed agents in one pass, keeping order.
func (s *Simulation) compactAgents() {
	if len(s.doomed) != len(s.agents) {
		return
	}
	kept := s.agents[:0]
	for i := range s.agents {
		if !s.doomed[i] {
			kept = append(kept, s.agents[i])
		}
	}
	clear(s.agents[len(kept):])
	s.agents = kept
	s.doomed = s.doomed[:0]
}

// compactPipes removes offscreen pipes flagged during updatePipes.
// Pipes appended after the flags were taken are always kept.
func (s *Simulation) compactPipes() {
	kept := s.pipes[:0]
	for i := range s.pipes {
		if i < len(s.pipeGone) && s.pipeGone[i] {
			continue
		}
		kept = append(kept, s.pipes[i])
	}
	s.pipes = kept
	s.pipeGone = s.pipeGone[:0]
}

func resetFlags(flags []bool, n int) []bool {
	if cap(flags) < n {
		return make([]bool, n)
	}
	flags = flags[:n]
	clear(flags)
	return flags
}

func (s *Simulation) startTick() {
	if s.perf != nil {
		s.perf.StartTick()
	}
}

func (s *Simulation) startPhase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

func (s *Simulation) endTick() {
	if s.perf != nil {
		s.perf.EndTick()
	}
}

// Close stops any worker goroutines.
func (s *Simulation) Close() {
	if s.parallel != nil {
		s.parallel.stopWorkers()
	}
}

// State returns the current lifecycle state.
func (s *Simulation) State() State { return s.state }

// Done reports whether the generation has ended.
func (s *Simulation) Done() bool { return s.state == GenerationComplete }

// Tick returns the number of ticks stepped so far.
func (s *Simulation) Tick() int { return s.tick }

// Score returns the number of pipes passed.
func (s *Simulation) Score() int { return s.score }

// Alive returns the number of active agents.
func (s *Simulation) Alive() int { return len(s.agents) }

// Agents returns the active agents in order. The slice is only valid until the next Step.
func (s *Simulation) Agents() []Agent { return s.agents }

// Pipes returns the live pipes in creation order. The slice is only valid until the next Step.
func (s *Simulation) Pipes() []components.Pipe { return s.pipes }

// Ground returns the scrolling ground strip.
func (s *Simulation) Ground() *systems.Ground { return s.ground }

// Deaths returns the agents removed during the last Step.
func (s *Simulation) Deaths() []Death { return s.deaths }

// MalformedOutputs returns how many controller outputs were NaN so far.
func (s *Simulation) MalformedOutputs() int { return s.malformed }

// DeathCounts returns the number of deaths by collision, ground and ceiling.
func (s *Simulation) DeathCounts() (collision, ground, ceiling int) {
	return s.counts[DeathCollision], s.counts[DeathGround], s.counts[DeathCeiling]
}
