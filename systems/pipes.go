package systems

import (
	"math/rand"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

// PipeGeometry is the sprite size shared by every pipe half.
type PipeGeometry struct {
	Width, Height float64
}

// NewPipe creates a pipe at spawnX with a gap top drawn uniformly from [GapMin, GapMax).
func NewPipe(rng *rand.Rand, spawnX float64, p config.PipesConfig, geom PipeGeometry) components.Pipe {
	gapTop := float64(p.GapMin + rng.Intn(p.GapMax-p.GapMin))
	return components.Pipe{
		X:      spawnX,
		GapTop: gapTop,
		Top:    gapTop - geom.Height,
		Bottom: gapTop + p.GapSize,
	}
}

// AdvancePipe scrolls the pipe left by one tick.
func AdvancePipe(pipe *components.Pipe, p config.PipesConfig) {
	pipe.X -= p.ScrollVelocity
}

// HasPassed reports whether the pipe has just moved behind agentX.
// It fires at most once per pipe: the first positive answer latches Passed.
func HasPassed(pipe *components.Pipe, agentX float64) bool {
	if pipe.Passed || pipe.X >= agentX {
		return false
	}
	pipe.Passed = true
	return true
}

// IsOffscreen reports whether the pipe's right edge is past the left screen edge.
func IsOffscreen(pipe *components.Pipe, geom PipeGeometry) bool {
	return pipe.X+geom.Width < 0
}
