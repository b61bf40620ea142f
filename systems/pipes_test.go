package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

var testPipeGeom = PipeGeometry{Width: 104, Height: 640}

func TestNewPipeGapRange(t *testing.T) {
	p := config.Default().Pipes
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		pipe := NewPipe(rng, 700, p, testPipeGeom)
		if pipe.GapTop < float64(p.GapMin) || pipe.GapTop >= float64(p.GapMax) {
			t.Fatalf("gap top %v outside [%d, %d)", pipe.GapTop, p.GapMin, p.GapMax)
		}
		if pipe.Top != pipe.GapTop-testPipeGeom.Height {
			t.Fatalf("Top = %v, want %v", pipe.Top, pipe.GapTop-testPipeGeom.Height)
		}
		if pipe.Bottom != pipe.GapTop+p.GapSize {
			t.Fatalf("Bottom = %v, want %v", pipe.Bottom, pipe.GapTop+p.GapSize)
		}
		if pipe.X != 700 || pipe.Passed {
			t.Fatalf("unexpected initial state %+v", pipe)
		}
	}
}

func TestAdvancePipeStrictlyDecreases(t *testing.T) {
	p := config.Default().Pipes
	pipe := components.Pipe{X: 700}
	prev := pipe.X
	for i := 0; i < 100; i++ {
		AdvancePipe(&pipe, p)
		if pipe.X >= prev {
			t.Fatalf("x did not decrease: %v -> %v", prev, pipe.X)
		}
		prev = pipe.X
	}
}

func TestHasPassedFiresOnce(t *testing.T) {
	p := config.Default().Pipes
	pipe := components.Pipe{X: 300}
	agents := []float64{230, 230, 230}

	fired := 0
	for tick := 0; tick < 200; tick++ {
		for _, x := range agents {
			if HasPassed(&pipe, x) {
				fired++
			}
		}
		AdvancePipe(&pipe, p)
	}

	if fired != 1 {
		t.Errorf("HasPassed fired %d times, want 1", fired)
	}
}

func TestHasPassedBoundary(t *testing.T) {
	pipe := components.Pipe{X: 230}
	if HasPassed(&pipe, 230) {
		t.Error("pipe level with the agent should not count as passed")
	}
	pipe.X = 229.9
	if !HasPassed(&pipe, 230) {
		t.Error("pipe behind the agent should count as passed")
	}
}

func TestIsOffscreen(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{0, false},
		{-104, false},
		{-104.5, true},
		{-200, true},
	}
	for _, tt := range tests {
		pipe := components.Pipe{X: tt.x}
		if got := IsOffscreen(&pipe, testPipeGeom); got != tt.want {
			t.Errorf("IsOffscreen(x=%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
