package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

func physics() config.PhysicsConfig {
	return config.Default().Physics
}

func TestJumpResetsCurve(t *testing.T) {
	p := physics()
	b := components.NewBody(230, 350)
	b.Ticks = 9
	b.Pos.Y = 400

	Jump(&b, p)

	if b.Vel != p.JumpVelocity {
		t.Errorf("Vel = %v, want %v", b.Vel, p.JumpVelocity)
	}
	if b.Ticks != 0 {
		t.Errorf("Ticks = %d, want 0", b.Ticks)
	}
	if b.RefHeight != 400 {
		t.Errorf("RefHeight = %v, want 400", b.RefHeight)
	}
}

func TestFallFromRestAccelerates(t *testing.T) {
	p := physics()
	b := components.NewBody(230, 350)

	want := []float64{1.5, 6, 13.5, 16, 16, 16}
	for i, w := range want {
		AdvanceBody(&b, p)
		if b.LastDisplacement != w {
			t.Errorf("tick %d: displacement = %v, want %v", i+1, b.LastDisplacement, w)
		}
	}
	if b.Pos.Y != 350+1.5+6+13.5+16*3 {
		t.Errorf("Y = %v after six ticks", b.Pos.Y)
	}
}

func TestDisplacementMonotoneUntilClamp(t *testing.T) {
	p := physics()

	// From rest: magnitude grows until the clamp engages, never past it.
	b := components.NewBody(0, 0)
	prev := 0.0
	for i := 0; i < 50; i++ {
		AdvanceBody(&b, p)
		d := b.LastDisplacement
		if math.Abs(d) < math.Abs(prev) {
			t.Fatalf("tick %d: |d| shrank from %v to %v", i+1, prev, d)
		}
		if d > p.TerminalVelocity {
			t.Fatalf("tick %d: d = %v exceeds clamp %v", i+1, d, p.TerminalVelocity)
		}
		prev = d
	}

	// After a jump: once past the apex of the curve, displacement only grows.
	b = components.NewBody(0, 500)
	Jump(&b, p)
	apex := int(math.Ceil(-p.JumpVelocity / p.Gravity))
	prev = math.Inf(-1)
	for i := 1; i <= 50; i++ {
		AdvanceBody(&b, p)
		d := b.LastDisplacement
		if d > p.TerminalVelocity {
			t.Fatalf("tick %d: d = %v exceeds clamp", i, d)
		}
		if i >= apex {
			if d < prev {
				t.Fatalf("tick %d: d decreased from %v to %v", i, prev, d)
			}
			prev = d
		}
	}
}

func TestAscentBiasOnlyWhileRising(t *testing.T) {
	p := physics()
	b := components.NewBody(0, 500)
	Jump(&b, p)

	AdvanceBody(&b, p)
	raw := Displacement(p.JumpVelocity, 1, p)
	if b.LastDisplacement != raw+p.AscentBias {
		t.Errorf("rising displacement = %v, want %v", b.LastDisplacement, raw+p.AscentBias)
	}

	b = components.NewBody(0, 0)
	AdvanceBody(&b, p)
	if b.LastDisplacement != Displacement(0, 1, p) {
		t.Errorf("falling displacement = %v, want unbiased %v", b.LastDisplacement, Displacement(0, 1, p))
	}
}

func TestTilt(t *testing.T) {
	p := physics()

	t.Run("nose up after jump", func(t *testing.T) {
		b := components.NewBody(0, 400)
		Jump(&b, p)
		AdvanceBody(&b, p)
		if b.Tilt != p.MaxRotation {
			t.Errorf("Tilt = %v, want %v", b.Tilt, p.MaxRotation)
		}
	})

	t.Run("nose up inside band", func(t *testing.T) {
		b := components.NewBody(0, 400)
		AdvanceBody(&b, p) // falls 1.5, still within 50 of the reference
		if b.Tilt != p.MaxRotation {
			t.Errorf("Tilt = %v, want %v", b.Tilt, p.MaxRotation)
		}
	})

	t.Run("dives and floors", func(t *testing.T) {
		b := components.NewBody(0, 0)
		for i := 0; i < 40; i++ {
			AdvanceBody(&b, p)
			if b.Tilt < p.MinTilt {
				t.Fatalf("tick %d: tilt %v below floor %v", i+1, b.Tilt, p.MinTilt)
			}
		}
		if b.Tilt != p.MinTilt {
			t.Errorf("Tilt = %v, want floor %v", b.Tilt, p.MinTilt)
		}
	})
}

func TestAdvanceAnimationCycle(t *testing.T) {
	var a components.Animation
	var frames []int
	for i := 0; i < 22; i++ {
		AdvanceAnimation(&a, 0, 5)
		frames = append(frames, a.Frame)
	}

	want := []int{
		0, 0, 0, 0, // counts 1-4
		1, 1, 1, 1, 1, // 5-9
		2, 2, 2, 2, 2, // 10-14
		1, 1, 1, 1, 1, // 15-19
		1,    // 20 holds
		0,    // 21 resets
		0,    // 1 again
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
	}
}

func TestAdvanceAnimationDivePinsFrame(t *testing.T) {
	a := components.Animation{Count: 12, Frame: 2}
	AdvanceAnimation(&a, -85, 5)
	if a.Frame != 1 || a.Count != 10 {
		t.Errorf("got frame %d count %d, want frame 1 count 10", a.Frame, a.Count)
	}
}
