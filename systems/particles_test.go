package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/components"
)

func TestFeatherSystemEmitAndExpire(t *testing.T) {
	fs := NewFeatherSystem(rand.New(rand.NewSource(1)))
	fs.Emit(100, 200, 12)
	if fs.Count() != 12 {
		t.Fatalf("Count = %d, want 12", fs.Count())
	}

	seen := 0
	fs.Each(func(pos components.Position, life components.Life) {
		seen++
		if pos.X != 100 || pos.Y != 200 {
			t.Errorf("fresh feather at (%v, %v), want (100, 200)", pos.X, pos.Y)
		}
		if life.Fraction() != 1 {
			t.Errorf("fresh feather life fraction = %v, want 1", life.Fraction())
		}
	})
	if seen != 12 {
		t.Errorf("Each visited %d feathers, want 12", seen)
	}

	for i := 0; i < featherLife; i++ {
		fs.Update()
	}
	if fs.Count() != 0 {
		t.Errorf("Count after %d ticks = %d, want 0", featherLife, fs.Count())
	}
}

func TestFeatherSystemCapped(t *testing.T) {
	fs := NewFeatherSystem(rand.New(rand.NewSource(2)))
	fs.Emit(0, 0, maxFeathers+50)
	if fs.Count() != maxFeathers {
		t.Errorf("Count = %d, want cap %d", fs.Count(), maxFeathers)
	}
}

func TestFeatherSystemFeathersFall(t *testing.T) {
	fs := NewFeatherSystem(rand.New(rand.NewSource(3)))
	fs.Emit(0, 0, 30)

	meanY := func() float64 {
		var sum float64
		n := 0
		fs.Each(func(pos components.Position, _ components.Life) {
			sum += pos.Y
			n++
		})
		if n == 0 {
			t.Fatal("all feathers expired early")
		}
		return sum / float64(n)
	}

	for i := 0; i < 6; i++ {
		fs.Update()
	}
	early := meanY()
	for i := 0; i < 4; i++ {
		fs.Update()
	}
	if late := meanY(); late <= early {
		t.Errorf("mean feather y went from %v to %v, want gravity to pull it down", early, late)
	}
}
