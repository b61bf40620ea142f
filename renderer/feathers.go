package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/systems"
)

// FeatherRenderer renders the feather bursts left by dead birds.
type FeatherRenderer struct {
	Size float32
}

// NewFeatherRenderer creates a new feather renderer.
func NewFeatherRenderer() *FeatherRenderer {
	return &FeatherRenderer{Size: 3}
}

// Draw renders all feathers, fading them out as their life runs down.
func (r *FeatherRenderer) Draw(feathers *systems.FeatherSystem) {
	feathers.Each(func(pos components.Position, life components.Life) {
		lifeRatio := life.Fraction()

		color := rl.Color{
			R: 250,
			G: 215,
			B: 80,
			A: uint8(lifeRatio * 220),
		}

		size := r.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(pos.X), int32(pos.Y), size, color)
	})
}
