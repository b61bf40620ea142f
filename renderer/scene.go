package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/systems"
)

// SceneRenderer draws one frame of a running simulation.
type SceneRenderer struct {
	sprites  *Sprites
	feathers *FeatherRenderer
	width    int32
	height   int32
}

// NewSceneRenderer creates a renderer for a window of the given size.
func NewSceneRenderer(sprites *Sprites, width, height int32) *SceneRenderer {
	return &SceneRenderer{
		sprites:  sprites,
		feathers: NewFeatherRenderer(),
		width:    width,
		height:   height,
	}
}

// Draw renders background, pipes, ground, birds and feathers, then the
// score in the top-right corner. Call between BeginDrawing and EndDrawing.
func (r *SceneRenderer) Draw(sim *game.Simulation, feathers *systems.FeatherSystem) {
	r.drawBackground()

	for _, p := range sim.Pipes() {
		rl.DrawTexture(r.sprites.PipeTop, int32(p.X), int32(p.Top), rl.White)
		rl.DrawTexture(r.sprites.PipeBottom, int32(p.X), int32(p.Bottom), rl.White)
	}

	g := sim.Ground()
	rl.DrawTexture(r.sprites.Ground, int32(g.X1), int32(g.Y), rl.White)
	rl.DrawTexture(r.sprites.Ground, int32(g.X2), int32(g.Y), rl.White)

	for i := range sim.Agents() {
		r.drawBird(&sim.Agents()[i])
	}

	if feathers != nil {
		r.feathers.Draw(feathers)
	}

	score := fmt.Sprintf("Score: %d", sim.Score())
	w := rl.MeasureText(score, 30)
	rl.DrawText(score, r.width-w-15, 10, 30, rl.White)
}

// drawBackground stretches the backdrop over the whole window.
func (r *SceneRenderer) drawBackground() {
	bg := r.sprites.Background
	src := rl.Rectangle{Width: float32(bg.Width), Height: float32(bg.Height)}
	dst := rl.Rectangle{Width: float32(r.width), Height: float32(r.height)}
	rl.DrawTexturePro(bg, src, dst, rl.Vector2{}, 0, rl.White)
}

// drawBird draws the bird's current flap frame rotated about its centre.
// Positive tilt is nose-up, which is counter-clockwise on screen.
func (r *SceneRenderer) drawBird(a *game.Agent) {
	frame := a.Anim.Frame
	if frame < 0 || frame >= len(r.sprites.Birds) {
		frame = 0
	}
	tex := r.sprites.Birds[frame]
	w, h := float32(tex.Width), float32(tex.Height)

	src := rl.Rectangle{Width: w, Height: h}
	dst := rl.Rectangle{
		X:      float32(a.Body.Pos.X) + w/2,
		Y:      float32(a.Body.Pos.Y) + h/2,
		Width:  w,
		Height: h,
	}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{X: w / 2, Y: h / 2}, float32(-a.Body.Tilt), rl.White)
}
