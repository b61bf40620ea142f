package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/assets"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/renderer"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
	"github.com/pthm-cable/flap/ui"
)

// Feathers released by a dying bird.
const deathFeathers = 14

// viewer owns the window and drives generations one frame at a time.
type viewer struct {
	cfg    *config.Config
	bundle *assets.Bundle
	rng    *rand.Rand
	mode   string

	sprites  *renderer.Sprites
	scene    *renderer.SceneRenderer
	feathers *systems.FeatherSystem

	hud      *ui.HUD
	controls *ui.Controls
	playback *ui.Playback

	keyboard *ui.KeyboardController    // play mode only
	perf     *telemetry.PerfCollector // optional

	bestFitness float64
	hasBest     bool
}

// newViewer opens the window. Call close when done.
func newViewer(cfg *config.Config, bundle *assets.Bundle, rng *rand.Rand, mode string) *viewer {
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.InitWindow(w, h, cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sprites := renderer.LoadSprites(bundle)
	return &viewer{
		cfg:      cfg,
		bundle:   bundle,
		rng:      rng,
		mode:     mode,
		sprites:  sprites,
		scene:    renderer.NewSceneRenderer(sprites, w, h),
		feathers: systems.NewFeatherSystem(rng),
		hud:      ui.NewHUD(),
		controls: ui.NewControls(h),
		playback: ui.NewPlayback(),
	}
}

func (v *viewer) close() {
	v.sprites.Unload()
	rl.CloseWindow()
}

// run plays generations until the count is reached, the window closes or
// ctx is cancelled. Completed generations are reported to the adapter.
func (v *viewer) run(ctx context.Context, adapter game.TrainingAdapter, generations int) error {
	for gen := 0; gen < generations; gen++ {
		entrants := adapter.Entrants(gen)
		if len(entrants) == 0 {
			return fmt.Errorf("generation %d: %w", gen, game.ErrNoEntrants)
		}

		result, done := v.play(ctx, gen, entrants)
		if !done {
			return ctx.Err()
		}
		if err := adapter.Complete(result); err != nil {
			return fmt.Errorf("generation %d: %w", gen, err)
		}

		best := result.Fitness[0]
		for _, f := range result.Fitness[1:] {
			best = max(best, f)
		}
		v.bestFitness, v.hasBest = best, true
	}
	return nil
}

// play runs one generation frame by frame. It reports false if the window
// was closed or ctx cancelled before every agent died.
func (v *viewer) play(ctx context.Context, gen int, entrants []game.Entrant) (game.GenerationResult, bool) {
	sim := game.NewSimulation(v.cfg, v.bundle, v.rng, entrants)
	defer sim.Close()
	if v.perf != nil {
		sim.SetPerfCollector(v.perf)
	}

	birdW, birdH := v.bundle.BirdSize()
	start := time.Now()

	for !sim.Done() {
		if rl.WindowShouldClose() || ctx.Err() != nil {
			return game.GenerationResult{}, false
		}

		v.playback.HandleKeys()
		steps := v.playback.StepsThisFrame()
		if v.keyboard != nil {
			// Presses while paused are dropped, not replayed on resume.
			if steps > 0 {
				v.keyboard.Poll()
			} else {
				v.keyboard.Clear()
			}
		}

		for i := steps; i > 0 && !sim.Done(); i-- {
			sim.Step()
			for _, d := range sim.Deaths() {
				v.feathers.Emit(d.X+birdW/2, d.Y+birdH/2, deathFeathers)
			}
			v.feathers.Update()
		}

		v.draw(sim, gen)
	}

	return sim.Result(gen, time.Since(start)), true
}

func (v *viewer) draw(sim *game.Simulation, gen int) {
	renderStart := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.scene.Draw(sim, v.feathers)
	v.hud.Draw(ui.HUDData{
		Mode:        v.mode,
		Generation:  gen,
		Alive:       sim.Alive(),
		Tick:        sim.Tick(),
		Speed:       v.playback.EffectiveSpeed(),
		FPS:         rl.GetFPS(),
		Paused:      v.playback.Paused,
		BestFitness: v.bestFitness,
		HasBest:     v.hasBest,
	})
	v.controls.Draw(v.playback)
	v.hud.DrawControls(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), "SPACE jump | P pause | , . speed | F fast")

	rl.EndDrawing()

	if v.perf != nil {
		v.perf.AddToLastTick(telemetry.PhaseRender, time.Since(renderStart))
		v.perf.RecordFrame()
	}
}
