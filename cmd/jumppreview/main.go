// Jump curve preview tool - interactive tuning of the bird kinematics.
//
// Usage: go run ./cmd/jumppreview
package main

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 800
	previewW     = 560
	panelWidth   = windowWidth - previewW - 30
	previewTicks = 110
)

// trajectory returns the bird's Y after each tick when it jumps every
// interval ticks, starting with a jump at tick 0. Ground and ceiling are
// ignored so the whole curve stays visible.
func trajectory(p config.PhysicsConfig, startY float64, interval, ticks int) []float64 {
	body := components.NewBody(0, startY)
	ys := make([]float64, 0, ticks)
	for t := 0; t < ticks; t++ {
		if interval > 0 && t%interval == 0 {
			systems.Jump(&body, p)
		}
		systems.AdvanceBody(&body, p)
		ys = append(ys, body.Pos.Y)
	}
	return ys
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := cfg.Physics
	params := defaults
	interval := float32(12)

	rl.InitWindow(windowWidth, windowHeight, "Jump Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	for !rl.WindowShouldClose() {
		ys := trajectory(params, cfg.Bird.StartY, int(interval), previewTicks)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview: x is distance scrolled, y is screen height
		rl.DrawRectangle(10, 0, previewW, int32(cfg.Ground.Y), rl.Color{R: 112, G: 197, B: 206, A: 255})
		rl.DrawRectangle(10, int32(cfg.Ground.Y), previewW, windowHeight-int32(cfg.Ground.Y), rl.Color{R: 222, G: 216, B: 149, A: 255})

		gapTop := float32(cfg.Bird.StartY) - float32(cfg.Pipes.GapSize)/2
		rl.DrawRectangleLines(10, int32(gapTop), previewW, int32(cfg.Pipes.GapSize), rl.DarkGreen)

		stepX := float32(previewW) / float32(previewTicks)
		prev := rl.Vector2{X: 10, Y: float32(cfg.Bird.StartY)}
		for t, y := range ys {
			cur := rl.Vector2{X: 10 + stepX*float32(t+1), Y: float32(y)}
			color := rl.DarkBlue
			if y < 0 || y >= cfg.Ground.Y {
				color = rl.Red
			}
			rl.DrawLineEx(prev, cur, 2, color)
			prev = cur
		}

		// Stats
		minY, maxY := ys[0], ys[0]
		for _, y := range ys {
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
		rise := systems.Displacement(params.JumpVelocity, 1, params) + params.AscentBias
		rl.DrawText(fmt.Sprintf("Highest: %.0f  Lowest: %.0f  First tick: %.1f", minY, maxY, rise), 15, windowHeight-30, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Bird Physics", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY = slider(panelX, panelY, "Jump velocity", "-20", "-2", &params.JumpVelocity, -20, -2)
		panelY = slider(panelX, panelY, "Gravity (px/tick²)", "0.5", "6", &params.Gravity, 0.5, 6)
		panelY = slider(panelX, panelY, "Terminal velocity", "4", "30", &params.TerminalVelocity, 4, 30)
		panelY = slider(panelX, panelY, "Ascent bias", "-6", "0", &params.AscentBias, -6, 0)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("Ticks between jumps", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		interval = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"4", "30",
			interval, 4, 30,
		)
		interval = float32(int(interval))
		rl.DrawText(fmt.Sprintf("%d", int(interval)), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			interval = 12
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := physicsYAML(params)
		for _, line := range yaml {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yaml {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bound to v and returns the next panel Y.
func slider(x, y float32, label, minText, maxText string, v *float64, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	*v = float64(gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		float32(*v), lo, hi,
	))
	rl.DrawText(fmt.Sprintf("%.2f", *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return y + 35
}

func physicsYAML(p config.PhysicsConfig) []string {
	return []string{
		"physics:",
		fmt.Sprintf("  jump_velocity: %.2f", p.JumpVelocity),
		fmt.Sprintf("  gravity: %.2f", p.Gravity),
		fmt.Sprintf("  terminal_velocity: %.2f", p.TerminalVelocity),
		fmt.Sprintf("  ascent_bias: %.2f", p.AscentBias),
	}
}
