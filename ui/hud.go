package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Mode        string
	Generation  int
	Alive       int
	Tick        int
	Speed       int
	FPS         int32
	Paused      bool
	BestFitness float64 // of the previous generation, shown when HasBest
	HasBest     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    170,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	lines := int32(5)
	if data.HasBest {
		lines++
	}
	height := r.Theme.HeaderFontSize + 6 + lines*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + r.Theme.Padding
	y := h.y + r.Theme.Padding

	rl.DrawText(data.Mode, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.HeaderFontSize + 6

	y = r.DrawLabelValue(x, y, "Gen", fmt.Sprintf("%d", data.Generation))
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%d", data.Alive))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%dx | %d fps", data.Speed, data.FPS))
	if data.HasBest {
		y = r.DrawLabelValue(x, y, "Best", fmt.Sprintf("%.1f", data.BestFitness))
	}

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
