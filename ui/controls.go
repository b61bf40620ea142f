package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

const (
	buttonW   = 44
	buttonH   = 24
	buttonGap = 6
)

// Controls renders the raygui playback buttons along the bottom edge.
type Controls struct {
	x, y float32
}

// NewControls places the button row above the bottom edge of the screen.
func NewControls(screenHeight int32) *Controls {
	return &Controls{
		x: 10,
		y: float32(screenHeight) - 60,
	}
}

// Draw renders the buttons and applies any click to p.
func (c *Controls) Draw(p *Playback) {
	x := c.x

	pauseLabel := "#132#" // pause icon
	if p.Paused {
		pauseLabel = "#131#" // play icon
	}
	if gui.Button(c.rect(x), pauseLabel) {
		p.TogglePause()
	}
	x += buttonW + buttonGap

	if gui.Button(c.rect(x), "-") {
		p.Slower()
	}
	x += buttonW + buttonGap

	if gui.Button(c.rect(x), "+") {
		p.Faster()
	}
	x += buttonW + buttonGap

	ffLabel := ">>"
	if p.FastForward {
		ffLabel = "[>>]"
	}
	if gui.Button(c.rect(x), ffLabel) {
		p.ToggleFastForward()
	}
}

func (c *Controls) rect(x float32) rl.Rectangle {
	return rl.Rectangle{X: x, Y: c.y, Width: buttonW, Height: buttonH}
}
