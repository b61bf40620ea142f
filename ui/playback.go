package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Speed limits in simulation ticks per frame.
const (
	MinSpeed         = 1
	MaxSpeed         = 10
	FastForwardSpeed = 50
)

// Playback holds the pause and speed state of a windowed run.
type Playback struct {
	Paused      bool
	Speed       int
	FastForward bool
}

// NewPlayback returns an unpaused playback at normal speed.
func NewPlayback() *Playback {
	return &Playback{Speed: MinSpeed}
}

// TogglePause pauses or resumes.
func (p *Playback) TogglePause() {
	p.Paused = !p.Paused
}

// Faster raises the speed by one step.
func (p *Playback) Faster() {
	if p.Speed < MaxSpeed {
		p.Speed++
	}
}

// Slower lowers the speed by one step.
func (p *Playback) Slower() {
	if p.Speed > MinSpeed {
		p.Speed--
	}
}

// ToggleFastForward switches fast-forward on or off.
func (p *Playback) ToggleFastForward() {
	p.FastForward = !p.FastForward
}

// StepsThisFrame returns how many ticks to simulate in the coming frame.
func (p *Playback) StepsThisFrame() int {
	switch {
	case p.Paused:
		return 0
	case p.FastForward:
		return FastForwardSpeed
	default:
		return p.Speed
	}
}

// EffectiveSpeed is the speed shown on the HUD.
func (p *Playback) EffectiveSpeed() int {
	if p.FastForward {
		return FastForwardSpeed
	}
	return p.Speed
}

// HandleKeys applies the playback key bindings: P pauses, comma and period
// change speed, F toggles fast-forward.
func (p *Playback) HandleKeys() {
	if rl.IsKeyPressed(rl.KeyP) {
		p.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		p.Slower()
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		p.Faster()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		p.ToggleFastForward()
	}
}
