package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/neural"
)

// KeyboardController lets a human play. A space press is latched by Poll
// and consumed by the next Decide, so one press is at most one jump.
type KeyboardController struct {
	pending bool
}

// Poll latches a space press from the current frame.
func (k *KeyboardController) Poll() {
	if rl.IsKeyPressed(rl.KeySpace) {
		k.Press()
	}
}

// Press latches a jump.
func (k *KeyboardController) Press() {
	k.pending = true
}

// Clear drops a latched press that has not been consumed.
func (k *KeyboardController) Clear() {
	k.pending = false
}

// Decide implements neural.Controller.
func (k *KeyboardController) Decide(neural.Observation) float64 {
	if k.pending {
		k.pending = false
		return 1
	}
	return 0
}
