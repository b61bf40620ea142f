// Package systems contains the per-tick update rules for birds, pipes and the ground.
package systems

import (
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

// Jump gives the body an upward impulse and restarts its kinematic curve.
func Jump(b *components.Body, p config.PhysicsConfig) {
	b.Vel = p.JumpVelocity
	b.Ticks = 0
	b.RefHeight = b.Pos.Y
}

// Displacement returns the raw kinematic displacement t ticks after a jump,
// before any clamping: v*t + 0.5*a*t².
func Displacement(vel float64, t int, p config.PhysicsConfig) float64 {
	tf := float64(t)
	return vel*tf + 0.5*p.Gravity*tf*tf
}

// AdvanceBody moves the body one tick along its jump curve and updates its tilt.
func AdvanceBody(b *components.Body, p config.PhysicsConfig) {
	b.Ticks++

	d := Displacement(b.Vel, b.Ticks, p)

	// Terminal velocity
	if d >= p.TerminalVelocity {
		d = p.TerminalVelocity
	}
	// Rising birds get a little extra lift
	if d < 0 {
		d += p.AscentBias
	}

	b.Pos.Y += d
	b.LastDisplacement = d

	if d < 0 || b.Pos.Y < b.RefHeight+p.TiltBand {
		if b.Tilt < p.MaxRotation {
			b.Tilt = p.MaxRotation
		}
		return
	}

	if b.Tilt > p.MinTilt {
		b.Tilt -= p.RotationVelocity
		if b.Tilt < p.MinTilt {
			b.Tilt = p.MinTilt
		}
	}
}

// AdvanceAnimation steps the flap cycle 0,1,2,1,0 with frameTicks ticks per frame.
// A bird diving nose-down holds the wings-level frame.
func AdvanceAnimation(a *components.Animation, tilt float64, frameTicks int) {
	a.Count++

	switch {
	case a.Count < frameTicks:
		a.Frame = 0
	case a.Count < frameTicks*2:
		a.Frame = 1
	case a.Count < frameTicks*3:
		a.Frame = 2
	case a.Count < frameTicks*4:
		a.Frame = 1
	case a.Count == frameTicks*4+1:
		a.Frame = 0
		a.Count = 0
	}

	if tilt <= -80 {
		a.Frame = 1
		a.Count = frameTicks * 2
	}
}
