// Package components defines the plain data types shared by the simulation systems.
package components

// Position represents an entity's screen position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's per-tick velocity.
type Velocity struct {
	X, Y float64
}

// Life counts down the remaining ticks of a short-lived effect entity.
type Life struct {
	Remaining int32
	Max       int32
}

// Fraction returns the share of life remaining in [0, 1].
func (l Life) Fraction() float32 {
	if l.Max <= 0 {
		return 0
	}
	return float32(l.Remaining) / float32(l.Max)
}
