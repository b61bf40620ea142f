package neural

import "math"

// Observation is what a controller sees each tick.
// Distances are absolute vertical distances from the bird's y to the
// reference pipe's gap edges.
type Observation struct {
	Y         float64
	GapTop    float64
	GapBottom float64
}

// Inputs returns the observation scaled for a network.
func (o Observation) Inputs() [NumInputs]float32 {
	return [NumInputs]float32{
		float32(o.Y * inputScale),
		float32(o.GapTop * inputScale),
		float32(o.GapBottom * inputScale),
	}
}

// Controller maps an observation to a jump activation. Values above the
// simulation's jump threshold make the bird jump; NaN never does.
type Controller interface {
	Decide(obs Observation) float64
}

// Func adapts a plain function to Controller.
type Func func(Observation) float64

// Decide implements Controller.
func (f Func) Decide(obs Observation) float64 { return f(obs) }

// Never is a controller that never jumps.
type Never struct{}

// Decide implements Controller.
func (Never) Decide(Observation) float64 { return 0 }

// Always is a controller that jumps every tick.
type Always struct{}

// Decide implements Controller.
func (Always) Decide(Observation) float64 { return 1 }

// GapSeeker is a scripted controller that hops whenever the bird sinks
// towards the bottom of the reference gap.
type GapSeeker struct {
	Gap    float64 // vertical gap size
	Margin float64 // jump once the gap bottom is closer than this
}

// Decide implements Controller.
func (g GapSeeker) Decide(obs Observation) float64 {
	// Below the gap the top edge is further than the bottom edge by a whole gap.
	if obs.GapTop > obs.GapBottom && obs.GapTop >= g.Gap {
		return 1
	}
	inGap := obs.GapBottom < g.Gap
	if inGap && obs.GapBottom < g.Margin {
		return 1
	}
	return 0
}

// NaN is a controller whose output is always malformed.
type NaN struct{}

// Decide implements Controller.
func (NaN) Decide(Observation) float64 { return math.NaN() }
