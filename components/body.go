package components

// Body holds the kinematic state of a bird.
// Position X is fixed for the lifetime of the bird; only Y moves.
type Body struct {
	Pos Position

	Vel       float64 // velocity set by the last jump (negative = up)
	Ticks     int     // ticks since the last jump
	RefHeight float64 // Y at the last jump, used for tilt
	Tilt      float64 // degrees, positive = nose up

	// Displacement applied by the most recent advance.
	LastDisplacement float64
}

// NewBody creates a resting body at (x, y).
func NewBody(x, y float64) Body {
	return Body{
		Pos:       Position{X: x, Y: y},
		RefHeight: y,
	}
}

// Animation tracks which flap frame a bird shows.
// The current frame also selects the collision silhouette.
type Animation struct {
	Count int
	Frame int
}
