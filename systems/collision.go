package systems

import (
	"math"

	"github.com/pthm-cable/flap/components"
)

// Silhouettes holds the collision masks for every sprite that can collide.
type Silhouettes struct {
	Bird       []*Mask // one per animation frame
	PipeTop    *Mask
	PipeBottom *Mask
}

// BirdMask returns the mask for an animation frame, clamped to the available frames.
func (s *Silhouettes) BirdMask(frame int) *Mask {
	if frame < 0 {
		frame = 0
	}
	if frame >= len(s.Bird) {
		frame = len(s.Bird) - 1
	}
	return s.Bird[frame]
}

// Collides reports whether the bird's current frame overlaps either half of the pipe.
// The pipe's offset from the bird is snapped to whole pixels before the masks
// are compared, so moving both by the same vector keeps the verdict.
func Collides(body *components.Body, frame int, pipe *components.Pipe, s *Silhouettes) bool {
	bird := s.BirdMask(frame)
	px := int(math.Round(pipe.X - body.Pos.X))

	if bird.Overlap(s.PipeTop, px, int(math.Round(pipe.Top-body.Pos.Y))) {
		return true
	}
	return bird.Overlap(s.PipeBottom, px, int(math.Round(pipe.Bottom-body.Pos.Y)))
}
