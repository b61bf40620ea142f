package systems

import (
	"image"

	"github.com/bits-and-blooms/bitset"
)

// AlphaThreshold is the minimum alpha (8-bit) a pixel needs to be solid.
const AlphaThreshold = 127

// Mask is a 1-bit silhouette of a sprite, stored row-major.
type Mask struct {
	W, H int
	bits *bitset.BitSet
}

// NewMask creates an empty mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, bits: bitset.New(uint(w * h))}
}

// MaskFromImage builds a mask with one bit per pixel whose alpha exceeds AlphaThreshold.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > AlphaThreshold {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Set marks (x, y) solid. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits.Set(uint(y*m.W + x))
}

// Get reports whether (x, y) is solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits.Test(uint(y*m.W + x))
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

// Overlap reports whether other, placed at (dx, dy) relative to m's top-left
// corner, shares at least one solid pixel with m.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	x0, x1 := max(0, dx), min(m.W, dx+other.W)
	y0, y1 := max(0, dy), min(m.H, dy+other.H)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	for y := y0; y < y1; y++ {
		row := y * m.W
		otherRow := (y - dy) * other.W
		for x := x0; x < x1; x++ {
			if m.bits.Test(uint(row+x)) && other.bits.Test(uint(otherRow+x-dx)) {
				return true
			}
		}
	}
	return false
}
