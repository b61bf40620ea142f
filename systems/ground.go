package systems

// Ground is a two-tile strip that loops horizontally.
// It is purely cosmetic; birds die on GroundY from config, not on the tiles.
type Ground struct {
	Y      float64
	X1, X2 float64
	Width  float64
	vel    float64
}

// NewGround creates a ground strip whose tiles are width wide.
func NewGround(y, width, vel float64) *Ground {
	return &Ground{
		Y:     y,
		X1:    0,
		X2:    width,
		Width: width,
		vel:   vel,
	}
}

// Advance scrolls both tiles and moves a tile that left the screen behind the other one.
func (g *Ground) Advance() {
	g.X1 -= g.vel
	g.X2 -= g.vel

	if g.X1+g.Width < 0 {
		g.X1 = g.X2 + g.Width
	}
	if g.X2+g.Width < 0 {
		g.X2 = g.X1 + g.Width
	}
}
