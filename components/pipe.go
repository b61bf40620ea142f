package components

// Pipe is a pair of obstacles with a vertical gap between them.
// GapTop is where the top pipe ends; the bottom pipe starts at Bottom.
type Pipe struct {
	X      float64
	GapTop float64
	Top    float64 // Y of the top sprite's upper edge (usually negative)
	Bottom float64 // Y of the bottom sprite's upper edge, also the gap's lower edge
	Passed bool
}
