package systems

import (
	"testing"

	"github.com/pthm-cable/flap/components"
)

// testSilhouettes mimics the real sprites: an elliptical bird and capped pipes.
func testSilhouettes() *Silhouettes {
	pipeTop := NewMask(52, 320)
	pipeBottom := NewMask(52, 320)
	for y := 0; y < 320; y++ {
		for x := 0; x < 52; x++ {
			// Cap spans the full width for 24 rows at the gap end, body is inset by 4.
			inBody := x >= 4 && x < 48
			if y < 24 || inBody {
				pipeBottom.Set(x, y)
			}
			if y >= 320-24 || inBody {
				pipeTop.Set(x, y)
			}
		}
	}
	return &Silhouettes{
		Bird:       []*Mask{ellipseMask(34, 24), ellipseMask(34, 22), ellipseMask(34, 24)},
		PipeTop:    pipeTop,
		PipeBottom: pipeBottom,
	}
}

func TestCollidesInsideGap(t *testing.T) {
	s := testSilhouettes()
	body := components.NewBody(100, 200)
	pipe := components.Pipe{X: 90, GapTop: 150, Top: 150 - 320, Bottom: 300}

	if Collides(&body, 0, &pipe, s) {
		t.Error("bird centred in the gap collided")
	}

	body.Pos.Y = 140 // top of the bird inside the top pipe
	if !Collides(&body, 0, &pipe, s) {
		t.Error("bird overlapping the top pipe did not collide")
	}

	body.Pos.Y = 290
	if !Collides(&body, 0, &pipe, s) {
		t.Error("bird overlapping the bottom pipe did not collide")
	}
}

func TestCollidesIgnoresBoxCorners(t *testing.T) {
	s := testSilhouettes()
	pipe := components.Pipe{X: 100, GapTop: 150, Top: 150 - 320, Bottom: 300}

	// Bird's bounding box clips the bottom pipe's top-left cap corner,
	// but the ellipse's corner is empty.
	body := components.NewBody(100-32, 300-22)
	if Collides(&body, 0, &pipe, s) {
		t.Error("bounding-box corner counted as collision")
	}
}

func TestCollidesTranslationInvariant(t *testing.T) {
	s := testSilhouettes()
	shifts := [][2]float64{
		{0, 0}, {-37, 12}, {250, -90}, {5, 5}, {-400, 333},
		{0, 0.5}, {0.25, 0.25}, {-0.75, 0.5}, {12.5, -3.25},
	}

	for by := 100.0; by <= 340; by += 3.25 {
		for bx := 40.0; bx <= 160; bx += 9 {
			want := Collides(
				&components.Body{Pos: components.Position{X: bx, Y: by}},
				0,
				&components.Pipe{X: 100, Top: 150 - 320, Bottom: 300},
				s,
			)
			for _, d := range shifts {
				body := components.Body{Pos: components.Position{X: bx + d[0], Y: by + d[1]}}
				pipe := components.Pipe{X: 100 + d[0], Top: 150 - 320 + d[1], Bottom: 300 + d[1]}
				if got := Collides(&body, 0, &pipe, s); got != want {
					t.Fatalf("bird (%v,%v) shift %v: got %v, want %v", bx, by, d, got, want)
				}
			}
		}
	}
}

func TestCollidesFractionalOffsets(t *testing.T) {
	s := testSilhouettes()
	tests := []struct {
		name  string
		birdY float64
		shift float64
	}{
		{"half pixel above bottom pipe", 276.5, 0.5},
		{"quarter pixel above bottom pipe", 276.25, 0.25},
		{"half pixel below top pipe", 149.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := components.NewBody(100, tt.birdY)
			pipe := components.Pipe{X: 100, Top: 150 - 320, Bottom: 300}
			want := Collides(&body, 0, &pipe, s)

			body.Pos.Y += tt.shift
			pipe.Top += tt.shift
			pipe.Bottom += tt.shift
			if got := Collides(&body, 0, &pipe, s); got != want {
				t.Errorf("shift %v changed verdict from %v to %v", tt.shift, want, got)
			}
		})
	}
}

func TestBirdMaskClampsFrame(t *testing.T) {
	s := testSilhouettes()
	if s.BirdMask(-1) != s.Bird[0] {
		t.Error("negative frame not clamped to 0")
	}
	if s.BirdMask(9) != s.Bird[2] {
		t.Error("large frame not clamped to last")
	}
}
