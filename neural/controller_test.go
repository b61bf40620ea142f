package neural

import (
	"math"
	"testing"
)

func TestFixedControllers(t *testing.T) {
	obs := Observation{Y: 100, GapTop: 20, GapBottom: 180}
	if (Never{}).Decide(obs) != 0 {
		t.Error("Never jumped")
	}
	if (Always{}).Decide(obs) != 1 {
		t.Error("Always did not jump")
	}
	if !math.IsNaN(NaN{}.Decide(obs)) {
		t.Error("NaN returned a number")
	}
	if Func(func(o Observation) float64 { return o.Y }).Decide(obs) != 100 {
		t.Error("Func did not forward the observation")
	}
}

func TestGapSeeker(t *testing.T) {
	g := GapSeeker{Gap: 200, Margin: 70}
	const top, bottom = 300.0, 500.0

	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"far above gap", 40, 0},
		{"just above gap", 280, 0},
		{"upper half of gap", 350, 0},
		{"near gap bottom", 450, 1},
		{"below gap", 520, 1},
		{"far below gap", 700, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := Observation{Y: tt.y, GapTop: math.Abs(tt.y - top), GapBottom: math.Abs(tt.y - bottom)}
			if got := g.Decide(obs); got != tt.want {
				t.Errorf("Decide(y=%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestObservationInputsScaled(t *testing.T) {
	in := Observation{Y: 350, GapTop: 50, GapBottom: 150}.Inputs()
	want := [NumInputs]float32{3.5, 0.5, 1.5}
	for i := range in {
		if math.Abs(float64(in[i]-want[i])) > 1e-6 {
			t.Errorf("input %d = %v, want %v", i, in[i], want[i])
		}
	}
}
