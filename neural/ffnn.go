// Package neural provides the controllers that decide when a bird jumps,
// including a small feedforward network that can be evolved.
package neural

import (
	"math"
	"math/rand"
)

// Network dimensions. The hidden width is chosen per network.
const (
	NumInputs  = 3 // y, distance to gap top, distance to gap bottom
	NumOutputs = 1 // jump
)

// inputScale maps pixel distances into the range the hidden tanh units respond to.
const inputScale = 1.0 / 100

// FFNN is a simple two-layer feedforward neural network.
type FFNN struct {
	Hidden int
	W1     []float32 // input -> hidden weights, [Hidden*NumInputs]
	B1     []float32 // hidden biases
	W2     []float32 // hidden -> output weights, [Hidden]
	B2     float32   // output bias
}

// NewFFNN creates a randomly initialized network with the given hidden width.
func NewFFNN(rng *rand.Rand, hidden int) *FFNN {
	nn := newZeroFFNN(hidden)
	// Xavier initialization
	scale1 := float32(math.Sqrt(2.0 / float64(NumInputs)))
	scale2 := float32(math.Sqrt(2.0 / float64(hidden)))

	for i := range nn.W1 {
		nn.W1[i] = float32(rng.NormFloat64()) * scale1
	}
	for i := range nn.W2 {
		nn.W2[i] = float32(rng.NormFloat64()) * scale2
	}
	return nn
}

func newZeroFFNN(hidden int) *FFNN {
	if hidden < 1 {
		hidden = 1
	}
	return &FFNN{
		Hidden: hidden,
		W1:     make([]float32, hidden*NumInputs),
		B1:     make([]float32, hidden),
		W2:     make([]float32, hidden),
	}
}

// Forward computes the jump activation in (0, 1).
func (nn *FFNN) Forward(inputs [NumInputs]float32) float32 {
	sum := nn.B2
	for i := 0; i < nn.Hidden; i++ {
		h := nn.B1[i]
		row := nn.W1[i*NumInputs : (i+1)*NumInputs]
		for j, in := range inputs {
			h += row[j] * in
		}
		sum += nn.W2[i] * tanh(h)
	}
	return sigmoid(sum)
}

// Decide implements Controller.
func (nn *FFNN) Decide(obs Observation) float64 {
	return float64(nn.Forward(obs.Inputs()))
}

// Mutate perturbs every weight and bias with Gaussian noise.
func (nn *FFNN) Mutate(rng *rand.Rand, strength float32) {
	for _, layer := range [][]float32{nn.W1, nn.B1, nn.W2} {
		for i := range layer {
			layer[i] += float32(rng.NormFloat64()) * strength
		}
	}
	nn.B2 += float32(rng.NormFloat64()) * strength
}

// MutateSparse applies sparse per-weight mutation for stable lineages.
// rate: probability each weight mutates (e.g., 0.05)
// sigma: standard deviation of normal perturbation (e.g., 0.08)
// bigRate: probability of a large mutation (e.g., 0.01)
// bigSigma: sigma for large mutations (e.g., 0.4)
// Returns avgAbsDelta: the average absolute delta of all applied mutations.
func (nn *FFNN) MutateSparse(rng *rand.Rand, rate, sigma, bigRate, bigSigma float32) float32 {
	biasRate := rate * 0.5 // biases mutate at half the rate

	var totalDelta float32
	var count int

	perturb := func(w *float32, p float32) {
		if rng.Float32() >= p {
			return
		}
		var delta float32
		if rng.Float32() < bigRate {
			delta = float32(rng.NormFloat64()) * bigSigma
		} else {
			delta = float32(rng.NormFloat64()) * sigma
		}
		*w += delta
		totalDelta += abs32(delta)
		count++
	}

	for i := range nn.W1 {
		perturb(&nn.W1[i], rate)
	}
	for i := range nn.B1 {
		perturb(&nn.B1[i], biasRate)
	}
	for i := range nn.W2 {
		perturb(&nn.W2[i], rate)
	}
	perturb(&nn.B2, biasRate)

	if count == 0 {
		return 0
	}
	return totalDelta / float32(count)
}

// abs32 returns the absolute value of x.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := newZeroFFNN(nn.Hidden)
	copy(clone.W1, nn.W1)
	copy(clone.B1, nn.B1)
	copy(clone.W2, nn.W2)
	clone.B2 = nn.B2
	return clone
}

// NumParams returns the length of the flat parameter vector for a hidden width.
func NumParams(hidden int) int {
	return hidden*NumInputs + hidden + hidden + 1
}

// Params flattens all weights and biases as W1, B1, W2, B2.
func (nn *FFNN) Params() []float64 {
	out := make([]float64, 0, NumParams(nn.Hidden))
	for _, layer := range [][]float32{nn.W1, nn.B1, nn.W2} {
		for _, w := range layer {
			out = append(out, float64(w))
		}
	}
	return append(out, float64(nn.B2))
}

// FFNNFromParams builds a network from a vector laid out like Params.
// Missing trailing values are left at zero.
func FFNNFromParams(hidden int, params []float64) *FFNN {
	nn := newZeroFFNN(hidden)
	i := 0
	for _, layer := range [][]float32{nn.W1, nn.B1, nn.W2} {
		for j := range layer {
			if i < len(params) {
				layer[j] = float32(params[i])
			}
			i++
		}
	}
	if i < len(params) {
		nn.B2 = float32(params[i])
	}
	return nn
}

// tanh uses a fast rational approximation avoiding float64 conversion.
func tanh(x float32) float32 {
	if x > 4 {
		return 1
	}
	if x < -4 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// BrainWeights holds flattened network weights for serialization.
type BrainWeights struct {
	Hidden int       `json:"hidden"`
	W1     []float32 `json:"w1"` // [Hidden * NumInputs]
	B1     []float32 `json:"b1"` // [Hidden]
	W2     []float32 `json:"w2"` // [Hidden]
	B2     float32   `json:"b2"`
}

// MarshalWeights copies the network weights for JSON serialization.
func (nn *FFNN) MarshalWeights() BrainWeights {
	c := nn.Clone()
	return BrainWeights{Hidden: c.Hidden, W1: c.W1, B1: c.B1, W2: c.W2, B2: c.B2}
}

// UnmarshalWeights builds a network from serialized weights.
// Short slices leave the remaining weights at zero.
func UnmarshalWeights(bw BrainWeights) *FFNN {
	nn := newZeroFFNN(bw.Hidden)
	copy(nn.W1, bw.W1)
	copy(nn.B1, bw.B1)
	copy(nn.W2, bw.W2)
	nn.B2 = bw.B2
	return nn
}
