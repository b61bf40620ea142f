package main

import (
	"fmt"

	"github.com/pthm-cable/flap/neural"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds one spec per network weight, laid out like FFNN.Params.
type ParamVector struct {
	Hidden int
	Specs  []ParamSpec
}

// NewParamVector creates specs for a network of the given hidden width.
// Every weight is bounded to [-bound, bound]; defaults come from start,
// which may be nil for an all-zero start.
func NewParamVector(hidden int, bound float64, start *neural.FFNN) *ParamVector {
	pv := &ParamVector{Hidden: hidden}

	for h := 0; h < hidden; h++ {
		for i := 0; i < neural.NumInputs; i++ {
			pv.add(fmt.Sprintf("w1_h%d_i%d", h, i), bound)
		}
	}
	for h := 0; h < hidden; h++ {
		pv.add(fmt.Sprintf("b1_h%d", h), bound)
	}
	for h := 0; h < hidden; h++ {
		pv.add(fmt.Sprintf("w2_h%d", h), bound)
	}
	pv.add("b2", bound)

	if start != nil {
		for i, v := range start.Params() {
			if i < len(pv.Specs) {
				pv.Specs[i].Default = v
			}
		}
		for i := range pv.Specs {
			pv.Specs[i].Default = clampTo(pv.Specs[i].Default, -bound, bound)
		}
	}
	return pv
}

func (pv *ParamVector) add(name string, bound float64) {
	pv.Specs = append(pv.Specs, ParamSpec{Name: name, Min: -bound, Max: bound})
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = clampTo(v[i], spec.Min, spec.Max)
	}
	return clamped
}

// Network builds the controller described by raw parameter values.
func (pv *ParamVector) Network(values []float64) *neural.FFNN {
	return neural.FFNNFromParams(pv.Hidden, pv.Clamp(values))
}

func clampTo(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
