// Package render maps a magnitude matrix to colour: a logarithmic
// normalisation over the observed range, a sequential palette, and an
// image with no axes or padding.
package render

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogNorm maps magnitudes onto [0, 1] on a log scale. The smallest positive
// magnitude maps to 0 and the largest to 1. Zeros are outside the domain of a
// log scale and clamp to 0.
type LogNorm struct {
	Min float64 // Smallest positive magnitude observed
	Max float64 // Largest magnitude observed

	logMin, logSpan float64
}

// NewLogNorm scans mag for its positive range. NaN and infinite entries are
// ignored.
func NewLogNorm(mag *mat.Dense) LogNorm {
	lo, hi := math.Inf(1), math.Inf(-1)
	r, _ := mag.Dims()
	for i := 0; i < r; i++ {
		for _, v := range mag.RawRowView(i) {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return LogNorm{}
	}
	return newLogNorm(lo, hi)
}

func newLogNorm(lo, hi float64) LogNorm {
	n := LogNorm{Min: lo, Max: hi, logMin: math.Log(lo)}
	n.logSpan = math.Log(hi) - n.logMin
	return n
}

// Degenerate reports whether the data held no positive magnitude, in which
// case every value maps to 0.
func (n LogNorm) Degenerate() bool {
	return n.Max <= 0
}

// DynamicRange returns 20*log10(Max/Min) in dB, or 0 for degenerate data.
func (n LogNorm) DynamicRange() float64 {
	if n.Degenerate() {
		return 0
	}
	return 20 * math.Log10(n.Max/n.Min)
}

// At returns the position of v on the colour scale.
func (n LogNorm) At(v float64) float64 {
	if n.Degenerate() || n.logSpan == 0 || math.IsNaN(v) || v <= n.Min {
		return 0
	}
	if v >= n.Max {
		return 1
	}
	return (math.Log(v) - n.logMin) / n.logSpan
}
