// Package spectrogram turns a decoded sample stream into a centred
// time-frequency matrix and its magnitude.
//
// Matrices are indexed [frequency bin][time index]: each column is one
// spectrum snapshot.
package spectrogram

import (
	"fmt"
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// InvalidWidthError reports a row width that cannot partition the stream
// into at least one spectrum.
type InvalidWidthError struct {
	Width  int
	Length int
}

func (e *InvalidWidthError) Error() string {
	if e.Width <= 0 {
		return fmt.Sprintf("invalid width %d: samples per spectrum must be positive", e.Width)
	}
	return fmt.Sprintf("invalid width %d: stream holds only %d samples, not enough for one spectrum", e.Width, e.Length)
}

// Dropped returns how many trailing samples Reshape discards for a stream of
// length n split into spectra of width samples.
func Dropped(n, width int) int {
	if width <= 0 {
		return 0
	}
	return n % width
}

// Reshape partitions stream into consecutive spectra of width samples and
// returns them as a width x N matrix, one spectrum per column. Samples after
// the last whole spectrum are discarded.
func Reshape(stream []complex128, width int) (*mat.CDense, error) {
	if width <= 0 || width > len(stream) {
		return nil, &InvalidWidthError{Width: width, Length: len(stream)}
	}

	n := len(stream) / width
	data := make([]complex128, n*width)
	copy(data, stream[:n*width])

	rows := mat.NewCDense(n, width, data)
	out := mat.NewCDense(width, n, nil)
	out.Copy(rows.T())
	return out, nil
}

// Shift rotates every column by floor(W/2) rows so that bin zero lands on the
// centre row, matching the usual fftshift convention.
func Shift(m *mat.CDense) *mat.CDense {
	r, _ := m.Dims()
	return rotateRows(m, r/2)
}

// Unshift undoes Shift.
func Unshift(m *mat.CDense) *mat.CDense {
	r, _ := m.Dims()
	return rotateRows(m, (r+1)/2)
}

// rotateRows moves row i of m to row (i+k) mod rows in a new matrix.
func rotateRows(m *mat.CDense, k int) *mat.CDense {
	r, c := m.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		dst := (i + k) % r
		for j := 0; j < c; j++ {
			out.Set(dst, j, m.At(i, j))
		}
	}
	return out
}

// Magnitude returns |z| for every entry of m.
func Magnitude(m *mat.CDense) *mat.Dense {
	r, c := m.Dims()
	raw := m.RawCMatrix()

	re := make([]float64, r*c)
	im := make([]float64, r*c)
	for i := 0; i < r; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+c]
		for j, z := range row {
			re[i*c+j] = real(z)
			im[i*c+j] = imag(z)
		}
	}

	out := make([]float64, r*c)
	vecmath.Magnitude(out, re, im)

	// sqrt(re^2+im^2) underflows below ~1e-154 and overflows above ~1e154.
	for i, v := range out {
		if (v == 0 && (re[i] != 0 || im[i] != 0)) || math.IsInf(v, 0) {
			out[i] = cmplx.Abs(complex(re[i], im[i]))
		}
	}

	return mat.NewDense(r, c, out)
}
