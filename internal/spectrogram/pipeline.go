package spectrogram

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"spectrel/internal/cf64"
)

// Result holds every stage of one decode-reshape-shift-magnitude run.
type Result struct {
	Path      string
	Samples   int         // Samples decoded from the file
	Dropped   int         // Trailing samples discarded by Reshape
	Raw       *mat.CDense // Reshaped, bin zero at row 0
	Centred   *mat.CDense // Bin zero at row floor(W/2)
	Magnitude *mat.Dense
}

// Dims returns the number of frequency bins and spectra.
func (r *Result) Dims() (bins, spectra int) {
	return r.Magnitude.Dims()
}

// Build decodes the recording at path and runs it through Reshape, Shift and
// Magnitude. The first failing stage aborts the run.
func Build(path string, width int, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Reject a bad width before touching the file.
	if width <= 0 {
		return nil, &InvalidWidthError{Width: width}
	}

	samples, err := cf64.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}
	logger.Debug("decoded recording",
		zap.String("path", path),
		zap.Int("samples", len(samples)))

	raw, err := Reshape(samples, width)
	if err != nil {
		return nil, fmt.Errorf("failed to reshape %s: %w", path, err)
	}

	dropped := Dropped(len(samples), width)
	if dropped > 0 {
		logger.Warn("discarding incomplete trailing spectrum",
			zap.String("path", path),
			zap.Int("width", width),
			zap.Int("dropped_samples", dropped))
	}

	centred := Shift(raw)
	magnitude := Magnitude(centred)

	bins, spectra := magnitude.Dims()
	logger.Debug("built spectrogram",
		zap.Int("bins", bins),
		zap.Int("spectra", spectra))

	return &Result{
		Path:      path,
		Samples:   len(samples),
		Dropped:   dropped,
		Raw:       raw,
		Centred:   centred,
		Magnitude: magnitude,
	}, nil
}
