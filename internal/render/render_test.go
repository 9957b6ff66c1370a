package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLogNormRange(t *testing.T) {
	mag := mat.NewDense(2, 3, []float64{
		0, 1, 10,
		100, 1000, 0,
	})
	norm := NewLogNorm(mag)

	if norm.Degenerate() {
		t.Fatal("Expected non-degenerate norm")
	}
	if norm.Min != 1 || norm.Max != 1000 {
		t.Fatalf("Expected domain [1, 1000], got [%v, %v]", norm.Min, norm.Max)
	}

	tests := []struct {
		v    float64
		want float64
	}{
		{0, 0},
		{0.5, 0},
		{1, 0},
		{10, 1.0 / 3},
		{100, 2.0 / 3},
		{1000, 1},
		{5000, 1},
	}
	for _, tt := range tests {
		if got := norm.At(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%v): expected %v, got %v", tt.v, tt.want, got)
		}
	}

	if got := norm.DynamicRange(); math.Abs(got-60) > 1e-9 {
		t.Errorf("Expected 60 dB dynamic range, got %v", got)
	}
}

func TestLogNormDegenerate(t *testing.T) {
	norm := NewLogNorm(mat.NewDense(2, 2, nil))

	if !norm.Degenerate() {
		t.Fatal("Expected all-zero data to be degenerate")
	}
	for _, v := range []float64{0, 1, math.NaN()} {
		if got := norm.At(v); got != 0 {
			t.Errorf("At(%v): expected 0, got %v", v, got)
		}
	}
	if norm.DynamicRange() != 0 {
		t.Errorf("Expected 0 dB dynamic range, got %v", norm.DynamicRange())
	}
}

func TestLogNormFlat(t *testing.T) {
	norm := NewLogNorm(mat.NewDense(1, 3, []float64{2, 2, 2}))
	if norm.Degenerate() {
		t.Fatal("Expected constant positive data not to be degenerate")
	}
	if got := norm.At(2); got != 0 {
		t.Errorf("Expected constant data to map to 0, got %v", got)
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range PaletteNames() {
		p, err := PaletteByName(name)
		if err != nil {
			t.Fatalf("PaletteByName(%s) failed: %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Expected name %s, got %s", name, p.Name())
		}
	}

	if _, err := PaletteByName("rainbow-unicorn"); err == nil {
		t.Error("Expected error for unknown palette")
	}
	if _, err := PaletteByName("VIRIDIS"); err != nil {
		t.Errorf("Expected palette names to be case-insensitive, got %v", err)
	}
}

func TestPaletteEnds(t *testing.T) {
	p, err := PaletteByName("gray")
	if err != nil {
		t.Fatalf("PaletteByName failed: %v", err)
	}

	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if got := p.At(0); got != black {
		t.Errorf("At(0): expected %v, got %v", black, got)
	}
	if got := p.At(-1); got != black {
		t.Errorf("At(-1): expected clamp to %v, got %v", black, got)
	}
	if got := p.At(1); got != white {
		t.Errorf("At(1): expected %v, got %v", white, got)
	}
	if got := p.At(2); got != white {
		t.Errorf("At(2): expected clamp to %v, got %v", white, got)
	}
}

func TestPaletteSequential(t *testing.T) {
	// Lightness must not decrease along a sequential palette.
	for _, name := range []string{"gnuplot2", "gray", "inferno", "viridis"} {
		p, err := PaletteByName(name)
		if err != nil {
			t.Fatalf("PaletteByName failed: %v", err)
		}
		prev := -1.0
		for i := 0; i <= 100; i++ {
			c := p.At(float64(i) / 100)
			l := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
			if l+8 < prev {
				t.Errorf("%s: luminance drops from %.1f to %.1f at t=%.2f", name, prev, l, float64(i)/100)
				break
			}
			prev = math.Max(prev, l)
		}
	}
}

func TestImageOrientation(t *testing.T) {
	// Two bins x three spectra: bin 0 low, bin 1 high.
	mag := mat.NewDense(2, 3, []float64{
		1, 1, 1,
		100, 100, 100,
	})
	p, err := PaletteByName("gray")
	if err != nil {
		t.Fatalf("PaletteByName failed: %v", err)
	}

	img, norm := Render(mag, p)
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Expected 3x2 image, got %v", got)
	}
	if norm.Min != 1 || norm.Max != 100 {
		t.Errorf("Expected norm [1, 100], got [%v, %v]", norm.Min, norm.Max)
	}

	for x := 0; x < 3; x++ {
		if got := img.RGBAAt(x, 0); got.R != 0xff {
			t.Errorf("Top row should hold the highest bin (white), got %v", got)
		}
		if got := img.RGBAAt(x, 1); got.R != 0 {
			t.Errorf("Bottom row should hold bin 0 (black), got %v", got)
		}
	}
}

func TestImageZeroMagnitude(t *testing.T) {
	mag := mat.NewDense(1, 2, []float64{0, 4})
	p, err := PaletteByName("gray")
	if err != nil {
		t.Fatalf("PaletteByName failed: %v", err)
	}

	img, _ := Render(mag, p)
	if got := img.RGBAAt(0, 0); got != p.At(0) {
		t.Errorf("Zero magnitude should clamp to the bottom colour, got %v", got)
	}
}

func TestTerminal(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	out := Terminal(img, 4, 3)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, upperHalfBlock); n != 4 {
			t.Errorf("Line %d: expected 4 cells, got %d", i, n)
		}
	}

	if Terminal(img, 0, 3) != "" || Terminal(img, 3, 0) != "" {
		t.Error("Expected empty output for a zero-sized viewport")
	}
	if Terminal(image.NewRGBA(image.Rectangle{}), 3, 3) != "" {
		t.Error("Expected empty output for an empty image")
	}
}
