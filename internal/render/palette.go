package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is used when no palette is configured.
const DefaultPalette = "gnuplot2"

// Palette is a sequential colour scale interpolated between evenly spaced
// stops in CIE L*a*b*.
type Palette struct {
	name  string
	stops []colorful.Color
}

var palettes = map[string][]string{
	"gnuplot2": {"#000000", "#00007f", "#0000ff", "#6a1aff", "#d54ab5", "#ff8060", "#ffb62a", "#ffff70", "#ffffff"},
	"viridis":  {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"inferno":  {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"gray":     {"#000000", "#ffffff"},
}

// PaletteNames lists the built-in palettes.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, error) {
	hexes, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (available: %s)", name, strings.Join(PaletteNames(), ", "))
	}

	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", name, err)
		}
		stops[i] = c
	}
	return Palette{name: strings.ToLower(name), stops: stops}, nil
}

// Name returns the palette name.
func (p Palette) Name() string { return p.name }

// At returns the colour at position t in [0, 1]; t is clamped.
func (p Palette) At(t float64) color.RGBA {
	if len(p.stops) == 0 {
		return color.RGBA{A: 0xff}
	}
	if t <= 0 || len(p.stops) == 1 {
		return rgba(p.stops[0])
	}
	if t >= 1 {
		return rgba(p.stops[len(p.stops)-1])
	}

	pos := t * float64(len(p.stops)-1)
	i := int(pos)
	return rgba(p.stops[i].BlendLab(p.stops[i+1], pos-float64(i)).Clamped())
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
