package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalfBlock = "▀"

// Terminal draws img into cols x rows terminal cells. Each cell is an upper
// half block whose foreground is the top pixel and background the bottom one,
// so the image is sampled at cols x 2*rows, nearest neighbour.
func Terminal(img image.Image, cols, rows int) string {
	b := img.Bounds()
	if cols <= 0 || rows <= 0 || b.Empty() {
		return ""
	}

	pixelRows := rows * 2
	sample := func(x, y int) color.Color {
		return img.At(b.Min.X+x*b.Dx()/cols, b.Min.Y+y*b.Dy()/pixelRows)
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		// Cells with the same colour pair are emitted as one styled run.
		var runFg, runBg string
		runLen := 0
		flush := func() {
			if runLen == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runFg)).
				Background(lipgloss.Color(runBg))
			sb.WriteString(style.Render(strings.Repeat(upperHalfBlock, runLen)))
			runLen = 0
		}

		for col := 0; col < cols; col++ {
			fg := hex(sample(col, row*2))
			bg := hex(sample(col, row*2+1))
			if runLen > 0 && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg = fg, bg
			runLen++
		}
		flush()
	}
	return sb.String()
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
