package render

import (
	"image/color"

	"github.com/crazy3lf/colorconv"
)

const paletteSize = 256

var smokePalette = buildSmokePalette()

// Palette exposes the color ramp used for rendering density values.
func Palette() []color.RGBA {
	return smokePalette
}

// buildSmokePalette maps density 0..255 onto a smoke ramp: near-black blues
// for faint wisps rising through violet into a bright white-hot core.
func buildSmokePalette() []color.RGBA {
	palette := make([]color.RGBA, paletteSize)
	for i := range palette {
		t := float64(i) / float64(paletteSize-1)
		hue := 240 - 50*t
		r, g, b, _ := colorconv.HSVToRGB(hue, 1-0.85*t*t, t)
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return palette
}

// FillDensityRGBA converts the interior n×n cells of a padded density field
// into RGBA pixels. cells must hold (n+2)² values in row-major order and buf
// must hold 4*n*n bytes; the ghost ring is skipped. Densities outside
// [0, 255] are clamped before the palette lookup.
func FillDensityRGBA(buf []byte, cells []float64, n int) {
	w := n + 2
	idx := 0
	for j := 1; j <= n; j++ {
		row := j * w
		for i := 1; i <= n; i++ {
			d := cells[row+i]
			if d < 0 {
				d = 0
			} else if d > 255 {
				d = 255
			}
			col := smokePalette[int(d)]
			base := idx * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
			idx++
		}
	}
}
