//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// DensityPainter uploads a density field into a single RGBA image and draws
// it scaled onto the screen.
type DensityPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewDensityPainter allocates a painter for an interior resolution of n.
func NewDensityPainter(n int) *DensityPainter {
	dp := &DensityPainter{n: n, buf: make([]byte, 4*n*n)}
	dp.img = ebiten.NewImage(n, n)
	return dp
}

// Blit uploads the padded density cells into the painter image and draws it.
func (dp *DensityPainter) Blit(dst *ebiten.Image, cells []float64, scale int) {
	w := dp.n + 2
	if len(cells) != w*w {
		return
	}
	FillDensityRGBA(dp.buf, cells, dp.n)
	dp.img.WritePixels(dp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(dp.img, op)
}

// Size returns the dimensions of the underlying image.
func (dp *DensityPainter) Size() (int, int) { return dp.n, dp.n }
