package render

import "testing"

func TestPaletteCoversFullDensityRange(t *testing.T) {
	p := Palette()
	if len(p) != 256 {
		t.Fatalf("palette size = %d, want 256", len(p))
	}
	lo, hi := p[0], p[255]
	if hi.R <= lo.R && hi.G <= lo.G && hi.B <= lo.B {
		t.Fatal("palette must brighten toward the dense end of the ramp")
	}
	for i, c := range p {
		if c.A != 0xff {
			t.Fatalf("palette entry %d alpha = %d, want opaque", i, c.A)
		}
	}
}

func TestFillDensityRGBASkipsGhostRing(t *testing.T) {
	const n = 2
	w := n + 2
	cells := make([]float64, w*w)
	for i := range cells {
		cells[i] = 255 // ghost values must never reach the output
	}
	cells[1+1*w] = 0
	cells[2+1*w] = 0
	cells[1+2*w] = 0
	cells[2+2*w] = 0

	buf := make([]byte, 4*n*n)
	FillDensityRGBA(buf, cells, n)

	dark := Palette()[0]
	for px := 0; px < n*n; px++ {
		if buf[px*4] != dark.R || buf[px*4+1] != dark.G || buf[px*4+2] != dark.B {
			t.Fatalf("pixel %d rendered a ghost cell value", px)
		}
	}
}

func TestFillDensityRGBAClampsOutOfRange(t *testing.T) {
	const n = 1
	w := n + 2
	cells := make([]float64, w*w)
	cells[1+1*w] = 1e6

	buf := make([]byte, 4)
	FillDensityRGBA(buf, cells, n)

	bright := Palette()[255]
	if buf[0] != bright.R || buf[1] != bright.G || buf[2] != bright.B {
		t.Fatal("overfull density must clamp to the top palette entry")
	}

	cells[1+1*w] = -5
	FillDensityRGBA(buf, cells, n)
	dark := Palette()[0]
	if buf[0] != dark.R || buf[1] != dark.G || buf[2] != dark.B {
		t.Fatal("negative density must clamp to the bottom palette entry")
	}
}
