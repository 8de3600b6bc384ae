// Command fluidbench runs the solver headless: a synthetic jet forcing, a
// fixed number of ticks, and summary statistics on the way out. It can also
// dump the final density field as a heatmap PNG or switch into a websocket
// streaming server instead of a batch run.
package main

import (
	"flag"
	"log"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gmjoseph/fluid-sim-p/internal/app"
	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
	"github.com/gmjoseph/fluid-sim-p/internal/server"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	pngPath := flag.String("png", "", "write the final density field as a heatmap PNG")
	serveAddr := flag.String("serve", "", "stream density frames over websocket on this address instead of batch-running")
	flag.Parse()

	sim, err := fluid.New(cfg.Fluid)
	if err != nil {
		log.Fatal(err)
	}
	n := sim.Resolution()

	if *serveAddr != "" {
		log.Fatal(server.New(sim, cfg.TPS).Run(*serveAddr))
	}

	sim.SetForcing(jetForcing(cfg.Fluid))

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		sim.Step()
	}
	elapsed := time.Since(start)

	dens := interior(sim.Density(), n)
	log.Printf("ran %d ticks at n=%d (parallel=%v) in %v (%v/tick)",
		*ticks, n, cfg.Fluid.Parallel, elapsed, elapsed/time.Duration(*ticks))
	log.Printf("density: total=%0.2f max=%0.2f mean=%0.4f",
		floats.Sum(dens), floats.Max(dens), floats.Sum(dens)/float64(len(dens)))
	log.Printf("max |divergence|: %0.3e", sim.MaxDivergence())

	if *pngPath != "" {
		if err := writeHeatmap(*pngPath, dens, n); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *pngPath)
	}
}

// jetForcing injects a steady plume near the bottom edge that rises toward
// the grid center.
func jetForcing(cfg fluid.Config) fluid.Forcing {
	return func(dens, u, v *fluid.Field) {
		ci := cfg.N/2 + 1
		cj := cfg.N - cfg.N/8
		for di := -1; di <= 1; di++ {
			dens.Add(ci+di, cj, cfg.SourceDensity)
			v.Add(ci+di, cj, -cfg.SourceVelocity*cfg.Dt)
		}
	}
}

// interior copies the n*n interior cells out of a padded field, row-major.
func interior(f *fluid.Field, n int) []float64 {
	cells := f.Cells()
	out := make([]float64, 0, n*n)
	w := n + 2
	for j := 1; j <= n; j++ {
		out = append(out, cells[1+j*w:n+1+j*w]...)
	}
	return out
}

// densityGrid adapts a row-major interior snapshot to plotter.GridXYZ. Rows
// are flipped so that j=1 renders at the top, matching the GUI orientation.
type densityGrid struct {
	n    int
	data []float64
}

func (g densityGrid) Dims() (int, int)   { return g.n, g.n }
func (g densityGrid) X(c int) float64    { return float64(c) }
func (g densityGrid) Y(r int) float64    { return float64(r) }
func (g densityGrid) Z(c, r int) float64 { return g.data[c+(g.n-1-r)*g.n] }

func writeHeatmap(path string, dens []float64, n int) error {
	p := plot.New()
	p.Title.Text = "density"
	p.Add(plotter.NewHeatMap(densityGrid{n: n, data: dens}, palette.Heat(255, 1)))
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
