//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gmjoseph/fluid-sim-p/internal/app"
	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := fluid.New(cfg.Fluid)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale)
	n := sim.Resolution()

	ebiten.SetWindowTitle("fluid-sim")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(n*cfg.Scale, n*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
