//go:build ebiten

package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
	"github.com/gmjoseph/fluid-sim-p/internal/render"
)

// Game adapts the fluid simulation to the ebiten.Game interface. The pointer
// acts as the forcing collaborator: pressing injects density at the cursor
// cell and dragging injects velocity along the cursor's motion.
type Game struct {
	sim     *fluid.Sim
	painter *render.DensityPainter

	scale    int
	paused   bool
	tickOnce bool

	pointerDown  bool
	curX, curY   int
	prevX, prevY int
}

// New constructs a Game for the provided simulation and registers the
// pointer forcing with it.
func New(sim *fluid.Sim, scale int) *Game {
	g := &Game{
		sim:     sim,
		painter: render.NewDensityPainter(sim.Resolution()),
		scale:   scale,
	}
	sim.SetForcing(g.applyPointer)
	return g
}

// applyPointer adds density and velocity sources at the cursor cell. Writes
// are additive only; the sim invokes this once per tick before the solver
// stages run.
func (g *Game) applyPointer(dens, u, v *fluid.Field) {
	if !g.pointerDown {
		return
	}
	n := g.sim.Resolution()
	i := g.curX/g.scale + 1
	j := g.curY/g.scale + 1
	if i < 1 || i > n || j < 1 || j > n {
		return
	}
	cfg := g.sim.Config()
	dens.Add(i, j, cfg.SourceDensity)
	dx := float64(g.curX-g.prevX) / float64(g.scale)
	dy := float64(g.curY-g.prevY) / float64(g.scale)
	u.Add(i, j, cfg.SourceVelocity*cfg.Dt*dx)
	v.Add(i, j, cfg.SourceVelocity*cfg.Dt*dy)
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}

	g.prevX, g.prevY = g.curX, g.curY
	g.curX, g.curY = ebiten.CursorPosition()
	g.pointerDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.prevX, g.prevY = g.curX, g.curY
	}

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the density field and a one-line diagnostic readout.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Density().Cells(), g.scale)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f  max |div|: %0.2e",
		ebiten.ActualFPS(), g.sim.MaxDivergence()))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	n := g.sim.Resolution()
	return n * g.scale, n * g.scale
}
