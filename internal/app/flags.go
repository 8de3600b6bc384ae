package app

import (
	"flag"

	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Fluid fluid.Config

	Scale int
	TPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Fluid: fluid.DefaultConfig(), Scale: 4, TPS: 60}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Fluid.N, "n", c.Fluid.N, "interior grid resolution")
	fs.Float64Var(&c.Fluid.Diffusion, "diff", c.Fluid.Diffusion, "density diffusion rate")
	fs.Float64Var(&c.Fluid.Viscosity, "visc", c.Fluid.Viscosity, "velocity diffusion rate")
	fs.Float64Var(&c.Fluid.Dt, "dt", c.Fluid.Dt, "fixed physical time step")
	fs.Float64Var(&c.Fluid.Decay, "decay", c.Fluid.Decay, "density decay per tick")
	fs.Float64Var(&c.Fluid.SourceDensity, "source", c.Fluid.SourceDensity, "density injected per pointer touch")
	fs.Float64Var(&c.Fluid.SourceVelocity, "force", c.Fluid.SourceVelocity, "velocity injected per pointer drag")
	fs.BoolVar(&c.Fluid.Parallel, "parallel", c.Fluid.Parallel, "run double-buffered passes split across workers")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
}
