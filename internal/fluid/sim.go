package fluid

import (
	"fmt"
	"math"
)

// Config holds the simulation parameters. It is fixed at construction and
// immutable afterward.
type Config struct {
	N              int     // interior grid resolution
	Diffusion      float64 // density diffusion rate
	Viscosity      float64 // velocity diffusion rate
	Dt             float64 // fixed physical time step, decoupled from wall clock
	Decay          float64 // density subtracted per tick
	SourceDensity  float64 // density injected per forcing touch
	SourceVelocity float64 // velocity injected per forcing touch
	Parallel       bool    // run double-buffered passes split across workers
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		N:              128,
		Diffusion:      0.0001,
		Viscosity:      0.0001,
		Dt:             1.0 / 60.0,
		Decay:          0.15,
		SourceDensity:  100,
		SourceVelocity: 40,
	}
}

// Forcing receives mutable access to the density and velocity fields once
// per tick, before the solver stages run. Writes must be additive and
// confined to specific cells; ghost cells may be touched since the tick's
// boundary passes overwrite them anyway.
type Forcing func(dens, u, v *Field)

// Sim owns all simulation state: the velocity pair, the density field, and
// their previous-step scratch buffers. Everything is allocated once at
// construction and reused for the process lifetime; a tick mutates the
// fields destructively in a fixed order.
type Sim struct {
	cfg    Config
	solver Solver

	u, v, x    *Field
	u0, v0, x0 *Field

	forcing Forcing
}

// New constructs a Sim from cfg. The configuration is validated eagerly;
// after that no stage has a failure path.
func New(cfg Config) (*Sim, error) {
	if cfg.N <= 0 {
		return nil, fmt.Errorf("fluid: grid resolution must be positive, got %d", cfg.N)
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("fluid: time step must be positive, got %g", cfg.Dt)
	}
	if cfg.Diffusion < 0 || cfg.Viscosity < 0 || cfg.Decay < 0 {
		return nil, fmt.Errorf("fluid: diffusion, viscosity and decay rates must not be negative")
	}

	s := &Sim{cfg: cfg, solver: Sequential{}}
	if cfg.Parallel {
		s.solver = &Parallel{}
	}
	for _, f := range []**Field{&s.u, &s.v, &s.x, &s.u0, &s.v0, &s.x0} {
		field, err := NewField(cfg.N)
		if err != nil {
			return nil, err
		}
		*f = field
	}
	return s, nil
}

// SetForcing registers the external forcing collaborator.
func (s *Sim) SetForcing(f Forcing) { s.forcing = f }

// Config returns the simulation parameters.
func (s *Sim) Config() Config { return s.cfg }

// Resolution returns the interior grid resolution N.
func (s *Sim) Resolution() int { return s.cfg.N }

// Density exposes the transported scalar field for rendering. Readers own
// it only between ticks.
func (s *Sim) Density() *Field { return s.x }

// Velocity returns the velocity component fields.
func (s *Sim) Velocity() (u, v *Field) { return s.u, s.v }

// Reset zeroes every field.
func (s *Sim) Reset() {
	for _, f := range []*Field{s.u, s.v, s.x, s.u0, s.v0, s.x0} {
		f.Clear()
	}
}

// Step advances the simulation by one fixed time step: forcing, then the
// velocity step, then the density step, then decay. The order is
// load-bearing: density must be advected by the tick's final velocity, and
// projection must bracket advection in the velocity step or the
// divergence-free guarantee is lost.
func (s *Sim) Step() {
	if s.forcing != nil {
		s.forcing(s.x, s.u, s.v)
	}
	s.velocityStep()
	s.densityStep()
	s.decay()
}

func (s *Sim) velocityStep() {
	cfg := &s.cfg
	must(Diffuse(s.solver, ReflectVertical, s.u0, s.u, cfg.Viscosity, cfg.Dt))
	must(Diffuse(s.solver, ReflectHorizontal, s.v0, s.v, cfg.Viscosity, cfg.Dt))
	must(Project(s.solver, s.u0, s.v0, s.u, s.v))
	must(Advect(s.solver, ReflectVertical, s.u, s.u0, s.u0, s.v0, cfg.Dt))
	must(Advect(s.solver, ReflectHorizontal, s.v, s.v0, s.u0, s.v0, cfg.Dt))
	must(Project(s.solver, s.u, s.v, s.u0, s.v0))
}

func (s *Sim) densityStep() {
	cfg := &s.cfg
	must(Diffuse(s.solver, Continuity, s.x0, s.x, cfg.Diffusion, cfg.Dt))
	must(Advect(s.solver, Continuity, s.x, s.x0, s.u, s.v, cfg.Dt))
}

// decay dampens density toward zero, clamping every cell, ghosts included,
// to [0, 255]. Density is the only clamped quantity; velocity blow-up is an
// accepted model limitation that decay mitigates indirectly.
func (s *Sim) decay() {
	d := s.cfg.Decay
	cells := s.x.data
	for i, c := range cells {
		c -= d
		if c < 0 {
			c = 0
		} else if c > 255 {
			c = 255
		}
		cells[i] = c
	}
}

// MaxDivergence recomputes the discrete divergence of the velocity pair and
// returns its largest interior magnitude. Diagnostic only; after a tick this
// should sit near zero.
func (s *Sim) MaxDivergence() float64 {
	n := s.cfg.N
	half := 0.5 * float64(n)
	maxDiv := 0.0
	for j := 1; j <= n; j++ {
		for i := 1; i <= n; i++ {
			div := -half * (s.u.At(i+1, j) - s.u.At(i-1, j) + s.v.At(i, j+1) - s.v.At(i, j-1))
			if a := math.Abs(div); a > maxDiv {
				maxDiv = a
			}
		}
	}
	return maxDiv
}

// The sim wires every stage with disjoint buffers at construction, so stage
// errors cannot occur during a tick; any that do are programmer errors.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
