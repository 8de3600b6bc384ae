package fluid

import "fmt"

// Diffuse advances dst toward a smoothed copy of src, modeling dx/dt = k∇²x
// implicitly so the update stays stable at any time step. The linear system
// uses a = dt*rate*N² and diagonal c = 1+4a; a rate of zero degenerates to a
// straight copy of src.
func Diffuse(s Solver, kind BoundaryKind, dst, src *Field, rate, dt float64) error {
	if dst == src {
		return fmt.Errorf("fluid: diffuse requires distinct source and destination fields")
	}
	n := float64(dst.n)
	a := dt * rate * n * n
	return s.Relax(kind, dst, src, a, 1+4*a)
}
