package fluid

import "fmt"

// Advect resamples src at the position a fluid parcel occupied one time step
// ago, tracing backward through the velocity pair (u, v), and writes the
// result into dst via bilinear interpolation. The backtraced coordinates are
// clamped to [0.5, N+0.5] so the sample footprint touches but never crosses
// the ghost ring. The transported field and the transporting velocities are
// independent, which lets velocity components advect themselves.
func Advect(s Solver, kind BoundaryKind, dst, src, u, v *Field, dt float64) error {
	if dst == src {
		return fmt.Errorf("fluid: advect requires distinct source and destination fields")
	}
	n := dst.n
	dt0 := dt * float64(n)
	lo, hi := 0.5, float64(n)+0.5
	s.foreachRow(n, func(j int) {
		for i := 1; i <= n; i++ {
			x := float64(i) - dt0*u.At(i, j)
			y := float64(j) - dt0*v.At(i, j)
			if x < lo {
				x = lo
			} else if x > hi {
				x = hi
			}
			if y < lo {
				y = lo
			} else if y > hi {
				y = hi
			}
			i0, j0 := int(x), int(y)
			i1, j1 := i0+1, j0+1
			s1 := x - float64(i0)
			s0 := 1 - s1
			t1 := y - float64(j0)
			t0 := 1 - t1
			dst.Set(i, j,
				s0*(t0*src.At(i0, j0)+t1*src.At(i0, j1))+
					s1*(t0*src.At(i1, j0)+t1*src.At(i1, j1)))
		}
	})
	return SetBounds(kind, dst)
}
