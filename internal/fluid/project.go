package fluid

// Project removes the divergent component of the velocity pair (u, v) by
// discrete Hodge decomposition: it computes the divergence into div, solves
// the Poisson equation ∇²p = div with the fixed relaxation budget, and
// subtracts the pressure gradient from the velocities. Only the
// divergence-free part survives. p and div are scratch fields whose previous
// contents are discarded.
func Project(s Solver, u, v, p, div *Field) error {
	n := u.n
	half := 0.5 * float64(n)
	s.foreachRow(n, func(j int) {
		for i := 1; i <= n; i++ {
			div.Set(i, j, -half*(u.At(i+1, j)-u.At(i-1, j)+v.At(i, j+1)-v.At(i, j-1)))
		}
	})
	p.Clear()
	if err := SetBounds(Continuity, div); err != nil {
		return err
	}
	if err := SetBounds(Continuity, p); err != nil {
		return err
	}

	// Poisson solve: the Laplacian directly, no time or rate scaling.
	if err := s.Relax(Continuity, p, div, 1, 4); err != nil {
		return err
	}

	grad := 0.5 / float64(n)
	s.foreachRow(n, func(j int) {
		for i := 1; i <= n; i++ {
			u.Add(i, j, -grad*(p.At(i+1, j)-p.At(i-1, j)))
			v.Add(i, j, -grad*(p.At(i, j+1)-p.At(i, j-1)))
		}
	})
	if err := SetBounds(ReflectVertical, u); err != nil {
		return err
	}
	return SetBounds(ReflectHorizontal, v)
}
