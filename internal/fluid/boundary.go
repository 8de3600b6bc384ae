package fluid

import "fmt"

// SetBounds fills the ghost ring of f from its interior according to kind.
// Edge ghosts take the adjacent interior value, negated on the reflective
// axis; the four corners are the average of their two adjacent edge ghosts.
// It must run after every stage that recomputed interior cells, including
// after each individual relaxation sweep, because the next pass reads
// neighbors that sit on the ring.
func SetBounds(kind BoundaryKind, f *Field) error {
	sideX, sideY := 1.0, 1.0
	switch kind {
	case Continuity:
	case ReflectVertical:
		sideX = -1
	case ReflectHorizontal:
		sideY = -1
	default:
		return fmt.Errorf("fluid: unknown boundary kind %d", kind)
	}

	n := f.n
	for k := 1; k <= n; k++ {
		f.Set(0, k, sideX*f.At(1, k))
		f.Set(n+1, k, sideX*f.At(n, k))
		f.Set(k, 0, sideY*f.At(k, 1))
		f.Set(k, n+1, sideY*f.At(k, n))
	}

	f.Set(0, 0, 0.5*(f.At(1, 0)+f.At(0, 1)))
	f.Set(0, n+1, 0.5*(f.At(1, n+1)+f.At(0, n)))
	f.Set(n+1, 0, 0.5*(f.At(n, 0)+f.At(n+1, 1)))
	f.Set(n+1, n+1, 0.5*(f.At(n, n+1)+f.At(n+1, n)))
	return nil
}
