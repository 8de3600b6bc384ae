package fluid

import "fmt"

// relaxSweeps is the fixed iteration budget for every linear solve. The
// reference scheme trades accuracy for a bounded per-frame cost: there is no
// convergence check and no early exit.
const relaxSweeps = 20

// A Solver fixes the execution regime for grid-wide passes. Relax advances
// dst toward the solution of
//
//	dst[i,j] - a*(dst[i-1,j] + dst[i+1,j] + dst[i,j-1] + dst[i,j+1]) = src[i,j]
//
// with diagonal coefficient c, running relaxSweeps fixed-point sweeps with
// boundary enforcement between sweeps. foreachRow schedules a grid-wide pass
// over interior rows 1..n.
//
// The two implementations are different numerical methods that converge at
// different rates; results are not bit-identical across regimes.
type Solver interface {
	Relax(kind BoundaryKind, dst, src *Field, a, c float64) error
	foreachRow(n int, fn func(j int))
}

// Sequential is the single-threaded regime. Sweeps run in place, so a sweep
// may read neighbor values already updated earlier in the same sweep, which
// accelerates convergence (Gauss-Seidel).
type Sequential struct{}

// Relax runs in-place relaxation sweeps on dst.
func (Sequential) Relax(kind BoundaryKind, dst, src *Field, a, c float64) error {
	if dst == src {
		return fmt.Errorf("fluid: relax requires distinct source and destination fields")
	}
	n := dst.n
	for sweep := 0; sweep < relaxSweeps; sweep++ {
		for j := 1; j <= n; j++ {
			for i := 1; i <= n; i++ {
				dst.Set(i, j, (src.At(i, j)+a*(dst.At(i-1, j)+dst.At(i+1, j)+dst.At(i, j-1)+dst.At(i, j+1)))/c)
			}
		}
		if err := SetBounds(kind, dst); err != nil {
			return err
		}
	}
	return nil
}

func (Sequential) foreachRow(n int, fn func(j int)) {
	for j := 1; j <= n; j++ {
		fn(j)
	}
}

// Parallel is the data-parallel regime. Every sweep reads neighbors
// exclusively from the frozen sweep-start snapshot and writes to a distinct
// destination buffer; after the sweep and its boundary pass the field handle
// is swapped onto the freshly written buffer (Jacobi). This iteration
// converges slower than the in-place one, which is accepted, not a bug.
// Grid-wide passes are split across workers; ordering between passes stays
// strictly sequential.
type Parallel struct {
	shadow []float64
}

// Relax runs double-buffered relaxation sweeps on dst.
func (p *Parallel) Relax(kind BoundaryKind, dst, src *Field, a, c float64) error {
	if dst == src {
		return fmt.Errorf("fluid: relax requires distinct source and destination fields")
	}
	n := dst.n
	w := n + 2
	if len(p.shadow) != w*w {
		p.shadow = make([]float64, w*w)
	}
	for sweep := 0; sweep < relaxSweeps; sweep++ {
		cur := dst.data
		next := p.shadow
		from := src.data
		parallelRange(1, n+1, func(j int) {
			row := j * w
			for i := 1; i <= n; i++ {
				k := row + i
				next[k] = (from[k] + a*(cur[k-1]+cur[k+1]+cur[k-w]+cur[k+w])) / c
			}
		})
		// The interior pass wrote all of next's interior and the boundary
		// pass below rewrites its entire ghost ring, so next is fully
		// defined after the swap.
		p.shadow = dst.swap(next)
		if err := SetBounds(kind, dst); err != nil {
			return err
		}
	}
	return nil
}

func (*Parallel) foreachRow(n int, fn func(j int)) {
	parallelRange(1, n+1, fn)
}
