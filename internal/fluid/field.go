package fluid

import "fmt"

// BoundaryKind selects how a field's ghost ring relates to its interior.
type BoundaryKind int

const (
	// Continuity copies the adjacent interior value into the ghost ring
	// unchanged. Used for scalar quantities such as density and pressure.
	Continuity BoundaryKind = iota
	// ReflectHorizontal negates the adjacent interior value across the top
	// and bottom edges. Used for the vertical velocity component, whose
	// flow must vanish at horizontal walls.
	ReflectHorizontal
	// ReflectVertical negates the adjacent interior value across the left
	// and right edges. Used for the horizontal velocity component.
	ReflectVertical
)

// Field stores an (N+2)x(N+2) grid of scalars in row-major order. Interior
// cells span 1..N on both axes; index 0 and N+1 form a one-cell ghost ring
// whose values are always derived from the interior, never computed by the
// solver stages directly.
type Field struct {
	n    int
	data []float64
}

// NewField allocates a zeroed field with interior resolution n.
func NewField(n int) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fluid: field resolution must be positive, got %d", n)
	}
	w := n + 2
	return &Field{n: n, data: make([]float64, w*w)}, nil
}

// N returns the interior resolution.
func (f *Field) N() int { return f.n }

// Index returns the linear slice index for coordinates (i, j).
func (f *Field) Index(i, j int) int { return i + j*(f.n+2) }

// At returns the value at cell (i, j).
func (f *Field) At(i, j int) float64 { return f.data[f.Index(i, j)] }

// Set stores v at cell (i, j).
func (f *Field) Set(i, j int, v float64) { f.data[f.Index(i, j)] = v }

// Add accumulates v into cell (i, j).
func (f *Field) Add(i, j int, v float64) { f.data[f.Index(i, j)] += v }

// Cells exposes the backing slice, ghost ring included, so callers can
// read or fill values directly.
func (f *Field) Cells() []float64 { return f.data }

// Clear fills the field with zeros.
func (f *Field) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// swap reassigns the field's storage to buf and returns the previous
// storage. The double-buffered solver uses this to flip the logical field
// onto a freshly written buffer; data itself never moves.
func (f *Field) swap(buf []float64) []float64 {
	old := f.data
	f.data = buf
	return old
}
