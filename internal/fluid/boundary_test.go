package fluid

import "testing"

// numberedField returns a field whose interior cells carry unique nonzero
// values so edge copies and negations are distinguishable.
func numberedField(t *testing.T, n int) *Field {
	t.Helper()
	f, err := NewField(n)
	if err != nil {
		t.Fatal(err)
	}
	for j := 1; j <= n; j++ {
		for i := 1; i <= n; i++ {
			f.Set(i, j, float64(i+j*10))
		}
	}
	return f
}

func checkCorners(t *testing.T, f *Field) {
	t.Helper()
	n := f.N()
	corners := [][4]int{
		// corner i, corner j, edge-neighbor offsets toward the interior
		{0, 0, 1, 1},
		{0, n + 1, 1, -1},
		{n + 1, 0, -1, 1},
		{n + 1, n + 1, -1, -1},
	}
	for _, c := range corners {
		i, j := c[0], c[1]
		want := 0.5 * (f.At(i+c[2], j) + f.At(i, j+c[3]))
		if got := f.At(i, j); got != want {
			t.Fatalf("corner (%d,%d) = %g, want %g", i, j, got, want)
		}
	}
}

func TestSetBoundsContinuity(t *testing.T) {
	const n = 5
	f := numberedField(t, n)
	if err := SetBounds(Continuity, f); err != nil {
		t.Fatal(err)
	}
	for k := 1; k <= n; k++ {
		if f.At(0, k) != f.At(1, k) || f.At(n+1, k) != f.At(n, k) {
			t.Fatalf("left/right ghost at row %d not copied from interior", k)
		}
		if f.At(k, 0) != f.At(k, 1) || f.At(k, n+1) != f.At(k, n) {
			t.Fatalf("top/bottom ghost at column %d not copied from interior", k)
		}
	}
	checkCorners(t, f)
}

func TestSetBoundsReflectHorizontal(t *testing.T) {
	const n = 5
	f := numberedField(t, n)
	if err := SetBounds(ReflectHorizontal, f); err != nil {
		t.Fatal(err)
	}
	for k := 1; k <= n; k++ {
		if f.At(k, 0) != -f.At(k, 1) || f.At(k, n+1) != -f.At(k, n) {
			t.Fatalf("top/bottom ghost at column %d not negated", k)
		}
		// The orthogonal edges behave as continuity.
		if f.At(0, k) != f.At(1, k) || f.At(n+1, k) != f.At(n, k) {
			t.Fatalf("left/right ghost at row %d must be copied, not reflected", k)
		}
	}
	checkCorners(t, f)
}

func TestSetBoundsReflectVertical(t *testing.T) {
	const n = 5
	f := numberedField(t, n)
	if err := SetBounds(ReflectVertical, f); err != nil {
		t.Fatal(err)
	}
	for k := 1; k <= n; k++ {
		if f.At(0, k) != -f.At(1, k) || f.At(n+1, k) != -f.At(n, k) {
			t.Fatalf("left/right ghost at row %d not negated", k)
		}
		if f.At(k, 0) != f.At(k, 1) || f.At(k, n+1) != f.At(k, n) {
			t.Fatalf("top/bottom ghost at column %d must be copied, not reflected", k)
		}
	}
	checkCorners(t, f)
}

func TestSetBoundsRejectsUnknownKind(t *testing.T) {
	f, _ := NewField(4)
	if err := SetBounds(BoundaryKind(42), f); err == nil {
		t.Fatal("SetBounds must reject an unknown boundary kind")
	}
}

func TestSetBoundsSingleCellInterior(t *testing.T) {
	// A 1-cell interior degenerates the corner formulas; it is accepted as
	// a boundary condition, not an error.
	f, err := NewField(1)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(1, 1, 3)
	if err := SetBounds(Continuity, f); err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{0, 2} {
		if f.At(k, 1) != 3 || f.At(1, k) != 3 {
			t.Fatal("ghosts of a 1-cell interior must copy the single interior value")
		}
	}
}
