package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFromBounds(t *testing.T) {
	b := Bounds{Left: 10, Bottom: 10, Right: 20, Top: 20}
	tr := FromBounds(b, 100, 50)

	if !almostEqual(tr.A, 0.1) {
		t.Errorf("A = %g, want 0.1", tr.A)
	}
	if !almostEqual(tr.E, -0.2) {
		t.Errorf("E = %g, want -0.2", tr.E)
	}

	// Corners map to the bounds corners.
	x, y := tr.Apply(0, 0)
	if !almostEqual(x, 10) || !almostEqual(y, 20) {
		t.Errorf("Apply(0,0) = (%g, %g), want (10, 20)", x, y)
	}
	x, y = tr.Apply(100, 50)
	if !almostEqual(x, 20) || !almostEqual(y, 10) {
		t.Errorf("Apply(100,50) = (%g, %g), want (20, 10)", x, y)
	}
}

func TestAffineMulTranslation(t *testing.T) {
	tr := FromOrigin(100, 200, 2, 2)
	shifted := tr.Mul(Translation(-3, -3))

	// Pixel (3,3) under the shifted transform equals pixel (0,0) under the
	// original.
	x0, y0 := tr.Apply(0, 0)
	x1, y1 := shifted.Apply(3, 3)
	if !almostEqual(x0, x1) || !almostEqual(y0, y1) {
		t.Errorf("shifted(3,3) = (%g, %g), want (%g, %g)", x1, y1, x0, y0)
	}
}

func TestAffineInvertRoundTrip(t *testing.T) {
	tr := FromOrigin(10, 20, 0.5, 0.25)
	inv, err := tr.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}

	points := [][2]float64{{0, 0}, {3, 7}, {100.5, 42.25}}
	for _, p := range points {
		x, y := tr.Apply(p[0], p[1])
		col, row := inv.Apply(x, y)
		if !almostEqual(col, p[0]) || !almostEqual(row, p[1]) {
			t.Errorf("round trip (%g, %g) = (%g, %g)", p[0], p[1], col, row)
		}
	}
}

func TestAffineInvertDegenerate(t *testing.T) {
	if _, err := (Affine{}).Invert(); err == nil {
		t.Error("Invert of zero transform should fail")
	}
}

func TestGridBounds(t *testing.T) {
	tr := FromOrigin(10, 20, 1, 1)
	b := tr.GridBounds(10, 10)
	want := Bounds{Left: 10, Bottom: 10, Right: 20, Top: 20}
	if b != want {
		t.Errorf("GridBounds = %+v, want %+v", b, want)
	}
}
