// Package geo provides the geometric value types used throughout rasterwin:
// affine pixel-to-world transforms, bounding boxes, pixel windows and
// coordinate reference system conversions.
package geo

import (
	"errors"
	"fmt"
)

// Affine is a 2D affine transform mapping pixel coordinates (col, row) to
// world coordinates (x, y):
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
//
// For north-up rasters A is the pixel width, E is the negative pixel height,
// and (C, F) is the top-left corner. Affine is an immutable value type;
// composition is multiplication.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation returns a transform shifting pixel coordinates by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, C: dx, E: 1, F: dy}
}

// Scaling returns a transform scaling pixel coordinates by (sx, sy).
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// FromOrigin returns the north-up transform with top-left corner at
// (west, north) and pixel size (xres, yres). yres must be positive; the
// resulting E coefficient is -yres.
func FromOrigin(west, north, xres, yres float64) Affine {
	return Affine{A: xres, C: west, E: -yres, F: north}
}

// FromBounds returns the north-up transform spreading b evenly over a
// width x height pixel grid.
func FromBounds(b Bounds, width, height int) Affine {
	return FromOrigin(b.Left, b.Top,
		(b.Right-b.Left)/float64(width),
		(b.Top-b.Bottom)/float64(height))
}

// Mul composes t with o so that the result applies o first, then t.
func (t Affine) Mul(o Affine) Affine {
	return Affine{
		A: t.A*o.A + t.B*o.D,
		B: t.A*o.B + t.B*o.E,
		C: t.A*o.C + t.B*o.F + t.C,
		D: t.D*o.A + t.E*o.D,
		E: t.D*o.B + t.E*o.E,
		F: t.D*o.C + t.E*o.F + t.F,
	}
}

// Apply maps pixel coordinates (col, row) to world coordinates.
func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// ErrDegenerate is returned by Invert for transforms with zero determinant.
var ErrDegenerate = errors.New("geo: degenerate transform")

// Invert returns the inverse transform, mapping world coordinates back to
// pixel coordinates.
func (t Affine) Invert() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return Affine{}, fmt.Errorf("%w: %+v", ErrDegenerate, t)
	}
	inv := 1 / det
	return Affine{
		A: t.E * inv,
		B: -t.B * inv,
		C: (t.B*t.F - t.E*t.C) * inv,
		D: -t.D * inv,
		E: t.A * inv,
		F: (t.D*t.C - t.A*t.F) * inv,
	}, nil
}

// GridBounds returns the world extent of a width x height grid under t,
// assuming a north-up transform.
func (t Affine) GridBounds(width, height int) Bounds {
	x0, y0 := t.Apply(0, 0)
	x1, y1 := t.Apply(float64(width), float64(height))
	return Bounds{
		Left:   min(x0, x1),
		Bottom: min(y0, y1),
		Right:  max(x0, x1),
		Top:    max(y0, y1),
	}
}
