package reader

import (
	"math"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// alignEps is the tolerance for resolution and offset comparisons in
// TileAligned, in pixel units.
const alignEps = 1e-9

// CoverRatio returns the fraction of the requested bounds covered by src,
// with both boxes in the same CRS. Intersection terms are clamped at zero so
// degenerate (inverted) boxes yield 0 rather than a negative area.
func CoverRatio(src, requested geo.Bounds) float64 {
	area := requested.Width() * requested.Height()
	if area <= 0 {
		return 0
	}
	xOverlap := math.Max(0, math.Min(src.Right, requested.Right)-math.Max(src.Left, requested.Left))
	yOverlap := math.Max(0, math.Min(src.Top, requested.Top)-math.Max(src.Bottom, requested.Bottom))
	return xOverlap * yOverlap / area
}

// TileAligned reports whether a height x width output grid over bounds in
// dstCRS coincides with the dataset's internal tiling: same CRS, native
// resolution, and window offsets and dimensions that are whole multiples of
// the block size. Aligned reads gain nothing from resampling padding.
func TileAligned(ds raster.Dataset, bounds geo.Bounds, height, width int, dstCRS geo.CRS) bool {
	if dstCRS != ds.CRS() {
		return false
	}
	blockW, blockH, tiled := ds.BlockSize()
	if !tiled || blockW <= 0 || blockH <= 0 {
		return false
	}
	if height <= 0 || width <= 0 {
		return false
	}

	t := ds.Transform()
	if t.A == 0 || t.E == 0 {
		return false
	}
	if math.Abs(bounds.Width()/float64(width)-t.A) > alignEps*math.Abs(t.A) {
		return false
	}
	if math.Abs(bounds.Height()/float64(height)+t.E) > alignEps*math.Abs(t.E) {
		return false
	}

	colOff := (bounds.Left - t.C) / t.A
	rowOff := (t.F - bounds.Top) / -t.E
	if !wholePixel(colOff) || !wholePixel(rowOff) {
		return false
	}
	if int(math.Round(colOff))%blockW != 0 || int(math.Round(rowOff))%blockH != 0 {
		return false
	}
	return width%blockW == 0 && height%blockH == 0
}

func wholePixel(v float64) bool {
	return math.Abs(v-math.Round(v)) <= alignEps*math.Max(1, math.Abs(v))
}
