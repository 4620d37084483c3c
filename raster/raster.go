// Package raster defines the interfaces consumed from the raster-access
// collaborator (datasets and warped virtual views), the parameters used to
// construct such views, and the (data, mask) result type produced for
// callers. It contains no pixel decoding or warp arithmetic of its own.
package raster

import (
	"fmt"

	"github.com/pspoerri/rasterwin/geo"
)

// ColorInterp tags a band's color interpretation.
type ColorInterp int

const (
	ColorInterpUndefined ColorInterp = iota
	ColorInterpGray
	ColorInterpPalette
	ColorInterpRed
	ColorInterpGreen
	ColorInterpBlue
	ColorInterpAlpha
)

func (c ColorInterp) String() string {
	switch c {
	case ColorInterpGray:
		return "gray"
	case ColorInterpPalette:
		return "palette"
	case ColorInterpRed:
		return "red"
	case ColorInterpGreen:
		return "green"
	case ColorInterpBlue:
		return "blue"
	case ColorInterpAlpha:
		return "alpha"
	default:
		return "undefined"
	}
}

// Resampling selects the algorithm a view uses when scaling reads.
type Resampling int

const (
	ResamplingNearest Resampling = iota
	ResamplingBilinear
	ResamplingCubic
	ResamplingLanczos
	ResamplingAverage
)

func (r Resampling) String() string {
	switch r {
	case ResamplingBilinear:
		return "bilinear"
	case ResamplingCubic:
		return "cubic"
	case ResamplingLanczos:
		return "lanczos"
	case ResamplingAverage:
		return "average"
	default:
		return "nearest"
	}
}

// ParseResampling converts a resampling name to its Resampling value.
func ParseResampling(s string) (Resampling, error) {
	switch s {
	case "nearest", "":
		return ResamplingNearest, nil
	case "bilinear":
		return ResamplingBilinear, nil
	case "cubic":
		return ResamplingCubic, nil
	case "lanczos":
		return ResamplingLanczos, nil
	case "average":
		return ResamplingAverage, nil
	default:
		return 0, fmt.Errorf("unsupported resampling: %q (supported: nearest, bilinear, cubic, lanczos, average)", s)
	}
}

// Dataset is the read-only metadata surface of a geo-referenced pixel grid.
// Band indexes are 1-based throughout.
type Dataset interface {
	CRS() geo.CRS
	Bounds() geo.Bounds
	Transform() geo.Affine
	Size() (width, height int)
	Count() int
	ColorInterp(band int) ColorInterp
	NoData() (float64, bool)
	ScaleOffset(band int) (scale, offset float64)
	// BlockSize describes the native internal tiling; tiled is false for
	// untiled (strip-organized) sources.
	BlockSize() (width, height int, tiled bool)
}

// Source is a dataset handle that can construct warped virtual views of
// itself. The handle's lifetime is managed by the caller.
type Source interface {
	Dataset

	// Warp constructs a virtual warped view parameterized by p. The view is
	// scoped: callers must Close it when the read or sample completes,
	// independent of the underlying handle.
	Warp(p ViewParams) (View, error)
}

// View is a warped virtual presentation of a dataset. All data movement in
// this package's consumers goes through a View.
type View interface {
	Dataset

	// Read performs a windowed read of the given bands, resampled to
	// outWidth x outHeight. A nil window means the full view extent.
	// outWidth/outHeight of 0 mean the window's native size. The returned
	// slice is band-major, row-major within each band.
	Read(indexes []int, window *geo.Window, outWidth, outHeight int, rs Resampling) ([]float64, error)

	// Mask returns the view's validity mask for the same grid as Read,
	// with per-pixel coverage in [0, 255].
	Mask(window *geo.Window, outWidth, outHeight int, rs Resampling) ([]uint8, error)

	// Sample reads a single pixel's values at world coordinates (x, y) in
	// the view's CRS, reporting per-band validity.
	Sample(x, y float64, indexes []int) (values []float64, valid []bool, err error)

	Close() error
}

// HasAlphaBand reports whether ds exposes a true alpha band.
func HasAlphaBand(ds Dataset) bool {
	_, ok := AlphaBandIndex(ds)
	return ok
}

// AlphaBandIndex returns the 1-based index of the first alpha band.
func AlphaBandIndex(ds Dataset) (int, bool) {
	for b := 1; b <= ds.Count(); b++ {
		if ds.ColorInterp(b) == ColorInterpAlpha {
			return b, true
		}
	}
	return 0, false
}

// NonAlphaIndexes returns the 1-based indexes of all non-alpha bands.
func NonAlphaIndexes(ds Dataset) []int {
	indexes := make([]int, 0, ds.Count())
	for b := 1; b <= ds.Count(); b++ {
		if ds.ColorInterp(b) != ColorInterpAlpha {
			indexes = append(indexes, b)
		}
	}
	return indexes
}
