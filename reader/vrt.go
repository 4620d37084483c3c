// Package reader orchestrates windowed reads over warped virtual views of a
// raster dataset: it resolves output geometry, validates overlap and
// alignment, derives the validity mask, and applies rescaling — delegating
// pixel decoding, warping and resampling to the raster-access collaborator.
package reader

import (
	"fmt"
	"math"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// boundsDensify is the number of intermediate points generated along each
// box edge before reprojecting.
const boundsDensify = 21

// VRTTransform computes the affine transform and pixel dimensions of an
// output grid covering bounds (expressed in dstCRS) exactly.
//
// With height and width given, the bounds are spread evenly over that many
// pixels. Otherwise the resolution is inherited from the source dataset's
// own pixel size projected into dstCRS, approximating a
// resolution-preserving reprojection. Pure geometry; reads no pixel data.
func VRTTransform(ds raster.Dataset, tr geo.Transformer, bounds geo.Bounds, dstCRS geo.CRS, height, width int) (geo.Affine, int, int, error) {
	if tr == nil {
		tr = geo.Default
	}

	if height > 0 && width > 0 {
		return geo.FromBounds(bounds, width, height), width, height, nil
	}

	xres, yres, err := projectedResolution(ds, tr, dstCRS)
	if err != nil {
		return geo.Affine{}, 0, 0, err
	}

	vrtWidth := int(math.Ceil(bounds.Width() / xres))
	vrtHeight := int(math.Ceil(bounds.Height() / yres))
	if vrtWidth < 1 {
		vrtWidth = 1
	}
	if vrtHeight < 1 {
		vrtHeight = 1
	}
	return geo.FromOrigin(bounds.Left, bounds.Top, xres, yres), vrtWidth, vrtHeight, nil
}

// projectedResolution returns the source dataset's pixel size expressed in
// dstCRS units: its bounds reprojected into dstCRS, spread over its native
// pixel counts.
func projectedResolution(ds raster.Dataset, tr geo.Transformer, dstCRS geo.CRS) (xres, yres float64, err error) {
	b := ds.Bounds()
	if dstCRS != ds.CRS() {
		b, err = tr.TransformBounds(ds.CRS(), dstCRS, b, boundsDensify)
		if err != nil {
			return 0, 0, fmt.Errorf("projecting dataset bounds to %s: %w", dstCRS, err)
		}
	}
	w, h := ds.Size()
	return b.Width() / float64(w), b.Height() / float64(h), nil
}
