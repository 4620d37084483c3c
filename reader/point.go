package reader

import (
	"fmt"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// Point samples a single pixel value at (x, y), given in opts.CoordCRS
// (geo.WGS84 by default). The coordinate is transformed into the dataset's
// CRS first; a coordinate not strictly inside the dataset bounds on both
// axes fails with raster.ErrPointOutsideBounds.
//
// The returned slice holds one value per resolved band index.
func Point(src raster.Source, x, y float64, opts PointOptions) ([]float64, error) {
	tr := opts.Transformer
	if tr == nil {
		tr = geo.Default
	}
	coordCRS := opts.CoordCRS
	if coordCRS == 0 {
		coordCRS = geo.WGS84
	}

	xs, ys, err := tr.TransformPoints(coordCRS, src.CRS(), []float64{x}, []float64{y})
	if err != nil {
		return nil, fmt.Errorf("transforming coordinate to %s: %w", src.CRS(), err)
	}
	px, py := xs[0], ys[0]

	if !src.Bounds().Contains(px, py) {
		return nil, fmt.Errorf("%w: (%g, %g)", raster.ErrPointOutsideBounds, x, y)
	}

	indexes := opts.Indexes
	if len(indexes) == 0 {
		indexes = make([]int, src.Count())
		for i := range indexes {
			indexes[i] = i + 1
		}
	}

	params := raster.BuildViewParams(src, opts.NoData, opts.Resampling, opts.ViewOverrides)
	view, err := src.Warp(params)
	if err != nil {
		return nil, fmt.Errorf("building warped view: %w", err)
	}
	defer view.Close()

	values, valid, err := view.Sample(px, py, indexes)
	if err != nil {
		return nil, err
	}

	mask := make([]uint8, len(values))
	if !opts.Unmasked {
		for i, ok := range valid {
			if ok {
				mask[i] = 255
			}
		}
	}

	if opts.Unscale {
		scale, offset := view.ScaleOffset(1)
		for i := range values {
			values[i] = values[i]*scale + offset
		}
	}

	if opts.PostProcess != nil {
		values, _, err = opts.PostProcess(values, mask)
		if err != nil {
			return nil, err
		}
	}

	return values, nil
}
