package reader

import (
	"fmt"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// Read performs a windowed read against a warped virtual view of src.
//
// Band indexes are resolved first (all non-alpha bands when unset), then a
// view is built via raster.BuildViewParams. If the view carries an alpha
// band — real or synthesized — the alpha values are read in the same pass as
// the data and split out as the mask; otherwise the view's own validity mask
// is fetched for the same output grid. The returned data never includes the
// alpha band, and the mask always matches the output height x width.
//
// Read never fails for geometry; collaborator failures propagate unchanged.
func Read(src raster.Source, opts Options) (raster.DataMask, error) {
	indexes := opts.Indexes
	if len(indexes) == 0 {
		indexes = raster.NonAlphaIndexes(src)
		if len(indexes) != src.Count() {
			warn(opts.OnWarning, WarnAlphaBandRemoved)
		}
	} else {
		indexes = append([]int(nil), indexes...)
	}

	outHeight, outWidth := opts.Height, opts.Width
	if outHeight <= 0 || outWidth <= 0 {
		// Output shape applies only when both dimensions are set.
		outHeight, outWidth = 0, 0
	}

	params := raster.BuildViewParams(src, opts.NoData, opts.Resampling, opts.ViewOverrides)
	view, err := src.Warp(params)
	if err != nil {
		return raster.DataMask{}, fmt.Errorf("building warped view: %w", err)
	}
	defer view.Close()

	height, width := outputDims(view, opts.Window, outHeight, outWidth)
	n := height * width

	var data []float64
	var mask []uint8
	if alphaIdx, ok := raster.AlphaBandIndex(view); ok {
		all := append(append([]int(nil), indexes...), alphaIdx)
		raw, err := view.Read(all, opts.Window, outWidth, outHeight, opts.Resampling)
		if err != nil {
			return raster.DataMask{}, err
		}
		data = raw[:len(indexes)*n]
		mask = make([]uint8, n)
		for i, v := range raw[len(indexes)*n:] {
			mask[i] = clampByte(v)
		}
	} else {
		data, err = view.Read(indexes, opts.Window, outWidth, outHeight, opts.Resampling)
		if err != nil {
			return raster.DataMask{}, err
		}
		mask, err = view.Mask(opts.Window, outWidth, outHeight, opts.Resampling)
		if err != nil {
			return raster.DataMask{}, err
		}
	}

	if !opts.RawMask {
		binarize(mask)
	}

	if opts.Unscale {
		unscale(data, view)
	}

	if opts.PostProcess != nil {
		data, mask, err = opts.PostProcess(data, mask)
		if err != nil {
			return raster.DataMask{}, err
		}
	}

	return raster.DataMask{
		Data:   data,
		Mask:   mask,
		Bands:  len(indexes),
		Height: height,
		Width:  width,
	}, nil
}

// outputDims resolves the final output shape: the explicit shape if set,
// else the window size, else the full view size.
func outputDims(view raster.View, window *geo.Window, height, width int) (int, int) {
	if height > 0 && width > 0 {
		return height, width
	}
	if window != nil {
		return window.Height, window.Width
	}
	w, h := view.Size()
	return h, w
}

// binarize thresholds mask values in place: >0 becomes 255.
func binarize(mask []uint8) {
	for i, v := range mask {
		if v > 0 {
			mask[i] = 255
		}
	}
}

// unscale applies the view's first band's scale/offset pair uniformly across
// all values, even when bands carry distinct pairs.
func unscale(data []float64, view raster.View) {
	scale, offset := view.ScaleOffset(1)
	for i := range data {
		data[i] = data[i]*scale + offset
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
