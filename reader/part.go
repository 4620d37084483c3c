package reader

import (
	"fmt"
	"math"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// Part reads an arbitrary geographic box from src, reprojected into
// opts.DstCRS (the dataset's own CRS by default). The bounds are taken to be
// in DstCRS unless opts.BoundsCRS says otherwise.
//
// When opts.MinimumOverlap is set and the dataset covers less than that
// fraction of the requested bounds, Part fails with raster.ErrOutOfBounds
// before any data is read.
func Part(src raster.Source, bounds geo.Bounds, opts PartOptions) (raster.DataMask, error) {
	tr := opts.Transformer
	if tr == nil {
		tr = geo.Default
	}
	dstCRS := opts.DstCRS
	if dstCRS == 0 {
		dstCRS = src.CRS()
	}

	if opts.MaxSize > 0 && opts.Width > 0 && opts.Height > 0 {
		warn(opts.OnWarning, WarnConflictingOptions)
	}

	if opts.BoundsCRS != 0 && opts.BoundsCRS != dstCRS {
		var err error
		bounds, err = tr.TransformBounds(opts.BoundsCRS, dstCRS, bounds, boundsDensify)
		if err != nil {
			return raster.DataMask{}, fmt.Errorf("reprojecting bounds to %s: %w", dstCRS, err)
		}
	}

	if opts.MinimumOverlap > 0 {
		srcBounds := src.Bounds()
		if src.CRS() != dstCRS {
			var err error
			srcBounds, err = tr.TransformBounds(src.CRS(), dstCRS, srcBounds, boundsDensify)
			if err != nil {
				return raster.DataMask{}, fmt.Errorf("reprojecting dataset bounds to %s: %w", dstCRS, err)
			}
		}
		ratio := CoverRatio(srcBounds, bounds)
		if ratio < opts.MinimumOverlap {
			return raster.DataMask{}, fmt.Errorf(
				"%w: dataset covers %.0f%% of the requested bounds", raster.ErrOutOfBounds, ratio*100)
		}
	}

	vrtTransform, vrtWidth, vrtHeight, err := VRTTransform(src, tr, bounds, dstCRS, opts.Height, opts.Width)
	if err != nil {
		return raster.DataMask{}, err
	}
	window := &geo.Window{Width: vrtWidth, Height: vrtHeight}

	height, width := opts.Height, opts.Width
	if opts.MaxSize > 0 && !(height > 0 && width > 0) {
		if max(vrtWidth, vrtHeight) > opts.MaxSize {
			ratio := float64(vrtHeight) / float64(vrtWidth)
			if ratio > 1 {
				height = opts.MaxSize
				width = int(math.Ceil(float64(height) / ratio))
			} else {
				width = opts.MaxSize
				height = int(math.Ceil(float64(width) * ratio))
			}
		}
	}

	outHeight := height
	if outHeight <= 0 {
		outHeight = vrtHeight
	}
	outWidth := width
	if outWidth <= 0 {
		outWidth = vrtWidth
	}

	if opts.Padding > 0 && !TileAligned(src, bounds, outHeight, outWidth, dstCRS) {
		// Grow the read symmetrically; the useful window shifts inward by
		// Padding so the output, resampled back to outHeight x outWidth,
		// excludes the padding ring.
		pad := float64(opts.Padding)
		vrtTransform = vrtTransform.Mul(geo.Translation(-pad, -pad))
		window = &geo.Window{
			ColOff: opts.Padding,
			RowOff: opts.Padding,
			Width:  vrtWidth,
			Height: vrtHeight,
		}
		vrtWidth += 2 * opts.Padding
		vrtHeight += 2 * opts.Padding
	}

	readOpts := opts.Options
	readOpts.Height = outHeight
	readOpts.Width = outWidth
	readOpts.Window = window

	var overrides raster.ViewOverrides
	if opts.ViewOverrides != nil {
		overrides = *opts.ViewOverrides
	}
	overrides.CRS = &dstCRS
	overrides.Transform = &vrtTransform
	overrides.Width = &vrtWidth
	overrides.Height = &vrtHeight
	readOpts.ViewOverrides = &overrides

	return Read(src, readOpts)
}

// Preview reads a decimated version of the full dataset extent. Without an
// explicit output shape the dataset's native size is used when it already
// fits under MaxSize, otherwise it is scaled down aspect-preserving with the
// longer axis clamped to MaxSize and the shorter axis ceiling-rounded.
func Preview(src raster.Source, opts PreviewOptions) (raster.DataMask, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 1024
	}

	height, width := opts.Height, opts.Width
	if height <= 0 && width <= 0 {
		srcWidth, srcHeight := src.Size()
		if max(srcWidth, srcHeight) < maxSize {
			height, width = srcHeight, srcWidth
		} else {
			ratio := float64(srcHeight) / float64(srcWidth)
			if ratio > 1 {
				height = maxSize
				width = int(math.Ceil(float64(height) / ratio))
			} else {
				width = maxSize
				height = int(math.Ceil(float64(width) * ratio))
			}
		}
	}

	readOpts := opts.Options
	readOpts.Height = height
	readOpts.Width = width
	return Read(src, readOpts)
}
