package reader

import (
	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// PostProcessFunc is a late-bound extension point applied to the output data
// and mask as the final pipeline step. Its result is returned verbatim.
type PostProcessFunc func(data []float64, mask []uint8) ([]float64, []uint8, error)

// Options configures Read. The zero value reads all non-alpha bands over the
// full view extent with nearest resampling and a binarized mask.
type Options struct {
	// Height and Width set the output shape. Both must be set to take
	// effect; otherwise the window's (or view's) native size is used.
	Height int
	Width  int

	// Indexes are the 1-based bands to read. Empty means all non-alpha
	// bands; excluding an implicitly present alpha band raises
	// WarnAlphaBandRemoved.
	Indexes []int

	// Window restricts the read to a pixel sub-region of the view.
	Window *geo.Window

	// RawMask keeps the collaborator's mask values as-is. By default the
	// mask is binarized to {0, 255} with threshold >0.
	RawMask bool

	// NoData overrides the dataset's internal nodata value.
	NoData *float64

	// Unscale converts values to physical units using the view's first
	// band's scale/offset pair (value*scale + offset), applied uniformly
	// across all returned bands.
	Unscale bool

	Resampling raster.Resampling

	// ViewOverrides are merged last into the computed warp parameters.
	ViewOverrides *raster.ViewOverrides

	PostProcess PostProcessFunc

	// OnWarning receives non-fatal advisories. Nil discards them.
	OnWarning func(Warning)
}

// PartOptions configures Part.
type PartOptions struct {
	Options

	// Padding grows the read window symmetrically by this many pixels per
	// edge when the requested grid is not aligned with the source's
	// internal tiling, reducing edge-resampling artefacts. The returned
	// array keeps the unpadded output shape.
	Padding int

	// DstCRS is the target CRS. Zero means the dataset's own CRS.
	DstCRS geo.CRS

	// BoundsCRS declares the CRS of the requested bounds when it differs
	// from DstCRS.
	BoundsCRS geo.CRS

	// MinimumOverlap is the minimum cover ratio (0..1] of the requested
	// bounds by the dataset. Zero skips the check entirely.
	MinimumOverlap float64

	// MaxSize limits the output size when neither Height nor Width is set,
	// preserving aspect ratio.
	MaxSize int

	// Transformer reprojects bounds between CRS. Nil means geo.Default.
	Transformer geo.Transformer
}

// PreviewOptions configures Preview.
type PreviewOptions struct {
	Options

	// MaxSize limits the longer output axis when neither Height nor Width
	// is set. Zero means 1024.
	MaxSize int
}

// PointOptions configures Point.
type PointOptions struct {
	// Indexes are the 1-based bands to sample. Empty means all bands.
	Indexes []int

	// CoordCRS is the CRS of the input coordinate. Zero means geo.WGS84.
	CoordCRS geo.CRS

	// Unmasked skips validity masking; the mask passed to PostProcess is
	// all-zero.
	Unmasked bool

	NoData *float64

	Unscale bool

	Resampling raster.Resampling

	ViewOverrides *raster.ViewOverrides

	PostProcess PostProcessFunc

	// Transformer reprojects the coordinate into the dataset CRS. Nil
	// means geo.Default.
	Transformer geo.Transformer

	OnWarning func(Warning)
}
