package memraster

import (
	"fmt"
	"math"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// Warp constructs a virtual warped view of the dataset. When the params
// leave the grid unspecified, the view covers the dataset's full extent
// reprojected into the target CRS at a resolution-preserving pixel size.
//
// The driver resamples by nearest neighbor regardless of the requested
// algorithm.
func (d *Dataset) Warp(p raster.ViewParams) (raster.View, error) {
	if p.CRS == 0 {
		p.CRS = d.cfg.CRS
	}
	if p.AddAlpha && p.NoData != nil {
		return nil, fmt.Errorf("memraster: add-alpha and nodata are mutually exclusive")
	}

	v := &View{src: d, params: p}

	if p.Transform != nil && p.Width > 0 && p.Height > 0 {
		v.transform = *p.Transform
		v.width = p.Width
		v.height = p.Height
	} else {
		b := d.Bounds()
		if p.CRS != d.cfg.CRS {
			var err error
			b, err = d.cfg.Transformer.TransformBounds(d.cfg.CRS, p.CRS, b, 21)
			if err != nil {
				return nil, fmt.Errorf("memraster: projecting extent to %s: %w", p.CRS, err)
			}
		}
		xres := b.Width() / float64(d.cfg.Width)
		yres := b.Height() / float64(d.cfg.Height)
		v.transform = geo.FromOrigin(b.Left, b.Top, xres, yres)
		v.width = int(math.Ceil(b.Width() / xres))
		v.height = int(math.Ceil(b.Height() / yres))
	}

	if p.AddAlpha && !raster.HasAlphaBand(d) {
		v.alphaBand = d.Count() + 1
	}
	return v, nil
}

// View is a warped virtual presentation of an in-memory dataset. A non-zero
// alphaBand is the 1-based index of the synthesized coverage band.
type View struct {
	src       *Dataset
	params    raster.ViewParams
	transform geo.Affine
	width     int
	height    int
	alphaBand int
	closed    bool
}

func (v *View) CRS() geo.CRS          { return v.params.CRS }
func (v *View) Transform() geo.Affine { return v.transform }
func (v *View) Size() (int, int)      { return v.width, v.height }

func (v *View) Bounds() geo.Bounds {
	return v.transform.GridBounds(v.width, v.height)
}

func (v *View) Count() int {
	if v.alphaBand > 0 {
		return v.src.Count() + 1
	}
	return v.src.Count()
}

func (v *View) ColorInterp(band int) raster.ColorInterp {
	if band == v.alphaBand {
		return raster.ColorInterpAlpha
	}
	return v.src.ColorInterp(band)
}

func (v *View) NoData() (float64, bool) {
	if v.params.NoData == nil {
		return 0, false
	}
	return *v.params.NoData, true
}

func (v *View) ScaleOffset(band int) (float64, float64) {
	if band == v.alphaBand {
		return 1, 0
	}
	return v.src.ScaleOffset(band)
}

// BlockSize reports no tiling: a warped view does not preserve the source's
// native block layout.
func (v *View) BlockSize() (int, int, bool) { return 0, 0, false }

func (v *View) Close() error {
	v.closed = true
	return nil
}

// Read performs a nearest-neighbor windowed read. See raster.View for the
// window and output-shape conventions.
func (v *View) Read(indexes []int, window *geo.Window, outWidth, outHeight int, _ raster.Resampling) ([]float64, error) {
	if v.closed {
		return nil, fmt.Errorf("memraster: view is closed")
	}
	for _, b := range indexes {
		if b < 1 || b > v.Count() {
			return nil, fmt.Errorf("memraster: band index %d out of range [1, %d]", b, v.Count())
		}
	}

	win, outWidth, outHeight := v.resolveGrid(window, outWidth, outHeight)
	n := outWidth * outHeight
	out := make([]float64, len(indexes)*n)

	fill := 0.0
	if v.params.NoData != nil {
		fill = *v.params.NoData
	}

	for row := 0; row < outHeight; row++ {
		cols, rows := v.sourcePixels(win, outWidth, outHeight, row)
		for col := 0; col < outWidth; col++ {
			sc, sr := cols[col], rows[col]
			covered := sc >= 0 && v.src.inRange(sc, sr)
			for bi, band := range indexes {
				var value float64
				switch {
				case band == v.alphaBand:
					if covered && !v.isNoData(sc, sr) {
						value = 255
					}
				case covered:
					value = v.src.at(band, sc, sr)
				default:
					value = fill
				}
				out[bi*n+row*outWidth+col] = value
			}
		}
	}
	return out, nil
}

// Mask returns per-pixel coverage for the same grid as Read: 255 where the
// pixel maps onto the source grid and is not nodata, 0 elsewhere.
func (v *View) Mask(window *geo.Window, outWidth, outHeight int, _ raster.Resampling) ([]uint8, error) {
	if v.closed {
		return nil, fmt.Errorf("memraster: view is closed")
	}

	win, outWidth, outHeight := v.resolveGrid(window, outWidth, outHeight)
	mask := make([]uint8, outWidth*outHeight)

	for row := 0; row < outHeight; row++ {
		cols, rows := v.sourcePixels(win, outWidth, outHeight, row)
		for col := 0; col < outWidth; col++ {
			sc, sr := cols[col], rows[col]
			if sc >= 0 && v.src.inRange(sc, sr) && !v.isNoData(sc, sr) {
				mask[row*outWidth+col] = 255
			}
		}
	}
	return mask, nil
}

// Sample reads one pixel at world coordinates (x, y) in the view's CRS.
func (v *View) Sample(x, y float64, indexes []int) ([]float64, []bool, error) {
	if v.closed {
		return nil, nil, fmt.Errorf("memraster: view is closed")
	}
	for _, b := range indexes {
		if b < 1 || b > v.Count() {
			return nil, nil, fmt.Errorf("memraster: band index %d out of range [1, %d]", b, v.Count())
		}
	}

	sc, sr, err := v.toSourcePixel(x, y)
	if err != nil {
		return nil, nil, err
	}
	covered := sc >= 0 && v.src.inRange(sc, sr)

	values := make([]float64, len(indexes))
	valid := make([]bool, len(indexes))
	for i, band := range indexes {
		if band == v.alphaBand {
			if covered && !v.isNoData(sc, sr) {
				values[i] = 255
			}
			valid[i] = covered
			continue
		}
		if !covered {
			if v.params.NoData != nil {
				values[i] = *v.params.NoData
			}
			continue
		}
		values[i] = v.src.at(band, sc, sr)
		valid[i] = v.params.SrcNoData == nil || values[i] != *v.params.SrcNoData
	}
	return values, valid, nil
}

// resolveGrid applies the window and output-shape defaulting rules.
func (v *View) resolveGrid(window *geo.Window, outWidth, outHeight int) (geo.Window, int, int) {
	win := geo.Window{Width: v.width, Height: v.height}
	if window != nil {
		win = *window
	}
	if outWidth <= 0 || outHeight <= 0 {
		outWidth, outHeight = win.Width, win.Height
	}
	return win, outWidth, outHeight
}

// sourcePixels maps one output row to source pixel coordinates, returning
// (-1, -1) per column where the reprojection fails.
func (v *View) sourcePixels(win geo.Window, outWidth, outHeight, row int) ([]int, []int) {
	xs := make([]float64, outWidth)
	ys := make([]float64, outWidth)
	vrow := float64(win.RowOff) + (float64(row)+0.5)*float64(win.Height)/float64(outHeight)
	for col := 0; col < outWidth; col++ {
		vcol := float64(win.ColOff) + (float64(col)+0.5)*float64(win.Width)/float64(outWidth)
		xs[col], ys[col] = v.transform.Apply(vcol, vrow)
	}

	if v.params.CRS != v.src.cfg.CRS {
		tx, ty, err := v.src.cfg.Transformer.TransformPoints(v.params.CRS, v.src.cfg.CRS, xs, ys)
		if err != nil {
			cols := make([]int, outWidth)
			rows := make([]int, outWidth)
			for i := range cols {
				cols[i], rows[i] = -1, -1
			}
			return cols, rows
		}
		xs, ys = tx, ty
	}

	cols := make([]int, outWidth)
	rows := make([]int, outWidth)
	for i := range xs {
		sc, sr := v.src.inv.Apply(xs[i], ys[i])
		cols[i] = int(math.Floor(sc))
		rows[i] = int(math.Floor(sr))
	}
	return cols, rows
}

// toSourcePixel converts view-CRS world coordinates to a source pixel.
func (v *View) toSourcePixel(x, y float64) (int, int, error) {
	if v.params.CRS != v.src.cfg.CRS {
		xs, ys, err := v.src.cfg.Transformer.TransformPoints(v.params.CRS, v.src.cfg.CRS, []float64{x}, []float64{y})
		if err != nil {
			return 0, 0, err
		}
		x, y = xs[0], ys[0]
	}
	sc, sr := v.src.inv.Apply(x, y)
	return int(math.Floor(sc)), int(math.Floor(sr)), nil
}

// isNoData reports whether every source band equals the effective source
// nodata value at (col, row).
func (v *View) isNoData(col, row int) bool {
	if v.params.SrcNoData == nil {
		return false
	}
	for b := 1; b <= v.src.Count(); b++ {
		if v.src.at(b, col, row) != *v.params.SrcNoData {
			return false
		}
	}
	return true
}
