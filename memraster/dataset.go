// Package memraster provides a pure-Go, in-memory implementation of the
// raster collaborator interfaces. It backs the test suite and serves as a
// reference driver: nearest-neighbor warping, alpha synthesis, nodata
// masking and point sampling over band-major float64 pixel data.
package memraster

import (
	"fmt"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/raster"
)

// Config describes an in-memory dataset.
type Config struct {
	CRS       geo.CRS
	Transform geo.Affine
	Width     int
	Height    int

	// Bands holds one row-major slice per band, each Width*Height long.
	Bands [][]float64

	NoData *float64

	// ColorInterp tags each band; empty defaults to gray for every band.
	ColorInterp []raster.ColorInterp

	// Scales and Offsets hold per-band scale/offset pairs; empty defaults
	// to 1 and 0.
	Scales  []float64
	Offsets []float64

	// BlockWidth and BlockHeight describe the native internal tiling.
	// Zero means untiled.
	BlockWidth  int
	BlockHeight int

	// Transformer reprojects coordinates during warps. Nil means
	// geo.Default.
	Transformer geo.Transformer
}

// Dataset is an in-memory raster.Source.
type Dataset struct {
	cfg Config
	inv geo.Affine
}

// New validates cfg and returns a Dataset.
func New(cfg Config) (*Dataset, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("memraster: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Bands) == 0 {
		return nil, fmt.Errorf("memraster: dataset needs at least one band")
	}
	for i, b := range cfg.Bands {
		if len(b) != cfg.Width*cfg.Height {
			return nil, fmt.Errorf("memraster: band %d has %d samples, want %d",
				i+1, len(b), cfg.Width*cfg.Height)
		}
	}
	if len(cfg.ColorInterp) != 0 && len(cfg.ColorInterp) != len(cfg.Bands) {
		return nil, fmt.Errorf("memraster: %d color interpretations for %d bands",
			len(cfg.ColorInterp), len(cfg.Bands))
	}
	if cfg.CRS == 0 {
		cfg.CRS = geo.WGS84
	}
	if cfg.Transformer == nil {
		cfg.Transformer = geo.Default
	}
	inv, err := cfg.Transform.Invert()
	if err != nil {
		return nil, fmt.Errorf("memraster: %w", err)
	}
	return &Dataset{cfg: cfg, inv: inv}, nil
}

func (d *Dataset) CRS() geo.CRS           { return d.cfg.CRS }
func (d *Dataset) Transform() geo.Affine  { return d.cfg.Transform }
func (d *Dataset) Size() (int, int)       { return d.cfg.Width, d.cfg.Height }
func (d *Dataset) Count() int             { return len(d.cfg.Bands) }

func (d *Dataset) Bounds() geo.Bounds {
	return d.cfg.Transform.GridBounds(d.cfg.Width, d.cfg.Height)
}

func (d *Dataset) ColorInterp(band int) raster.ColorInterp {
	if len(d.cfg.ColorInterp) == 0 {
		return raster.ColorInterpGray
	}
	return d.cfg.ColorInterp[band-1]
}

func (d *Dataset) NoData() (float64, bool) {
	if d.cfg.NoData == nil {
		return 0, false
	}
	return *d.cfg.NoData, true
}

func (d *Dataset) ScaleOffset(band int) (float64, float64) {
	scale, offset := 1.0, 0.0
	if len(d.cfg.Scales) >= band {
		scale = d.cfg.Scales[band-1]
	}
	if len(d.cfg.Offsets) >= band {
		offset = d.cfg.Offsets[band-1]
	}
	return scale, offset
}

func (d *Dataset) BlockSize() (int, int, bool) {
	if d.cfg.BlockWidth <= 0 || d.cfg.BlockHeight <= 0 {
		return 0, 0, false
	}
	return d.cfg.BlockWidth, d.cfg.BlockHeight, true
}

// at returns the raw value of a 1-based band at source pixel (col, row).
func (d *Dataset) at(band, col, row int) float64 {
	return d.cfg.Bands[band-1][row*d.cfg.Width+col]
}

// inRange reports whether (col, row) lies on the source grid.
func (d *Dataset) inRange(col, row int) bool {
	return col >= 0 && col < d.cfg.Width && row >= 0 && row < d.cfg.Height
}
