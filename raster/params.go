package raster

import "github.com/pspoerri/rasterwin/geo"

// ViewParams parameterizes a virtual warped view of a dataset.
//
// AddAlpha and NoData are mutually exclusive: an effective nodata value
// disables alpha synthesis, and a true source alpha band disables both.
// BuildViewParams enforces this; drivers may reject params violating it.
type ViewParams struct {
	CRS        geo.CRS
	Transform  *geo.Affine // nil: derived by the driver from the source extent
	Width      int         // 0: derived by the driver
	Height     int         // 0: derived by the driver
	Resampling Resampling
	NoData     *float64
	SrcNoData  *float64
	AddAlpha   bool
}

// ViewOverrides is the caller escape hatch: any non-nil field replaces the
// corresponding computed ViewParams value. Overrides are applied last and
// take precedence over everything BuildViewParams derives.
type ViewOverrides struct {
	CRS        *geo.CRS
	Transform  *geo.Affine
	Width      *int
	Height     *int
	Resampling *Resampling
	NoData     *float64
	SrcNoData  *float64
	AddAlpha   *bool
}

func (o *ViewOverrides) apply(p *ViewParams) {
	if o.CRS != nil {
		p.CRS = *o.CRS
	}
	if o.Transform != nil {
		t := *o.Transform
		p.Transform = &t
	}
	if o.Width != nil {
		p.Width = *o.Width
	}
	if o.Height != nil {
		p.Height = *o.Height
	}
	if o.Resampling != nil {
		p.Resampling = *o.Resampling
	}
	if o.NoData != nil {
		nd := *o.NoData
		p.NoData = &nd
	}
	if o.SrcNoData != nil {
		nd := *o.SrcNoData
		p.SrcNoData = &nd
	}
	if o.AddAlpha != nil {
		p.AddAlpha = *o.AddAlpha
	}
}

// BuildViewParams resolves the alpha/nodata policy for a warped view of ds.
// The rules apply in order:
//
//  1. Default: alpha synthesis on, no nodata.
//  2. An effective nodata value (override, else the dataset's own) is set as
//     both NoData and SrcNoData and turns alpha synthesis off.
//  3. A true source alpha band turns alpha synthesis off regardless of 2
//     (never synthesize a second alpha channel).
//  4. Caller overrides are merged last and win over everything above.
func BuildViewParams(ds Dataset, nodata *float64, rs Resampling, overrides *ViewOverrides) ViewParams {
	p := ViewParams{
		CRS:        ds.CRS(),
		Resampling: rs,
		AddAlpha:   true,
	}

	nd := nodata
	if nd == nil {
		if v, ok := ds.NoData(); ok {
			nd = &v
		}
	}
	if nd != nil {
		v := *nd
		p.NoData = &v
		w := *nd
		p.SrcNoData = &w
		p.AddAlpha = false
	}

	if HasAlphaBand(ds) {
		p.AddAlpha = false
	}

	if overrides != nil {
		overrides.apply(&p)
	}
	return p
}
