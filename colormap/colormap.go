// Package colormap maps single-band read results onto RGB gradients.
package colormap

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pspoerri/rasterwin/raster"
)

// Stop anchors a color at a position in [0, 1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Gradient is an ordered list of color stops. Colors between stops are
// blended in Lab space, which keeps perceived lightness even across the
// ramp.
type Gradient []Stop

// NewGradient returns a gradient with stops sorted by position.
func NewGradient(stops ...Stop) (Gradient, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("colormap: gradient needs at least two stops, got %d", len(stops))
	}
	g := append(Gradient(nil), stops...)
	sort.Slice(g, func(i, j int) bool { return g[i].Pos < g[j].Pos })
	return g, nil
}

// At returns the gradient color at t, clamped to the outermost stops.
func (g Gradient) At(t float64) colorful.Color {
	if t <= g[0].Pos {
		return g[0].Color
	}
	last := g[len(g)-1]
	if t >= last.Pos {
		return last.Color
	}
	for i := 0; i < len(g)-1; i++ {
		a, b := g[i], g[i+1]
		if t <= b.Pos {
			f := (t - a.Pos) / (b.Pos - a.Pos)
			return a.Color.BlendLab(b.Color, f).Clamped()
		}
	}
	return last.Color
}

// Grayscale is a black-to-white ramp.
var Grayscale = Gradient{
	{Pos: 0, Color: colorful.Color{R: 0, G: 0, B: 0}},
	{Pos: 1, Color: colorful.Color{R: 1, G: 1, B: 1}},
}

// Terrain ramps from deep green through brown to white, a common relief
// palette for elevation previews.
var Terrain = Gradient{
	{Pos: 0.0, Color: colorful.Color{R: 0.0, G: 0.4, B: 0.2}},
	{Pos: 0.35, Color: colorful.Color{R: 0.8, G: 0.75, B: 0.4}},
	{Pos: 0.7, Color: colorful.Color{R: 0.5, G: 0.35, B: 0.2}},
	{Pos: 1.0, Color: colorful.Color{R: 1.0, G: 1.0, B: 1.0}},
}

// Apply maps a single-band result through g, linearly rescaling values from
// [lo, hi] to gradient positions. The result has three bands in [0, 255];
// the mask is carried over unchanged and invalid pixels stay zero.
func Apply(dm raster.DataMask, g Gradient, lo, hi float64) (raster.DataMask, error) {
	if dm.Bands != 1 {
		return raster.DataMask{}, fmt.Errorf("colormap: expected a single band, got %d", dm.Bands)
	}
	if err := dm.Validate(); err != nil {
		return raster.DataMask{}, fmt.Errorf("colormap: %w", err)
	}
	if hi == lo {
		return raster.DataMask{}, fmt.Errorf("colormap: empty value range [%g, %g]", lo, hi)
	}

	out := raster.NewDataMask(3, dm.Height, dm.Width)
	copy(out.Mask, dm.Mask)

	n := dm.Height * dm.Width
	band := dm.Band(0)
	r, gch, b := out.Band(0), out.Band(1), out.Band(2)
	for i := 0; i < n; i++ {
		if dm.Mask[i] == 0 {
			continue
		}
		c := g.At((band[i] - lo) / (hi - lo))
		cr, cg, cb := c.RGB255()
		r[i] = float64(cr)
		gch[i] = float64(cg)
		b[i] = float64(cb)
	}
	return out, nil
}
