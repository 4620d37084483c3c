package geo

import (
	"errors"
	"fmt"
	"math"
)

// Projection converts between a CRS and WGS84.
type Projection interface {
	// ToWGS84 converts projected coordinates to WGS84 longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64)

	// FromWGS84 converts WGS84 longitude/latitude (degrees) to projected coordinates.
	FromWGS84(lon, lat float64) (x, y float64)

	// EPSG returns the EPSG code for this projection.
	EPSG() int
}

// ForCRS returns a Projection for the given CRS.
// Returns nil if the CRS is not supported.
func ForCRS(crs CRS) Projection {
	switch crs {
	case SwissLV95:
		return &swissLV95{}
	case WGS84:
		return &wgs84Identity{}
	case WebMercator:
		return &webMercator{}
	default:
		return nil
	}
}

// ErrUnsupportedCRS is returned when no projection is registered for a CRS.
var ErrUnsupportedCRS = errors.New("geo: unsupported CRS")

// Transformer is the coordinate-transform collaborator: it reprojects
// point lists and bounding boxes between two CRS. TransformBounds densifies
// each box edge with the given number of intermediate points before
// reprojecting, since a straight edge is not generally straight after
// reprojection.
type Transformer interface {
	TransformPoints(src, dst CRS, xs, ys []float64) ([]float64, []float64, error)
	TransformBounds(src, dst CRS, b Bounds, densify int) (Bounds, error)
}

// Default is the built-in Transformer backed by the projection registry.
var Default Transformer = ProjTransformer{}

// ProjTransformer implements Transformer using the closed-form projections
// known to ForCRS.
type ProjTransformer struct{}

func (ProjTransformer) TransformPoints(src, dst CRS, xs, ys []float64) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("geo: mismatched point slices (%d x, %d y)", len(xs), len(ys))
	}
	if src == dst {
		return append([]float64(nil), xs...), append([]float64(nil), ys...), nil
	}
	sp := ForCRS(src)
	if sp == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, src)
	}
	dp := ForCRS(dst)
	if dp == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, dst)
	}
	outX := make([]float64, len(xs))
	outY := make([]float64, len(ys))
	for i := range xs {
		lon, lat := sp.ToWGS84(xs[i], ys[i])
		outX[i], outY[i] = dp.FromWGS84(lon, lat)
	}
	return outX, outY, nil
}

func (t ProjTransformer) TransformBounds(src, dst CRS, b Bounds, densify int) (Bounds, error) {
	if src == dst {
		return b, nil
	}
	if densify < 0 {
		densify = 0
	}
	// densify intermediate points per edge, plus the two corners.
	n := densify + 2
	xs := make([]float64, 0, 4*n)
	ys := make([]float64, 0, 4*n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		x := b.Left + f*b.Width()
		y := b.Bottom + f*b.Height()
		xs = append(xs, x, x, b.Left, b.Right)
		ys = append(ys, b.Bottom, b.Top, y, y)
	}
	tx, ty, err := t.TransformPoints(src, dst, xs, ys)
	if err != nil {
		return Bounds{}, err
	}
	out := Bounds{Left: math.Inf(1), Bottom: math.Inf(1), Right: math.Inf(-1), Top: math.Inf(-1)}
	for i := range tx {
		out.Left = min(out.Left, tx[i])
		out.Right = max(out.Right, tx[i])
		out.Bottom = min(out.Bottom, ty[i])
		out.Top = max(out.Top, ty[i])
	}
	return out, nil
}

// wgs84Identity is a no-op projection for data already in EPSG:4326.
type wgs84Identity struct{}

func (*wgs84Identity) ToWGS84(x, y float64) (lon, lat float64)   { return x, y }
func (*wgs84Identity) FromWGS84(lon, lat float64) (x, y float64) { return lon, lat }
func (*wgs84Identity) EPSG() int                                 { return 4326 }

const (
	// earthCircumference is the equatorial circumference in meters.
	earthCircumference = 40075016.685578488
	// originShift is half the earth's circumference.
	originShift = earthCircumference / 2.0
)

// webMercator implements spherical web Mercator (EPSG:3857).
type webMercator struct{}

func (*webMercator) EPSG() int { return 3857 }

func (*webMercator) ToWGS84(x, y float64) (lon, lat float64) {
	lon = (x / originShift) * 180.0
	lat = (y / originShift) * 180.0
	lat = 180.0 / math.Pi * (2.0*math.Atan(math.Exp(lat*math.Pi/180.0)) - math.Pi/2.0)
	return
}

func (*webMercator) FromWGS84(lon, lat float64) (x, y float64) {
	x = lon * originShift / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * originShift / 180.0
	return
}

// swissLV95 implements EPSG:2056 (CH1903+ / LV95) using swisstopo's
// published polynomial approximation formulas. Accuracy ~1 meter.
type swissLV95 struct{}

func (*swissLV95) EPSG() int { return 2056 }

func (*swissLV95) ToWGS84(easting, northing float64) (lon, lat float64) {
	// Auxiliary values: differences from the Bern reference in 1000 km units.
	y := (easting - 2_600_000) / 1_000_000
	x := (northing - 1_200_000) / 1_000_000

	lonSec := 2.6779094 +
		4.728982*y +
		0.791484*y*x +
		0.1306*y*x*x -
		0.0436*y*y*y

	latSec := 16.9023892 +
		3.238272*x -
		0.270978*y*y -
		0.002528*x*x -
		0.0447*y*y*x -
		0.0140*x*x*x

	// Convert from 10000" to degrees.
	lon = lonSec * 100.0 / 36.0
	lat = latSec * 100.0 / 36.0
	return
}

func (*swissLV95) FromWGS84(lon, lat float64) (easting, northing float64) {
	phiAux := (lat*3600 - 169028.66) / 10000
	lambdaAux := (lon*3600 - 26782.5) / 10000

	easting = 2_600_072.37 +
		211_455.93*lambdaAux -
		10_938.51*lambdaAux*phiAux -
		0.36*lambdaAux*phiAux*phiAux -
		44.54*lambdaAux*lambdaAux*lambdaAux

	northing = 1_200_147.07 +
		308_807.95*phiAux +
		3_745.25*lambdaAux*lambdaAux +
		76.63*phiAux*phiAux -
		194.56*lambdaAux*lambdaAux*phiAux +
		119.79*phiAux*phiAux*phiAux

	return
}
