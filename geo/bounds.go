package geo

import "fmt"

// CRS identifies a coordinate reference system by EPSG code.
type CRS int

const (
	// WGS84 is geographic longitude/latitude (EPSG:4326).
	WGS84 CRS = 4326
	// WebMercator is spherical web Mercator (EPSG:3857).
	WebMercator CRS = 3857
	// SwissLV95 is CH1903+ / LV95 (EPSG:2056).
	SwissLV95 CRS = 2056
)

func (c CRS) String() string {
	return fmt.Sprintf("EPSG:%d", int(c))
}

// Bounds is a (left, bottom, right, top) bounding box in some CRS.
// A well-formed box has Left < Right and Bottom < Top, but reprojection of
// degenerate geometry can produce inverted boxes; consumers must tolerate
// them rather than assume the invariant holds.
type Bounds struct {
	Left, Bottom, Right, Top float64
}

// Width returns Right - Left.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Contains reports whether (x, y) lies strictly inside b on both axes.
func (b Bounds) Contains(x, y float64) bool {
	return b.Left < x && x < b.Right && b.Bottom < y && y < b.Top
}

// Window is an integer pixel-space sub-region of a raster grid. It may
// extend past the grid edges; readers clip or nodata-fill out-of-range
// pixels.
type Window struct {
	ColOff, RowOff int
	Width, Height  int
}
