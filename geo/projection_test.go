package geo

import (
	"errors"
	"math"
	"testing"
)

func TestForCRS(t *testing.T) {
	tests := []struct {
		crs      CRS
		wantNil  bool
		wantEPSG int
	}{
		{SwissLV95, false, 2056},
		{WGS84, false, 4326},
		{WebMercator, false, 3857},
		{32632, true, 0}, // UTM 32N — unsupported
		{0, true, 0},
	}
	for _, tt := range tests {
		p := ForCRS(tt.crs)
		if tt.wantNil {
			if p != nil {
				t.Errorf("ForCRS(%d) = %v, want nil", tt.crs, p)
			}
			continue
		}
		if p == nil {
			t.Fatalf("ForCRS(%d) = nil, want non-nil", tt.crs)
		}
		if got := p.EPSG(); got != tt.wantEPSG {
			t.Errorf("ForCRS(%d).EPSG() = %d, want %d", tt.crs, got, tt.wantEPSG)
		}
	}
}

// TestProjectionRoundTrip verifies that ToWGS84(FromWGS84(lon, lat)) ≈ (lon, lat).
func TestProjectionRoundTrip(t *testing.T) {
	// Points inside Switzerland (valid for LV95) and valid everywhere else.
	points := [][2]float64{
		{8.5417, 47.3769}, // Zurich
		{6.1432, 46.2044}, // Geneva
		{9.8355, 46.4908}, // St. Moritz
	}
	for _, crs := range []CRS{WGS84, WebMercator, SwissLV95} {
		p := ForCRS(crs)
		tol := 1e-9
		if crs == SwissLV95 {
			tol = 1e-3 // polynomial approximation, ~1 m
		}
		for _, pt := range points {
			x, y := p.FromWGS84(pt[0], pt[1])
			lon, lat := p.ToWGS84(x, y)
			if math.Abs(lon-pt[0]) > tol || math.Abs(lat-pt[1]) > tol {
				t.Errorf("%s round trip (%g, %g) = (%g, %g)", crs, pt[0], pt[1], lon, lat)
			}
		}
	}
}

func TestTransformPoints(t *testing.T) {
	xs, ys, err := Default.TransformPoints(WGS84, WebMercator, []float64{0}, []float64{0})
	if err != nil {
		t.Fatalf("TransformPoints: %v", err)
	}
	if math.Abs(xs[0]) > 1e-6 || math.Abs(ys[0]) > 1e-6 {
		t.Errorf("origin maps to (%g, %g), want (0, 0)", xs[0], ys[0])
	}

	_, _, err = Default.TransformPoints(WGS84, CRS(32632), []float64{0}, []float64{0})
	if !errors.Is(err, ErrUnsupportedCRS) {
		t.Errorf("unsupported CRS error = %v, want ErrUnsupportedCRS", err)
	}
}

func TestTransformBounds(t *testing.T) {
	b := Bounds{Left: 0, Bottom: 0, Right: 10, Top: 10}

	// Same CRS: identity.
	got, err := Default.TransformBounds(WGS84, WGS84, b, 21)
	if err != nil {
		t.Fatalf("TransformBounds: %v", err)
	}
	if got != b {
		t.Errorf("identity TransformBounds = %+v, want %+v", got, b)
	}

	// To web Mercator: corners must be covered.
	got, err = Default.TransformBounds(WGS84, WebMercator, b, 21)
	if err != nil {
		t.Fatalf("TransformBounds: %v", err)
	}
	p := ForCRS(WebMercator)
	for _, c := range [][2]float64{{0, 0}, {10, 10}, {0, 10}, {10, 0}} {
		x, y := p.FromWGS84(c[0], c[1])
		if x < got.Left-1e-6 || x > got.Right+1e-6 || y < got.Bottom-1e-6 || y > got.Top+1e-6 {
			t.Errorf("corner (%g, %g) -> (%g, %g) outside %+v", c[0], c[1], x, y, got)
		}
	}
	if got.Left >= got.Right || got.Bottom >= got.Top {
		t.Errorf("degenerate projected bounds %+v", got)
	}
}
