package reader

import (
	"math"
	"testing"

	"github.com/pspoerri/rasterwin/geo"
)

func TestVRTTransformExplicitSize(t *testing.T) {
	ds := testDataset(t, nil)
	b := geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}

	tr, w, h, err := VRTTransform(ds, nil, b, geo.WGS84, 8, 8)
	if err != nil {
		t.Fatalf("VRTTransform: %v", err)
	}
	if w != 8 || h != 8 {
		t.Fatalf("dims = %dx%d, want 8x8", w, h)
	}
	if tr.A != 0.5 || tr.E != -0.5 {
		t.Errorf("resolution = (%g, %g), want (0.5, -0.5)", tr.A, tr.E)
	}
	if x, y := tr.Apply(0, 0); x != 12 || y != 16 {
		t.Errorf("origin = (%g, %g), want (12, 16)", x, y)
	}
	if x, y := tr.Apply(8, 8); x != 16 || y != 12 {
		t.Errorf("far corner = (%g, %g), want (16, 12)", x, y)
	}
}

func TestVRTTransformNativeResolution(t *testing.T) {
	ds := testDataset(t, nil) // 1 unit per pixel

	tests := []struct {
		name  string
		b     geo.Bounds
		wantW int
		wantH int
	}{
		{"whole pixels", geo.Bounds{Left: 12, Bottom: 12, Right: 15, Top: 16}, 3, 4},
		{"fractional width rounds up", geo.Bounds{Left: 12, Bottom: 12, Right: 14.5, Top: 16}, 3, 4},
		{"tiny box clamps to one pixel", geo.Bounds{Left: 12, Bottom: 15.9, Right: 12.1, Top: 16}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, w, h, err := VRTTransform(ds, nil, tt.b, geo.WGS84, 0, 0)
			if err != nil {
				t.Fatalf("VRTTransform: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("dims = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if tr.A != 1 || tr.E != -1 {
				t.Errorf("resolution = (%g, %g), want native (1, -1)", tr.A, tr.E)
			}
			if x, y := tr.Apply(0, 0); x != tt.b.Left || y != tt.b.Top {
				t.Errorf("origin = (%g, %g), want (%g, %g)", x, y, tt.b.Left, tt.b.Top)
			}
		})
	}
}

func TestVRTTransformReprojected(t *testing.T) {
	ds := testDataset(t, nil)

	// Dataset bounds projected into web Mercator give the target resolution.
	src, err := geo.Default.TransformBounds(geo.WGS84, geo.WebMercator, ds.Bounds(), boundsDensify)
	if err != nil {
		t.Fatalf("TransformBounds: %v", err)
	}

	tr, w, h, err := VRTTransform(ds, nil, src, geo.WebMercator, 0, 0)
	if err != nil {
		t.Fatalf("VRTTransform: %v", err)
	}
	// Covering the projected extent at the projected native resolution needs
	// the native pixel counts again, up to a ceiling pixel from float
	// division.
	if w < 10 || w > 11 || h < 10 || h > 11 {
		t.Errorf("dims = %dx%d, want 10x10 (+1 tolerated)", w, h)
	}
	if tr.C != src.Left || tr.F != src.Top {
		t.Errorf("origin = (%g, %g), want (%g, %g)", tr.C, tr.F, src.Left, src.Top)
	}
	if math.Abs(tr.A-src.Width()/10) > 1e-9 {
		t.Errorf("xres = %g, want %g", tr.A, src.Width()/10)
	}
}
