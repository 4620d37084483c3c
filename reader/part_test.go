package reader

import (
	"errors"
	"testing"

	"github.com/pspoerri/rasterwin/geo"
	"github.com/pspoerri/rasterwin/memraster"
	"github.com/pspoerri/rasterwin/raster"
)

func TestPartNativeResolution(t *testing.T) {
	ds := testDataset(t, nil)

	dm, err := Part(ds, geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}, PartOptions{})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if dm.Height != 4 || dm.Width != 4 {
		t.Fatalf("shape = [%d, %d], want [4, 4]", dm.Height, dm.Width)
	}
	// Top-left output pixel covers source pixel (col 2, row 4).
	if got := dm.At(0, 0, 0); got != 42 {
		t.Errorf("At(0,0,0) = %g, want 42", got)
	}
	if got := dm.At(0, 3, 3); got != 75 {
		t.Errorf("At(0,3,3) = %g, want 75", got)
	}
}

func TestPartMinimumOverlap(t *testing.T) {
	ds := testDataset(t, nil)
	// Intersection with the dataset is a quarter of the requested box.
	bounds := geo.Bounds{Left: 15, Bottom: 15, Right: 25, Top: 25}

	_, err := Part(ds, bounds, PartOptions{MinimumOverlap: 0.5})
	if !errors.Is(err, raster.ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}

	dm, err := Part(ds, bounds, PartOptions{MinimumOverlap: 0.2})
	if err != nil {
		t.Fatalf("Part with satisfied overlap: %v", err)
	}
	if dm.Height != 10 || dm.Width != 10 {
		t.Fatalf("shape = [%d, %d], want [10, 10]", dm.Height, dm.Width)
	}
	// The covered quadrant is valid, the rest is masked out.
	if dm.MaskAt(5, 0) != 255 {
		t.Error("covered pixel should be masked in")
	}
	if dm.MaskAt(0, 0) != 0 || dm.MaskAt(9, 9) != 0 {
		t.Error("uncovered pixels should be masked out")
	}
}

func TestPartBoundsCRS(t *testing.T) {
	ds := testDataset(t, nil)
	wgs84 := geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}

	mercator, err := geo.Default.TransformBounds(geo.WGS84, geo.WebMercator, wgs84, boundsDensify)
	if err != nil {
		t.Fatalf("TransformBounds: %v", err)
	}

	want, err := Part(ds, wgs84, PartOptions{Options: Options{Height: 4, Width: 4}})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	got, err := Part(ds, mercator, PartOptions{
		Options:   Options{Height: 4, Width: 4},
		BoundsCRS: geo.WebMercator,
	})
	if err != nil {
		t.Fatalf("Part with reprojected bounds: %v", err)
	}
	for i := range want.Data {
		if got.Data[i] != want.Data[i] {
			t.Fatalf("Data[%d] = %g, want %g", i, got.Data[i], want.Data[i])
		}
	}
}

func TestPartMaxSizeAspect(t *testing.T) {
	ds := testDataset(t, nil)
	// A 10x5 box at native resolution, clamped to 4 on the longer axis.
	bounds := geo.Bounds{Left: 10, Bottom: 15, Right: 20, Top: 20}

	dm, err := Part(ds, bounds, PartOptions{MaxSize: 4})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if dm.Width != 4 || dm.Height != 2 {
		t.Errorf("shape = [%d, %d], want [2, 4]", dm.Height, dm.Width)
	}
}

func TestPartMaxSizeConflict(t *testing.T) {
	ds := testDataset(t, nil)

	var warnings []Warning
	dm, err := Part(ds, geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}, PartOptions{
		Options: Options{
			Height:    6,
			Width:     6,
			OnWarning: func(w Warning) { warnings = append(warnings, w) },
		},
		MaxSize: 2,
	})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if len(warnings) != 1 || warnings[0] != WarnConflictingOptions {
		t.Errorf("warnings = %v, want [WarnConflictingOptions]", warnings)
	}
	// Explicit shape wins over MaxSize.
	if dm.Height != 6 || dm.Width != 6 {
		t.Errorf("shape = [%d, %d], want [6, 6]", dm.Height, dm.Width)
	}
}

func TestPartPaddingRoundTrip(t *testing.T) {
	ds := testDataset(t, nil)
	bounds := geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}
	base := Options{Height: 4, Width: 4}

	plain, err := Part(ds, bounds, PartOptions{Options: base})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	padded, err := Part(ds, bounds, PartOptions{Options: base, Padding: 2})
	if err != nil {
		t.Fatalf("Part with padding: %v", err)
	}

	if padded.Height != plain.Height || padded.Width != plain.Width {
		t.Fatalf("padded shape = [%d, %d], want [%d, %d]",
			padded.Height, padded.Width, plain.Height, plain.Width)
	}
	for i := range plain.Data {
		if padded.Data[i] != plain.Data[i] {
			t.Fatalf("Data[%d] = %g with padding, %g without", i, padded.Data[i], plain.Data[i])
		}
	}
	for i := range plain.Mask {
		if padded.Mask[i] != plain.Mask[i] {
			t.Fatalf("Mask[%d] differs with padding", i)
		}
	}
}

func TestPartPaddingSkippedWhenAligned(t *testing.T) {
	ds := testDataset(t, func(cfg *memraster.Config) {
		cfg.BlockWidth = 4
		cfg.BlockHeight = 4
	})
	// Block-aligned request: the padding ring is not applied.
	bounds := geo.Bounds{Left: 14, Bottom: 12, Right: 18, Top: 16}

	dm, err := Part(ds, bounds, PartOptions{Options: Options{Height: 4, Width: 4}, Padding: 2})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if dm.Height != 4 || dm.Width != 4 {
		t.Fatalf("shape = [%d, %d], want [4, 4]", dm.Height, dm.Width)
	}
	if got := dm.At(0, 0, 0); got != 44 {
		t.Errorf("At(0,0,0) = %g, want 44", got)
	}
}

func TestPartReprojected(t *testing.T) {
	ds := testDataset(t, nil)
	wgs84 := geo.Bounds{Left: 12, Bottom: 12, Right: 16, Top: 16}
	mercator, err := geo.Default.TransformBounds(geo.WGS84, geo.WebMercator, wgs84, boundsDensify)
	if err != nil {
		t.Fatalf("TransformBounds: %v", err)
	}

	dm, err := Part(ds, mercator, PartOptions{
		Options: Options{Height: 4, Width: 4},
		DstCRS:  geo.WebMercator,
	})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if dm.Height != 4 || dm.Width != 4 {
		t.Fatalf("shape = [%d, %d], want [4, 4]", dm.Height, dm.Width)
	}
	// Column positions survive reprojection exactly (Mercator x is linear in
	// longitude); row values may shift by one source row near pixel edges.
	if got := dm.At(0, 0, 0); got != 42 && got != 32 && got != 52 {
		t.Errorf("At(0,0,0) = %g, want col 2 of a row near 4", got)
	}
	for i, m := range dm.Mask {
		if m != 255 {
			t.Fatalf("Mask[%d] = %d, want 255 (fully covered)", i, m)
		}
	}
}

func TestPreviewNativeSize(t *testing.T) {
	ds := testDataset(t, nil)

	dm, err := Preview(ds, PreviewOptions{})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if dm.Height != 10 || dm.Width != 10 {
		t.Fatalf("shape = [%d, %d], want [10, 10]", dm.Height, dm.Width)
	}
}

func TestPreviewClamped(t *testing.T) {
	cfg := memraster.Config{
		CRS:       geo.WGS84,
		Transform: geo.FromOrigin(0, 20, 1, 1),
		Width:     40,
		Height:    20,
		Bands:     [][]float64{gradientBand(40, 20)},
	}
	ds, err := memraster.New(cfg)
	if err != nil {
		t.Fatalf("memraster.New: %v", err)
	}

	dm, err := Preview(ds, PreviewOptions{MaxSize: 8})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if dm.Width != 8 || dm.Height != 4 {
		t.Errorf("shape = [%d, %d], want [4, 8]", dm.Height, dm.Width)
	}
}

func TestPreviewExplicitShapeIgnoresMaxSize(t *testing.T) {
	ds := testDataset(t, nil)

	dm, err := Preview(ds, PreviewOptions{Options: Options{Height: 3, Width: 7}, MaxSize: 2})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if dm.Height != 3 || dm.Width != 7 {
		t.Errorf("shape = [%d, %d], want [3, 7]", dm.Height, dm.Width)
	}
}
