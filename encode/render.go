package encode

import (
	"fmt"
	"image"

	"github.com/pspoerri/rasterwin/raster"
)

// Render converts a read result into an image. A single band renders as
// grayscale replicated across RGB, three bands as RGB, four bands as RGBA
// (the mask is ignored in that case). The validity mask becomes the alpha
// channel. Values are rounded and clamped to [0, 255]; rescale data into
// byte range first when it holds physical units.
func Render(dm raster.DataMask) (*image.NRGBA, error) {
	if err := dm.Validate(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, dm.Width, dm.Height))
	n := dm.Height * dm.Width

	var r, g, b, a []float64
	switch dm.Bands {
	case 1:
		r = dm.Band(0)
		g, b = r, r
	case 3:
		r, g, b = dm.Band(0), dm.Band(1), dm.Band(2)
	case 4:
		r, g, b, a = dm.Band(0), dm.Band(1), dm.Band(2), dm.Band(3)
	default:
		return nil, fmt.Errorf("encode: expected 1, 3 or 4 bands, got %d", dm.Bands)
	}

	for i := 0; i < n; i++ {
		off := i * 4
		img.Pix[off+0] = clampByte(r[i])
		img.Pix[off+1] = clampByte(g[i])
		img.Pix[off+2] = clampByte(b[i])
		if a != nil {
			img.Pix[off+3] = clampByte(a[i])
		} else {
			img.Pix[off+3] = dm.Mask[i]
		}
	}
	return img, nil
}

// clampByte rounds a float64 to the nearest uint8, clamping to [0, 255].
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
