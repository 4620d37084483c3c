package raster

import "fmt"

// DataMask is a windowed read result: pixel data shaped [bands, height,
// width] stored band-major in a flat slice, plus a [height, width] validity
// mask. Each result is produced fresh per call and owned by the caller.
type DataMask struct {
	Data   []float64 // len = Bands*Height*Width
	Mask   []uint8   // len = Height*Width
	Bands  int
	Height int
	Width  int
}

// NewDataMask allocates a zeroed result with the given shape.
func NewDataMask(bands, height, width int) DataMask {
	return DataMask{
		Data:   make([]float64, bands*height*width),
		Mask:   make([]uint8, height*width),
		Bands:  bands,
		Height: height,
		Width:  width,
	}
}

// Validate checks that the slice lengths match the declared shape.
func (d DataMask) Validate() error {
	if len(d.Data) != d.Bands*d.Height*d.Width {
		return fmt.Errorf("data length %d does not match shape [%d, %d, %d]",
			len(d.Data), d.Bands, d.Height, d.Width)
	}
	if len(d.Mask) != d.Height*d.Width {
		return fmt.Errorf("mask length %d does not match shape [%d, %d]",
			len(d.Mask), d.Height, d.Width)
	}
	return nil
}

// Band returns the row-major pixel data of the given 0-based band slot.
func (d DataMask) Band(i int) []float64 {
	n := d.Height * d.Width
	return d.Data[i*n : (i+1)*n]
}

// At returns the value of band slot i at (row, col).
func (d DataMask) At(i, row, col int) float64 {
	return d.Data[i*d.Height*d.Width+row*d.Width+col]
}

// MaskAt returns the mask value at (row, col).
func (d DataMask) MaskAt(row, col int) uint8 {
	return d.Mask[row*d.Width+col]
}
