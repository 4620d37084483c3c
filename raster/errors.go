package raster

import "errors"

// ErrOutOfBounds indicates that requested geometry does not sufficiently
// intersect the source dataset. It is surfaced to the caller before any
// data is read and never retried.
var ErrOutOfBounds = errors.New("requested bounds are outside dataset coverage")

// ErrPointOutsideBounds indicates a sample coordinate outside the dataset
// bounds.
var ErrPointOutsideBounds = errors.New("point is outside dataset bounds")
