package reader

// Warning is a non-fatal advisory: a caller-supplied option combination was
// resolved with an implicit choice, and the operation still completed.
// Warnings are delivered through the OnWarning hook on the options structs;
// a nil hook discards them.
type Warning int

const (
	// WarnAlphaBandRemoved signals that an implicit alpha band was excluded
	// from the output data array during band-index resolution.
	WarnAlphaBandRemoved Warning = iota

	// WarnConflictingOptions signals that MaxSize was ignored because both
	// Height and Width were set.
	WarnConflictingOptions
)

func (w Warning) String() string {
	switch w {
	case WarnAlphaBandRemoved:
		return "alpha band was removed from the output data array"
	case WarnConflictingOptions:
		return "MaxSize is ignored when Height and Width are set"
	default:
		return "unknown warning"
	}
}

func warn(fn func(Warning), w Warning) {
	if fn != nil {
		fn(w)
	}
}
