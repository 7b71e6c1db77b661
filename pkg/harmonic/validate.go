package harmonic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a harmonic's footprint does not fit in the
// image frequency range.
var ErrOutOfRange = errors.New("harmonic out of image frequency range")

// Axis names one image axis.
type Axis int

const (
	VerticalAxis Axis = iota
	HorizontalAxis
)

func (a Axis) String() string {
	if a == VerticalAxis {
		return "vertical"
	}
	return "horizontal"
}

// RangeError lists every axis on which a harmonic is out of range.
type RangeError struct {
	Index      Index
	Violations []Axis
}

func (e *RangeError) Error() string {
	axes := make([]string, len(e.Violations))
	for i, a := range e.Violations {
		axes[i] = a.String()
	}
	return fmt.Sprintf("harmonic peak %s is out of image frequency range (%s)", e.Index, strings.Join(axes, ", "))
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// CheckRange reports the axes on which the harmonic sub-image centred on
// harmonic h would leave the image. Both axes are always checked; an empty
// result means the harmonic fits. The limit itself is allowed.
func CheckRange(h Index, rows, cols int, p Period) []Axis {
	p = p.Resolve(rows, cols)
	var violations []Axis
	if (float64(h.Vertical)+0.5)*float64(p.Vertical) > float64(rows)/2 {
		violations = append(violations, VerticalAxis)
	}
	if (float64(h.Horizontal)+0.5)*float64(p.Horizontal) > float64(cols)/2 {
		violations = append(violations, HorizontalAxis)
	}
	return violations
}

// validateRange logs one warning per violated axis and then returns a single
// *RangeError, or nil when the harmonic fits.
func (e *Extractor) validateRange(h Index, rows, cols int, p Period) error {
	violations := CheckRange(h, rows, cols, p)
	for _, axis := range violations {
		e.out.Warn(component).
			Str("harmonic", h.String()).
			Stringer("axis", axis).
			Msg("Harmonic peak is out of image range")
	}
	if len(violations) > 0 {
		return &RangeError{Index: h, Violations: violations}
	}
	return nil
}
