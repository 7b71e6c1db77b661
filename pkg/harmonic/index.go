// Package harmonic locates and extracts harmonic sub-images from the
// centred spectrum of a grating interferometry image.
package harmonic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidIndex is returned when a harmonic identifier cannot be parsed.
	ErrInvalidIndex = errors.New("invalid harmonic index")

	// ErrInvalidSearchRegion is returned for a non-positive search radius.
	ErrInvalidSearchRegion = errors.New("search region must be positive")
)

// Index identifies a harmonic replica in the spectrum. (0, 0) is the DC peak.
type Index struct {
	Vertical   int
	Horizontal int
}

// The three harmonics used by single grating analysis.
var (
	Zero       = Index{0, 0}
	FirstHoriz = Index{0, 1}
	FirstVert  = Index{1, 0}
)

// String renders the index in the two digit form, e.g. "01".
func (h Index) String() string {
	return fmt.Sprintf("%d%d", h.Vertical, h.Horizontal)
}

// ParseIndex parses a harmonic identifier. Accepted forms are two digits
// ("10") or two comma separated non-negative integers ("1,0").
func ParseIndex(s string) (Index, error) {
	s = strings.TrimSpace(s)

	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else if len(s) == 2 {
		parts = []string{s[:1], s[1:]}
	}
	if len(parts) != 2 {
		return Index{}, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}

	var values [2]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return Index{}, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
		}
		values[i] = v
	}

	return Index{Vertical: values[0], Horizontal: values[1]}, nil
}

// Period holds the spacing, in spectrum pixels, between adjacent harmonic
// peaks along each axis. A non-positive value marks a one dimensional
// grating along that axis.
type Period struct {
	Vertical   int
	Horizontal int
}

// Resolve replaces non-positive periods with the full image extent of the
// corresponding axis.
func (p Period) Resolve(rows, cols int) Period {
	if p.Vertical <= 0 {
		p.Vertical = rows
	}
	if p.Horizontal <= 0 {
		p.Horizontal = cols
	}
	return p
}

// resolveLogged is Resolve with the informational messages about assumed
// one dimensional gratings.
func (e *Extractor) resolveLogged(p Period, rows, cols int) Period {
	if p.Vertical <= 0 {
		e.out.Info(component).Msg("Assuming horizontal 1D grating")
	}
	if p.Horizontal <= 0 {
		e.out.Info(component).Msg("Assuming vertical 1D grating")
	}
	return p.Resolve(rows, cols)
}
