// Package grating derives harmonic images, intensity, dark-field and
// differential phase maps and fringe visibility from single grating
// interferometry images.
package grating

import (
	"github.com/rs/zerolog"

	"gratinginterferometry/internal/logger"
	"gratinginterferometry/pkg/harmonic"
	"gratinginterferometry/pkg/unwrap"
)

const component = "grating"

// DefaultVisibilitySearchRegion is the peak search half-width used for
// visibility estimation.
const DefaultVisibilitySearchRegion = 20

// Params configures an Analyzer.
type Params struct {
	// SearchRegion is the peak search half-width used during extraction.
	SearchRegion int

	// VisibilitySearchRegion is the search half-width for Visibility.
	VisibilitySearchRegion int

	// Unwrap enables phase unwrapping of the differential phase maps.
	Unwrap bool

	// Verbose enables informational log messages.
	Verbose bool

	// Unwrapper overrides the phase unwrapping function.
	Unwrapper unwrap.Func
}

// DefaultParams returns the parameters used when none are given.
func DefaultParams() Params {
	return Params{
		SearchRegion:           harmonic.DefaultSearchRegion,
		VisibilitySearchRegion: DefaultVisibilitySearchRegion,
		Unwrap:                 true,
	}
}

// Analyzer runs the grating analysis pipeline. It holds no per-image state
// and is safe for concurrent use.
type Analyzer struct {
	params    Params
	extractor *harmonic.Extractor
	out       logger.Verbose
}

// NewAnalyzer creates an analyzer logging to log.
func NewAnalyzer(params Params, log zerolog.Logger) *Analyzer {
	if params.SearchRegion == 0 {
		params.SearchRegion = harmonic.DefaultSearchRegion
	}
	if params.VisibilitySearchRegion == 0 {
		params.VisibilitySearchRegion = DefaultVisibilitySearchRegion
	}
	if params.Unwrapper == nil {
		params.Unwrapper = unwrap.Reliability
	}

	return &Analyzer{
		params:    params,
		extractor: harmonic.NewExtractor(log, params.Verbose),
		out:       logger.Verbose{Log: log, Enabled: params.Verbose},
	}
}

// Extractor exposes the harmonic extractor used by the analyzer.
func (a *Analyzer) Extractor() *harmonic.Extractor {
	return a.extractor
}
