package harmonic

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/internal/logger"
	"gratinginterferometry/pkg/fourier"
)

const component = "harmonic"

// DefaultSearchRegion is the peak search half-width used by extraction.
const DefaultSearchRegion = 10

// ErrDuplicateHarmonic is returned when the same harmonic is requested more
// than once in a single multi-harmonic extraction.
var ErrDuplicateHarmonic = errors.New("harmonic requested more than once")

// Options controls a single extraction.
type Options struct {
	// SearchRegion is the half-width of the peak search window.
	SearchRegion int

	// IsFFT tells that the input already is a centred spectrum. When false
	// the input is treated as a real-space image and transformed first.
	IsFFT bool
}

// Extractor crops harmonic sub-images from spectra.
type Extractor struct {
	out logger.Verbose
}

// NewExtractor creates an extractor. Informational messages are only
// written when verbose is true; warnings are always written.
func NewExtractor(log zerolog.Logger, verbose bool) *Extractor {
	return &Extractor{out: logger.Verbose{Log: log, Enabled: verbose}}
}

func (o Options) searchRegion() (int, error) {
	if o.SearchRegion == 0 {
		return DefaultSearchRegion, nil
	}
	if o.SearchRegion < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSearchRegion, o.SearchRegion)
	}
	return o.SearchRegion, nil
}

// Extract returns the sub-image of size period centred on the theoretical
// position of harmonic h.
//
// The crop is centred on the theoretical peak, not the detected one, so that
// all harmonics of one image stay aligned with each other. The detected peak
// is only used to warn when it lies more than SearchRegion/2 pixels away.
func (e *Extractor) Extract(img *mat.CDense, p Period, h Index, opts Options) (*mat.CDense, error) {
	searchRegion, err := opts.searchRegion()
	if err != nil {
		return nil, err
	}

	rows, cols := img.Dims()

	e.out.Info(component).
		Str("harmonic", h.String()).
		Int("periodHorizontal", p.Horizontal).
		Int("periodVertical", p.Vertical).
		Msg("Extracting harmonic")

	p = e.resolveLogged(p, rows, cols)

	if err := e.validateRange(h, rows, cols, p); err != nil {
		return nil, err
	}

	spectrum := img
	if !opts.IsFFT {
		spectrum = fourier.SpectrumComplex(img)
	}

	return e.crop(spectrum, p, h, searchRegion)
}

// ExtractMany extracts several harmonics from one spectrum. It fails on the
// first harmonic that cannot be extracted and on duplicated indices.
func (e *Extractor) ExtractMany(spectrum *mat.CDense, p Period, searchRegion int, hs ...Index) ([]*mat.CDense, error) {
	seen := make(map[Index]bool, len(hs))
	for _, h := range hs {
		if seen[h] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHarmonic, h)
		}
		seen[h] = true
	}

	result := make([]*mat.CDense, len(hs))
	for i, h := range hs {
		sub, err := e.Extract(spectrum, p, h, Options{SearchRegion: searchRegion, IsFFT: true})
		if err != nil {
			return nil, fmt.Errorf("extracting harmonic %s: %w", h, err)
		}
		result[i] = sub
	}
	return result, nil
}

// crop cuts the harmonic window out of a centred spectrum. The period must
// be resolved and validated.
func (e *Extractor) crop(spectrum *mat.CDense, p Period, h Index, searchRegion int) (*mat.CDense, error) {
	rows, cols := spectrum.Dims()
	theory := PeakIndex(h, rows, cols, p)
	dRow, dCol := Deviation(spectrum, h, p, searchRegion)

	e.out.Info(component).
		Str("harmonic", h.String()).
		Int("deltaVertical", dRow).
		Int("deltaHorizontal", dCol).
		Int("peakRow", theory.Row).
		Int("peakCol", theory.Col).
		Msg("Harmonic peak deviation from theoretical index")

	if abs(dRow) > searchRegion/2 || abs(dCol) > searchRegion/2 {
		e.out.Warn(component).
			Str("harmonic", h.String()).
			Int("deltaVertical", dRow).
			Int("deltaHorizontal", dCol).
			Msg("Harmonic peak is too far from theoretical value")
	}

	r0, r1 := theory.Row-p.Vertical/2, theory.Row+p.Vertical/2
	c0, c1 := theory.Col-p.Horizontal/2, theory.Col+p.Horizontal/2
	if r0 < 0 || c0 < 0 || r1 > rows || c1 > cols || r1 <= r0 || c1 <= c0 {
		return nil, &RangeError{Index: h, Violations: outsideAxes(r0, r1, c0, c1, rows, cols)}
	}

	sub := mat.NewCDense(r1-r0, c1-c0, nil)
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			sub.Set(i-r0, j-c0, spectrum.At(i, j))
		}
	}
	return sub, nil
}

func outsideAxes(r0, r1, c0, c1, rows, cols int) []Axis {
	var axes []Axis
	if r0 < 0 || r1 > rows || r1 <= r0 {
		axes = append(axes, VerticalAxis)
	}
	if c0 < 0 || c1 > cols || c1 <= c0 {
		axes = append(axes, HorizontalAxis)
	}
	return axes
}

// ExperimentalPeriod estimates the harmonic period from the detected
// position of harmonic h: the nominal period plus the peak deviation.
func (e *Extractor) ExperimentalPeriod(img *mat.CDense, p Period, h Index, opts Options) (Period, error) {
	searchRegion, err := opts.searchRegion()
	if err != nil {
		return Period{}, err
	}

	rows, cols := img.Dims()
	p = e.resolveLogged(p, rows, cols)

	if err := e.validateRange(h, rows, cols, p); err != nil {
		return Period{}, err
	}

	spectrum := img
	if !opts.IsFFT {
		spectrum = fourier.SpectrumComplex(img)
	}

	dRow, dCol := Deviation(spectrum, h, p, searchRegion)
	e.out.Info(component).
		Int("deltaVertical", dRow).
		Int("deltaHorizontal", dCol).
		Msg("Error of experimental harmonics")

	return Period{Vertical: p.Vertical + dRow, Horizontal: p.Horizontal + dCol}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
