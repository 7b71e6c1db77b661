package grating

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/pkg/fourier"
	"gratinginterferometry/pkg/harmonic"
)

// Visibility estimates the fringe visibility from the ratio of the detected
// first harmonic peaks to the zero harmonic peak. The factor 2 accounts for
// the energy of a real image being split between the positive and negative
// harmonics. It returns the visibilities from the 10 and 01 harmonics.
//
// Higher harmonics are ignored, so this is not an absolute visibility.
func (a *Analyzer) Visibility(img *mat.Dense, p harmonic.Period) (vis10, vis01 float64) {
	spectrum := fourier.Spectrum(img)
	rows, cols := spectrum.Dims()
	p = p.Resolve(rows, cols)

	sr := a.params.VisibilitySearchRegion
	peak00 := harmonic.LocatePeak(spectrum, harmonic.Zero, p, sr)
	peak10 := harmonic.LocatePeak(spectrum, harmonic.FirstVert, p, sr)
	peak01 := harmonic.LocatePeak(spectrum, harmonic.FirstHoriz, p, sr)

	mag00 := cmplx.Abs(spectrum.At(peak00.Row, peak00.Col))
	mag10 := cmplx.Abs(spectrum.At(peak10.Row, peak10.Col))
	mag01 := cmplx.Abs(spectrum.At(peak01.Row, peak01.Col))

	vis10, vis01 = 2*mag10/mag00, 2*mag01/mag00

	a.out.Info(component).
		Float64("visibility10", vis10).
		Float64("visibility01", vis01).
		Msg("Visibility of first harmonics")

	return vis10, vis01
}
