package grating

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/pkg/fourier"
	"gratinginterferometry/pkg/harmonic"
)

// HarmonicImages holds the real-space images of the harmonics 00, 01 and 10.
// H01 and H10 keep their raw spectrum crop when the harmonic is degenerate
// (the crop contains non-finite values).
type HarmonicImages struct {
	H00 *mat.CDense
	H01 *mat.CDense
	H10 *mat.CDense
}

// HarmonicImages transforms img once and returns the real-space images of
// the harmonics 00, 01 and 10.
func (a *Analyzer) HarmonicImages(img *mat.Dense, p harmonic.Period) (HarmonicImages, error) {
	return a.HarmonicImagesFromSpectrum(fourier.Spectrum(img), p)
}

// HarmonicImagesFromSpectrum is HarmonicImages for an already centred
// spectrum.
func (a *Analyzer) HarmonicImagesFromSpectrum(spectrum *mat.CDense, p harmonic.Period) (HarmonicImages, error) {
	subs, err := a.extractor.ExtractMany(spectrum, p, a.params.SearchRegion,
		harmonic.Zero, harmonic.FirstHoriz, harmonic.FirstVert)
	if err != nil {
		return HarmonicImages{}, err
	}

	return HarmonicImages{
		H00: fourier.Inverse(subs[0]),
		H01: a.toRealSpace(subs[1], harmonic.FirstHoriz),
		H10: a.toRealSpace(subs[2], harmonic.FirstVert),
	}, nil
}

// toRealSpace inverse transforms a harmonic crop. A crop with non-finite
// values marks a harmonic that does not exist and is returned unchanged.
func (a *Analyzer) toRealSpace(sub *mat.CDense, h harmonic.Index) *mat.CDense {
	if !fourier.AllFinite(sub) {
		a.out.Info(component).
			Str("harmonic", h.String()).
			Msg("Harmonic has non-finite values, keeping spectrum crop")
		return sub
	}
	return fourier.Inverse(sub)
}

type shaped interface {
	Dims() (r, c int)
}

func sameShape(a, b shaped) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}

func shapeString(m shaped) string {
	r, c := m.Dims()
	return fmt.Sprintf("%dx%d", r, c)
}
