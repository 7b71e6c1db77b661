package grating

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/pkg/harmonic"
)

// ErrShapeMismatch is returned when sample and reference images differ in
// shape.
var ErrShapeMismatch = errors.New("sample and reference shapes differ")

// Result holds the maps derived from a sample and its reference.
type Result struct {
	Int00 *mat.Dense
	Int01 *mat.Dense
	Int10 *mat.Dense

	// DarkField01 and DarkField10 are the first harmonic intensities
	// relative to the zero harmonic intensity.
	DarkField01 *mat.Dense
	DarkField10 *mat.Dense

	// Arg01 and Arg10 are the differential phases, unwrapped if requested.
	Arg01 *mat.Dense
	Arg10 *mat.Dense
}

// Maps returns the result in the order int00, int01, int10, darkField01,
// darkField10, arg01, arg10.
func (r Result) Maps() []*mat.Dense {
	return []*mat.Dense{r.Int00, r.Int01, r.Int10, r.DarkField01, r.DarkField10, r.Arg01, r.Arg10}
}

// Analyze2D processes a single 2D grating image against an optional
// reference. A nil reference stands for an ideal one with amplitude 1 and
// phase 0 everywhere.
func (a *Analyzer) Analyze2D(img, ref *mat.Dense, p harmonic.Period) (Result, error) {
	if ref != nil && !sameShape(img, ref) {
		return Result{}, fmt.Errorf("%w: sample %s, reference %s", ErrShapeMismatch, shapeString(img), shapeString(ref))
	}

	h, err := a.HarmonicImages(img, p)
	if err != nil {
		return Result{}, fmt.Errorf("sample harmonics: %w", err)
	}

	var r HarmonicImages
	if ref != nil {
		r, err = a.HarmonicImages(ref, p)
		if err != nil {
			return Result{}, fmt.Errorf("reference harmonics: %w", err)
		}
	} else {
		rows, cols := h.H00.Dims()
		ones := mat.NewCDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				ones.Set(i, j, 1)
			}
		}
		r = HarmonicImages{H00: ones, H01: ones, H10: ones}
	}

	for _, pair := range [][2]*mat.CDense{{h.H00, r.H00}, {h.H01, r.H01}, {h.H10, r.H10}, {h.H01, h.H00}, {h.H10, h.H00}} {
		if !sameShape(pair[0], pair[1]) {
			return Result{}, fmt.Errorf("%w: harmonic images %s and %s", ErrShapeMismatch, shapeString(pair[0]), shapeString(pair[1]))
		}
	}

	var res Result
	res.Int00 = ratio(h.H00, r.H00)
	res.Int01 = ratio(h.H01, r.H01)
	res.Int10 = ratio(h.H10, r.H10)

	res.DarkField01 = divElem(res.Int01, res.Int00)
	res.DarkField10 = divElem(res.Int10, res.Int00)

	res.Arg01 = phaseDiff(h.H01, r.H01)
	res.Arg10 = phaseDiff(h.H10, r.H10)

	if a.params.Unwrap {
		if res.Arg01, err = a.params.Unwrapper(res.Arg01); err != nil {
			return Result{}, fmt.Errorf("unwrapping phase 01: %w", err)
		}
		if res.Arg10, err = a.params.Unwrapper(res.Arg10); err != nil {
			return Result{}, fmt.Errorf("unwrapping phase 10: %w", err)
		}
	}

	a.out.Info(component).
		Str("shape", shapeString(res.Int00)).
		Bool("reference", ref != nil).
		Bool("unwrapped", a.params.Unwrap).
		Msg("2D grating analysis done")

	return res, nil
}

// ratio returns |num| / |den| element-wise.
func ratio(num, den *mat.CDense) *mat.Dense {
	rows, cols := num.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, cmplx.Abs(num.At(i, j))/cmplx.Abs(den.At(i, j)))
		}
	}
	return out
}

func divElem(a, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.DivElem(a, b)
	return &out
}

// phaseDiff returns angle(a) - angle(b) element-wise.
func phaseDiff(a, b *mat.CDense) *mat.Dense {
	rows, cols := a.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, cmplx.Phase(a.At(i, j))-cmplx.Phase(b.At(i, j)))
		}
	}
	return out
}
