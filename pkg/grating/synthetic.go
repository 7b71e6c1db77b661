package grating

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/pkg/harmonic"
)

// Fringes describes an ideal grating pattern
//
//	Offset + Amplitude*cos(2*pi*x/PeriodX + PhaseX) + Amplitude*cos(2*pi*y/PeriodY + PhaseY)
//
// with periods in real-space pixels. A non-positive period disables the
// fringes along that axis.
type Fringes struct {
	Rows, Cols       int
	PeriodX, PeriodY float64
	Offset           float64
	Amplitude        float64
	PhaseX, PhaseY   float64
}

// Image renders the pattern.
func (f Fringes) Image() *mat.Dense {
	img := mat.NewDense(f.Rows, f.Cols, nil)
	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			v := f.Offset
			if f.PeriodX > 0 {
				v += f.Amplitude * math.Cos(2*math.Pi*float64(j)/f.PeriodX+f.PhaseX)
			}
			if f.PeriodY > 0 {
				v += f.Amplitude * math.Cos(2*math.Pi*float64(i)/f.PeriodY+f.PhaseY)
			}
			img.Set(i, j, v)
		}
	}
	return img
}

// HarmonicPeriod returns the spacing of the harmonics in the spectrum of
// the rendered image, rounded to whole pixels. Axes without fringes get 0.
func (f Fringes) HarmonicPeriod() harmonic.Period {
	var p harmonic.Period
	if f.PeriodY > 0 {
		p.Vertical = int(math.Round(float64(f.Rows) / f.PeriodY))
	}
	if f.PeriodX > 0 {
		p.Horizontal = int(math.Round(float64(f.Cols) / f.PeriodX))
	}
	return p
}
