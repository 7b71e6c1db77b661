package harmonic

import (
	"bytes"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"gratinginterferometry/internal/logger"
	"gratinginterferometry/pkg/fourier"
)

// newTestExtractor returns an extractor logging JSON into buf
func newTestExtractor(buf *bytes.Buffer, verbose bool) *Extractor {
	return NewExtractor(logger.New(buf, zerolog.DebugLevel), verbose)
}

// createGrating builds offset + amp*cos(2*pi*fx*j/cols) + amp*cos(2*pi*fy*i/rows),
// i.e. a grating whose first harmonics sit fy rows and fx columns away from DC
func createGrating(rows, cols, fy, fx int, offset, amp float64) *mat.Dense {
	img := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := offset
			if fx > 0 {
				v += amp * math.Cos(2*math.Pi*float64(fx*j)/float64(cols))
			}
			if fy > 0 {
				v += amp * math.Cos(2*math.Pi*float64(fy*i)/float64(rows))
			}
			img.Set(i, j, v)
		}
	}
	return img
}

// uniformSpectrum returns a rows x cols spectrum of ones
func uniformSpectrum(rows, cols int) *mat.CDense {
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = 1
	}
	return mat.NewCDense(rows, cols, data)
}

func spectrumOf(img *mat.Dense) *mat.CDense {
	return fourier.Spectrum(img)
}

func countOccurrences(t *testing.T, buf *bytes.Buffer, substr string) int {
	t.Helper()
	return strings.Count(buf.String(), substr)
}

// cEqualWithin compares two complex matrices element-wise
func cEqualWithin(a, b *mat.CDense, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}
