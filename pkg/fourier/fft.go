// Package fourier provides the orthonormal 2D discrete Fourier transform and
// the frequency shift helpers used by the harmonic analysis.
//
// Images are stored as gonum matrices: real-space images as *mat.Dense and
// spectra (or complex real-space harmonic images) as *mat.CDense.
package fourier

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// FFT2 performs an orthonormal 2D Fast Fourier Transform of the input.
// The zero-frequency component is left at index (0, 0); use Shift to move it
// to the centre of the matrix.
func FFT2(data *mat.CDense) *mat.CDense {
	return transform2D(data, false)
}

// IFFT2 performs the orthonormal inverse 2D Fast Fourier Transform.
// The input is expected in the unshifted layout (see IShift).
func IFFT2(data *mat.CDense) *mat.CDense {
	return transform2D(data, true)
}

// Spectrum returns the shifted orthonormal spectrum of a real-space image,
// with the zero-frequency component at (rows/2, cols/2).
func Spectrum(img *mat.Dense) *mat.CDense {
	return Shift(FFT2(FromReal(img)))
}

// SpectrumComplex is Spectrum for complex-valued real-space input.
func SpectrumComplex(img *mat.CDense) *mat.CDense {
	return Shift(FFT2(img))
}

// Inverse undoes the shift of a centred spectrum and transforms it back to
// real space.
func Inverse(spectrum *mat.CDense) *mat.CDense {
	return IFFT2(IShift(spectrum))
}

// transform2D runs the row transforms followed by the column transforms.
// Both directions are scaled by 1/sqrt(rows*cols).
func transform2D(data *mat.CDense, inverse bool) *mat.CDense {
	rows, cols := data.Dims()
	result := mat.NewCDense(rows, cols, nil)

	rowFFT := fourier.NewCmplxFFT(cols)
	rowInput := make([]complex128, cols)
	rowOutput := make([]complex128, cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowInput[j] = data.At(i, j)
		}
		if inverse {
			rowFFT.Sequence(rowOutput, rowInput)
		} else {
			rowFFT.Coefficients(rowOutput, rowInput)
		}
		for j := 0; j < cols; j++ {
			result.Set(i, j, rowOutput[j])
		}
	}

	colFFT := fourier.NewCmplxFFT(rows)
	colInput := make([]complex128, rows)
	colOutput := make([]complex128, rows)
	scale := complex(1/math.Sqrt(float64(rows*cols)), 0)

	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			colInput[i] = result.At(i, j)
		}
		if inverse {
			colFFT.Sequence(colOutput, colInput)
		} else {
			colFFT.Coefficients(colOutput, colInput)
		}
		for i := 0; i < rows; i++ {
			result.Set(i, j, colOutput[i]*scale)
		}
	}

	return result
}

// Shift moves the zero-frequency component to (rows/2, cols/2).
func Shift(data *mat.CDense) *mat.CDense {
	rows, cols := data.Dims()
	return roll(data, rows/2, cols/2)
}

// IShift is the inverse of Shift. It differs from Shift only for odd sizes.
func IShift(data *mat.CDense) *mat.CDense {
	rows, cols := data.Dims()
	return roll(data, -(rows / 2), -(cols / 2))
}

// roll circularly shifts the matrix so that element (i, j) moves to
// (i+dr, j+dc) modulo the matrix size.
func roll(data *mat.CDense, dr, dc int) *mat.CDense {
	rows, cols := data.Dims()
	result := mat.NewCDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		ii := ((i+dr)%rows + rows) % rows
		for j := 0; j < cols; j++ {
			jj := ((j+dc)%cols + cols) % cols
			result.Set(ii, jj, data.At(i, j))
		}
	}
	return result
}

// FromReal converts a real matrix to a complex one with zero imaginary part.
func FromReal(img *mat.Dense) *mat.CDense {
	rows, cols := img.Dims()
	result := mat.NewCDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, complex(img.At(i, j), 0))
		}
	}
	return result
}

// Abs returns the element-wise magnitude.
func Abs(data *mat.CDense) *mat.Dense {
	return apply(data, cmplx.Abs)
}

// Phase returns the element-wise phase angle in (-pi, pi].
func Phase(data *mat.CDense) *mat.Dense {
	return apply(data, cmplx.Phase)
}

// Real returns the element-wise real part.
func Real(data *mat.CDense) *mat.Dense {
	return apply(data, func(c complex128) float64 { return real(c) })
}

func apply(data *mat.CDense, fn func(complex128) float64) *mat.Dense {
	rows, cols := data.Dims()
	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, fn(data.At(i, j)))
		}
	}
	return result
}

// AllFinite reports whether every element has finite real and imaginary parts.
func AllFinite(data *mat.CDense) bool {
	rows, cols := data.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if cmplx.IsNaN(data.At(i, j)) || cmplx.IsInf(data.At(i, j)) {
				return false
			}
		}
	}
	return true
}
