package harmonic

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Peak is an integer (row, column) pixel position in the spectrum.
type Peak struct {
	Row int
	Col int
}

// PeakIndex returns the theoretical position of harmonic h in a centred
// spectrum of size rows x cols. Non-positive periods are resolved to the
// image extent first.
func PeakIndex(h Index, rows, cols int, p Period) Peak {
	p = p.Resolve(rows, cols)
	return Peak{
		Row: rows/2 + h.Vertical*p.Vertical,
		Col: cols/2 + h.Horizontal*p.Horizontal,
	}
}

// LocatePeak returns the position of the largest magnitude inside the
// window [c-searchRegion, c+searchRegion) around the theoretical peak c.
//
// Pixels outside the window count as zero and ties go to the first match in
// row-major order, so a window lying entirely outside the image yields (0,0).
func LocatePeak(spectrum *mat.CDense, h Index, p Period, searchRegion int) Peak {
	rows, cols := spectrum.Dims()
	p = p.Resolve(rows, cols)
	center := PeakIndex(h, rows, cols, p)

	rowLo, rowHi := center.Row-searchRegion, center.Row+searchRegion
	colLo, colHi := center.Col-searchRegion, center.Col+searchRegion

	best := Peak{}
	maxVal := -1.0
	for i := 0; i < rows; i++ {
		inRows := i >= rowLo && i < rowHi
		for j := 0; j < cols; j++ {
			val := 0.0
			if inRows && j >= colLo && j < colHi {
				val = cmplx.Abs(spectrum.At(i, j))
				if math.IsNaN(val) {
					val = 0
				}
			}
			if val > maxVal {
				best = Peak{Row: i, Col: j}
				maxVal = val
			}
		}
	}
	return best
}

// Deviation returns detected minus theoretical position of harmonic h.
func Deviation(spectrum *mat.CDense, h Index, p Period, searchRegion int) (dRow, dCol int) {
	rows, cols := spectrum.Dims()
	p = p.Resolve(rows, cols)
	theory := PeakIndex(h, rows, cols, p)
	found := LocatePeak(spectrum, h, p, searchRegion)
	return found.Row - theory.Row, found.Col - theory.Col
}
