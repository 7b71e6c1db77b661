package harmonic

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// GridPoint is one harmonic with its theoretical peak position.
type GridPoint struct {
	Index Index
	Peak  Peak
}

// Grid is the layout of harmonic sub-images over a centred spectrum.
// Indices may be negative here, since the layout covers both sides of DC.
type Grid struct {
	Points []GridPoint

	// RowLines and ColLines are the boundaries between neighbouring
	// harmonic sub-images.
	RowLines []int
	ColLines []int
}

// HarmonicGrid enumerates every harmonic that fits in a rows x cols spectrum
// for the given period, with the crop boundaries between them.
func HarmonicGrid(rows, cols int, p Period) Grid {
	p = p.Resolve(rows, cols)

	vMin, vMax := floorDiv(floorDiv(-(rows+1), 2), p.Vertical), (rows+1)/2/p.Vertical
	hMin, hMax := floorDiv(floorDiv(-(cols+1), 2), p.Horizontal), (cols+1)/2/p.Horizontal

	var g Grid
	for v := vMin + 1; v <= vMax+1; v++ {
		line := PeakIndex(Index{Vertical: v}, rows, cols, p).Row - p.Vertical/2
		g.RowLines = append(g.RowLines, line)
	}
	for hh := hMin + 1; hh <= hMax+1; hh++ {
		line := PeakIndex(Index{Horizontal: hh}, rows, cols, p).Col - p.Horizontal/2
		g.ColLines = append(g.ColLines, line)
	}
	for v := vMin; v <= vMax; v++ {
		for hh := hMin; hh <= hMax; hh++ {
			idx := Index{Vertical: v, Horizontal: hh}
			g.Points = append(g.Points, GridPoint{Index: idx, Peak: PeakIndex(idx, rows, cols, p)})
		}
	}
	return g
}

// floorDiv rounds the quotient towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Profiles holds magnitude profiles through the first harmonics.
type Profiles struct {
	// Vertical01 are column profiles through the 01 peak, one per offset.
	Vertical01 [][]float64

	// Horizontal10 are row profiles through the 10 peak, one per offset.
	Horizontal10 [][]float64

	Offsets []int
}

// PeakProfiles samples the spectrum magnitude along lines through the 01
// and 10 theoretical peaks. For each offset in [-width/2, width/2) one
// profile of length 2*halfLength is taken, clipped to the image.
func PeakProfiles(spectrum *mat.CDense, p Period, width, halfLength int) Profiles {
	rows, cols := spectrum.Dims()
	p = p.Resolve(rows, cols)

	peak01 := PeakIndex(FirstHoriz, rows, cols, p)
	peak10 := PeakIndex(FirstVert, rows, cols, p)

	var prof Profiles
	for off := -width / 2; off < width-width/2; off++ {
		prof.Offsets = append(prof.Offsets, off)

		var column []float64
		if j := peak01.Col - off; j >= 0 && j < cols {
			for i := max(0, peak01.Row-halfLength); i < min(rows, peak01.Row+halfLength); i++ {
				column = append(column, cmplx.Abs(spectrum.At(i, j)))
			}
		}
		prof.Vertical01 = append(prof.Vertical01, column)

		var row []float64
		if i := peak10.Row - off; i >= 0 && i < rows {
			for j := max(0, peak10.Col-halfLength); j < min(cols, peak10.Col+halfLength); j++ {
				row = append(row, cmplx.Abs(spectrum.At(i, j)))
			}
		}
		prof.Horizontal10 = append(prof.Horizontal10, row)
	}
	return prof
}
