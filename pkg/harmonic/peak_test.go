package harmonic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestPeakIndex checks the integer formula over a range of inputs
func TestPeakIndex(t *testing.T) {
	for _, rows := range []int{7, 64, 255, 512} {
		for _, cols := range []int{8, 33, 256} {
			for _, p := range []Period{{1, 1}, {8, 16}, {31, 5}} {
				for v := 0; v < 3; v++ {
					for h := 0; h < 3; h++ {
						got := PeakIndex(Index{v, h}, rows, cols, p)
						want := Peak{Row: rows/2 + v*p.Vertical, Col: cols/2 + h*p.Horizontal}
						if got != want {
							t.Fatalf("PeakIndex(%d%d, %dx%d, %v) = %v, want %v", v, h, rows, cols, p, got, want)
						}
					}
				}
			}
		}
	}
}

// TestLocatePeakFindsHarmonic detects the first harmonic of a grating
func TestLocatePeakFindsHarmonic(t *testing.T) {
	spec := spectrumOf(createGrating(64, 64, 8, 8, 10, 2))
	p := Period{8, 8}

	cases := map[Index]Peak{
		Zero:       {32, 32},
		FirstHoriz: {32, 40},
		FirstVert:  {40, 32},
	}
	for h, want := range cases {
		if got := LocatePeak(spec, h, p, 4); got != want {
			t.Errorf("LocatePeak(%s) = %v, want %v", h, got, want)
		}
	}
}

// TestLocatePeakTieBreaking returns the first row-major pixel of the window
func TestLocatePeakTieBreaking(t *testing.T) {
	spec := uniformSpectrum(32, 32)

	got := LocatePeak(spec, Zero, Period{8, 8}, 3)
	want := Peak{Row: 16 - 3, Col: 16 - 3}
	if got != want {
		t.Errorf("Expected first window pixel %v, got %v", want, got)
	}
}

// TestLocatePeakWindowIsHalfOpen ignores the pixel at centre+searchRegion
func TestLocatePeakWindowIsHalfOpen(t *testing.T) {
	spec := mat.NewCDense(32, 32, nil)
	spec.Set(16+3, 16, 100)
	spec.Set(16-3, 16+1, 1)

	got := LocatePeak(spec, Zero, Period{8, 8}, 3)
	if got != (Peak{13, 17}) {
		t.Errorf("Expected (13,17), got %v", got)
	}
}

// TestLocatePeakOutsideImage falls back to (0,0) when the window misses the image
func TestLocatePeakOutsideImage(t *testing.T) {
	spec := uniformSpectrum(16, 16)

	got := LocatePeak(spec, FirstVert, Period{16, 16}, 4)
	if got != (Peak{0, 0}) {
		t.Errorf("Expected (0,0), got %v", got)
	}
}

// TestLocatePeakIgnoresNaN never selects a NaN pixel
func TestLocatePeakIgnoresNaN(t *testing.T) {
	spec := mat.NewCDense(16, 16, nil)
	spec.Set(8, 8, complex(math.NaN(), 0))
	spec.Set(9, 9, 2)

	if got := LocatePeak(spec, Zero, Period{4, 4}, 2); got != (Peak{9, 9}) {
		t.Errorf("Expected (9,9), got %v", got)
	}
}

// TestDeviation measures the offset of a misplaced harmonic
func TestDeviation(t *testing.T) {
	// first harmonic 14 pixels from DC, nominal period 8
	spec := spectrumOf(createGrating(64, 64, 0, 14, 0, 1))

	dRow, dCol := Deviation(spec, FirstHoriz, Period{8, 8}, 10)
	if dRow != 0 || dCol != 6 {
		t.Errorf("Expected deviation (0,6), got (%d,%d)", dRow, dCol)
	}
}

// TestPeakOperationsDefaultedPeriod treats non-positive periods as the image extent
func TestPeakOperationsDefaultedPeriod(t *testing.T) {
	spec := spectrumOf(createGrating(64, 64, 0, 8, 3, 1))
	defaulted, explicit := Period{0, 8}, Period{64, 8}

	if PeakIndex(FirstVert, 64, 64, defaulted) != PeakIndex(FirstVert, 64, 64, explicit) {
		t.Errorf("PeakIndex disagrees for defaulted and explicit periods")
	}

	for _, h := range []Index{Zero, FirstHoriz, FirstVert} {
		got, want := LocatePeak(spec, h, defaulted, 10), LocatePeak(spec, h, explicit, 10)
		if got != want {
			t.Errorf("LocatePeak(%s) = %v with defaulted period, %v with explicit", h, got, want)
		}

		gr, gc := Deviation(spec, h, defaulted, 10)
		wr, wc := Deviation(spec, h, explicit, 10)
		if gr != wr || gc != wc {
			t.Errorf("Deviation(%s) = (%d,%d) with defaulted period, (%d,%d) with explicit", h, gr, gc, wr, wc)
		}
	}

	// harmonic 10 of a 1D grating lands a full image height below DC
	if p := LocatePeak(spec, FirstVert, defaulted, 10); p != (Peak{}) {
		t.Errorf("Expected (0,0) for a window outside the image, got %v", p)
	}
}
