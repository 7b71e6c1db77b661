// Package unwrap implements 2D phase unwrapping.
//
// The default algorithm is the reliability sorting method of Herráez et al.
// (Applied Optics 41, 7437, 2002): pixels are joined along edges in order of
// decreasing reliability, where reliability is the inverse of the local
// second difference of the wrapped phase.
package unwrap

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite is returned when the wrapped phase contains NaN or Inf.
var ErrNonFinite = errors.New("wrapped phase contains non-finite values")

// Func takes a wrapped phase map and returns the unwrapped map of the same
// shape.
type Func func(wrapped *mat.Dense) (*mat.Dense, error)

// Wrap maps an angle into (-pi, pi].
func Wrap(x float64) float64 {
	w := math.Mod(x+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

type edge struct {
	a, b        int
	reliability float64
}

// Reliability unwraps the phase with the reliability sorting method.
func Reliability(wrapped *mat.Dense) (*mat.Dense, error) {
	rows, cols := wrapped.Dims()
	n := rows * cols

	phase := make([]float64, n)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := wrapped.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNonFinite
			}
			phase[i*cols+j] = v
		}
	}

	rel := reliabilities(phase, rows, cols)

	edges := make([]edge, 0, 2*n)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			if j+1 < cols {
				edges = append(edges, edge{a: k, b: k + 1, reliability: rel[k] + rel[k+1]})
			}
			if i+1 < rows {
				edges = append(edges, edge{a: k, b: k + cols, reliability: rel[k] + rel[k+cols]})
			}
		}
	}
	sort.SliceStable(edges, func(x, y int) bool {
		return edges[x].reliability > edges[y].reliability
	})

	// every pixel starts in its own group
	group := make([]int, n)
	members := make([][]int, n)
	for k := range group {
		group[k] = k
		members[k] = []int{k}
	}

	for _, e := range edges {
		ga, gb := group[e.a], group[e.b]
		if ga == gb {
			continue
		}

		// number of 2*pi steps that bring b next to a
		steps := math.Round((phase[e.a] - phase[e.b]) / (2 * math.Pi))

		// move the smaller group
		if len(members[ga]) < len(members[gb]) {
			ga, gb = gb, ga
			steps = -steps
		}
		offset := steps * 2 * math.Pi
		for _, k := range members[gb] {
			phase[k] += offset
			group[k] = ga
		}
		members[ga] = append(members[ga], members[gb]...)
		members[gb] = nil
	}

	return mat.NewDense(rows, cols, phase), nil
}

// reliabilities computes 1/D for interior pixels, with D the root sum of
// squares of the wrapped second differences along both axes and diagonals.
// Border pixels get zero reliability.
func reliabilities(phase []float64, rows, cols int) []float64 {
	rel := make([]float64, len(phase))
	at := func(i, j int) float64 { return phase[i*cols+j] }

	for i := 1; i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			c := at(i, j)
			h := Wrap(at(i, j-1)-c) - Wrap(c-at(i, j+1))
			v := Wrap(at(i-1, j)-c) - Wrap(c-at(i+1, j))
			d1 := Wrap(at(i-1, j-1)-c) - Wrap(c-at(i+1, j+1))
			d2 := Wrap(at(i-1, j+1)-c) - Wrap(c-at(i+1, j-1))
			d := math.Sqrt(h*h + v*v + d1*d1 + d2*d2)
			rel[i*cols+j] = 1 / (d + 1e-12)
		}
	}
	return rel
}
