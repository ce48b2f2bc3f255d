package bezier

import (
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

// MaxQuadratureOrder is the highest number of nodes supported by [Integrate].
const MaxQuadratureOrder = 24

const (
	// Quadrature orders used for arc lengths. The full length of a curve
	// gets the higher order; partial lengths are queried far more often by
	// the inverse arc length search.
	arclenOrder        = 8
	partialArclenOrder = 6
)

type gaussNode struct {
	x      float64
	weight float64
}

// Gauss-Legendre nodes and weights on [-1, 1], indexed by order and sorted by
// abscissa. Built once and never modified afterwards.
var gaussLegendreTables = func() [MaxQuadratureOrder + 1][]gaussNode {
	var tables [MaxQuadratureOrder + 1][]gaussNode
	for n := 1; n <= MaxQuadratureOrder; n++ {
		x := make([]float64, n)
		w := make([]float64, n)
		quad.Legendre{}.FixedLocations(x, w, -1, 1)
		nodes := make([]gaussNode, n)
		for i := range nodes {
			nodes[i] = gaussNode{x[i], w[i]}
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].x < nodes[j].x })
		tables[n] = nodes
	}
	return tables
}()

// Integrate approximates the integral of f over [a, b] using Gauss-Legendre
// quadrature with the given number of nodes.
//
// There is no error estimate and no adaptivity; the order is the caller's
// choice. Orders outside of [1, MaxQuadratureOrder] are clamped. f is evaluated
// exactly order times, at increasing abscissas. Integrating over an empty
// interval returns 0, and swapping the bounds flips the sign of the result.
func Integrate(f func(float64) float64, a, b float64, order int) float64 {
	if a == b {
		return 0
	}
	if a > b {
		return -Integrate(f, b, a, order)
	}
	order = min(max(order, 1), MaxQuadratureOrder)
	halfWidth := 0.5 * (b - a)
	mid := 0.5 * (a + b)
	var sum float64
	for _, node := range gaussLegendreTables[order] {
		sum += node.weight * f(mid+halfWidth*node.x)
	}
	return halfWidth * sum
}
