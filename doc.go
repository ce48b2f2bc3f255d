// Package bezier provides quadratic and cubic Bézier curves, interpolating
// splines built from them, and the numerical routines they rely on: arc
// length, its inverse, coordinate solving, closest points, subdivision, and
// degree reduction.
//
// # Values and curves
//
// [QuadBez] and [CubicBez] are immutable control polygons with pure methods.
// [QuadCurve] and [CubicCurve], both implementing [Curve], wrap a control
// polygon and lazily compute and cache its power basis coefficients and arc
// length. Mutating a curve invalidates its caches; they are recomputed on the
// next query. This makes it cheap to move several control points before
// querying the curve again.
//
// [Segment] is the plain data form of either kind of curve. It is what the
// curve utilities ([Subdivide], [ApproxQuadratics], [ClosestPoint], [Join])
// consume and produce, and it converts losslessly to and from curves.
//
// # Arc length
//
// Arc length is computed with fixed-order Gauss-Legendre quadrature (see
// [Integrate]). Curves measure their full length with 8 nodes and partial
// lengths with 6. The inverse, mapping a fraction of the length back to a
// parameter, uses the bracketing root finder [FindRoot], seeded with the
// previous answer. Sequences of nearby queries, such as those made when
// animating along a curve, thus converge quickly.
//
// # Splines
//
// A [Spline] interpolates a sequence of points with one cubic per pair of
// points. The control points come from a [TangentStrategy]:
// [CatmullRomTangents] for uniform Catmull-Rom splines and [BisectorTangents]
// for splines whose tangents bisect the angles between chords. Splines can be
// evaluated by their global parameter or by arc length.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - "Solving the Nearest-Point-On-Curve Problem" by Philip J. Schneider, Graphics Gems (1990)
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package bezier
