// Package bezier implements the numerical core of a planar Bézier-curve
// geometry library: evaluation, subdivision, specialization and degree
// elevation of arbitrary-degree control polygons (see nodes.go,
// subdivide.go, specialize.go, elevate.go), location of a query point on a
// single curve (locate.go), axis-aligned bounding-box classification
// (bbox.go), and pairwise curve intersection (intersect.go) driven by
// adaptive subdivision with a Newton-refinement finishing step (newton.go).
//
// # Origins
//
// The subdivision and specialization closed forms began as a manual,
// idiomatic Go port of the [kurbo] Rust crate's fixed-degree CubicBez and
// QuadBez curve types, generalized here to control polygons of arbitrary
// degree — the curves this package intersects are not limited to lines,
// quadratics and cubics. The low-degree closed-form intersection fast path
// (implicitize.go) follows the resultant-based implicitization technique of
// Farouki and Rajan.
//
// # Scope
//
// There is no rational/NURBS curve support, no rendering, no symbolic
// manipulation and no curve fitting. Curves live in the plane for
// intersection purposes; evaluation and the hodograph are defined for
// control polygons in any number of dimensions.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Algorithm 1010: Boosting Efficiency in Solving Quartic Equations with No Compromise in Accuracy] by Orellana and De Michele
//   - Farouki and Rajan, "Algorithms for polynomials in Bernstein form"
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Algorithm 1010: Boosting Efficiency in Solving Quartic Equations with No Compromise in Accuracy]: https://cristiano-de-michele.netlify.app/publication/orellana-2020/orellana-2020.pdf
// [kurbo]: https://github.com/linebender/kurbo
package bezier
