package bezier

import "math"

// singularEpsilon scales the machine-precision threshold below which the
// pairwise Newton step's 2x2 Jacobian is treated as singular. It is
// expressed relative to the Jacobian's own entries rather than as an
// absolute constant, since the hodograph magnitudes vary hugely across
// curves at different scales.
const singularEpsilon = 1e-12

// newtonRefineCurve is the unvalidated core of NewtonRefineCurve. p must
// have nodes.D entries.
func newtonRefineCurve(nodes Nodes, p []float64, s float64) float64 {
	cur := evaluate(nodes, s)
	tangent := evaluateHodograph(nodes, s)

	var dot, denom float64
	for j := 0; j < nodes.D; j++ {
		e := cur[j] - p[j]
		dot += tangent[j] * e
		denom += tangent[j] * tangent[j]
	}
	if denom == 0 {
		return s
	}
	return s - dot/denom
}

// NewtonRefineCurve performs one Newton iteration refining a parameter
// estimate s toward the closest point on nodes to the query point p, in
// nodes' own dimension (§4.2). It has no failure mode of its own beyond
// input validation — a degenerate hodograph at s simply leaves the
// estimate unmoved — and the caller (the point locator) is responsible
// for deciding when to stop iterating.
func NewtonRefineCurve(nodes Nodes, p []float64, s float64) (float64, error) {
	if err := validateNodes("NewtonRefineCurve", nodes); err != nil {
		return 0, err
	}
	if len(p) != nodes.D {
		return 0, errorsDimensionMismatch("NewtonRefineCurve", nodes.D, len(p))
	}
	if err := validateParameter("NewtonRefineCurve", s); err != nil {
		return 0, err
	}
	return newtonRefineCurve(nodes, p, s), nil
}

// newtonRefineCurveIntersect is the unvalidated core of
// NewtonRefineCurveIntersect. Both nodes1 and nodes2 must be planar
// (D=2).
func newtonRefineCurveIntersect(nodes1, nodes2 Nodes, s, t float64) (newS, newT float64, status Status) {
	p1 := evaluate(nodes1, s)
	p2 := evaluate(nodes2, t)
	f := Vec(p1[0]-p2[0], p1[1]-p2[1])

	d1 := evaluateHodograph(nodes1, s)
	d2 := evaluateHodograph(nodes2, t)
	col1 := Vec(d1[0], d1[1])
	col2 := Vec(-d2[0], -d2[1])

	det := col1.X*col2.Y - col1.Y*col2.X
	scale := math.Max(math.Abs(col1.X), math.Max(math.Abs(col1.Y), math.Max(math.Abs(col2.X), math.Abs(col2.Y))))
	if scale == 0 || math.Abs(det) <= singularEpsilon*scale*scale {
		return s, t, StatusSingular
	}

	// Solve [col1 col2] * [ds, dt]^T = -f.
	ds := (-f.X*col2.Y + f.Y*col2.X) / det
	dt := (col1.X*-f.Y - col1.Y*-f.X) / det

	return s + ds, t + dt, StatusSuccess
}

// NewtonRefineCurveIntersect performs one Newton iteration jointly
// refining a parameter pair (s, t) toward a common point on two planar
// curves, solving the 2x2 linear system J*[ds, dt] = -(B1(s)-B2(t)) where
// J's columns are B1's hodograph at s and the negated hodograph of B2 at
// t (§4.4). It reports
// StatusSingular if J's determinant is negligible relative to its own
// entries, in which case the returned parameters are unchanged.
func NewtonRefineCurveIntersect(nodes1, nodes2 Nodes, s, t float64) (newS, newT float64, status Status, err error) {
	if err := validateNodes("NewtonRefineCurveIntersect", nodes1); err != nil {
		return 0, 0, StatusSuccess, err
	}
	if err := validateNodes("NewtonRefineCurveIntersect", nodes2); err != nil {
		return 0, 0, StatusSuccess, err
	}
	if err := validateSameDimension("NewtonRefineCurveIntersect", nodes1, nodes2); err != nil {
		return 0, 0, StatusSuccess, err
	}
	if nodes1.D != 2 {
		return 0, 0, StatusSuccess, errorsPlanarOnly("NewtonRefineCurveIntersect", nodes1.D)
	}
	if err := validateParameter("NewtonRefineCurveIntersect", s); err != nil {
		return 0, 0, StatusSuccess, err
	}
	if err := validateParameter("NewtonRefineCurveIntersect", t); err != nil {
		return 0, 0, StatusSuccess, err
	}
	newS, newT, status = newtonRefineCurveIntersect(nodes1, nodes2, s, t)
	return newS, newT, status, nil
}

// RootMultiplicity classifies the convergence behavior of a Newton
// iteration by comparing three successive error magnitudes (§4.4, §7). A
// simple root converges quadratically, so the ratio of successive errors
// itself shrinks quadratically; a double root converges linearly with
// ratio near one half. Neither pattern is BadMultiplicity.
type RootMultiplicity int

const (
	// SimpleRoot is a root where the curves cross or meet transversally.
	SimpleRoot RootMultiplicity = iota
	// DoubleRoot is a tangential meeting, where the Jacobian is singular
	// or nearly so at the root itself even though Newton still converges
	// to it, slowly, from a well-conditioned starting estimate.
	DoubleRoot
	// UnknownMultiplicity means neither convergence pattern was observed;
	// the caller should report StatusBadMultiplicity.
	UnknownMultiplicity
)

// ClassifyConvergence inspects three successive Newton error magnitudes
// (oldest first) and classifies the root's multiplicity by the ratio of
// consecutive errors.
func ClassifyConvergence(errPrevPrev, errPrev, errCur float64) RootMultiplicity {
	if errPrevPrev == 0 || errPrev == 0 {
		return SimpleRoot
	}
	ratioPrev := errPrev / errPrevPrev
	ratioCur := errCur / errPrev

	const quadraticTol = 0.25
	const linearLow, linearHigh = 0.35, 0.65

	if ratioCur <= ratioPrev*quadraticTol {
		return SimpleRoot
	}
	if ratioPrev >= linearLow && ratioPrev <= linearHigh &&
		ratioCur >= linearLow && ratioCur <= linearHigh {
		return DoubleRoot
	}
	return UnknownMultiplicity
}
