package bezier

import (
	"math"
	"sort"
)

// MaxIntersectSubdivisions bounds the number of adaptive-subdivision
// rounds the pairwise intersector runs on a curve pair that neither the
// linear/linear direct solve nor the implicitization fast path can
// handle (§4.4).
const MaxIntersectSubdivisions = 20

// flatnessTolerance is the maximum perpendicular distance an interior
// control point may have from its curve's own chord before a candidate
// sub-curve is considered flat enough to treat as a line segment for the
// direct linear solve that ends a round of subdivision.
const flatnessTolerance = 1e-7

// dedupTolerance is the parameter-space distance below which two located
// intersections are treated as the same crossing, collapsing duplicates
// the subdivision search can produce near a curve's own tangency points.
const dedupTolerance = 1e-6

// CoincidentOverlap describes a pair of curves whose traced images match,
// possibly after reversing one curve's parameterization (§4.4). It has no
// meaningful parameter pair the way a transversal crossing does, since
// every point on the shared image corresponds to a continuum of (s, t).
type CoincidentOverlap struct {
	Reversed bool
}

// coincidentPairs is the fixed two-pair answer CurveIntersections reports
// for a coincident curve pair: the shared image's start and end, in
// nodes1's own parameterization. When the curves trace the image in
// opposite directions, the second curve's parameter runs from 1 down to
// 0 instead (§3, §4.4, §8).
func coincidentPairs(reversed bool) []IntersectionPair {
	if reversed {
		return []IntersectionPair{{S: 0, T: 1}, {S: 1, T: 0}}
	}
	return []IntersectionPair{{S: 0, T: 0}, {S: 1, T: 1}}
}

// CurveIntersections computes every parameter pair (s, t) at which the
// planar curves nodes1 and nodes2 cross or touch (§4.4), using the
// package-level default engine.
func CurveIntersections(nodes1, nodes2 Nodes) (pairs []IntersectionPair, coincident bool, status Status, err error) {
	defaultEngine.mu.Lock()
	defer defaultEngine.mu.Unlock()
	return defaultEngine.CurveIntersections(nodes1, nodes2)
}

// CurveIntersections computes every parameter pair (s, t) at which the
// planar curves nodes1 and nodes2 cross or touch, reusing e's candidate
// workspace across the adaptive-subdivision rounds a general curve pair
// requires (§4.4, §5).
//
// coincident is true exactly when nodes1 and nodes2 trace the identical
// image; in that case pairs is always the two-element
// [(0,0),(1,1)]-shaped answer describing the shared arc's endpoints
// (reversed in nodes2's parameter if the curves run in opposite
// directions), never an empty or partial list.
func (e *Engine) CurveIntersections(nodes1, nodes2 Nodes) (pairs []IntersectionPair, coincident bool, status Status, err error) {
	if err := validateNodes("CurveIntersections", nodes1); err != nil {
		return nil, false, StatusSuccess, err
	}
	if err := validateNodes("CurveIntersections", nodes2); err != nil {
		return nil, false, StatusSuccess, err
	}
	if err := validateSameDimension("CurveIntersections", nodes1, nodes2); err != nil {
		return nil, false, StatusSuccess, err
	}
	if nodes1.D != 2 {
		return nil, false, StatusSuccess, errorsPlanarOnly("CurveIntersections", nodes1.D)
	}

	if overlap, isCoincident := detectCoincidence(nodes1, nodes2); isCoincident {
		return coincidentPairs(overlap.Reversed), true, StatusSuccess, nil
	}

	deg1 := nodes1.Degree()
	deg2 := nodes2.Degree()

	if deg1 == 1 && deg2 == 1 {
		linePairs, lineStatus := lineLineIntersect(nodes1, nodes2)
		return linePairs, false, lineStatus, nil
	}

	if deg1*deg2 <= implicitizeMaxDegreeProduct {
		if implicitPairs, ok := ImplicitIntersect(nodes1, nodes2); ok {
			return dedupPairs(implicitPairs), false, StatusSuccess, nil
		}
	}

	subPairs, subStatus, subErr := e.subdivisionIntersect(nodes1, nodes2)
	return subPairs, false, subStatus, subErr
}

// CurveIntersectionsInto computes intersections into a caller-supplied
// buffer, matching the external interface's bounded-output contract for
// BEZ_curve_intersections (§4.4, §6): S is len(out). If the actual
// intersection count exceeds S, it reports StatusInsufficientSpace and
// returns the required count as numIntersections with out left
// unmodified — the caller is expected to grow out to at least that size
// and retry, the single-retry pattern §7 describes for capacity failures.
// On any other non-success status, numIntersections is 0 and out is left
// unmodified, per §7's "outputs are unspecified on non-success".
func CurveIntersectionsInto(nodes1, nodes2 Nodes, out []IntersectionPair) (numIntersections int, coincident bool, status Status, err error) {
	defaultEngine.mu.Lock()
	defer defaultEngine.mu.Unlock()
	return defaultEngine.CurveIntersectionsInto(nodes1, nodes2, out)
}

// CurveIntersectionsInto is the Engine-scoped form of the package-level
// CurveIntersectionsInto, reusing e's candidate workspace.
func (e *Engine) CurveIntersectionsInto(nodes1, nodes2 Nodes, out []IntersectionPair) (numIntersections int, coincident bool, status Status, err error) {
	pairs, coincident, status, err := e.CurveIntersections(nodes1, nodes2)
	if err != nil || status != StatusSuccess {
		return 0, coincident, status, err
	}
	if len(pairs) > len(out) {
		return len(pairs), coincident, StatusInsufficientSpace, nil
	}
	return copy(out, pairs), coincident, StatusSuccess, nil
}

// lineLineIntersect solves the 2x2 linear system directly for two degree
// 1 curves, the same closed-form line/line solve every subdivision round
// falls back on once its candidates flatten to line segments.
func lineLineIntersect(nodes1, nodes2 Nodes) ([]IntersectionPair, Status) {
	p0, p1 := nodes1.Point(0), nodes1.Point(1)
	q0, q1 := nodes2.Point(0), nodes2.Point(1)
	s, t, ok := solveLineLine(p0, p1, q0, q1)
	if !ok {
		return nil, StatusSuccess
	}
	if s < -1e-9 || s > 1+1e-9 || t < -1e-9 || t > 1+1e-9 {
		return nil, StatusSuccess
	}
	return []IntersectionPair{{S: clampUnit(s), T: clampUnit(t)}}, StatusSuccess
}

// solveLineLine solves p0 + s*(p1-p0) = q0 + t*(q1-q0) for (s, t).
func solveLineLine(p0, p1, q0, q1 Point) (s, t float64, ok bool) {
	const epsilon = 1e-9
	d1 := p1.Sub(p0)
	d2 := q1.Sub(q0)
	rhs := q0.Sub(p0)

	det := -d1.X*d2.Y + d2.X*d1.Y
	if math.Abs(det) < epsilon {
		return 0, 0, false
	}
	s = (-rhs.X*d2.Y + d2.X*rhs.Y) / det
	t = (d1.X*rhs.Y - d1.Y*rhs.X) / det
	return s, t, true
}

// subdivisionIntersect handles the general curve pair via adaptive
// subdivision: each round discards candidate interval pairs whose
// bounding boxes don't overlap, resolves pairs flat enough to treat as
// line segments, and otherwise quarters the remaining pairs for the next
// round (§4.4). It reports StatusNoConverge if MaxIntersectSubdivisions
// rounds pass without every candidate resolving, and reports the survivor
// count in place of a named Status as soon as a round leaves
// candidateCountStatus (64) or more candidate pairs.
func (e *Engine) subdivisionIntersect(nodes1, nodes2 Nodes) ([]IntersectionPair, Status, error) {
	e.reset(defaultMaxCandidates)
	e.front = append(e.front, IntersectionCandidate{S1: 0, E1: 1, S2: 0, E2: 1})

	var found []IntersectionPair
	candidateStatus := StatusSuccess

	for round := 0; round < MaxIntersectSubdivisions; round++ {
		if len(e.front) == 0 {
			break
		}
		e.back = e.back[:0]

		for _, cand := range e.front {
			sub1 := specializeCurve(nodes1, cand.S1, cand.E1)
			sub2 := specializeCurve(nodes2, cand.S2, cand.E2)

			if BBoxIntersect(sub1, sub2) == Disjoint {
				continue
			}

			if flatEnough(sub1) && flatEnough(sub2) {
				if pair, status, ok := resolveFlatCandidate(nodes1, nodes2, cand, sub1, sub2); ok {
					found = append(found, pair)
					if status != StatusSuccess && candidateStatus == StatusSuccess {
						candidateStatus = status
					}
				}
				continue
			}

			l1, r1 := subdivideNodes(sub1, 0.5)
			l2, r2 := subdivideNodes(sub2, 0.5)
			mid1 := 0.5 * (cand.S1 + cand.E1)
			mid2 := 0.5 * (cand.S2 + cand.E2)

			quarters := [4]struct {
				a, b Nodes
				iv   IntersectionCandidate
			}{
				{l1, l2, IntersectionCandidate{cand.S1, mid1, cand.S2, mid2}},
				{l1, r2, IntersectionCandidate{cand.S1, mid1, mid2, cand.E2}},
				{r1, l2, IntersectionCandidate{mid1, cand.E1, cand.S2, mid2}},
				{r1, r2, IntersectionCandidate{mid1, cand.E1, mid2, cand.E2}},
			}
			for _, q := range quarters {
				if BBoxIntersect(q.a, q.b) != Disjoint {
					e.back = append(e.back, q.iv)
				}
			}
		}

		if len(e.back) > e.capacity {
			logWorkspaceGrowth("CurveIntersections", e.capacity, len(e.back)*2)
			e.capacity = len(e.back) * 2
		}
		logSubdivisionRound("CurveIntersections", round, len(e.back))

		if len(e.back) >= candidateCountStatus {
			return dedupPairs(found), Status(min(len(e.back), 1<<20)), nil
		}

		e.swap()
	}

	if len(e.front) > 0 {
		return dedupPairs(found), StatusNoConverge, nil
	}
	return dedupPairs(found), candidateStatus, nil
}

// flatEnough reports whether nodes' control polygon lies close enough to
// its own chord (the segment from its first to its last control point)
// that treating the curve as that chord is a safe approximation for the
// direct linear solve.
func flatEnough(nodes Nodes) bool {
	if nodes.N <= 2 {
		return true
	}
	p0 := nodes.Point(0)
	pn := nodes.Point(nodes.N - 1)
	chord := pn.Sub(p0)
	length := chord.Hypot()
	if length == 0 {
		return true
	}
	for i := 1; i < nodes.N-1; i++ {
		v := nodes.Point(i).Sub(p0)
		dist := math.Abs(chord.Cross(v)) / length
		if dist > flatnessTolerance {
			return false
		}
	}
	return true
}

// maxNewtonRefineIterations bounds the pairwise Newton iteration
// resolveFlatCandidate runs past the chord/chord starting guess before
// giving up on classifying the root's multiplicity (§4.5).
const maxNewtonRefineIterations = 8

// newtonConvergedTolerance is the pairwise error magnitude below which a
// candidate is considered converged, ending refinement early regardless
// of what convergence pattern the error history would otherwise show.
const newtonConvergedTolerance = 1e-10

// pairwiseError is the Euclidean distance between the two curves'
// planar images at (s, t), the quantity resolveFlatCandidate's Newton
// loop drives toward zero and whose successive magnitudes
// ClassifyConvergence inspects.
func pairwiseError(nodes1, nodes2 Nodes, s, t float64) float64 {
	p1 := evaluate(nodes1, s)
	p2 := evaluate(nodes2, t)
	dx := p1[0] - p2[0]
	dy := p1[1] - p2[1]
	return math.Hypot(dx, dy)
}

// resolveFlatCandidate solves the chord/chord intersection for a
// candidate whose sub-curves have both flattened, maps the local solution
// back into the original curves' global parameter domain, then iterates
// pairwise Newton refinement from that starting guess, classifying the
// observed convergence rate by successive error magnitudes
// (ClassifyConvergence, §4.5). A double root's characteristic linear
// convergence at ratio ~1/2 gets one extrapolated acceleration step —
// since the remaining error at that rate is roughly the size of the last
// step itself, doubling the step reaches the root a full iteration
// sooner. If neither a simple nor a double root's pattern is observed
// before the iteration budget runs out, it reports StatusBadMultiplicity
// rather than silently returning an unconverged estimate.
func resolveFlatCandidate(nodes1, nodes2 Nodes, cand IntersectionCandidate, sub1, sub2 Nodes) (IntersectionPair, Status, bool) {
	p0, p1 := sub1.Point(0), sub1.Point(sub1.N-1)
	q0, q1 := sub2.Point(0), sub2.Point(sub2.N-1)
	u, v, ok := solveLineLine(p0, p1, q0, q1)
	if !ok || u < -1e-6 || u > 1+1e-6 || v < -1e-6 || v > 1+1e-6 {
		return IntersectionPair{}, StatusSuccess, false
	}

	s := cand.S1 + clampUnit(u)*(cand.E1-cand.S1)
	t := cand.S2 + clampUnit(v)*(cand.E2-cand.S2)

	var errs [3]float64
	errs[2] = pairwiseError(nodes1, nodes2, s, t)

	for iter := 0; iter < maxNewtonRefineIterations; iter++ {
		if errs[2] <= newtonConvergedTolerance {
			return IntersectionPair{S: s, T: t}, StatusSuccess, true
		}

		newS, newT, status := newtonRefineCurveIntersect(nodes1, nodes2, s, t)
		if status != StatusSuccess {
			return IntersectionPair{S: s, T: t}, status, true
		}
		s, t = clampUnit(newS), clampUnit(newT)
		errs[0], errs[1], errs[2] = errs[1], errs[2], pairwiseError(nodes1, nodes2, s, t)

		if iter == 0 {
			continue
		}
		if ClassifyConvergence(errs[0], errs[1], errs[2]) != DoubleRoot {
			continue
		}
		if accS, accT, status := newtonRefineCurveIntersect(nodes1, nodes2, s, t); status == StatusSuccess {
			s = clampUnit(s + 2*(accS-s))
			t = clampUnit(t + 2*(accT-t))
			errs[2] = pairwiseError(nodes1, nodes2, s, t)
		}
		if errs[2] <= newtonConvergedTolerance {
			return IntersectionPair{S: s, T: t}, StatusSuccess, true
		}
	}

	if ClassifyConvergence(errs[0], errs[1], errs[2]) == UnknownMultiplicity {
		return IntersectionPair{S: s, T: t}, StatusBadMultiplicity, true
	}
	return IntersectionPair{S: s, T: t}, StatusSuccess, true
}

// dedupPairs merges intersection pairs that agree to within
// dedupTolerance in both parameters, a cleanup step against the
// duplicate near-tangency hits adaptive subdivision can produce when a
// crossing sits close to a candidate's subdivision boundary.
func dedupPairs(pairs []IntersectionPair) []IntersectionPair {
	if len(pairs) < 2 {
		return pairs
	}
	sorted := append([]IntersectionPair(nil), pairs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].S != sorted[j].S {
			return sorted[i].S < sorted[j].S
		}
		return sorted[i].T < sorted[j].T
	})

	out := sorted[:1]
	for _, p := range sorted[1:] {
		last := out[len(out)-1]
		if math.Abs(p.S-last.S) < dedupTolerance && math.Abs(p.T-last.T) < dedupTolerance {
			continue
		}
		out = append(out, p)
	}
	return out
}

// detectCoincidence is the unvalidated core of DetectCoincidence.
func detectCoincidence(nodes1, nodes2 Nodes) (CoincidentOverlap, bool) {
	if nodes1.D != nodes2.D {
		return CoincidentOverlap{}, false
	}
	a, b := nodes1, nodes2
	for a.N < b.N {
		a = elevateNodes(a)
	}
	for b.N < a.N {
		b = elevateNodes(b)
	}
	if a.N != b.N {
		return CoincidentOverlap{}, false
	}
	if nodesApproxEqual(a, b) {
		return CoincidentOverlap{Reversed: false}, true
	}
	if nodesApproxEqual(a, reverseNodes(b)) {
		return CoincidentOverlap{Reversed: true}, true
	}
	return CoincidentOverlap{}, false
}

// DetectCoincidence reports whether nodes1 and nodes2 trace the identical
// image, in either parameter direction, by elevating both to a common
// degree and comparing control points directly (§4.4). This detects
// whole-curve coincidence; a curve that overlaps only part of another's
// image is left to the ordinary subdivision path, which will simply
// produce a dense run of nearby candidates rather than a clean detection.
func DetectCoincidence(nodes1, nodes2 Nodes) (CoincidentOverlap, bool, error) {
	if err := validateNodes("DetectCoincidence", nodes1); err != nil {
		return CoincidentOverlap{}, false, err
	}
	if err := validateNodes("DetectCoincidence", nodes2); err != nil {
		return CoincidentOverlap{}, false, err
	}
	overlap, coincident := detectCoincidence(nodes1, nodes2)
	return overlap, coincident, nil
}

func nodesApproxEqual(a, b Nodes) bool {
	if a.N != b.N || a.D != b.D {
		return false
	}
	for i := range a.Data {
		if !nearlyEqual(a.Data[i], b.Data[i]) {
			return false
		}
	}
	return true
}

func reverseNodes(nodes Nodes) Nodes {
	out := nodes.zeros(nodes.N)
	for i := 0; i < nodes.N; i++ {
		for j := 0; j < nodes.D; j++ {
			out.Set(i, j, nodes.At(nodes.N-1-i, j))
		}
	}
	return out
}
