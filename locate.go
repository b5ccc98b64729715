package bezier

import "math"

// MaxLocateSubdivisions bounds the number of adaptive-subdivision rounds
// the point locator runs before giving up on isolating the query point to
// a small enough parameter interval (§4.2).
const MaxLocateSubdivisions = 20

// locateStdCap is the standard deviation, in parameter space, above which
// the surviving candidate intervals' midpoints are considered too spread
// out to average into a single answer — the query point apparently lies
// on the curve at more than one, well-separated parameter value.
const locateStdCap = 1.0 / (1 << 20)

// LocateCandidate is one surviving sub-interval of the adaptive
// subdivision search LocatePoint runs: [Start, End] is its position in
// the original curve's parameter domain, and Nodes is the curve
// specialized to that sub-interval.
type LocateCandidate struct {
	Start, End float64
	Nodes      Nodes
}

// locatePoint is the unvalidated core of LocatePoint. p must have
// nodes.D entries.
func locatePoint(nodes Nodes, p []float64) float64 {
	candidates := []LocateCandidate{{Start: 0, End: 1, Nodes: nodes}}

	for round := 0; round < MaxLocateSubdivisions; round++ {
		var next []LocateCandidate
		for _, c := range candidates {
			if !containsND(c.Nodes, p) {
				continue
			}
			mid := 0.5 * (c.Start + c.End)
			left, right := subdivideNodes(c.Nodes, 0.5)
			next = append(next,
				LocateCandidate{Start: c.Start, End: mid, Nodes: left},
				LocateCandidate{Start: mid, End: c.End, Nodes: right},
			)
		}
		logSubdivisionRound("LocatePoint", round, len(next))
		if len(next) == 0 {
			return -1
		}
		candidates = next
	}

	var survivors []LocateCandidate
	for _, c := range candidates {
		if containsND(c.Nodes, p) {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		return -1
	}
	candidates = survivors

	mean, stddev := locateStatistics(candidates)
	if len(candidates) > 1 && stddev > locateStdCap {
		return -2
	}

	return newtonRefineCurve(nodes, p, mean)
}

// LocatePoint searches for the parameter value s such that the curve
// nodes evaluated at s equals p, using adaptive subdivision to isolate
// candidate sub-intervals whose bounding box contains p, followed by one
// Newton refinement step from the survivors' mean (§4.2). p may have any
// number of coordinates matching nodes' own dimension — unlike the
// pairwise intersector, the locator is not restricted to the plane (§1
// Non-goals).
//
// It returns a parameter in [0, 1] on success. It returns -1 if no
// candidate interval's bounding box ever contained p — the point is not
// on the curve to within the search's numerical tolerance. It returns -2
// if the search isolated multiple, well-separated candidate intervals —
// the curve is self-intersecting or otherwise passes through p at more
// than one parameter value, so no single answer is well-defined.
func LocatePoint(nodes Nodes, p []float64) (float64, error) {
	if err := validateNodes("LocatePoint", nodes); err != nil {
		return 0, err
	}
	if len(p) != nodes.D {
		return 0, errorsDimensionMismatch("LocatePoint", nodes.D, len(p))
	}
	return locatePoint(nodes, p), nil
}

func locateStatistics(candidates []LocateCandidate) (mean, stddev float64) {
	n := float64(len(candidates))
	var sum float64
	for _, c := range candidates {
		sum += 0.5 * (c.Start + c.End)
	}
	mean = sum / n
	if len(candidates) == 1 {
		return mean, 0
	}
	var sumSq float64
	for _, c := range candidates {
		mid := 0.5 * (c.Start + c.End)
		d := mid - mean
		sumSq += d * d
	}
	stddev = math.Sqrt(sumSq / n)
	return mean, stddev
}
