package bezier

// Status reports the outcome of a numerical procedure — pairwise Newton
// refinement or the pairwise intersector — that can fail for reasons that
// are not caller error: non-convergence, a singular Jacobian, or an output
// buffer too small for the intersections found (§7). The point locator
// reports its failures through in-band sentinel values instead.
//
// Status is distinct from the error values validation functions return:
// an error means the caller passed nonsense (wrong dimension, empty
// control polygon); a Status means the inputs were well-formed but the
// numerics did not converge to a usable answer.
type Status int

const (
	// StatusSuccess means the procedure converged to a valid answer.
	StatusSuccess Status = iota
	// StatusInsufficientSpace means the caller supplied an output buffer
	// (CurveIntersectionsInto's out) smaller than the number of
	// intersection pairs actually found. The required count is reported
	// back through numIntersections so the caller can resize and retry
	// (§4.4, §6). This is unrelated to the intersector's internal
	// candidate workspace in workspace.go, which grows unconditionally
	// across subdivision rounds and never itself produces this status.
	StatusInsufficientSpace
	// StatusNoConverge means the intersector's adaptive subdivision ran
	// all MaxIntersectSubdivisions rounds with candidate pairs still
	// unresolved.
	StatusNoConverge
	// StatusSingular means the intersector's 2x2 Jacobian was singular to
	// machine precision at the current estimate, so no refinement step
	// could be computed.
	StatusSingular
	// StatusBadMultiplicity means the observed convergence rate matched
	// neither a simple root (quadratic convergence) nor a double root
	// (linear convergence near one half); the root's multiplicity could
	// not be classified.
	StatusBadMultiplicity
)

// candidateCountStatus is the smallest Status value that, per the
// intersector's external interface (§6), doubles as a candidate count
// rather than a named status: a caller who receives back a Status >= 64
// should read it as "n candidate pairs survived a subdivision round", not
// as one of the five named outcomes above. The five named statuses
// occupy 0..4, leaving 5..63 unused by design so there is room to add
// named statuses without colliding with candidate counts.
const candidateCountStatus = 64

func (s Status) String() string {
	if int(s) >= candidateCountStatus {
		return "CandidateCount"
	}
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusInsufficientSpace:
		return "InsufficientSpace"
	case StatusNoConverge:
		return "NoConverge"
	case StatusSingular:
		return "Singular"
	case StatusBadMultiplicity:
		return "BadMultiplicity"
	default:
		return "Status(?)"
	}
}

// IsCandidateCount reports whether s is not one of the named statuses but
// instead an overloaded candidate count, and if so returns that count.
func (s Status) IsCandidateCount() (int, bool) {
	if int(s) >= candidateCountStatus {
		return int(s), true
	}
	return 0, false
}
