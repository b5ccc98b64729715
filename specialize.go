package bezier

// specializeCurve is the unvalidated core of SpecializeCurve.
func specializeCurve(nodes Nodes, trueStart, trueEnd float64) Nodes {
	switch nodes.N {
	case 1:
		return nodes.Clone()
	case 2:
		return specializeLinear(nodes, trueStart, trueEnd)
	case 3:
		return specializeQuadratic(nodes, trueStart, trueEnd)
	default:
		return specializeGeneric(nodes, trueStart, trueEnd)
	}
}

// SpecializeCurve reparameterizes nodes to the sub-interval [trueStart,
// trueEnd] of the original curve's [0, 1] domain, returning a new control
// polygon of the same degree whose parameter 0 maps to the original
// curve's trueStart and whose parameter 1 maps to trueEnd (§4.1).
//
// Degree 1 (a line) and degree 2 (a quadratic) use closed forms; a
// quadratic's closed form is grounded in evaluating the curve's own
// barycentric weights at the two endpoints and their cross term. Degree 3
// and above use the generic two-subdivision sweep: subdivide once at
// trueEnd to isolate [0, trueEnd], then subdivide that curve again at the
// renormalized position of trueStart within it. This diverges from a
// direct derivative-based shortcut some libraries use for cubics
// specifically, in favor of one code path that is correct at any degree.
//
// It returns an error if [trueStart, trueEnd] is not an ordered
// sub-interval of [0, 1] — the non-monotonic-range case the interval is
// most often misused with.
func SpecializeCurve(nodes Nodes, trueStart, trueEnd float64) (Nodes, error) {
	if err := validateNodes("SpecializeCurve", nodes); err != nil {
		return Nodes{}, err
	}
	if err := validateInterval("SpecializeCurve", trueStart, trueEnd); err != nil {
		return Nodes{}, err
	}
	return specializeCurve(nodes, trueStart, trueEnd), nil
}

func specializeLinear(nodes Nodes, trueStart, trueEnd float64) Nodes {
	d := nodes.D
	out := nodes.zeros(2)
	for j := 0; j < d; j++ {
		p0 := nodes.At(0, j)
		p1 := nodes.At(1, j)
		out.Set(0, j, p0+(p1-p0)*trueStart)
		out.Set(1, j, p0+(p1-p0)*trueEnd)
	}
	return out
}

func specializeQuadratic(nodes Nodes, trueStart, trueEnd float64) Nodes {
	d := nodes.D
	u0, u1 := 1-trueStart, 1-trueEnd
	out := nodes.zeros(3)
	for j := 0; j < d; j++ {
		p0 := nodes.At(0, j)
		p1 := nodes.At(1, j)
		p2 := nodes.At(2, j)

		q0 := u0*u0*p0 + 2*u0*trueStart*p1 + trueStart*trueStart*p2
		q2 := u1*u1*p0 + 2*u1*trueEnd*p1 + trueEnd*trueEnd*p2
		q1 := u0*u1*p0 + (u0*trueEnd+u1*trueStart)*p1 + trueStart*trueEnd*p2

		out.Set(0, j, q0)
		out.Set(1, j, q1)
		out.Set(2, j, q2)
	}
	return out
}

// specializeGeneric isolates [trueStart, trueEnd] with two generic
// subdivisions: first cut at trueEnd to keep the [0, trueEnd] side, then
// cut that curve at trueStart/trueEnd (trueStart's position renormalized
// to the shortened curve's own [0, 1] domain) and keep the far side.
//
// A zero-length interval (trueStart == trueEnd) is handled directly
// rather than falling through to the renormalized subdivision above,
// which would divide by zero when trueEnd is itself 0: the degenerate
// sub-curve is nodes.N copies of the original curve's own point at
// trueStart, matching evaluate(specialize(P, u, u), *) == evaluate(P, u).
func specializeGeneric(nodes Nodes, trueStart, trueEnd float64) Nodes {
	if trueStart == trueEnd {
		return degeneratePointCurve(nodes, trueStart)
	}
	left, _ := subdivideGeneric(nodes, trueEnd)
	renormStart := trueStart / trueEnd
	_, right := subdivideGeneric(left, renormStart)
	return right
}

// degeneratePointCurve returns a curve of the same degree as nodes whose
// every control point is the original curve's point at parameter u — the
// correct result of specializing to a zero-length interval at u.
func degeneratePointCurve(nodes Nodes, u float64) Nodes {
	p := evaluateBarycentric(nodes, 1-u, u)
	out := nodes.zeros(nodes.N)
	for i := 0; i < nodes.N; i++ {
		copy(out.Data[i*nodes.D:(i+1)*nodes.D], p)
	}
	return out
}
