package bezier

import (
	"math"

	"github.com/pkg/errors"
)

// Nodes is a degree-N-1 Bézier control polygon in D dimensions, stored as a
// column-major flat array: Data[i*D+j] is the j-th coordinate of the i-th
// control point. This layout mirrors the C-ABI array-of-structs-of-scalars
// shape the external interface exposes (§3, §6), so a caller can memcpy
// straight in and out of it.
type Nodes struct {
	D    int
	N    int
	Data []float64
}

// NewNodes builds a Nodes value from D and a flattened, row-major sequence
// of N control points (n[0], n[1], ..., n[D-1] is the first control point,
// and so on). It returns an error if data's length is not a multiple of D.
func NewNodes(d int, data []float64) (Nodes, error) {
	if d <= 0 {
		return Nodes{}, errors.Errorf("bezier: dimension must be positive, got %d", d)
	}
	if len(data)%d != 0 {
		return Nodes{}, errors.Errorf("bezier: data length %d is not a multiple of dimension %d", len(data), d)
	}
	n := len(data) / d
	if n < 1 {
		return Nodes{}, errors.New("bezier: control polygon must have at least one node")
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return Nodes{D: d, N: n, Data: cp}, nil
}

// Degree returns the polynomial degree of the curve, one less than the
// number of control points.
func (nodes Nodes) Degree() int { return nodes.N - 1 }

// At returns the j-th coordinate of the i-th control point.
func (nodes Nodes) At(i, j int) float64 { return nodes.Data[i*nodes.D+j] }

// Set assigns the j-th coordinate of the i-th control point.
func (nodes Nodes) Set(i, j int, v float64) { nodes.Data[i*nodes.D+j] = v }

// Point returns the i-th control point as a Point. It panics if D != 2.
func (nodes Nodes) Point(i int) Point {
	if nodes.D != 2 {
		panic("bezier: Nodes.Point requires a 2-dimensional control polygon")
	}
	return Pt(nodes.At(i, 0), nodes.At(i, 1))
}

// Clone returns a deep copy of nodes.
func (nodes Nodes) Clone() Nodes {
	cp := make([]float64, len(nodes.Data))
	copy(cp, nodes.Data)
	return Nodes{D: nodes.D, N: nodes.N, Data: cp}
}

// zeros returns a fresh, zero-filled Nodes value with the given point
// count, sharing D with nodes.
func (nodes Nodes) zeros(n int) Nodes {
	return Nodes{D: nodes.D, N: n, Data: make([]float64, n*nodes.D)}
}

// evaluateBarycentric is the unvalidated core of EvaluateBarycentric,
// reused by every internal caller that already holds a validated Nodes
// value and doesn't need to pay for re-checking it.
func evaluateBarycentric(nodes Nodes, lambda1, lambda2 float64) []float64 {
	work := make([]float64, len(nodes.Data))
	copy(work, nodes.Data)

	n := nodes.N
	d := nodes.D
	for level := 1; level < n; level++ {
		count := n - level
		for i := 0; i < count; i++ {
			for j := 0; j < d; j++ {
				a := work[i*d+j]
				b := work[(i+1)*d+j]
				work[i*d+j] = lambda1*a + lambda2*b
			}
		}
	}
	result := make([]float64, d)
	copy(result, work[:d])
	return result
}

// EvaluateBarycentric evaluates the curve at the barycentric weights
// (lambda1, lambda2), lambda1+lambda2 == 1 for a point on the segment,
// using the generalized de Casteljau algorithm (§4.1, §9). It runs in
// O(N^2 * D) time and O(N * D) auxiliary space: a triangular in-place
// reduction over a scratch copy of the control net.
//
// The pyramid reduction never computes a binomial coefficient at all —
// each level is a plain lambda1*a + lambda2*b blend — so it sidesteps
// the factorial-overflow concern the recurrence-based formulation in §9
// exists to manage, uniformly at every degree rather than switching
// strategy above degree 30.
func EvaluateBarycentric(nodes Nodes, lambda1, lambda2 float64) ([]float64, error) {
	if err := validateNodes("EvaluateBarycentric", nodes); err != nil {
		return nil, err
	}
	return evaluateBarycentric(nodes, lambda1, lambda2), nil
}

// evaluateBarycentricMulti is the unvalidated core of
// EvaluateBarycentricMulti.
func evaluateBarycentricMulti(nodes Nodes, lambda1, lambda2 []float64) Nodes {
	out := nodes.zeros(len(lambda1))
	for i := range lambda1 {
		row := evaluateBarycentric(nodes, lambda1[i], lambda2[i])
		copy(out.Data[i*out.D:(i+1)*out.D], row)
	}
	return out
}

// EvaluateBarycentricMulti is the batched form of EvaluateBarycentric
// (§4.1, §6's `evaluate_curve_barycentric`): given m barycentric weight
// pairs, it returns the m evaluated points stacked into a Nodes value
// with the curve's own dimension and m points, the array-of-structs
// shape `evaluated[d×m]` describes. lambda1 and lambda2 must have equal
// length. EvaluateMulti is the s-parameterized special case of this,
// built by passing lambda1 = 1-s, lambda2 = s.
func EvaluateBarycentricMulti(nodes Nodes, lambda1, lambda2 []float64) (Nodes, error) {
	if err := validateNodes("EvaluateBarycentricMulti", nodes); err != nil {
		return Nodes{}, err
	}
	if len(lambda1) != len(lambda2) {
		return Nodes{}, errors.Errorf("bezier: EvaluateBarycentricMulti: lambda1 has %d entries, lambda2 has %d", len(lambda1), len(lambda2))
	}
	return evaluateBarycentricMulti(nodes, lambda1, lambda2), nil
}

// evaluate is the unvalidated core of Evaluate.
func evaluate(nodes Nodes, s float64) []float64 {
	return evaluateBarycentric(nodes, 1-s, s)
}

// Evaluate evaluates the curve at the standard parameter s in [0, 1], via
// EvaluateBarycentric with lambda1 = 1-s, lambda2 = s.
func Evaluate(nodes Nodes, s float64) ([]float64, error) {
	if err := validateNodes("Evaluate", nodes); err != nil {
		return nil, err
	}
	if err := validateParameter("Evaluate", s); err != nil {
		return nil, err
	}
	return evaluate(nodes, s), nil
}

// EvaluateMulti evaluates the curve at each parameter value in s, and
// returns the D-dimensional images stacked into a Nodes value with the
// same D and len(s) points — a batched form of Evaluate.
func EvaluateMulti(nodes Nodes, s []float64) (Nodes, error) {
	if err := validateNodes("EvaluateMulti", nodes); err != nil {
		return Nodes{}, err
	}
	for _, si := range s {
		if err := validateParameter("EvaluateMulti", si); err != nil {
			return Nodes{}, err
		}
	}
	lambda1 := make([]float64, len(s))
	for i, si := range s {
		lambda1[i] = 1 - si
	}
	return evaluateBarycentricMulti(nodes, lambda1, s), nil
}

// evaluateHodograph is the unvalidated core of EvaluateHodograph.
func evaluateHodograph(nodes Nodes, s float64) []float64 {
	hodo := hodograph(nodes)
	if hodo.N == 0 {
		return make([]float64, nodes.D)
	}
	return evaluate(hodo, s)
}

// EvaluateHodograph evaluates the hodograph (the derivative curve, itself
// a degree-(N-2) Bézier curve with control points (N-1)*(P[i+1]-P[i])) at
// parameter s (§4.1). A degree-0 curve — a single control point — has a
// hodograph that is identically zero.
func EvaluateHodograph(nodes Nodes, s float64) ([]float64, error) {
	if err := validateNodes("EvaluateHodograph", nodes); err != nil {
		return nil, err
	}
	if err := validateParameter("EvaluateHodograph", s); err != nil {
		return nil, err
	}
	return evaluateHodograph(nodes, s), nil
}

// hodograph is the unvalidated core of Hodograph.
func hodograph(nodes Nodes) Nodes {
	n := nodes.N
	d := nodes.D
	if n <= 1 {
		return Nodes{D: d, N: 0, Data: nil}
	}
	k := float64(n - 1)
	out := nodes.zeros(n - 1)
	for i := 0; i < n-1; i++ {
		for j := 0; j < d; j++ {
			out.Data[i*d+j] = k * (nodes.At(i+1, j) - nodes.At(i, j))
		}
	}
	return out
}

// Hodograph returns the derivative curve of nodes: a degree-(N-2) Bézier
// curve whose i-th control point is (N-1)*(P[i+1]-P[i]) (§4.1). The hodograph
// of a single control point (N=1) is the empty curve with zero points.
func Hodograph(nodes Nodes) (Nodes, error) {
	if err := validateNodes("Hodograph", nodes); err != nil {
		return Nodes{}, err
	}
	return hodograph(nodes), nil
}

// binomial returns C(n, k) accumulated in float64. It is exact for the
// small n bernsteinToPower (implicitize.go) uses, and merely approximate
// once n grows large enough that exact integer binomials would overflow.
func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return result
}

// nearlyEqual reports whether a and b agree to within a relative
// tolerance of 1e-9, scaled by the larger operand's magnitude.
func nearlyEqual(a, b float64) bool {
	const relTol = 1e-9
	diff := math.Abs(a - b)
	if diff == 0 {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= relTol*scale
}
