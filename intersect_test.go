package bezier

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveIntersectionsLineLine(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 4, 4})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 4, 4, 0})
	require.NoError(t, err)

	pairs, coincident, status, err := CurveIntersections(nodes1, nodes2)
	require.NoError(t, err)
	assert.False(t, coincident)
	require.Equal(t, StatusSuccess, status)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 0.5, pairs[0].S, 1e-6)
	assert.InDelta(t, 0.5, pairs[0].T, 1e-6)
}

func TestCurveIntersectionsParallelLinesFindNothing(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 4, 0})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 1, 4, 1})
	require.NoError(t, err)

	pairs, coincident, status, err := CurveIntersections(nodes1, nodes2)
	require.NoError(t, err)
	assert.False(t, coincident)
	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, pairs)
}

func TestCurveIntersectionsCubicCubicViaSubdivision(t *testing.T) {
	// Two cubics crossing near the middle of their domains; degree product
	// 9 exceeds the implicitization fast path's ceiling, exercising
	// adaptive subdivision.
	nodes1, err := NewNodes(2, []float64{0, 0, 1, 3, 3, -3, 4, 0})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 2, 1, -2, 3, 2, 4, -2})
	require.NoError(t, err)

	pairs, coincident, status, err := CurveIntersections(nodes1, nodes2)
	require.NoError(t, err)
	assert.False(t, coincident)
	assert.Equal(t, StatusSuccess, status)
	require.NotEmpty(t, pairs)
	for _, p := range pairs {
		pt1, err := Evaluate(nodes1, p.S)
		require.NoError(t, err)
		pt2, err := Evaluate(nodes2, p.T)
		require.NoError(t, err)
		assert.InDelta(t, pt1[0], pt2[0], 1e-4)
		assert.InDelta(t, pt1[1], pt2[1], 1e-4)
	}
}

// TestCurveIntersectionsImplicitizeAgreesWithSubdivision checks the
// closed-form implicitization fast path and the adaptive-subdivision path
// against each other on the same curve pair: the pair's degree product
// (4) is exactly implicitizeMaxDegreeProduct, so it is forced through
// subdivisionIntersect directly here and compared to what
// CurveIntersections itself returns via the fast path.
func TestCurveIntersectionsImplicitizeAgreesWithSubdivision(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 2, 4, 4, 0})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 3, 2, -3, 4, 3})
	require.NoError(t, err)

	fastPairs, coincident, status, err := CurveIntersections(nodes1, nodes2)
	require.NoError(t, err)
	require.False(t, coincident)
	require.Equal(t, StatusSuccess, status)
	require.NotEmpty(t, fastPairs)

	slowPairs, status, err := defaultEngine.subdivisionIntersect(nodes1, nodes2)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, status)
	require.Len(t, slowPairs, len(fastPairs))

	for i := range fastPairs {
		assert.InDelta(t, fastPairs[i].S, slowPairs[i].S, 1e-4)
		assert.InDelta(t, fastPairs[i].T, slowPairs[i].T, 1e-4)
	}
}

func TestCurveIntersectionsDisjointBoundingBoxesFindNothing(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 1, 1, 2, 0})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{10, 10, 11, 11, 12, 10})
	require.NoError(t, err)

	pairs, coincident, status, err := CurveIntersections(nodes1, nodes2)
	require.NoError(t, err)
	assert.False(t, coincident)
	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, pairs)
}

func TestCurveIntersectionsRejectsDimensionMismatch(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	nodes2, err := NewNodes(3, []float64{0, 0, 0, 1, 1, 1})
	require.NoError(t, err)

	_, _, _, err = CurveIntersections(nodes1, nodes2)
	assert.Error(t, err)
}

func TestDetectCoincidenceSameCurve(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)
	overlap, ok, err := DetectCoincidence(nodes, nodes.Clone())
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, overlap.Reversed)
}

func TestDetectCoincidenceReversedCurve(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)
	overlap, ok, err := DetectCoincidence(nodes, reverseNodes(nodes))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, overlap.Reversed)
}

func TestDetectCoincidenceDifferentDegreeSameImage(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 4, 4})
	require.NoError(t, err)
	elevated, err := ElevateNodes(nodes)
	require.NoError(t, err)
	_, ok, err := DetectCoincidence(nodes, elevated)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDetectCoincidenceUnrelatedCurves(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 4, 4})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 4, 4, 0})
	require.NoError(t, err)
	_, ok, err := DetectCoincidence(nodes1, nodes2)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCurveIntersectionsCoincidentCurvesReportSharedArcEndpoints covers
// the scenario where two identical cubics are handed to
// CurveIntersections: coincident must be true and pairs must be exactly
// the shared arc's two endpoints, (0,0) and (1,1), never an empty list.
func TestCurveIntersectionsCoincidentCurvesReportSharedArcEndpoints(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)
	pairs, coincident, status, err := CurveIntersections(nodes, nodes.Clone())
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	require.True(t, coincident)
	require.Equal(t, []IntersectionPair{{S: 0, T: 0}, {S: 1, T: 1}}, pairs)
}

// TestCurveIntersectionsCoincidentReversedCurvesReportSwappedEndpoints
// covers the reversed-parameterization variant: nodes2 traces the same
// image as nodes1 but back to front, so the shared arc's endpoints must
// come back with nodes2's parameter reversed.
func TestCurveIntersectionsCoincidentReversedCurvesReportSwappedEndpoints(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)
	pairs, coincident, status, err := CurveIntersections(nodes, reverseNodes(nodes))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	require.True(t, coincident)
	require.Equal(t, []IntersectionPair{{S: 0, T: 1}, {S: 1, T: 0}}, pairs)
}

// TestCurveIntersectionsTangentCirclesDetectDoubleRoot builds two unit
// circles as single-arc cubics, externally tangent at (1, 0), the
// tangent-circles scenario spec.md §8 names: one intersection, converging
// as a double root (or reported StatusBadMultiplicity if the iteration
// budget in resolveFlatCandidate runs out first). Degree product 9
// exceeds the implicitization fast path's ceiling, so this exercises
// subdivisionIntersect's adaptive path directly.
func TestCurveIntersectionsTangentCirclesDetectDoubleRoot(t *testing.T) {
	const k = 0.5522847498307936
	arcCubic := func(cx, cy, r, phi, theta float64) []float64 {
		cosM, sinM := math.Cos(phi-theta), math.Sin(phi-theta)
		cosP, sinP := math.Cos(phi+theta), math.Sin(phi+theta)
		return []float64{
			cx + r*cosM, cy + r*sinM,
			cx + r*(cosM-k*sinM), cy + r*(sinM+k*cosM),
			cx + r*(cosP+k*sinP), cy + r*(sinP-k*cosP),
			cx + r*cosP, cy + r*sinP,
		}
	}

	circleA, err := NewNodes(2, arcCubic(0, 0, 1, 0, math.Pi/4))
	require.NoError(t, err)
	circleB, err := NewNodes(2, arcCubic(2, 0, 1, math.Pi, math.Pi/4))
	require.NoError(t, err)

	pairs, coincident, status, err := CurveIntersections(circleA, circleB)
	require.NoError(t, err)
	assert.False(t, coincident)
	require.Contains(t, []Status{StatusSuccess, StatusBadMultiplicity}, status)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 0.5, pairs[0].S, 1e-3)
	assert.InDelta(t, 0.5, pairs[0].T, 1e-3)

	pt, err := Evaluate(circleA, pairs[0].S)
	require.NoError(t, err)
	assert.InDelta(t, 1, pt[0], 1e-3)
	assert.InDelta(t, 0, pt[1], 1e-3)
}

func TestCurveIntersectionsIntoReportsRequiredSizeWhenBufferTooSmall(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 4, 4})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 4, 4, 0})
	require.NoError(t, err)

	numIntersections, coincident, status, err := CurveIntersectionsInto(nodes1, nodes2, nil)
	require.NoError(t, err)
	assert.False(t, coincident)
	assert.Equal(t, StatusInsufficientSpace, status)
	assert.Equal(t, 1, numIntersections)
}

func TestCurveIntersectionsIntoFillsCallerBuffer(t *testing.T) {
	nodes1, err := NewNodes(2, []float64{0, 0, 4, 4})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 4, 4, 0})
	require.NoError(t, err)

	out := make([]IntersectionPair, 1)
	numIntersections, coincident, status, err := CurveIntersectionsInto(nodes1, nodes2, out)
	require.NoError(t, err)
	assert.False(t, coincident)
	assert.Equal(t, StatusSuccess, status)
	require.Equal(t, 1, numIntersections)
	assert.InDelta(t, 0.5, out[0].S, 1e-6)
	assert.InDelta(t, 0.5, out[0].T, 1e-6)
}

func Example() {
	line, _ := NewNodes(2, []float64{0, 0, 4, 4})
	diagonal, _ := NewNodes(2, []float64{0, 4, 4, 0})

	pairs, _, _, err := CurveIntersections(line, diagonal)
	if err != nil {
		panic(err)
	}
	for _, p := range pairs {
		pt, _ := Evaluate(line, p.S)
		fmt.Printf("s=%.2f t=%.2f point=(%.2f, %.2f)\n", p.S, p.T, pt[0], pt[1])
	}
	// Output: s=0.50 t=0.50 point=(2.00, 2.00)
}
