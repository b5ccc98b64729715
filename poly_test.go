package bezier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalPoly evaluates coeffs[0] + coeffs[1]*x + coeffs[2]*x^2 + ... at x,
// the same ascending-coefficient convention quadraticRoots/cubicRoots/
// quarticRoots and intersectionPolynomialCoefficients share.
func evalPoly(coeffs []float64, x float64) float64 {
	sum, p := 0.0, 1.0
	for _, c := range coeffs {
		sum += c * p
		p *= x
	}
	return sum
}

func TestQuadraticRootsSolveTheIntersectionPolynomialOfALineAndADip(t *testing.T) {
	// A flat line at y=0 and a quadratic that dips below it and back above:
	// the 1x2 degree pair intersectionPolynomialCoefficients fits a
	// quadratic for, with two genuine crossings in [0, 1].
	line, err := NewNodes(2, []float64{0, 0, 4, 0})
	require.NoError(t, err)
	dip, err := NewNodes(2, []float64{0, 2, 2, -4, 4, 2})
	require.NoError(t, err)

	coeffs := intersectionPolynomialCoefficients(line, dip)
	require.Len(t, coeffs, 3)

	roots := quadraticRoots(coeffs)
	sort.Float64s(roots)
	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.InDelta(t, 0, evalPoly(coeffs, r), 1e-6)
	}

	inUnit := realRootsInUnitInterval(coeffs)
	require.Len(t, inUnit, 2)
	for _, s := range inUnit {
		pt, err := Evaluate(dip, s)
		require.NoError(t, err)
		assert.InDelta(t, 0, pt[1], 1e-6)
	}
}

func TestCubicRootsSolveTheIntersectionPolynomialOfALineAndAWave(t *testing.T) {
	// A flat line and a cubic weaving across it three times: the 1x3
	// degree pair intersectionPolynomialCoefficients fits a cubic for.
	line, err := NewNodes(2, []float64{0, 0, 4, 0})
	require.NoError(t, err)
	wave, err := NewNodes(2, []float64{0, -1, 1.3, 3, 2.7, -3, 4, 1})
	require.NoError(t, err)

	coeffs := intersectionPolynomialCoefficients(line, wave)
	require.Len(t, coeffs, 4)

	roots := cubicRoots(coeffs)
	require.NotEmpty(t, roots)
	for _, r := range roots {
		assert.InDelta(t, 0, evalPoly(coeffs, r), 1e-6)
	}

	inUnit := realRootsInUnitInterval(coeffs)
	require.NotEmpty(t, inUnit)
	for _, s := range inUnit {
		pt, err := Evaluate(wave, s)
		require.NoError(t, err)
		assert.InDelta(t, 0, pt[1], 1e-4)
	}
}

func TestQuarticRootsSolveTheIntersectionPolynomialOfTwoQuadratics(t *testing.T) {
	// Two quadratics crossing twice: the 2x2 degree pair
	// intersectionPolynomialCoefficients fits a quartic for.
	nodes1, err := NewNodes(2, []float64{0, 0, 2, 4, 4, 0})
	require.NoError(t, err)
	nodes2, err := NewNodes(2, []float64{0, 3, 2, -3, 4, 3})
	require.NoError(t, err)

	coeffs := intersectionPolynomialCoefficients(nodes1, nodes2)
	require.Len(t, coeffs, 5)

	roots := quarticRoots(coeffs)
	require.NotEmpty(t, roots)
	for _, r := range roots {
		assert.InDelta(t, 0, evalPoly(coeffs, r), 1e-3)
	}

	inUnit := realRootsInUnitInterval(coeffs)
	require.NotEmpty(t, inUnit)
	for _, t2 := range inUnit {
		pt2, err := Evaluate(nodes2, t2)
		require.NoError(t, err)
		s := locatePoint(nodes1, pt2)
		require.GreaterOrEqual(t, s, 0.0)
		pt1, err := Evaluate(nodes1, s)
		require.NoError(t, err)
		assert.InDelta(t, pt1[0], pt2[0], 1e-3)
		assert.InDelta(t, pt1[1], pt2[1], 1e-3)
	}
}

func TestQuadraticRootsNoRealRoots(t *testing.T) {
	assert.Empty(t, quadraticRoots([]float64{5, 0, 1}))
}

func TestQuadraticRootsDoubleRoot(t *testing.T) {
	// (x+1)^2 = 1 + 2x + x^2
	roots := quadraticRoots([]float64{1, 2, 1})
	require.Len(t, roots, 1)
	assert.InDelta(t, -1, roots[0], 1e-9)
}

func TestCubicRootsThreeRealRoots(t *testing.T) {
	// (x+1)(x)(x-1) = -x + x^3
	roots := cubicRoots([]float64{0, -1, 0, 1})
	sort.Float64s(roots)
	require.Len(t, roots, 3)
	assert.InDelta(t, -1, roots[0], 1e-9)
	assert.InDelta(t, 0, roots[1], 1e-9)
	assert.InDelta(t, 1, roots[2], 1e-9)
}

func TestCubicRootsFallsBackToQuadraticWhenLeadingCoefficientVanishes(t *testing.T) {
	// c3 == 0 degrades to 2 - 3x + x^2 = (x-1)(x-2).
	roots := cubicRoots([]float64{2, -3, 1, 0})
	sort.Float64s(roots)
	require.Len(t, roots, 2)
	assert.InDelta(t, 1, roots[0], 1e-9)
	assert.InDelta(t, 2, roots[1], 1e-9)
}

func TestQuarticRootsFourRealRoots(t *testing.T) {
	// (x-1)(x+1)(x-2)(x+2) = (x^2-1)(x^2-4) = 4 - 5x^2 + x^4
	roots := quarticRoots([]float64{4, 0, -5, 0, 1})
	sort.Float64s(roots)
	require.Len(t, roots, 4)
	want := []float64{-2, -1, 1, 2}
	for i, w := range want {
		assert.InDelta(t, w, roots[i], 1e-9)
	}
}

func TestQuarticRootsFallsBackToCubicWhenLeadingCoefficientVanishes(t *testing.T) {
	// c4 == 0 degrades to -x + x^3 = x(x-1)(x+1).
	roots := quarticRoots([]float64{0, -1, 0, 1, 0})
	sort.Float64s(roots)
	require.Len(t, roots, 3)
	assert.InDelta(t, -1, roots[0], 1e-9)
	assert.InDelta(t, 0, roots[1], 1e-9)
	assert.InDelta(t, 1, roots[2], 1e-9)
}
