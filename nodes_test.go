package bezier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodesRejectsBadShape(t *testing.T) {
	_, err := NewNodes(2, []float64{0, 0, 1})
	require.Error(t, err)

	_, err = NewNodes(0, []float64{0, 0})
	require.Error(t, err)
}

func TestEvaluateEndpoints(t *testing.T) {
	// A cubic with control points (0,0) (1,2) (3,3) (4,0).
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)

	start, err := Evaluate(nodes, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, start)

	end, err := Evaluate(nodes, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0}, end)
}

func TestEvaluateRejectsOutOfRangeParameter(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 2, 4})
	require.NoError(t, err)
	_, err = Evaluate(nodes, 1.5)
	require.Error(t, err)
}

func TestEvaluateLinearMidpoint(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 2, 4})
	require.NoError(t, err)
	got, err := Evaluate(nodes, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 2.0, got[1], 1e-12)
}

func TestEvaluateMultiMatchesEvaluate(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)

	ss := []float64{0, 0.25, 0.5, 0.75, 1}
	multi, err := EvaluateMulti(nodes, ss)
	require.NoError(t, err)
	for i, s := range ss {
		want, err := Evaluate(nodes, s)
		require.NoError(t, err)
		got := []float64{multi.At(i, 0), multi.At(i, 1)}
		assert.InDeltaSlice(t, want, got, 1e-12)
	}
}

func TestEvaluateBarycentricMultiMatchesEvaluateBarycentric(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)

	lambda1 := []float64{1, 0.75, 0.5, 0.25, 0}
	lambda2 := []float64{0, 0.25, 0.5, 0.75, 1}
	multi, err := EvaluateBarycentricMulti(nodes, lambda1, lambda2)
	require.NoError(t, err)
	require.Equal(t, len(lambda1), multi.N)
	for i := range lambda1 {
		want, err := EvaluateBarycentric(nodes, lambda1[i], lambda2[i])
		require.NoError(t, err)
		got := []float64{multi.At(i, 0), multi.At(i, 1)}
		assert.InDeltaSlice(t, want, got, 1e-12)
	}
}

func TestEvaluateBarycentricMultiRejectsMismatchedLengths(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 2, 4})
	require.NoError(t, err)
	_, err = EvaluateBarycentricMulti(nodes, []float64{0, 1}, []float64{1})
	require.Error(t, err)
}

func TestHodographOfLineIsConstant(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 2, 4})
	require.NoError(t, err)
	hodo, err := Hodograph(nodes)
	require.NoError(t, err)
	require.Equal(t, 1, hodo.N)
	assert.Equal(t, []float64{2, 4}, hodo.Data)
}

func TestHodographOfPointIsEmpty(t *testing.T) {
	nodes, err := NewNodes(2, []float64{3, 4})
	require.NoError(t, err)
	hodo, err := Hodograph(nodes)
	require.NoError(t, err)
	assert.Equal(t, 0, hodo.N)
}

func TestEvaluateHodographMatchesFiniteDifference(t *testing.T) {
	nodes, err := NewNodes(2, []float64{0, 0, 1, 2, 3, 3, 4, 0})
	require.NoError(t, err)

	const h = 1e-6
	s := 0.4
	a, err := Evaluate(nodes, s+h)
	require.NoError(t, err)
	b, err := Evaluate(nodes, s-h)
	require.NoError(t, err)
	fd := []float64{(a[0] - b[0]) / (2 * h), (a[1] - b[1]) / (2 * h)}
	got, err := EvaluateHodograph(nodes, s)
	require.NoError(t, err)
	assert.InDeltaSlice(t, fd, got, 1e-4)
}
