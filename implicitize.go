package bezier

import "sort"

// implicitizeMaxDegreeProduct bounds the curve-pair degree product this
// fast path will attempt: 1x1, 1x2, 1x3, and 2x2 all have an intersection
// polynomial of degree at most 4, which poly.go's closed-form solvers
// cover exactly (§4.4's supplemental fast path, grounded in the modified
// Sylvester resultant construction the original numerical core used to
// implicitize low-degree curves before falling back to subdivision).
const implicitizeMaxDegreeProduct = 4

// bernsteinToPower converts a degree-n Bernstein (Bezier) coefficient
// sequence b[0..n] into power-basis coefficients a[0..n], ascending by
// power, via the forward-difference identity a_j = C(n,j) * Delta^j b_0.
func bernsteinToPower(b []float64) []float64 {
	n := len(b) - 1
	a := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		var sum float64
		for i := 0; i <= j; i++ {
			sign := 1.0
			if (j-i)%2 == 1 {
				sign = -1.0
			}
			sum += sign * binomial(j, i) * b[i]
		}
		a[j] = binomial(n, j) * sum
	}
	return a
}

// sylvesterMatrix builds the classical Sylvester matrix of two power-basis
// polynomials f (degree m, ascending coefficients) and g (degree n,
// ascending coefficients): an (m+n)x(m+n) matrix whose determinant is
// their resultant, zero exactly when f and g share a root.
func sylvesterMatrix(f, g []float64) [][]float64 {
	m := len(f) - 1
	n := len(g) - 1
	size := m + n
	mat := make([][]float64, size)
	for i := range mat {
		mat[i] = make([]float64, size)
	}

	fDesc := reverseCoeffs(f)
	gDesc := reverseCoeffs(g)

	for row := 0; row < n; row++ {
		copy(mat[row][row:row+len(fDesc)], fDesc)
	}
	for row := 0; row < m; row++ {
		copy(mat[n+row][row:row+len(gDesc)], gDesc)
	}
	return mat
}

func reverseCoeffs(a []float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out
}

// determinant computes det(mat) via Gaussian elimination with partial
// pivoting. mat is consumed (overwritten) as scratch space.
func determinant(mat [][]float64) float64 {
	n := len(mat)
	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		best := abs(mat[col][col])
		for row := col + 1; row < n; row++ {
			if v := abs(mat[row][col]); v > best {
				best = v
				pivot = row
			}
		}
		if best == 0 {
			return 0
		}
		if pivot != col {
			mat[col], mat[pivot] = mat[pivot], mat[col]
			det = -det
		}
		det *= mat[col][col]
		for row := col + 1; row < n; row++ {
			factor := mat[row][col] / mat[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				mat[row][k] -= factor * mat[col][k]
			}
		}
	}
	return det
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// evaluateImplicit evaluates, up to a fixed nonzero scale, curve1's
// implicit equation F(x, y) at the point (x, y): the resultant, in the
// curve's own parameter s, of x(s)-x and y(s)-y. This is zero exactly
// when (x, y) lies on the curve traced by nodes1.
func evaluateImplicit(nodes1 Nodes, x, y float64) float64 {
	xCoeffs := make([]float64, nodes1.N)
	yCoeffs := make([]float64, nodes1.N)
	for i := 0; i < nodes1.N; i++ {
		xCoeffs[i] = nodes1.At(i, 0)
		yCoeffs[i] = nodes1.At(i, 1)
	}
	fx := bernsteinToPower(xCoeffs)
	fy := bernsteinToPower(yCoeffs)
	fx[0] -= x
	fy[0] -= y
	return determinant(sylvesterMatrix(fx, fy))
}

// intersectionPolynomialCoefficients fits, by sampling and interpolation,
// the power-basis coefficients (ascending) of the degree deg1*deg2
// polynomial g(t) = evaluateImplicit(nodes1, x2(t), y2(t)), whose real
// roots in [0, 1] are the parameter values at which nodes2 meets the
// algebraic curve of nodes1, including its extension beyond nodes1's own
// [0, 1] parameter domain.
func intersectionPolynomialCoefficients(nodes1, nodes2 Nodes) []float64 {
	deg := nodes1.Degree() * nodes2.Degree()
	samples := deg + 1

	ts := make([]float64, samples)
	values := make([]float64, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(deg)
		pt := evaluate(nodes2, t)
		ts[i] = t
		values[i] = evaluateImplicit(nodes1, pt[0], pt[1])
	}
	return solveVandermonde(ts, values)
}

// solveVandermonde returns the ascending power-basis coefficients of the
// unique degree-(len(ts)-1) polynomial passing through the given
// (t, value) samples, via Gaussian elimination on the Vandermonde system.
func solveVandermonde(ts, values []float64) []float64 {
	n := len(ts)
	mat := make([][]float64, n)
	for i := range mat {
		row := make([]float64, n+1)
		p := 1.0
		for j := 0; j < n; j++ {
			row[j] = p
			p *= ts[i]
		}
		row[n] = values[i]
		mat[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := abs(mat[col][col])
		for row := col + 1; row < n; row++ {
			if v := abs(mat[row][col]); v > best {
				best = v
				pivot = row
			}
		}
		if best == 0 {
			continue
		}
		mat[col], mat[pivot] = mat[pivot], mat[col]
		for row := col + 1; row < n; row++ {
			factor := mat[row][col] / mat[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				mat[row][k] -= factor * mat[col][k]
			}
		}
	}

	coeffs := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := mat[row][n]
		for col := row + 1; col < n; col++ {
			sum -= mat[row][col] * coeffs[col]
		}
		if mat[row][row] == 0 {
			coeffs[row] = 0
			continue
		}
		coeffs[row] = sum / mat[row][row]
	}
	return coeffs
}

// ImplicitIntersect attempts the closed-form implicitization fast path
// for a pair of low-degree curves (§4.4): it fits the intersection
// polynomial in nodes2's parameter t, solves it exactly with poly.go's
// closed-form solvers, and for each real root in [0, 1] locates the
// matching parameter on nodes1. It reports ok=false — asking the caller
// to fall back to adaptive subdivision — whenever the degree product
// exceeds what a quartic solve can cover, or the fitted polynomial is
// degenerate (identically zero to within tolerance, which happens for
// coincident or degree-elevated inputs). ImplicitIntersect validates its
// own arguments rather than relying on a caller such as CurveIntersections
// to have done so, since it is itself an exported entry point.
func ImplicitIntersect(nodes1, nodes2 Nodes) (candidates []IntersectionPair, ok bool) {
	if err := validateNodes("ImplicitIntersect", nodes1); err != nil {
		return nil, false
	}
	if err := validateNodes("ImplicitIntersect", nodes2); err != nil {
		return nil, false
	}
	if err := validateSameDimension("ImplicitIntersect", nodes1, nodes2); err != nil {
		return nil, false
	}
	if nodes1.D != 2 {
		return nil, false
	}

	deg1 := nodes1.Degree()
	deg2 := nodes2.Degree()
	if deg1 < 1 || deg2 < 1 || deg1*deg2 > implicitizeMaxDegreeProduct {
		return nil, false
	}

	coeffs := intersectionPolynomialCoefficients(nodes1, nodes2)
	if isDegenerateCoeffs(coeffs) {
		return nil, false
	}

	roots := realRootsInUnitInterval(coeffs)
	sort.Float64s(roots)

	for _, t := range roots {
		pt := evaluate(nodes2, t)
		s := locatePoint(nodes1, pt)
		if s < 0 {
			continue
		}
		refinedS, refinedT, status := newtonRefineCurveIntersect(nodes1, nodes2, s, t)
		if status != StatusSuccess {
			refinedS, refinedT = s, t
		}
		candidates = append(candidates, IntersectionPair{S: refinedS, T: refinedT})
	}
	return candidates, true
}

// IntersectionPair is a single located intersection between two curves:
// parameter S on the first curve and T on the second.
type IntersectionPair struct {
	S, T float64
}

func isDegenerateCoeffs(coeffs []float64) bool {
	var maxAbs float64
	for _, c := range coeffs {
		if v := abs(c); v > maxAbs {
			maxAbs = v
		}
	}
	return maxAbs < 1e-12
}

func realRootsInUnitInterval(coeffs []float64) []float64 {
	var roots []float64
	const eps = 1e-9
	switch len(coeffs) - 1 {
	case 1:
		if coeffs[1] != 0 {
			roots = append(roots, -coeffs[0]/coeffs[1])
		}
	case 2:
		roots = append(roots, quadraticRoots(coeffs)...)
	case 3:
		roots = append(roots, cubicRoots(coeffs)...)
	case 4:
		roots = append(roots, quarticRoots(coeffs)...)
	}

	filtered := roots[:0]
	for _, r := range roots {
		if r >= -eps && r <= 1+eps {
			filtered = append(filtered, clampUnit(r))
		}
	}
	return filtered
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
