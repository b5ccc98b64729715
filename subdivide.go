package bezier

// subdivideNodes is the unvalidated core of SubdivideNodes.
func subdivideNodes(nodes Nodes, s float64) (left, right Nodes) {
	if s == 0.5 {
		switch nodes.N {
		case 1:
			return nodes.Clone(), nodes.Clone()
		case 2:
			return subdivideLinearHalf(nodes)
		case 3:
			return subdivideQuadraticHalf(nodes)
		case 4:
			return subdivideCubicHalf(nodes)
		}
	}
	return subdivideGeneric(nodes, s)
}

// SubdivideNodes splits a Bézier curve at parameter s into two curves of
// the same degree — nodes restricted to [0, s] and to [s, 1] — using the
// de Casteljau triangle (§4.1). Degrees 1 through 3 use closed-form
// formulas at the standard midpoint s=0.5 lifted from the corresponding
// quadratic and cubic subdivision routines; every other case, including
// midpoint subdivision above degree 3 and subdivision at any other s,
// falls through to the generic triangle.
func SubdivideNodes(nodes Nodes, s float64) (left, right Nodes, err error) {
	if err := validateNodes("SubdivideNodes", nodes); err != nil {
		return Nodes{}, Nodes{}, err
	}
	if err := validateParameter("SubdivideNodes", s); err != nil {
		return Nodes{}, Nodes{}, err
	}
	left, right = subdivideNodes(nodes, s)
	return left, right, nil
}

func subdivideLinearHalf(nodes Nodes) (left, right Nodes) {
	d := nodes.D
	mid := make([]float64, d)
	for j := 0; j < d; j++ {
		mid[j] = 0.5 * (nodes.At(0, j) + nodes.At(1, j))
	}
	left = nodes.zeros(2)
	right = nodes.zeros(2)
	copy(left.Data[0:d], nodes.Data[0:d])
	copy(left.Data[d:2*d], mid)
	copy(right.Data[0:d], mid)
	copy(right.Data[d:2*d], nodes.Data[d:2*d])
	return left, right
}

func subdivideQuadraticHalf(nodes Nodes) (left, right Nodes) {
	d := nodes.D
	left = nodes.zeros(3)
	right = nodes.zeros(3)
	for j := 0; j < d; j++ {
		p0 := nodes.At(0, j)
		p1 := nodes.At(1, j)
		p2 := nodes.At(2, j)

		l0 := p0
		l1 := 0.5 * (p0 + p1)
		l2 := 0.25 * (p0 + 2*p1 + p2)

		r2 := p2
		r1 := 0.5 * (p1 + p2)
		r0 := l2

		left.Set(0, j, l0)
		left.Set(1, j, l1)
		left.Set(2, j, l2)
		right.Set(0, j, r0)
		right.Set(1, j, r1)
		right.Set(2, j, r2)
	}
	return left, right
}

func subdivideCubicHalf(nodes Nodes) (left, right Nodes) {
	d := nodes.D
	left = nodes.zeros(4)
	right = nodes.zeros(4)
	for j := 0; j < d; j++ {
		p0 := nodes.At(0, j)
		p1 := nodes.At(1, j)
		p2 := nodes.At(2, j)
		p3 := nodes.At(3, j)

		l0 := p0
		l1 := 0.5 * (p0 + p1)
		l2 := 0.25 * (p0 + 2*p1 + p2)
		l3 := 0.125 * (p0 + 3*p1 + 3*p2 + p3)

		r3 := p3
		r2 := 0.5 * (p2 + p3)
		r1 := 0.25 * (p1 + 2*p2 + p3)
		r0 := l3

		left.Set(0, j, l0)
		left.Set(1, j, l1)
		left.Set(2, j, l2)
		left.Set(3, j, l3)
		right.Set(0, j, r0)
		right.Set(1, j, r1)
		right.Set(2, j, r2)
		right.Set(3, j, r3)
	}
	return left, right
}

// subdivideGeneric splits nodes at an arbitrary s using the full de
// Casteljau triangle. Row k of the triangle (0-indexed) has N-k points;
// the left curve's control points are the first entry of each row, and
// the right curve's are the last entry of each row, both read as the
// triangle is built top to bottom.
func subdivideGeneric(nodes Nodes, s float64) (left, right Nodes) {
	n := nodes.N
	d := nodes.D
	t := 1 - s

	work := make([]float64, len(nodes.Data))
	copy(work, nodes.Data)

	left = nodes.zeros(n)
	right = nodes.zeros(n)
	copy(left.Data[0:d], work[0:d])
	copy(right.Data[(n-1)*d:n*d], work[(n-1)*d:n*d])

	for level := 1; level < n; level++ {
		count := n - level
		for i := 0; i < count; i++ {
			for j := 0; j < d; j++ {
				a := work[i*d+j]
				b := work[(i+1)*d+j]
				work[i*d+j] = t*a + s*b
			}
		}
		copy(left.Data[level*d:(level+1)*d], work[0:d])
		copy(right.Data[(n-1-level)*d:(n-level)*d], work[(count-1)*d:count*d])
	}
	return left, right
}
