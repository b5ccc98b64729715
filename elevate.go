package bezier

// elevateNodes is the unvalidated core of ElevateNodes.
func elevateNodes(nodes Nodes) Nodes {
	n := nodes.N
	d := nodes.D
	deg := n - 1
	out := nodes.zeros(n + 1)

	copy(out.Data[0:d], nodes.Data[0:d])
	copy(out.Data[n*d:(n+1)*d], nodes.Data[(n-1)*d:n*d])

	denom := float64(deg + 1)
	for i := 1; i < n; i++ {
		for j := 0; j < d; j++ {
			prev := nodes.At(i-1, j)
			cur := nodes.At(i, j)
			out.Set(i, j, (float64(i)*prev+float64(deg+1-i)*cur)/denom)
		}
	}
	return out
}

// ElevateNodes raises the degree of nodes by one, returning a control
// polygon of N+1 points that traces the identical curve (§4.1). The new
// points are E[0]=P[0], E[N]=P[N-1] (endpoints are unchanged), and
// E[i] = (i*P[i-1] + (deg+1-i)*P[i]) / (deg+1) for the interior points,
// where deg is the input curve's degree.
func ElevateNodes(nodes Nodes) (Nodes, error) {
	if err := validateNodes("ElevateNodes", nodes); err != nil {
		return Nodes{}, err
	}
	return elevateNodes(nodes), nil
}
