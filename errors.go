package bezier

import "github.com/pkg/errors"

// validateNodes checks that nodes is well-formed enough to hand to any of
// this package's numerical routines: it has at least one control point
// and a positive dimension consistent with the data slice's length. Every
// exported entry point that accepts a Nodes value, except NewBoundingBox
// and BBoxIntersect, calls this first, so
// malformed input fails fast with a wrapped, contextual error rather than
// an obscure index panic deep in a de Casteljau sweep.
func validateNodes(name string, nodes Nodes) error {
	if nodes.D <= 0 {
		return errors.Errorf("bezier: %s: dimension must be positive, got %d", name, nodes.D)
	}
	if nodes.N <= 0 {
		return errors.Errorf("bezier: %s: control polygon must have at least one node, got %d", name, nodes.N)
	}
	if len(nodes.Data) != nodes.N*nodes.D {
		return errors.Errorf("bezier: %s: data length %d does not match N*D = %d", name, len(nodes.Data), nodes.N*nodes.D)
	}
	return nil
}

// validateParameter checks that s lies in the closed unit interval that
// every curve-domain parameter in this package is defined over.
func validateParameter(name string, s float64) error {
	if s < 0 || s > 1 {
		return errors.Errorf("bezier: %s: parameter %g outside [0, 1]", name, s)
	}
	return nil
}

// validateInterval checks that [start, end] is a properly ordered
// sub-interval of [0, 1], the shape SpecializeCurve and the intersector's
// candidate intervals both require.
func validateInterval(name string, start, end float64) error {
	if err := validateParameter(name, start); err != nil {
		return err
	}
	if err := validateParameter(name, end); err != nil {
		return err
	}
	if start > end {
		return errors.Errorf("bezier: %s: interval [%g, %g] is not ordered", name, start, end)
	}
	return nil
}

// validateSameDimension checks that two control polygons share a
// dimension, a precondition of the pairwise intersector and the bounding
// box overlap classifier.
func validateSameDimension(name string, a, b Nodes) error {
	if a.D != b.D {
		return errors.Errorf("bezier: %s: dimension mismatch, %d vs %d", name, a.D, b.D)
	}
	return nil
}

// errorsDimensionMismatch reports a query point whose length disagrees
// with a curve's own dimension, the shape LocatePoint and
// NewtonRefineCurve both require of their point argument.
func errorsDimensionMismatch(name string, want, got int) error {
	return errors.Errorf("bezier: %s: query point has %d coordinates, curve is %d-dimensional", name, got, want)
}

// errorsPlanarOnly reports a curve of the wrong dimension being handed to
// one of the plane-restricted intersector entry points (§1 Non-goals).
func errorsPlanarOnly(name string, d int) error {
	return errors.Errorf("bezier: %s: only planar (D=2) curves are supported, got D=%d", name, d)
}
