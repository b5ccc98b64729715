package bezier

// BoundingBox is the axis-aligned bounding box of a control polygon: the
// componentwise min/max of its control points (§3, §4.3).
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox returns the smallest axis-aligned box enclosing the
// control points of nodes. nodes.D must be 2; the bounding-box engine and
// the pairwise intersector operate in the plane only (§1 Non-goals).
func NewBoundingBox(nodes Nodes) BoundingBox {
	if nodes.D != 2 {
		panic("bezier: NewBoundingBox requires a 2-dimensional control polygon")
	}
	x0, y0 := nodes.At(0, 0), nodes.At(0, 1)
	bb := BoundingBox{Min: Pt(x0, y0), Max: Pt(x0, y0)}
	for i := 1; i < nodes.N; i++ {
		x, y := nodes.At(i, 0), nodes.At(i, 1)
		bb = bb.UnionPoint(Pt(x, y))
	}
	return bb
}

// UnionPoint returns the smallest box enclosing bb and pt.
func (bb BoundingBox) UnionPoint(pt Point) BoundingBox {
	return BoundingBox{
		Min: Pt(min(bb.Min.X, pt.X), min(bb.Min.Y, pt.Y)),
		Max: Pt(max(bb.Max.X, pt.X), max(bb.Max.Y, pt.Y)),
	}
}

// Width returns bb's extent along X. It is never negative.
func (bb BoundingBox) Width() float64 { return bb.Max.X - bb.Min.X }

// Height returns bb's extent along Y. It is never negative.
func (bb BoundingBox) Height() float64 { return bb.Max.Y - bb.Min.Y }

// Contains reports whether pt lies within bb, inclusive of the boundary.
// It is the plane-only form of the containment test; the point locator
// (§4.2) uses containsND instead, which works in any dimension.
func (bb BoundingBox) Contains(pt Point) bool {
	return pt.X >= bb.Min.X && pt.X <= bb.Max.X &&
		pt.Y >= bb.Min.Y && pt.Y <= bb.Max.Y
}

// containsND reports whether p lies within the axis-aligned bounding box
// of nodes' control polygon, computed componentwise over all D dimensions
// rather than assuming D=2. This is the arbitrary-dimension contains_nd
// predicate the point locator (§4.2) needs — the locator, unlike the
// bounding-box engine and the pairwise intersector, is not restricted to
// the plane (§1 Non-goals scope only the intersector to D=2).
func containsND(nodes Nodes, p []float64) bool {
	for j := 0; j < nodes.D; j++ {
		lo, hi := nodes.At(0, j), nodes.At(0, j)
		for i := 1; i < nodes.N; i++ {
			v := nodes.At(i, j)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if p[j] < lo || p[j] > hi {
			return false
		}
	}
	return true
}

// Overlap is the three-valued classification a bounding-box overlap test
// produces (§4.3).
type Overlap int

const (
	// Intersection means the overlap has positive area on both axes.
	Intersection Overlap = iota
	// Tangent means the boxes touch — an edge or a corner — but the overlap
	// has zero area on at least one axis.
	Tangent
	// Disjoint means the boxes are strictly separated on at least one axis.
	Disjoint
)

func (o Overlap) String() string {
	switch o {
	case Intersection:
		return "Intersection"
	case Tangent:
		return "Tangent"
	case Disjoint:
		return "Disjoint"
	default:
		return "Overlap(?)"
	}
}

// BBoxIntersect classifies the overlap of the bounding boxes of two control
// polygons. It is deliberately branch-light and side-effect-free, since it
// sits in the inner loop of the pairwise intersector (§4.3).
func BBoxIntersect(nodes1, nodes2 Nodes) Overlap {
	return classifyBoxes(NewBoundingBox(nodes1), NewBoundingBox(nodes2))
}

func classifyBoxes(a, b BoundingBox) Overlap {
	xOverlap := overlapExtent(a.Min.X, a.Max.X, b.Min.X, b.Max.X)
	if xOverlap < 0 {
		return Disjoint
	}
	yOverlap := overlapExtent(a.Min.Y, a.Max.Y, b.Min.Y, b.Max.Y)
	if yOverlap < 0 {
		return Disjoint
	}
	// Comparisons to zero here are load-bearing: a zero-length overlap on
	// either axis is exactly a touching edge or corner, not a rounding
	// artifact to be fuzzed away.
	if xOverlap == 0 || yOverlap == 0 {
		return Tangent
	}
	return Intersection
}

// overlapExtent returns the length of the overlap between [amin, amax] and
// [bmin, bmax] on one axis, or a negative value if the intervals are
// disjoint.
func overlapExtent(amin, amax, bmin, bmax float64) float64 {
	lo := max(amin, bmin)
	hi := min(amax, bmax)
	return hi - lo
}
