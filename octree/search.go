package octree

import (
	"math"

	"github.com/golang/geo/r3"
)

// RadiusNeighbors returns the indices of every point whose distance to the
// query is strictly less than radius. The order follows tree traversal and
// is deterministic for a fixed tree, but is not sorted by distance.
func (o *Octree) RadiusNeighbors(query r3.Vector, radius float64) []int {
	out := []int{}
	if o.root == nil || radius <= 0 {
		return out
	}
	o.radiusNeighbors(o.root, query, radius, radius*radius, &out, nil)
	return out
}

// RadiusNeighborsWithDistances is RadiusNeighbors, additionally returning
// the squared distance of every returned point in matching order.
func (o *Octree) RadiusNeighborsWithDistances(query r3.Vector, radius float64) ([]int, []float64) {
	out := []int{}
	sqDists := []float64{}
	if o.root == nil || radius <= 0 {
		return out, sqDists
	}
	o.radiusNeighbors(o.root, query, radius, radius*radius, &out, &sqDists)
	return out, sqDists
}

func (o *Octree) radiusNeighbors(oct *octant, query r3.Vector, radius, sqRadius float64, out *[]int, sqDists *[]float64) {
	cloud := o.holder.cloud()

	// The ball contains the whole octant, take its run without testing.
	if ballContains(query, sqRadius, oct) {
		idx := oct.start
		for i := 0; i < oct.size; i++ {
			*out = append(*out, idx)
			if sqDists != nil {
				*sqDists = append(*sqDists, cloud.At(idx).Sub(query).Norm2())
			}
			idx = o.succ[idx]
		}
		return
	}

	if oct.leaf {
		idx := oct.start
		for i := 0; i < oct.size; i++ {
			if d := cloud.At(idx).Sub(query).Norm2(); d < sqRadius {
				*out = append(*out, idx)
				if sqDists != nil {
					*sqDists = append(*sqDists, d)
				}
			}
			idx = o.succ[idx]
		}
		return
	}

	for _, child := range oct.children {
		if child == nil || !ballOverlaps(query, radius, sqRadius, child) {
			continue
		}
		o.radiusNeighbors(child, query, radius, sqRadius, out, sqDists)
	}
}

// FindNeighbor returns the index of the point closest to the query, or
// false when the tree is empty. Ties resolve to the first qualifying point
// in search order: at every internal octant the child holding the query is
// visited first, then the remaining children in Morton order, and leaf runs
// in successor order. Repeated queries over the same tree return the same
// index.
func (o *Octree) FindNeighbor(query r3.Vector) (int, bool) {
	return o.findNeighbor(query, 0, false)
}

// FindNeighborBeyond returns the index of the point closest to the query
// among the points whose distance is strictly greater than minDistance. A
// minDistance of zero suppresses exact self matches; a negative value
// behaves like FindNeighbor.
func (o *Octree) FindNeighborBeyond(query r3.Vector, minDistance float64) (int, bool) {
	if minDistance < 0 {
		return o.findNeighbor(query, 0, false)
	}
	return o.findNeighbor(query, minDistance*minDistance, true)
}

// neighborState carries the current best candidate down the nearest
// neighbor recursion. Distances are squared except bestDist, which the
// overlap pruning needs in linear form.
type neighborState struct {
	query  r3.Vector
	minSq  float64
	hasMin bool

	bestSq   float64
	bestDist float64
	best     int
}

func (o *Octree) findNeighbor(query r3.Vector, minSq float64, hasMin bool) (int, bool) {
	if o.root == nil {
		return 0, false
	}
	state := &neighborState{
		query:    query,
		minSq:    minSq,
		hasMin:   hasMin,
		bestSq:   math.Inf(1),
		bestDist: math.Inf(1),
		best:     -1,
	}
	o.nearest(o.root, state)
	if state.best < 0 {
		return 0, false
	}
	return state.best, true
}

// nearest reports whether the ball around the current best candidate is
// fully inside oct, in which case no sibling or ancestor can improve the
// result and the whole search stops.
func (o *Octree) nearest(oct *octant, s *neighborState) bool {
	cloud := o.holder.cloud()

	if oct.leaf {
		idx := oct.start
		for i := 0; i < oct.size; i++ {
			d := cloud.At(idx).Sub(s.query).Norm2()
			if (!s.hasMin || d > s.minSq) && d < s.bestSq {
				s.bestSq = d
				s.bestDist = math.Sqrt(d)
				s.best = idx
			}
			idx = o.succ[idx]
		}
		return ballInside(s.query, s.bestDist, oct)
	}

	// Descend into the octant holding the query first.
	code := mortonCode(s.query, oct.center)
	if child := oct.children[code]; child != nil {
		if o.nearest(child, s) {
			return true
		}
	}
	for c, child := range oct.children {
		if c == code || child == nil {
			continue
		}
		if !ballOverlaps(s.query, s.bestDist, s.bestSq, child) {
			continue
		}
		if o.nearest(child, s) {
			return true
		}
	}
	return ballInside(s.query, s.bestDist, oct)
}
