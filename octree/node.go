package octree

import "github.com/golang/geo/r3"

// octant is a cubic region of the tree together with the run of point
// indices it owns in the successor array. Children are indexed by the
// 3-bit Morton code of their position relative to the center.
type octant struct {
	center r3.Vector
	extent float64

	start, end int
	size       int

	leaf     bool
	children [8]*octant
}

// buildOctant partitions the run of size points beginning at start into up
// to eight child runs by relinking the successor array, recursing until a
// run fits the bucket size or the octant reaches the minimum extent.
func (o *Octree) buildOctant(center r3.Vector, extent float64, start, end, size int) *octant {
	oct := &octant{
		center: center,
		extent: extent,
		start:  start,
		end:    end,
		size:   size,
		leaf:   true,
	}
	if size <= int(o.bucketSize) || extent <= 2*o.minExtent {
		return oct
	}
	oct.leaf = false

	cloud := o.holder.cloud()
	var childStart, childEnd, childSize [8]int

	// Thread every point of the run onto the bucket its Morton code selects.
	// Each arrival rewrites only the link of its bucket's current last member,
	// so every bucket ends up as one linked run in arrival order.
	idx := start
	for i := 0; i < size; i++ {
		next := o.succ[idx]
		code := mortonCode(cloud.At(idx), center)
		if childSize[code] == 0 {
			childStart[code] = idx
		} else {
			o.succ[childEnd[code]] = idx
		}
		childSize[code]++
		childEnd[code] = idx
		idx = next
	}

	// Build children in fixed Morton order and concatenate their runs.
	childExtent := 0.5 * extent
	first := true
	var lastEnd int
	for c := 0; c < 8; c++ {
		if childSize[c] == 0 {
			continue
		}
		child := o.buildOctant(childCenter(center, extent, c), childExtent, childStart[c], childEnd[c], childSize[c])
		oct.children[c] = child
		if first {
			oct.start = child.start
			first = false
		} else {
			o.succ[lastEnd] = child.start
		}
		lastEnd = child.end
		oct.end = child.end
	}
	return oct
}

// runIndices walks an octant's successor run and returns it as a slice.
func (o *Octree) runIndices(oct *octant) []int {
	out := make([]int, 0, oct.size)
	idx := oct.start
	for i := 0; i < oct.size; i++ {
		out = append(out, idx)
		idx = o.succ[idx]
	}
	return out
}
