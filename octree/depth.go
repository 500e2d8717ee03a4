package octree

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// OctantsAtDepth returns the point indices of every octant at the given
// depth of the tree, root children being depth one. Leaves shallower than
// the requested depth are omitted. The enumerated octants are retained, in
// the same order as the returned lists, for use with RadiusSearchLimited.
func (o *Octree) OctantsAtDepth(depth int) ([][]int, error) {
	if depth < 1 {
		return nil, errors.Errorf("invalid octant depth %d, must be at least 1", depth)
	}
	if o.root == nil {
		return nil, errors.New("octree is empty")
	}
	var octs []*octant
	collectAtDepth(o.root, 0, depth, &octs)
	o.enumerated = octs

	// Runs of distinct octants are disjoint, so every extraction owns its
	// output slot and only reads shared state.
	out := make([][]int, len(octs))
	var wg sync.WaitGroup
	wg.Add(len(octs))
	for i, oct := range octs {
		i, oct := i, oct
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			out[i] = o.runIndices(oct)
		})
	}
	wg.Wait()
	o.logger.Debugf("enumerated %d octants at depth %d", len(octs), depth)
	return out, nil
}

func collectAtDepth(oct *octant, depth, target int, out *[]*octant) {
	if depth == target {
		*out = append(*out, oct)
		return
	}
	if oct.leaf {
		return
	}
	for _, child := range oct.children {
		if child == nil {
			continue
		}
		collectAtDepth(child, depth+1, target, out)
	}
}

// RadiusSearchLimited runs a radius query against one octant of the last
// OctantsAtDepth enumeration. The bool result reports whether that octant
// alone could have answered the query: when the ball escapes the octant and
// any other enumerated octant overlaps it, the result is false and the
// caller has to fall back to a full RadiusNeighbors query.
func (o *Octree) RadiusSearchLimited(octantIndex int, query r3.Vector, radius float64) ([]int, bool, error) {
	if octantIndex < 0 || octantIndex >= len(o.enumerated) {
		return nil, false, errors.Errorf(
			"octant index %d is outside the %d enumerated octants", octantIndex, len(o.enumerated))
	}
	oct := o.enumerated[octantIndex]
	sqRadius := radius * radius
	if !ballInside(query, radius, oct) {
		for i, other := range o.enumerated {
			if i == octantIndex {
				continue
			}
			if ballOverlaps(query, radius, sqRadius, other) {
				return nil, false, nil
			}
		}
	}
	out := []int{}
	if radius > 0 {
		o.radiusNeighbors(oct, query, radius, sqRadius, &out, nil)
	}
	return out, true, nil
}

// RadiusSearchLimitedWithDistances is RadiusSearchLimited, additionally
// returning the squared distance of every returned point in matching order.
func (o *Octree) RadiusSearchLimitedWithDistances(
	octantIndex int,
	query r3.Vector,
	radius float64,
) ([]int, []float64, bool, error) {
	if octantIndex < 0 || octantIndex >= len(o.enumerated) {
		return nil, nil, false, errors.Errorf(
			"octant index %d is outside the %d enumerated octants", octantIndex, len(o.enumerated))
	}
	oct := o.enumerated[octantIndex]
	sqRadius := radius * radius
	if !ballInside(query, radius, oct) {
		for i, other := range o.enumerated {
			if i == octantIndex {
				continue
			}
			if ballOverlaps(query, radius, sqRadius, other) {
				return nil, nil, false, nil
			}
		}
	}
	out := []int{}
	sqDists := []float64{}
	if radius > 0 {
		o.radiusNeighbors(oct, query, radius, sqRadius, &out, &sqDists)
	}
	return out, sqDists, true, nil
}
