package octree

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/spatialindex/pointcloud"
)

func TestOctantsAtDepthErrors(t *testing.T) {
	tree := createNewOctree(t, gridCloud(100, 17), Config{BucketSize: 8})

	_, err := tree.OctantsAtDepth(0)
	test.That(t, err, test.ShouldBeError, errors.Errorf("invalid octant depth %d, must be at least 1", 0))
	_, err = tree.OctantsAtDepth(-2)
	test.That(t, err, test.ShouldBeError, errors.Errorf("invalid octant depth %d, must be at least 1", -2))

	empty := createNewOctree(t, pointcloud.VectorCloud{}, DefaultConfig())
	_, err = empty.OctantsAtDepth(1)
	test.That(t, err, test.ShouldBeError, errors.New("octree is empty"))
}

func TestOctantsAtDepth(t *testing.T) {
	cloud := gridCloud(1000, 42)
	tree := createNewOctree(t, cloud, Config{BucketSize: 8})

	t.Run("depth one partitions the whole cloud", func(t *testing.T) {
		lists, err := tree.OctantsAtDepth(1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(lists), test.ShouldBeGreaterThan, 0)

		var union []int
		for _, list := range lists {
			test.That(t, len(list), test.ShouldBeGreaterThan, 0)
			union = append(union, list...)
		}
		sort.Ints(union)
		test.That(t, union, test.ShouldResemble, allIndices(1000))
	})

	t.Run("deeper octants stay disjoint and inside their cubes", func(t *testing.T) {
		lists, err := tree.OctantsAtDepth(2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(lists), test.ShouldBeGreaterThan, 0)
		test.That(t, len(tree.enumerated), test.ShouldEqual, len(lists))

		seen := map[int]bool{}
		for i, list := range lists {
			oct := tree.enumerated[i]
			test.That(t, list, test.ShouldHaveLength, oct.size)
			for _, idx := range list {
				test.That(t, seen[idx], test.ShouldBeFalse)
				seen[idx] = true
				test.That(t, ballInside(cloud.At(idx), 0, oct), test.ShouldBeTrue)
			}
		}
	})
}

func TestRadiusSearchLimited(t *testing.T) {
	cloud := gridCloud(1000, 42)
	tree := createNewOctree(t, cloud, Config{BucketSize: 8})

	t.Run("before any enumeration", func(t *testing.T) {
		_, _, err := tree.RadiusSearchLimited(0, pointcloud.NewVector(0, 0, 0), 1)
		test.That(t, err, test.ShouldBeError, errors.Errorf("octant index %d is outside the %d enumerated octants", 0, 0))
	})

	lists, err := tree.OctantsAtDepth(2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(lists), test.ShouldBeGreaterThan, 1)

	t.Run("index out of range", func(t *testing.T) {
		_, _, err := tree.RadiusSearchLimited(-1, pointcloud.NewVector(0, 0, 0), 1)
		test.That(t, err, test.ShouldBeError,
			errors.Errorf("octant index %d is outside the %d enumerated octants", -1, len(lists)))
		_, _, err = tree.RadiusSearchLimited(len(lists), pointcloud.NewVector(0, 0, 0), 1)
		test.That(t, err, test.ShouldBeError,
			errors.Errorf("octant index %d is outside the %d enumerated octants", len(lists), len(lists)))
	})

	t.Run("tiny ball at each octant center stays local", func(t *testing.T) {
		for i, list := range lists {
			members := map[int]bool{}
			for _, idx := range list {
				members[idx] = true
			}

			center := tree.enumerated[i].center
			got, ok, err := tree.RadiusSearchLimited(i, center, 0.01)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldBeTrue)
			for _, idx := range got {
				test.That(t, members[idx], test.ShouldBeTrue)
				test.That(t, cloud.At(idx).Sub(center).Norm2(), test.ShouldBeLessThan, 0.01*0.01)
			}
		}
	})

	t.Run("escaping ball falls back when another octant overlaps", func(t *testing.T) {
		center := tree.enumerated[0].center
		_, ok, err := tree.RadiusSearchLimited(0, center, 100)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("distances parallel the indices", func(t *testing.T) {
		oct := tree.enumerated[0]
		radius := oct.extent / 2
		got, sqDists, ok, err := tree.RadiusSearchLimitedWithDistances(0, oct.center, radius)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, sqDists, test.ShouldHaveLength, len(got))
		for i, idx := range got {
			test.That(t, sqDists[i], test.ShouldEqual, cloud.At(idx).Sub(oct.center).Norm2())
		}

		_, _, _, err = tree.RadiusSearchLimitedWithDistances(-1, oct.center, radius)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("local result matches a filtered radius query", func(t *testing.T) {
		oct := tree.enumerated[0]
		members := map[int]bool{}
		for _, idx := range lists[0] {
			members[idx] = true
		}

		radius := oct.extent / 2
		got, ok, err := tree.RadiusSearchLimited(0, oct.center, radius)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)

		want := []int{}
		for _, idx := range tree.RadiusNeighbors(oct.center, radius) {
			if members[idx] {
				want = append(want, idx)
			}
		}
		test.That(t, sorted(got), test.ShouldResemble, sorted(want))
	})
}
