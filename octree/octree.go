// Package octree implements an index-based octree over three dimensional
// point clouds, supporting radius and nearest neighbor queries.
//
// The tree does not store points itself. Construction threads the indices of
// the backing cloud into singly-linked runs through a shared successor array
// so that every octant owns one contiguous run. Queries prune with ball/cube
// predicates and, when the query ball contains a whole octant, accept its run
// without any per-point distance test.
package octree

import (
	"context"
	"fmt"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"go.viam.com/spatialindex/pointcloud"
)

const defaultBucketSize = 32

// Config holds the construction options for an octree.
type Config struct {
	// BucketSize is the maximum number of points in a leaf octant. Zero
	// selects the default of 32.
	BucketSize uint32
	// CopyPoints makes the tree take an owned copy of the cloud instead of
	// borrowing it from the caller.
	CopyPoints bool
	// MinExtent stops subdivision once an octant's half-side is at most
	// twice this value. Zero disables the cutoff.
	MinExtent float64
}

// DefaultConfig returns the construction defaults.
func DefaultConfig() Config {
	return Config{BucketSize: defaultBucketSize}
}

// cloudHolder pins either a borrowed cloud or an owned copy of one.
type cloudHolder struct {
	borrowed pointcloud.Cloud
	owned    pointcloud.VectorCloud
}

func (h *cloudHolder) cloud() pointcloud.Cloud {
	if h.owned != nil {
		return h.owned
	}
	return h.borrowed
}

func (h *cloudHolder) release() {
	h.borrowed = nil
	h.owned = nil
}

// Octree is an index octree over a point cloud. The tree is immutable after
// construction: concurrent read-only queries are safe as long as no Clear
// runs, but OctantsAtDepth retains state and must not race with queries that
// use its enumeration.
type Octree struct {
	logger golog.Logger

	bucketSize uint32
	minExtent  float64

	holder cloudHolder
	succ   []int
	root   *octant
	size   int
	bounds pointcloud.MetaData

	enumerated []*octant
}

func newOctree(cloud pointcloud.Cloud, cfg Config, logger golog.Logger) (*Octree, error) {
	if cloud == nil {
		return nil, errors.New("cannot build an octree over a nil cloud")
	}
	if cfg.MinExtent < 0 {
		return nil, errors.Errorf("invalid minimum extent (%.2f) for octree", cfg.MinExtent)
	}
	if cfg.BucketSize == 0 {
		cfg.BucketSize = defaultBucketSize
	}
	if logger == nil {
		logger = golog.NewLogger("octree")
	}
	o := &Octree{
		logger:     logger,
		bucketSize: cfg.BucketSize,
		minExtent:  cfg.MinExtent,
		bounds:     pointcloud.NewMetaData(),
	}
	if cfg.CopyPoints {
		o.holder.owned = pointcloud.CloudToVectors(cloud)
	} else {
		o.holder.borrowed = cloud
	}
	return o, nil
}

// New builds an octree over every point of the given cloud. An empty cloud
// yields a valid tree whose queries return no results.
func New(ctx context.Context, cloud pointcloud.Cloud, cfg Config, logger golog.Logger) (*Octree, error) {
	o, err := newOctree(cloud, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := cloud.Size()
	if n == 0 {
		return o, nil
	}
	o.succ = make([]int, n)
	for i := 0; i < n; i++ {
		o.succ[i] = i + 1
	}
	o.bounds = pointcloud.CloudMetaData(o.holder.cloud())
	o.size = n
	o.root = o.buildOctant(o.bounds.Center(), o.bounds.MaxSideLength()/2., 0, n-1, n)
	o.logger.Debugf("built octree over %d points, root extent %f", n, o.root.extent)
	return o, nil
}

// NewFromIndices builds an octree over the subset of the cloud named by
// indices, in that order. Points not named stay outside the tree. An empty
// index list yields a valid empty tree.
func NewFromIndices(
	ctx context.Context,
	cloud pointcloud.Cloud,
	indices []int,
	cfg Config,
	logger golog.Logger,
) (*Octree, error) {
	o, err := newOctree(cloud, cfg, logger)
	if err != nil {
		return nil, err
	}
	n := cloud.Size()
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, errors.Errorf("index %d is outside the cloud of size %d", idx, n)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return o, nil
	}
	o.succ = make([]int, n)
	for i := 0; i < n; i++ {
		o.succ[i] = i + 1
	}
	// Imprint the caller's order onto the successor array before computing
	// bounds, so the root run follows the index list.
	c := o.holder.cloud()
	meta := pointcloud.NewMetaData()
	for pos, idx := range indices {
		meta.Merge(c.At(idx))
		if pos+1 < len(indices) {
			o.succ[idx] = indices[pos+1]
		}
	}
	o.bounds = meta
	o.size = len(indices)
	o.root = o.buildOctant(meta.Center(), meta.MaxSideLength()/2., indices[0], indices[len(indices)-1], len(indices))
	o.logger.Debugf("built octree over %d of %d points, root extent %f", len(indices), n, o.root.extent)
	return o, nil
}

// Size returns the number of points indexed by the tree.
func (o *Octree) Size() int {
	return o.size
}

// Bounds returns the axis-aligned bounds of the indexed points.
func (o *Octree) Bounds() pointcloud.MetaData {
	return o.bounds
}

// String returns a short summary of the tree.
func (o *Octree) String() string {
	if o.root == nil {
		return "empty octree"
	}
	return fmt.Sprintf("octree of %d points, root extent %f", o.size, o.root.extent)
}

// Clear releases the tree, the successor array and any owned copy of the
// cloud. The octree cannot be queried afterwards.
func (o *Octree) Clear() {
	o.root = nil
	o.succ = nil
	o.size = 0
	o.bounds = pointcloud.NewMetaData()
	o.enumerated = nil
	o.holder.release()
}
