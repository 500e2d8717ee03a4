// Package pointcloud defines the point containers the spatial index
// structures in this module are built over.
package pointcloud

import "github.com/golang/geo/r3"

// Cloud is a read-only collection of points addressable by index. The
// spatial index structures hold a Cloud for their whole lifetime; callers
// must not mutate a borrowed cloud while an index over it is alive.
type Cloud interface {
	// Size returns the number of points in the cloud.
	Size() int
	// At returns the point stored at the given index.
	At(i int) r3.Vector
}

// NewVector creates a new vector with the given coordinates; it is shorthand
// for r3.Vector{X: x, Y: y, Z: z}.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// VectorCloud is a slice-backed Cloud.
type VectorCloud []r3.Vector

// Size returns the number of points in the cloud.
func (vc VectorCloud) Size() int {
	return len(vc)
}

// At returns the point stored at the given index.
func (vc VectorCloud) At(i int) r3.Vector {
	return vc[i]
}

// Clone returns an owned copy of the cloud.
func (vc VectorCloud) Clone() VectorCloud {
	out := make(VectorCloud, len(vc))
	copy(out, vc)
	return out
}

// CloudToVectors copies the contents of an arbitrary cloud into a
// VectorCloud.
func CloudToVectors(c Cloud) VectorCloud {
	out := make(VectorCloud, c.Size())
	for i := 0; i < c.Size(); i++ {
		out[i] = c.At(i)
	}
	return out
}

// CloudContains returns whether a cloud has a point at the given position.
func CloudContains(c Cloud, x, y, z float64) bool {
	for i := 0; i < c.Size(); i++ {
		p := c.At(i)
		if p.X == x && p.Y == y && p.Z == z {
			return true
		}
	}
	return false
}

// CloudCentroid returns the centroid of a cloud, or the zero vector if the
// cloud has no points.
func CloudCentroid(c Cloud) r3.Vector {
	n := c.Size()
	if n == 0 {
		return r3.Vector{}
	}
	sum := r3.Vector{}
	for i := 0; i < n; i++ {
		sum = sum.Add(c.At(i))
	}
	return sum.Mul(1.0 / float64(n))
}
