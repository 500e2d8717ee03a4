package octree

import (
	"math"

	"github.com/golang/geo/r3"
)

// mortonCode returns the 3-bit child code of p relative to center. A
// coordinate strictly greater than the center selects the high side; points
// exactly on a separating plane stay on the low side.
func mortonCode(p, center r3.Vector) int {
	code := 0
	if p.X > center.X {
		code |= 1
	}
	if p.Y > center.Y {
		code |= 2
	}
	if p.Z > center.Z {
		code |= 4
	}
	return code
}

// childCenter returns the center of the child octant selected by code
// inside a parent of the given center and extent.
func childCenter(center r3.Vector, extent float64, code int) r3.Vector {
	shift := 0.5 * extent
	c := center
	if code&1 != 0 {
		c.X += shift
	} else {
		c.X -= shift
	}
	if code&2 != 0 {
		c.Y += shift
	} else {
		c.Y -= shift
	}
	if code&4 != 0 {
		c.Z += shift
	} else {
		c.Z -= shift
	}
	return c
}

// ballInside reports whether the closed ball of the given radius around q is
// fully contained in the octant's cube.
func ballInside(q r3.Vector, radius float64, oct *octant) bool {
	d := q.Sub(oct.center)
	if math.Abs(d.X)+radius > oct.extent {
		return false
	}
	if math.Abs(d.Y)+radius > oct.extent {
		return false
	}
	if math.Abs(d.Z)+radius > oct.extent {
		return false
	}
	return true
}

// ballContains reports whether the octant's cube lies entirely inside the
// ball of squared radius sqRadius around q. The corner farthest from q
// decides.
func ballContains(q r3.Vector, sqRadius float64, oct *octant) bool {
	d := q.Sub(oct.center)
	x := math.Abs(d.X) + oct.extent
	y := math.Abs(d.Y) + oct.extent
	z := math.Abs(d.Z) + oct.extent
	return x*x+y*y+z*z < sqRadius
}

// ballOverlaps reports whether the ball of the given radius around q
// intersects the octant's cube. A ball that exactly touches a corner does
// not overlap.
func ballOverlaps(q r3.Vector, radius, sqRadius float64, oct *octant) bool {
	d := q.Sub(oct.center)
	x := math.Abs(d.X)
	y := math.Abs(d.Y)
	z := math.Abs(d.Z)

	maxDist := radius + oct.extent
	if x > maxDist || y > maxDist || z > maxDist {
		return false
	}

	// Inside the face region on at least two axes means the ball pierces a
	// face of the cube.
	numLessExtent := 0
	if x < oct.extent {
		numLessExtent++
	}
	if y < oct.extent {
		numLessExtent++
	}
	if z < oct.extent {
		numLessExtent++
	}
	if numLessExtent > 1 {
		return true
	}

	// Edge or corner region.
	x = math.Max(x-oct.extent, 0)
	y = math.Max(y-oct.extent, 0)
	z = math.Max(z-oct.extent, 0)
	return x*x+y*y+z*z < sqRadius
}
