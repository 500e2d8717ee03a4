package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// MetaData holds the axis-aligned bounds of a set of points.
type MetaData struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// NewMetaData creates an empty MetaData whose bounds are inverted so that
// the first Merge sets them.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64, MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64, MaxY: -math.MaxFloat64,
		MinZ: math.MaxFloat64, MaxZ: -math.MaxFloat64,
	}
}

// Merge grows the bounds to include the given point.
func (meta *MetaData) Merge(p r3.Vector) {
	if p.X < meta.MinX {
		meta.MinX = p.X
	}
	if p.X > meta.MaxX {
		meta.MaxX = p.X
	}
	if p.Y < meta.MinY {
		meta.MinY = p.Y
	}
	if p.Y > meta.MaxY {
		meta.MaxY = p.Y
	}
	if p.Z < meta.MinZ {
		meta.MinZ = p.Z
	}
	if p.Z > meta.MaxZ {
		meta.MaxZ = p.Z
	}
}

// TotalX returns the extent of the bounds along the x axis.
func (meta *MetaData) TotalX() float64 {
	return meta.MaxX - meta.MinX
}

// TotalY returns the extent of the bounds along the y axis.
func (meta *MetaData) TotalY() float64 {
	return meta.MaxY - meta.MinY
}

// TotalZ returns the extent of the bounds along the z axis.
func (meta *MetaData) TotalZ() float64 {
	return meta.MaxZ - meta.MinZ
}

// Center returns the midpoint of the bounds.
func (meta *MetaData) Center() r3.Vector {
	return r3.Vector{
		X: (meta.MaxX + meta.MinX) / 2.,
		Y: (meta.MaxY + meta.MinY) / 2.,
		Z: (meta.MaxZ + meta.MinZ) / 2.,
	}
}

// MaxSideLength returns the longest edge of the bounds.
func (meta *MetaData) MaxSideLength() float64 {
	return math.Max(meta.TotalX(), math.Max(meta.TotalY(), meta.TotalZ()))
}

// CloudMetaData computes the bounds of all points in a cloud.
func CloudMetaData(c Cloud) MetaData {
	meta := NewMetaData()
	for i := 0; i < c.Size(); i++ {
		meta.Merge(c.At(i))
	}
	return meta
}
