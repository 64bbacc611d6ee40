package geometry

import "github.com/chewxy/math32"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vec3
	Max Vec3
}

// NewBoundingBox creates an empty bounding box that extends to the first
// point added to it
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vec3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Union expands the bounding box to include another box
func (b *BoundingBox) Union(other BoundingBox) {
	b.Min = b.Min.Min(other.Min)
	b.Max = b.Max.Max(other.Max)
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vec3 {
	return Vec3{
		X: b.Min.X + (b.Max.X-b.Min.X)/2,
		Y: b.Min.Y + (b.Max.Y-b.Min.Y)/2,
		Z: b.Min.Z + (b.Max.Z-b.Min.Z)/2,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float32 {
	return b.Size().Length()
}
