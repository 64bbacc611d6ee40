package geometry

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec3 represents a 3D point, direction or normal
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new 3D vector
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Distance returns the distance between two points
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Min returns a vector with the minimum components of two vectors
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{
		X: math32.Min(v.X, other.X),
		Y: math32.Min(v.Y, other.Y),
		Z: math32.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{
		X: math32.Max(v.X, other.X),
		Y: math32.Max(v.Y, other.Y),
		Z: math32.Max(v.Z, other.Z),
	}
}

// IsFinite reports whether all three components are finite numbers
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Bits returns the IEEE-754 bit patterns of the three components.
// Vertices compare equal for welding purposes iff their Bits are equal,
// which keeps +0/-0 and distinct NaN payloads apart.
func (v Vec3) Bits() [3]uint32 {
	return [3]uint32{
		math.Float32bits(v.X),
		math.Float32bits(v.Y),
		math.Float32bits(v.Z),
	}
}
