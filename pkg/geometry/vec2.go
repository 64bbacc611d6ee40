package geometry

// Vec2 represents a 2D point or texture coordinate
type Vec2 struct {
	U, V float32
}

// NewVec2 creates a new 2D vector
func NewVec2(u, v float32) Vec2 {
	return Vec2{U: u, V: v}
}

// Sub returns the difference between two vectors
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{U: v.U - other.U, V: v.V - other.V}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float32 {
	return v.U*other.U + v.V*other.V
}

// Cross returns the z component of the 2D cross product.
// Its sign gives the turn direction from v to other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.U*other.V - v.V*other.U
}
