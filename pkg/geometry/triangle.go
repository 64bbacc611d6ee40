package geometry

// minAreaSq is the squared-area cutoff below which a triangle is
// considered degenerate.
const minAreaSq = 1e-12

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vec3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vec3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// SignedVolume returns the signed volume of the tetrahedron formed by
// the triangle and the origin. The scalar triple product is evaluated in
// float64 so that summing millions of terms does not cancel away the
// float32 inputs.
func (t Triangle) SignedVolume() float64 {
	ax, ay, az := float64(t.V1.X), float64(t.V1.Y), float64(t.V1.Z)
	bx, by, bz := float64(t.V2.X), float64(t.V2.Y), float64(t.V2.Z)
	cx, cy, cz := float64(t.V3.X), float64(t.V3.Y), float64(t.V3.Z)

	// a . (b x c)
	triple := ax*(by*cz-bz*cy) + ay*(bz*cx-bx*cz) + az*(bx*cy-by*cx)
	return triple / 6.0
}

// IsValid reports whether the triangle is usable for measurement:
// finite coordinates, pairwise distinct vertices, and non-zero area.
func (t Triangle) IsValid() bool {
	if !t.V1.IsFinite() || !t.V2.IsFinite() || !t.V3.IsFinite() {
		return false
	}
	if t.V1 == t.V2 || t.V2 == t.V3 || t.V3 == t.V1 {
		return false
	}

	// The cross product of two edges is orthogonal to the triangle and
	// its length is twice the area.
	a := t.V2.Sub(t.V1)
	b := t.V3.Sub(t.V1)
	cross := a.Cross(b)

	return cross.Dot(cross) > minAreaSq
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	a := t.V2.Sub(t.V1)
	b := t.V3.Sub(t.V1)
	return float64(a.Cross(b).Length()) / 2.0
}

// Normal computes the unit normal implied by the vertex winding.
// Degenerate triangles yield the zero vector.
func (t Triangle) Normal() Vec3 {
	a := t.V2.Sub(t.V1)
	b := t.V3.Sub(t.V1)
	return a.Cross(b).Normalize()
}
