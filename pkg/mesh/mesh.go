// Package mesh holds the in-memory surface representation shared by the
// codecs and the analysis code: a polygon Mesh with optional normals,
// texture coordinates and face groups, and a deduplicated IndexedMesh
// derived from it on demand.
package mesh

import (
	"fmt"

	"github.com/philipparndt/meshtool/pkg/geometry"
)

// Face is an ordered list of vertex indices, optionally paired with
// texture and normal indices. VT and VN are parallel to V but may be
// shorter; a missing entry means the corner has no texture/normal.
// All indices are 0-based.
type Face struct {
	V  []int
	VT []int
	VN []int
}

// TriangleCount returns the number of triangles a fan decomposition of
// the face produces. Faces with fewer than 3 vertices yield 0.
func (f Face) TriangleCount() int {
	if len(f.V) < 3 {
		return 0
	}
	return len(f.V) - 2
}

// Group is a named, half-open range [Start,End) over the face array.
// Groups are stored in declaration order; consecutive groups share a
// boundary and together they cover every face exactly once.
type Group struct {
	Name     string
	Material string
	Start    int
	End      int
}

// Mesh is the shared surface value produced by a codec and consumed by
// the analysis code. Vertices/Normals/Textures are flat arrays indexed
// by the faces.
type Mesh struct {
	Vertices     []geometry.Vec3
	Normals      []geometry.Vec3
	Textures     []geometry.Vec2
	Faces        []Face
	Groups       []Group
	MaterialLibs []string
}

// New creates an empty mesh
func New() *Mesh {
	return &Mesh{}
}

// FromTriangles builds a triangle-soup mesh: three vertices per
// triangle, one triangular face each, no sharing.
func FromTriangles(triangles []geometry.Triangle) *Mesh {
	m := &Mesh{
		Vertices: make([]geometry.Vec3, 0, len(triangles)*3),
		Faces:    make([]Face, 0, len(triangles)),
	}
	for _, tri := range triangles {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, tri.V1, tri.V2, tri.V3)
		m.Faces = append(m.Faces, Face{V: []int{base, base + 1, base + 2}})
	}
	return m
}

// TriangleCount returns the total fan-triangulation triangle count over
// all faces.
func (m *Mesh) TriangleCount() int {
	count := 0
	for _, face := range m.Faces {
		count += face.TriangleCount()
	}
	return count
}

// FaceTriangles fan-decomposes the i-th face into triangles (v0, vi,
// vi+1). The caller must have validated the mesh; see Validate.
func (m *Mesh) FaceTriangles(i int) []geometry.Triangle {
	face := m.Faces[i]
	if len(face.V) < 3 {
		return nil
	}
	triangles := make([]geometry.Triangle, 0, len(face.V)-2)
	v0 := m.Vertices[face.V[0]]
	for j := 1; j < len(face.V)-1; j++ {
		triangles = append(triangles, geometry.Triangle{
			V1: v0,
			V2: m.Vertices[face.V[j]],
			V3: m.Vertices[face.V[j+1]],
		})
	}
	return triangles
}

// IndexError reports a face index that points outside the referenced
// array. It is a contract violation by the producing codec, never
// silently clamped.
type IndexError struct {
	Space string // "vertex", "texture" or "normal"
	Face  int
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face %d references %s index %d, but the mesh has %d",
		e.Face, e.Space, e.Index, e.Len)
}

// Validate checks that every index referenced by every face is inside
// the corresponding array. Returns the first *IndexError found, or nil.
func (m *Mesh) Validate() error {
	for i, face := range m.Faces {
		for _, v := range face.V {
			if v < 0 || v >= len(m.Vertices) {
				return &IndexError{Space: "vertex", Face: i, Index: v, Len: len(m.Vertices)}
			}
		}
		for _, vt := range face.VT {
			if vt < 0 || vt >= len(m.Textures) {
				return &IndexError{Space: "texture", Face: i, Index: vt, Len: len(m.Textures)}
			}
		}
		for _, vn := range face.VN {
			if vn < 0 || vn >= len(m.Normals) {
				return &IndexError{Space: "normal", Face: i, Index: vn, Len: len(m.Normals)}
			}
		}
	}
	return nil
}
