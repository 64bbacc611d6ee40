package mesh

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/triangulate"
)

// IndexedMesh is a deduplicated view of a mesh: a vertex array with no
// two entries sharing all three coordinate bit patterns, and triangle
// faces as index triples into it. It is derived on demand and is not
// kept in sync with the Mesh it came from.
type IndexedMesh struct {
	Vertices []geometry.Vec3
	Faces    [][3]int
}

// welder assigns stable indices to vertices in first-occurrence order,
// merging two vertices iff their coordinate bit patterns are identical.
// Numeric equality is deliberately not used: -0 and +0 stay distinct,
// as do NaNs with different payloads, so expanding the indexed form
// reproduces the input bit-for-bit.
type welder struct {
	vertices []geometry.Vec3
	index    map[[3]uint32]int
}

func newWelder() *welder {
	return &welder{index: make(map[[3]uint32]int)}
}

func (w *welder) add(v geometry.Vec3) int {
	key := v.Bits()
	if idx, ok := w.index[key]; ok {
		return idx
	}
	idx := len(w.vertices)
	w.vertices = append(w.vertices, v)
	w.index[key] = idx
	return idx
}

// WeldTriangles welds a flat triangle list into an IndexedMesh.
func WeldTriangles(triangles []geometry.Triangle) *IndexedMesh {
	w := newWelder()
	faces := make([][3]int, 0, len(triangles))
	for _, tri := range triangles {
		faces = append(faces, [3]int{w.add(tri.V1), w.add(tri.V2), w.add(tri.V3)})
	}
	return &IndexedMesh{Vertices: w.vertices, Faces: faces}
}

// Index builds an IndexedMesh from a polygon mesh. Faces with more than
// 3 vertices are ear-clipped; faces with fewer than 3 are dropped.
// Triangulation runs per face across CPUs, and a failing face surfaces
// its *triangulate.Failure exactly as the serial path would.
func Index(m *Mesh) (*IndexedMesh, error) {
	perFace := make([][]geometry.Triangle, len(m.Faces))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, face := range m.Faces {
		i, face := i, face
		g.Go(func() error {
			switch {
			case len(face.V) < 3:
				// contributes nothing
			case len(face.V) == 3:
				perFace[i] = []geometry.Triangle{{
					V1: m.Vertices[face.V[0]],
					V2: m.Vertices[face.V[1]],
					V3: m.Vertices[face.V[2]],
				}}
			default:
				triangles, err := triangulate.Polygon(m.Vertices, face.V)
				if err != nil {
					return err
				}
				perFace[i] = triangles
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w := newWelder()
	var faces [][3]int
	for _, triangles := range perFace {
		for _, tri := range triangles {
			faces = append(faces, [3]int{w.add(tri.V1), w.add(tri.V2), w.add(tri.V3)})
		}
	}
	return &IndexedMesh{Vertices: w.vertices, Faces: faces}, nil
}

// Triangles expands the indexed form back into a flat triangle list.
// Every coordinate is bit-identical to the welded input.
func (im *IndexedMesh) Triangles() []geometry.Triangle {
	triangles := make([]geometry.Triangle, 0, len(im.Faces))
	for _, face := range im.Faces {
		triangles = append(triangles, geometry.Triangle{
			V1: im.Vertices[face[0]],
			V2: im.Vertices[face[1]],
			V3: im.Vertices[face[2]],
		})
	}
	return triangles
}

// Mesh converts the indexed form into a plain Mesh sharing the
// deduplicated vertex array.
func (im *IndexedMesh) Mesh() *Mesh {
	faces := make([]Face, 0, len(im.Faces))
	for _, face := range im.Faces {
		faces = append(faces, Face{V: []int{face[0], face[1], face[2]}})
	}
	return &Mesh{Vertices: im.Vertices, Faces: faces}
}
