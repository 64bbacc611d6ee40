package analysis

import (
	"math"
	"sync"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

// Volume computes the enclosed volume of the mesh by summing the signed
// tetrahedron volume of every fan triangle with Kahan compensation.
// The result is meaningful only for a watertight, consistently oriented
// mesh; no such validation is performed. An empty mesh has volume 0 by
// definition.
//
// At parallelThreshold faces and above, the faces are split into
// volumeChunkSize chunks summed concurrently, each with its own
// compensation. The partials are then added plainly, so the parallel
// result can differ from the serial one by the rounding of one add per
// chunk, within tolerance but not bit-identical.
func Volume(m *mesh.Mesh) float64 {
	if len(m.Faces) == 0 {
		return 0
	}

	if len(m.Faces) < parallelThreshold {
		return math.Abs(kahanFaces(m, 0, len(m.Faces)))
	}

	numChunks := (len(m.Faces) + volumeChunkSize - 1) / volumeChunkSize
	partials := make([]float64, numChunks)

	var wg sync.WaitGroup
	for i := range partials {
		i := i
		start := i * volumeChunkSize
		end := min(start+volumeChunkSize, len(m.Faces))
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[i] = kahanFaces(m, start, end)
		}()
	}
	wg.Wait()

	total := 0.0
	for _, partial := range partials {
		total += partial
	}
	return math.Abs(total)
}

// VolumeOfTriangles is Volume for a flat triangle list, for call sites
// that never build a full mesh.
func VolumeOfTriangles(triangles []geometry.Triangle) float64 {
	if len(triangles) == 0 {
		return 0
	}

	if len(triangles) < parallelThreshold {
		return math.Abs(kahanTriangles(triangles))
	}

	numChunks := (len(triangles) + volumeChunkSize - 1) / volumeChunkSize
	partials := make([]float64, numChunks)

	var wg sync.WaitGroup
	for i := range partials {
		i := i
		start := i * volumeChunkSize
		end := min(start+volumeChunkSize, len(triangles))
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[i] = kahanTriangles(triangles[start:end])
		}()
	}
	wg.Wait()

	total := 0.0
	for _, partial := range partials {
		total += partial
	}
	return math.Abs(total)
}

// kahanFaces sums the signed volumes of the fan triangles of faces
// [start,end) with Kahan compensation. Faces with fewer than 3 vertices
// contribute nothing.
func kahanFaces(m *mesh.Mesh, start, end int) float64 {
	sum := 0.0
	compensation := 0.0
	for i := start; i < end; i++ {
		face := m.Faces[i]
		if len(face.V) < 3 {
			continue
		}
		v0 := m.Vertices[face.V[0]]
		for j := 1; j < len(face.V)-1; j++ {
			tri := geometry.Triangle{
				V1: v0,
				V2: m.Vertices[face.V[j]],
				V3: m.Vertices[face.V[j+1]],
			}
			y := tri.SignedVolume() - compensation
			t := sum + y
			compensation = (t - sum) - y
			sum = t
		}
	}
	return sum
}

func kahanTriangles(triangles []geometry.Triangle) float64 {
	sum := 0.0
	compensation := 0.0
	for _, tri := range triangles {
		y := tri.SignedVolume() - compensation
		t := sum + y
		compensation = (t - sum) - y
		sum = t
	}
	return sum
}
