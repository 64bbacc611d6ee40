// Package analysis derives measurements from a mesh: bounding box,
// diagonal, enclosed volume, edge topology, and an in-place uniform
// rescale. Large inputs are processed with fork-join parallelism over
// disjoint ranges; the serial and parallel paths are numerically
// consistent and fail with the same typed errors.
package analysis

import (
	"runtime"
	"sync"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

const (
	// parallelThreshold is the element count above which the parallel
	// code paths engage. Below it the serial path runs; both paths
	// produce consistent results, the cutoff is purely a performance
	// choice.
	parallelThreshold = 1000

	// volumeChunkSize is the number of faces per compensated partial
	// sum in the parallel volume path.
	volumeChunkSize = 1000
)

// Bounds computes the axis-aligned bounding box over all vertices.
// Returns ErrEmptyMesh when the mesh has no vertices.
func Bounds(m *mesh.Mesh) (geometry.BoundingBox, error) {
	if len(m.Vertices) == 0 {
		return geometry.BoundingBox{}, ErrEmptyMesh
	}

	if len(m.Vertices) < parallelThreshold {
		return boundsRange(m.Vertices), nil
	}

	workers := runtime.NumCPU()
	chunk := (len(m.Vertices) + workers - 1) / workers
	partials := make([]geometry.BoundingBox, (len(m.Vertices)+chunk-1)/chunk)

	var wg sync.WaitGroup
	for i := range partials {
		i := i
		start := i * chunk
		end := min(start+chunk, len(m.Vertices))
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[i] = boundsRange(m.Vertices[start:end])
		}()
	}
	wg.Wait()

	bbox := partials[0]
	for _, partial := range partials[1:] {
		bbox.Union(partial)
	}
	return bbox, nil
}

func boundsRange(vertices []geometry.Vec3) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range vertices {
		bbox.Extend(v)
	}
	return bbox
}

// Diagonal returns the Euclidean length of the bounding box diagonal.
// Returns ErrEmptyMesh for a vertexless mesh and ErrDegenerateMesh when
// the diagonal is exactly zero.
func Diagonal(m *mesh.Mesh) (float32, error) {
	bbox, err := Bounds(m)
	if err != nil {
		return 0, err
	}

	diagonal := bbox.Diagonal()
	if diagonal == 0 {
		return 0, ErrDegenerateMesh
	}
	return diagonal, nil
}
