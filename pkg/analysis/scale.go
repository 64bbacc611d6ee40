package analysis

import (
	"runtime"
	"sync"

	"github.com/philipparndt/meshtool/pkg/mesh"
)

// Scale uniformly rescales the mesh in place so that its bounding box
// diagonal equals targetDiagonal. Vertices are moved about the bounding
// box center; normals and texture coordinates are left untouched.
// Fails with ErrEmptyMesh or ErrDegenerateMesh like Diagonal.
func Scale(m *mesh.Mesh, targetDiagonal float32) error {
	bbox, err := Bounds(m)
	if err != nil {
		return err
	}

	currentDiagonal := bbox.Diagonal()
	if currentDiagonal == 0 {
		return ErrDegenerateMesh
	}

	center := bbox.Center()
	factor := targetDiagonal / currentDiagonal

	scaleRange := func(start, end int) {
		for i := start; i < end; i++ {
			v := m.Vertices[i]
			m.Vertices[i] = v.Sub(center).Scale(factor).Add(center)
		}
	}

	if len(m.Vertices) < parallelThreshold {
		scaleRange(0, len(m.Vertices))
		return nil
	}

	workers := runtime.NumCPU()
	chunk := (len(m.Vertices) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(m.Vertices); start += chunk {
		start := start
		end := min(start+chunk, len(m.Vertices))
		wg.Add(1)
		go func() {
			defer wg.Done()
			scaleRange(start, end)
		}()
	}
	wg.Wait()
	return nil
}
