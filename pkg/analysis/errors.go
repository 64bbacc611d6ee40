package analysis

import "errors"

var (
	// ErrEmptyMesh is returned by bounds-based measurements when the
	// mesh has no vertices.
	ErrEmptyMesh = errors.New("mesh has no vertices")

	// ErrDegenerateMesh is returned when the bounding box diagonal is
	// exactly zero, e.g. all vertices coincide.
	ErrDegenerateMesh = errors.New("mesh has 0 dimensions")
)
