package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

func TestNewEdgeOrdersIndices(t *testing.T) {
	assert.Equal(t, Edge{A: 1, B: 5}, NewEdge(5, 1))
	assert.Equal(t, Edge{A: 1, B: 5}, NewEdge(1, 5))
}

func TestClosedCubeIsManifold(t *testing.T) {
	report := AnalyzeTopology(cube())

	// 12 triangles sharing 18 edges, each by exactly two faces
	assert.Equal(t, 18, report.EdgeCount)
	assert.Equal(t, 18, report.ManifoldEdges)
	assert.Empty(t, report.BoundaryEdges)
	assert.Empty(t, report.NonManifoldEdges)
	assert.True(t, report.IsClosedManifold())
}

func TestCubeWithMissingFaceHasBoundary(t *testing.T) {
	m := cube()
	m.Faces = m.Faces[:len(m.Faces)-1] // drop {1, 6, 5}

	report := AnalyzeTopology(m)

	// Exactly the removed face's edges become boundary, nothing else
	require.Len(t, report.BoundaryEdges, 3)
	assert.Equal(t, []Edge{{A: 1, B: 5}, {A: 1, B: 6}, {A: 5, B: 6}}, report.BoundaryEdges)
	assert.Empty(t, report.NonManifoldEdges)
	assert.False(t, report.IsClosedManifold())
}

func TestNonManifoldEdgeDetection(t *testing.T) {
	// Three triangles fanning around the shared edge 0-1
	m := &mesh.Mesh{
		Vertices: []geometry.Vec3{
			geometry.NewVec3(0, 0, 0),
			geometry.NewVec3(0, 0, 1),
			geometry.NewVec3(1, 0, 0),
			geometry.NewVec3(0, 1, 0),
			geometry.NewVec3(-1, 0, 0),
		},
		Faces: []mesh.Face{
			{V: []int{0, 1, 2}},
			{V: []int{0, 1, 3}},
			{V: []int{0, 1, 4}},
		},
	}

	report := AnalyzeTopology(m)

	require.Len(t, report.NonManifoldEdges, 1)
	assert.Equal(t, Edge{A: 0, B: 1}, report.NonManifoldEdges[0])
	assert.Len(t, report.BoundaryEdges, 6)
}

func TestPolygonFacesContributeWrapEdge(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: make([]geometry.Vec3, 4),
		Faces:    []mesh.Face{{V: []int{0, 1, 2, 3}}},
	}

	report := AnalyzeTopology(m)

	// Quad contributes 4 edges including the 3-0 wrap, all boundary
	assert.Equal(t, 4, report.EdgeCount)
	assert.Len(t, report.BoundaryEdges, 4)
	assert.Contains(t, report.BoundaryEdges, Edge{A: 0, B: 3})
}

func TestShortFacesContributeNoEdges(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: make([]geometry.Vec3, 2),
		Faces:    []mesh.Face{{V: []int{0, 1}}, {V: []int{0}}, {V: nil}},
	}

	report := AnalyzeTopology(m)
	assert.Equal(t, 0, report.EdgeCount)
	assert.True(t, report.IsClosedManifold())
}
