package analysis

import (
	"sort"

	"github.com/philipparndt/meshtool/pkg/mesh"
)

// Edge is a direction-independent edge key: the smaller vertex index
// first.
type Edge struct {
	A, B int
}

// NewEdge builds the canonical key for the edge between two vertex
// indices.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Topology classifies every edge of the mesh by how many faces share
// it. A closed manifold surface has only manifold edges; boundary edges
// indicate holes and non-manifold edges indicate fused sheets. This is
// a report only, no repair is attempted.
type Topology struct {
	EdgeCount        int
	ManifoldEdges    int
	BoundaryEdges    []Edge
	NonManifoldEdges []Edge
}

// IsClosedManifold reports whether every edge is shared by exactly two
// faces.
func (t Topology) IsClosedManifold() bool {
	return len(t.BoundaryEdges) == 0 && len(t.NonManifoldEdges) == 0
}

// AnalyzeTopology counts, for every face, each consecutive vertex index
// pair (including the wrap from last to first) in an undirected edge
// multiset, then classifies: 1 occurrence is a boundary edge, 2 a
// manifold edge, more a non-manifold edge. Faces with fewer than 3
// vertices form no surface and contribute no edges.
func AnalyzeTopology(m *mesh.Mesh) Topology {
	edges := make(map[Edge]int)
	for _, face := range m.Faces {
		if len(face.V) < 3 {
			continue
		}
		for i, a := range face.V {
			b := face.V[(i+1)%len(face.V)]
			edges[NewEdge(a, b)]++
		}
	}

	report := Topology{EdgeCount: len(edges)}
	for edge, count := range edges {
		switch {
		case count == 1:
			report.BoundaryEdges = append(report.BoundaryEdges, edge)
		case count == 2:
			report.ManifoldEdges++
		default:
			report.NonManifoldEdges = append(report.NonManifoldEdges, edge)
		}
	}

	sortEdges(report.BoundaryEdges)
	sortEdges(report.NonManifoldEdges)
	return report
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
}
