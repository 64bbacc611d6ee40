// Package triangulate decomposes polygonal faces into triangles using
// ear clipping, which handles non-convex simple polygons that a plain
// fan would get wrong.
package triangulate

import (
	"math"

	"github.com/philipparndt/meshtool/pkg/geometry"
)

// Failure reports a polygon that cannot be triangulated. Degenerate
// input is a distinguishable error, never a silent fan fallback.
type Failure struct {
	Reason string
}

func (e *Failure) Error() string {
	return "triangulation failed: " + e.Reason
}

// point2 is a polygon vertex projected onto the dominant plane. The
// original index is kept so emitted triangles use the exact input
// coordinates.
type point2 struct {
	u, v float64
	orig int
}

// Polygon triangulates the face given by vertex indices into the shared
// vertex array. A simple polygon of n distinct vertices yields exactly
// n-2 triangles with the same winding as the input order.
func Polygon(vertices []geometry.Vec3, face []int) ([]geometry.Triangle, error) {
	pts := distinct(vertices, face)
	if len(pts) < 3 {
		return nil, &Failure{Reason: "fewer than 3 distinct vertices"}
	}

	normal := newellNormal(pts)
	if normal[0] == 0 && normal[1] == 0 && normal[2] == 0 {
		return nil, &Failure{Reason: "vertices are collinear"}
	}

	projected := project(pts, normal)
	if signedArea(projected) <= 0 {
		// The projection is axis-flipped into counter-clockwise order
		// below, so a non-positive area here means the polygon covers
		// no area at all.
		return nil, &Failure{Reason: "polygon has zero area"}
	}

	triangles := make([]geometry.Triangle, 0, len(projected)-2)
	remaining := projected

	for len(remaining) > 3 {
		ear := findEar(remaining)
		if ear < 0 {
			return nil, &Failure{Reason: "no ear found, polygon may self-intersect"}
		}

		prev := remaining[(ear+len(remaining)-1)%len(remaining)]
		next := remaining[(ear+1)%len(remaining)]
		triangles = append(triangles, emit(pts, prev, remaining[ear], next))
		remaining = append(remaining[:ear], remaining[ear+1:]...)
	}
	triangles = append(triangles, emit(pts, remaining[0], remaining[1], remaining[2]))

	return triangles, nil
}

// distinct resolves the face indices and drops consecutive duplicate
// positions, including the wrap-around pair.
func distinct(vertices []geometry.Vec3, face []int) []geometry.Vec3 {
	pts := make([]geometry.Vec3, 0, len(face))
	for _, idx := range face {
		p := vertices[idx]
		if len(pts) > 0 && p == pts[len(pts)-1] {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// newellNormal computes the polygon normal by Newell's method in
// float64. Robust against non-planar and concave input; zero when all
// points are collinear.
func newellNormal(pts []geometry.Vec3) [3]float64 {
	var n [3]float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		px, py, pz := float64(p.X), float64(p.Y), float64(p.Z)
		qx, qy, qz := float64(q.X), float64(q.Y), float64(q.Z)
		n[0] += (py - qy) * (pz + qz)
		n[1] += (pz - qz) * (px + qx)
		n[2] += (px - qx) * (py + qy)
	}
	return n
}

// project drops the dominant normal axis, flipping one 2D axis when
// needed so the projected polygon is counter-clockwise. Flipping keeps
// the vertex order intact, so triangle winding survives the round trip.
func project(pts []geometry.Vec3, normal [3]float64) []point2 {
	ax, ay, az := math.Abs(normal[0]), math.Abs(normal[1]), math.Abs(normal[2])

	projected := make([]point2, len(pts))
	for i, p := range pts {
		x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
		switch {
		case ax >= ay && ax >= az:
			projected[i] = point2{u: y, v: z, orig: i}
		case ay >= az:
			projected[i] = point2{u: z, v: x, orig: i}
		default:
			projected[i] = point2{u: x, v: y, orig: i}
		}
	}

	if signedArea(projected) < 0 {
		for i := range projected {
			projected[i].v = -projected[i].v
		}
	}
	return projected
}

// signedArea returns twice the signed area of the projected polygon.
func signedArea(pts []point2) float64 {
	area := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.u*q.v - q.u*p.v
	}
	return area
}

func cross(o, a, b point2) float64 {
	return (a.u-o.u)*(b.v-o.v) - (a.v-o.v)*(b.u-o.u)
}

// findEar locates a convex vertex whose triangle with its neighbours
// contains no other remaining vertex. A straight-line vertex (zero
// cross product) is accepted only when no strictly convex ear exists;
// clipping it emits a sliver but keeps the n-2 triangle guarantee.
func findEar(pts []point2) int {
	flat := -1
	for i := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		cur := pts[i]
		next := pts[(i+1)%len(pts)]

		turn := cross(prev, cur, next)
		if turn < 0 {
			continue // reflex
		}
		if turn == 0 {
			if flat < 0 {
				flat = i
			}
			continue
		}
		if !containsOther(pts, prev, cur, next) {
			return i
		}
	}
	return flat
}

// containsOther reports whether any remaining vertex other than the
// ear's corners lies strictly inside the candidate triangle.
func containsOther(pts []point2, a, b, c point2) bool {
	for _, p := range pts {
		if p.orig == a.orig || p.orig == b.orig || p.orig == c.orig {
			continue
		}
		if cross(a, b, p) > 0 && cross(b, c, p) > 0 && cross(c, a, p) > 0 {
			return true
		}
	}
	return false
}

func emit(pts []geometry.Vec3, a, b, c point2) geometry.Triangle {
	return geometry.Triangle{V1: pts[a.orig], V2: pts[b.orig], V3: pts[c.orig]}
}
