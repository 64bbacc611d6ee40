package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

// cube returns a closed, consistently outward-oriented unit cube:
// 8 shared vertices, 12 triangles.
func cube() *mesh.Mesh {
	vertices := []geometry.Vec3{
		geometry.NewVec3(0, 0, 0),
		geometry.NewVec3(1, 0, 0),
		geometry.NewVec3(1, 1, 0),
		geometry.NewVec3(0, 1, 0),
		geometry.NewVec3(0, 0, 1),
		geometry.NewVec3(1, 0, 1),
		geometry.NewVec3(1, 1, 1),
		geometry.NewVec3(0, 1, 1),
	}
	faces := [][]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{3, 7, 6}, {3, 6, 2}, // back
		{0, 4, 7}, {0, 7, 3}, // left
		{1, 2, 6}, {1, 6, 5}, // right
	}

	m := &mesh.Mesh{Vertices: vertices}
	for _, f := range faces {
		m.Faces = append(m.Faces, mesh.Face{V: f})
	}
	return m
}

func translate(m *mesh.Mesh, offset geometry.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(offset)
	}
}

func TestCubeMeasurements(t *testing.T) {
	m := cube()

	assert.Equal(t, 12, m.TriangleCount())

	diagonal, err := Diagonal(m)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3), float64(diagonal), 1e-6)

	assert.InDelta(t, 1.0, Volume(m), 1e-6)
}

func TestBoundsEmptyMesh(t *testing.T) {
	_, err := Bounds(mesh.New())
	assert.ErrorIs(t, err, ErrEmptyMesh)

	_, err = Diagonal(mesh.New())
	assert.ErrorIs(t, err, ErrEmptyMesh)
}

func TestDiagonalDegenerateMesh(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []geometry.Vec3{
			geometry.NewVec3(1, 2, 3),
			geometry.NewVec3(1, 2, 3),
			geometry.NewVec3(1, 2, 3),
		},
	}

	_, err := Diagonal(m)
	assert.ErrorIs(t, err, ErrDegenerateMesh)
}

func TestVolumeEmptyMeshIsZero(t *testing.T) {
	// By definition, not an error
	assert.Equal(t, 0.0, Volume(mesh.New()))
}

func TestVolumeIgnoresShortFaces(t *testing.T) {
	m := cube()
	m.Faces = append(m.Faces, mesh.Face{V: []int{0, 1}}, mesh.Face{V: []int{2}})

	assert.InDelta(t, 1.0, Volume(m), 1e-6)
}

func TestVolumeFaceOrderInvariance(t *testing.T) {
	m := cube()
	reference := Volume(m)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := cube()
		rng.Shuffle(len(shuffled.Faces), func(i, j int) {
			shuffled.Faces[i], shuffled.Faces[j] = shuffled.Faces[j], shuffled.Faces[i]
		})
		assert.InDelta(t, reference, Volume(shuffled), 1e-9)
	}
}

func TestVolumeTranslationInvariance(t *testing.T) {
	offsets := []geometry.Vec3{
		geometry.NewVec3(10, 0, 0),
		geometry.NewVec3(-5, 3, 8),
		geometry.NewVec3(100, 100, 100),
	}

	for _, offset := range offsets {
		m := cube()
		translate(m, offset)
		assert.InDelta(t, 1.0, Volume(m), 1e-3)
	}
}

func TestVolumeOrientationInsensitive(t *testing.T) {
	m := cube()
	for i, face := range m.Faces {
		reversed := make([]int, len(face.V))
		for j, v := range face.V {
			reversed[len(face.V)-1-j] = v
		}
		m.Faces[i].V = reversed
	}

	// Inward orientation flips every sign; the absolute value stands
	assert.InDelta(t, 1.0, Volume(m), 1e-6)
}

// bigMesh builds enough disjoint cubes to push every parallel path past
// its threshold.
func bigMesh(cubes int) *mesh.Mesh {
	m := mesh.New()
	for i := 0; i < cubes; i++ {
		c := cube()
		translate(c, geometry.NewVec3(float32(2*i), 0, 0))
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, c.Vertices...)
		for _, face := range c.Faces {
			shifted := make([]int, len(face.V))
			for j, v := range face.V {
				shifted[j] = v + base
			}
			m.Faces = append(m.Faces, mesh.Face{V: shifted})
		}
	}
	return m
}

func TestVolumeParallelMatchesSerial(t *testing.T) {
	// 300 cubes = 3600 faces, well past the parallel threshold
	m := bigMesh(300)
	require.Greater(t, len(m.Faces), parallelThreshold)

	serial := math.Abs(kahanFaces(m, 0, len(m.Faces)))
	parallel := Volume(m)

	// Chunked partials lose one compensation per chunk boundary, the
	// results agree within tolerance but need not be bit-identical
	assert.InDelta(t, serial, parallel, 1e-6*float64(len(m.Faces)/volumeChunkSize+1))
	assert.InDelta(t, 300.0, parallel, 1e-3)
}

func TestVolumeOfTriangles(t *testing.T) {
	m := cube()
	var triangles []geometry.Triangle
	for i := range m.Faces {
		triangles = append(triangles, m.FaceTriangles(i)...)
	}

	assert.InDelta(t, 1.0, VolumeOfTriangles(triangles), 1e-6)
	assert.Equal(t, 0.0, VolumeOfTriangles(nil))
}

func TestBoundsParallelMatchesSerial(t *testing.T) {
	m := bigMesh(200) // 1600 vertices
	require.Greater(t, len(m.Vertices), parallelThreshold)

	parallel, err := Bounds(m)
	require.NoError(t, err)

	serial := boundsRange(m.Vertices)
	assert.Equal(t, serial, parallel)
	assert.Equal(t, geometry.NewVec3(0, 0, 0), parallel.Min)
	assert.Equal(t, geometry.NewVec3(399, 1, 1), parallel.Max)
}

func TestScaleReachesTargetDiagonal(t *testing.T) {
	targets := []float32{0.5, 1, 100, 12345}

	for _, target := range targets {
		m := cube()
		require.NoError(t, Scale(m, target))

		diagonal, err := Diagonal(m)
		require.NoError(t, err)
		assert.InDelta(t, float64(target), float64(diagonal), float64(target)*1e-5)
	}
}

func TestScaleKeepsCenter(t *testing.T) {
	m := cube()
	before, err := Bounds(m)
	require.NoError(t, err)

	require.NoError(t, Scale(m, 10))

	after, err := Bounds(m)
	require.NoError(t, err)
	assert.InDelta(t, float64(before.Center().X), float64(after.Center().X), 1e-4)
	assert.InDelta(t, float64(before.Center().Y), float64(after.Center().Y), 1e-4)
	assert.InDelta(t, float64(before.Center().Z), float64(after.Center().Z), 1e-4)
}

func TestScaleLeavesNormalsAndTexturesAlone(t *testing.T) {
	m := cube()
	m.Normals = []geometry.Vec3{geometry.NewVec3(0, 0, 1)}
	m.Textures = []geometry.Vec2{geometry.NewVec2(0.5, 0.5)}

	require.NoError(t, Scale(m, 50))

	assert.Equal(t, geometry.NewVec3(0, 0, 1), m.Normals[0])
	assert.Equal(t, geometry.NewVec2(0.5, 0.5), m.Textures[0])
}

func TestScaleErrors(t *testing.T) {
	assert.ErrorIs(t, Scale(mesh.New(), 10), ErrEmptyMesh)

	degenerate := &mesh.Mesh{
		Vertices: []geometry.Vec3{
			geometry.NewVec3(1, 1, 1),
			geometry.NewVec3(1, 1, 1),
		},
	}
	assert.ErrorIs(t, Scale(degenerate, 10), ErrDegenerateMesh)
}

func TestScaleParallelPath(t *testing.T) {
	m := bigMesh(200)
	require.Greater(t, len(m.Vertices), parallelThreshold)

	require.NoError(t, Scale(m, 100))

	diagonal, err := Diagonal(m)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, float64(diagonal), 1e-2)
}
