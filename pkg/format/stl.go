package format

// STL layout:
//   bytes 0-79   header, ignored
//   bytes 80-83  uint32 LE triangle count
//   bytes 84-    50 byte records: normal, 3 vertices (12 floats), uint16 attr
// ASCII STL starts with "solid" and lists facet/vertex/endfacet blocks.

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
	"github.com/philipparndt/meshtool/pkg/triangulate"
)

const stlRecordSize = 50

// DecodeSTL parses binary or ASCII STL bytes into a triangle-soup mesh.
func DecodeSTL(data []byte) (*mesh.Mesh, error) {
	if isASCIISTL(data) {
		return decodeASCIISTL(data)
	}
	return decodeBinarySTL(data)
}

func validSTL(data []byte) bool {
	if isASCIISTL(data) {
		return true
	}
	if len(data) < 84 {
		return false
	}

	count := int(binary.LittleEndian.Uint32(data[80:84]))
	dataLen := len(data) - 84
	if count > MaxTriangles {
		return false
	}

	// Zero declared triangles with record data present is a common
	// exporter bug; accept it.
	if count == 0 {
		return dataLen >= stlRecordSize
	}
	return dataLen >= count*stlRecordSize
}

// isASCIISTL checks for the "solid" prefix plus a facet keyword nearby.
// The prefix alone is not enough: binary exporters routinely write
// headers starting with "solid".
func isASCIISTL(data []byte) bool {
	if len(data) < 5 || string(data[:5]) != "solid" {
		return false
	}
	head := string(data[:min(len(data), 1024)])
	return strings.Contains(head, "facet")
}

func decodeBinarySTL(data []byte) (*mesh.Mesh, error) {
	if len(data) < 84 {
		return nil, errors.New("binary STL file too small")
	}

	declared := int(binary.LittleEndian.Uint32(data[80:84]))
	physical := (len(data) - 84) / stlRecordSize

	// Trust the smaller of declared and physical count; a zero declared
	// count falls back to what the file actually holds.
	count := declared
	if declared == 0 || declared > physical {
		count = physical
	}

	triangles := make([]geometry.Triangle, 0, count)
	for i := 0; i < count; i++ {
		record := data[84+i*stlRecordSize:]
		// skip the stored normal (12 bytes), it is rederived on write
		tri := geometry.Triangle{
			V1: readVec3(record[12:]),
			V2: readVec3(record[24:]),
			V3: readVec3(record[36:]),
		}
		if !tri.IsValid() {
			continue
		}
		triangles = append(triangles, tri)
	}

	return mesh.FromTriangles(triangles), nil
}

func readVec3(b []byte) geometry.Vec3 {
	return geometry.Vec3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	}
}

func decodeASCIISTL(data []byte) (*mesh.Mesh, error) {
	var triangles []geometry.Triangle
	var current []geometry.Vec3

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "vertex"):
			fields := strings.Fields(line)
			if len(fields) != 4 {
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 32)
			y, errY := strconv.ParseFloat(fields[2], 32)
			z, errZ := strconv.ParseFloat(fields[3], 32)
			if errX == nil && errY == nil && errZ == nil {
				current = append(current, geometry.NewVec3(float32(x), float32(y), float32(z)))
			}
		case strings.HasPrefix(line, "endfacet"), strings.HasPrefix(line, "endloop"):
			if len(current) == 3 {
				triangles = append(triangles, geometry.Triangle{
					V1: current[0], V2: current[1], V3: current[2],
				})
			}
			current = current[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading ASCII STL")
	}

	return mesh.FromTriangles(triangles), nil
}

// EncodeSTL writes the mesh as binary STL. Polygon faces are ear-
// clipped; facet normals are always derived from the vertex winding at
// write time, stored normals are ignored.
func EncodeSTL(w io.Writer, m *mesh.Mesh) error {
	var triangles []geometry.Triangle
	for i, face := range m.Faces {
		switch {
		case len(face.V) < 3:
			continue
		case len(face.V) == 3:
			triangles = append(triangles, geometry.Triangle{
				V1: m.Vertices[face.V[0]],
				V2: m.Vertices[face.V[1]],
				V3: m.Vertices[face.V[2]],
			})
		default:
			clipped, err := triangulate.Polygon(m.Vertices, face.V)
			if err != nil {
				return errors.Wrapf(err, "face %d", i)
			}
			triangles = append(triangles, clipped...)
		}
	}

	buf := bufio.NewWriter(w)

	header := make([]byte, 80)
	copy(header, "exported by meshtool")
	if _, err := buf.Write(header); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return err
	}

	record := make([]byte, stlRecordSize)
	for _, tri := range triangles {
		writeVec3(record[0:], tri.Normal())
		writeVec3(record[12:], tri.V1)
		writeVec3(record[24:], tri.V2)
		writeVec3(record[36:], tri.V3)
		record[48], record[49] = 0, 0 // attribute byte count
		if _, err := buf.Write(record); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func writeVec3(b []byte, v geometry.Vec3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.Z))
}
