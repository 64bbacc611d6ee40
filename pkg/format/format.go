// Package format detects and decodes the supported mesh file formats.
// Format handling is a closed enum with an STL and an OBJ case; both
// codecs produce and consume the shared mesh.Mesh value.
package format

import (
	"encoding/binary"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/philipparndt/meshtool/pkg/mesh"
)

// MaxTriangles caps the declared triangle count a binary STL header is
// trusted to hold.
const MaxTriangles = 1_000_000

// Format identifies a supported mesh file format
type Format int

const (
	Unknown Format = iota
	STL
	OBJ
)

// ErrUnknownFormat is returned when neither content nor file name
// identifies a supported format.
var ErrUnknownFormat = errors.New("unsupported file format")

func (f Format) String() string {
	switch f {
	case STL:
		return "stl"
	case OBJ:
		return "obj"
	default:
		return "unknown"
	}
}

// Decode parses the raw bytes into a mesh and validates its face
// indices.
func (f Format) Decode(data []byte) (*mesh.Mesh, error) {
	var (
		m   *mesh.Mesh
		err error
	)
	switch f {
	case STL:
		m, err = DecodeSTL(data)
	case OBJ:
		m, err = DecodeOBJ(data)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mesh")
	}
	return m, nil
}

// Valid reports whether the bytes look structurally sound for the
// format.
func (f Format) Valid(data []byte) bool {
	switch f {
	case STL:
		return validSTL(data)
	case OBJ:
		return validOBJ(data)
	default:
		return false
	}
}

// Detect identifies the format from the file content, falling back to
// the file extension. Returns Unknown if neither matches.
func Detect(name string, data []byte) Format {
	if f := DetectMagic(data); f != Unknown {
		return f
	}
	return DetectExtension(name)
}

// DetectExtension maps a file name extension to a format
func DetectExtension(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "stl":
		return STL
	case "obj":
		return OBJ
	default:
		return Unknown
	}
}

// DetectContentType maps a MIME content type to a format
func DetectContentType(contentType string) Format {
	switch {
	case strings.Contains(contentType, "application/sla"),
		strings.Contains(contentType, "application/vnd.ms-pki.stl"),
		strings.Contains(contentType, "model/stl"):
		return STL
	case strings.Contains(contentType, "model/obj"),
		strings.Contains(contentType, "application/x-tgif"):
		return OBJ
	default:
		return Unknown
	}
}

// DetectMagic identifies the format from the content alone: binary STL
// by its size arithmetic, ASCII STL by its keywords, OBJ by its line
// markers.
func DetectMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}

	// Binary STL: 80 byte header, LE uint32 triangle count, 50 bytes
	// per triangle. A plausible count whose implied size matches the
	// file (allowing a trailing sub-record slack) is a strong signal.
	if len(data) >= 84 {
		count := binary.LittleEndian.Uint32(data[80:84])
		if count > 0 && count <= MaxTriangles {
			expected := 84 + int(count)*50
			if len(data) >= expected && len(data) <= expected+80 {
				return STL
			}
		}
	}

	// ASCII STL
	if len(data) >= 5 && string(data[:5]) == "solid" {
		preview := string(data[:min(len(data), 4096)])
		if utf8.ValidString(preview) &&
			strings.Contains(preview, "facet") && strings.Contains(preview, "vertex") {
			return STL
		}
	}

	// OBJ: look for its typical line markers in the first lines
	preview := string(data[:min(len(data), 4096)])
	if utf8.ValidString(preview) {
		markers := []string{"v ", "vt ", "vn ", "f ", "o ", "g ", "mtllib ", "usemtl "}
		seen := 0
		for _, line := range strings.Split(strings.TrimLeft(preview, " \t\r\n"), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			trimmed := strings.TrimLeft(line, " \t")
			for _, marker := range markers {
				if strings.HasPrefix(trimmed, marker) {
					return OBJ
				}
			}
			seen++
			if seen >= 50 {
				break
			}
		}
	}

	return Unknown
}
