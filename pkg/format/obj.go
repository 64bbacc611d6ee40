package format

// Wavefront OBJ line types handled here:
//   v x y z        vertex position
//   vt u v         texture coordinate
//   vn x y z       vertex normal
//   f a/b/c ...    face corners as v, v/vt, v/vt/vn or v//vn (1-based)
//   g name         face group
//   o name         object name, treated like a group
//   usemtl name    material for the following faces
//   mtllib file    referenced material library
//   # ...          comment

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/philipparndt/meshtool/pkg/geometry"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

func validOBJ(data []byte) bool {
	hasVertices := false

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for lines := 0; scanner.Scan() && lines < 1000; lines++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "v ") {
			hasVertices = true
		} else if strings.HasPrefix(line, "f ") && hasVertices {
			return true
		}
	}
	return hasVertices
}

// objBuilder accumulates parse state, closing group ranges as new
// g/usemtl declarations arrive so that the finished groups are
// contiguous, non-overlapping and cover every face exactly once.
type objBuilder struct {
	mesh    *mesh.Mesh
	current mesh.Group
}

func newOBJBuilder() *objBuilder {
	return &objBuilder{
		mesh:    mesh.New(),
		current: mesh.Group{Name: "default"},
	}
}

func (b *objBuilder) closeGroup() {
	b.current.End = len(b.mesh.Faces)
	if b.current.End > b.current.Start {
		b.mesh.Groups = append(b.mesh.Groups, b.current)
	}
}

func (b *objBuilder) startGroup(name string) {
	b.closeGroup()
	b.current = mesh.Group{
		Name:     name,
		Material: b.current.Material,
		Start:    len(b.mesh.Faces),
	}
}

func (b *objBuilder) setMaterial(name string) {
	if b.current.Start == len(b.mesh.Faces) {
		// no faces in the current group yet, no need to split it
		b.current.Material = name
		return
	}
	b.closeGroup()
	b.current = mesh.Group{
		Name:     b.current.Name,
		Material: name,
		Start:    len(b.mesh.Faces),
	}
}

// DecodeOBJ parses OBJ bytes into a mesh, keeping polygon faces,
// texture/normal indices and group structure intact.
func DecodeOBJ(data []byte) (*mesh.Mesh, error) {
	b := newOBJBuilder()

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		keyword, args := fields[0], fields[1:]

		var err error
		switch keyword {
		case "v":
			err = b.addVertex(args)
		case "vt":
			err = b.addTexture(args)
		case "vn":
			err = b.addNormal(args)
		case "f":
			err = b.addFace(args)
		case "g", "o":
			b.startGroup(strings.Join(args, " "))
		case "usemtl":
			b.setMaterial(strings.Join(args, " "))
		case "mtllib":
			b.mesh.MaterialLibs = append(b.mesh.MaterialLibs, args...)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading OBJ")
	}

	b.closeGroup()
	return b.mesh, nil
}

func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) < want {
		return nil, errors.Errorf("expected %d coordinates, got %d", want, len(args))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, errors.Wrapf(err, "coordinate %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (b *objBuilder) addVertex(args []string) error {
	c, err := parseFloats(args, 3)
	if err != nil {
		return errors.Wrap(err, "vertex")
	}
	b.mesh.Vertices = append(b.mesh.Vertices, geometry.NewVec3(c[0], c[1], c[2]))
	return nil
}

func (b *objBuilder) addTexture(args []string) error {
	c, err := parseFloats(args, 2)
	if err != nil {
		return errors.Wrap(err, "texture coordinate")
	}
	b.mesh.Textures = append(b.mesh.Textures, geometry.NewVec2(c[0], c[1]))
	return nil
}

func (b *objBuilder) addNormal(args []string) error {
	c, err := parseFloats(args, 3)
	if err != nil {
		return errors.Wrap(err, "normal")
	}
	b.mesh.Normals = append(b.mesh.Normals, geometry.NewVec3(c[0], c[1], c[2]))
	return nil
}

// addFace parses the v/vt/vn corner syntax. Indices on disk are
// 1-based; in-memory indices are 0-based. VT/VN stay parallel to V but
// stop at the last corner that declared them.
func (b *objBuilder) addFace(args []string) error {
	var face mesh.Face
	for _, corner := range args {
		parts := strings.Split(corner, "/")

		v, err := parseIndex(parts[0])
		if err != nil {
			return errors.Wrapf(err, "face corner %q", corner)
		}
		face.V = append(face.V, v)

		if len(parts) > 1 && parts[1] != "" {
			vt, err := parseIndex(parts[1])
			if err != nil {
				return errors.Wrapf(err, "face corner %q", corner)
			}
			face.VT = append(face.VT, vt)
		}
		if len(parts) > 2 && parts[2] != "" {
			vn, err := parseIndex(parts[2])
			if err != nil {
				return errors.Wrapf(err, "face corner %q", corner)
			}
			face.VN = append(face.VN, vn)
		}
	}
	b.mesh.Faces = append(b.mesh.Faces, face)
	return nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if idx < 1 {
		return 0, errors.Errorf("index %d is not positive 1-based", idx)
	}
	return idx - 1, nil
}

// EncodeOBJ writes the mesh as OBJ text. Stored normals are written
// unchanged; after a uniform scale they still point the right way.
func EncodeOBJ(w io.Writer, m *mesh.Mesh) error {
	buf := bufio.NewWriter(w)

	for _, lib := range m.MaterialLibs {
		fmt.Fprintf(buf, "mtllib %s\n", lib)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(buf, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, vt := range m.Textures {
		fmt.Fprintf(buf, "vt %s %s\n", ftoa(vt.U), ftoa(vt.V))
	}
	for _, vn := range m.Normals {
		fmt.Fprintf(buf, "vn %s %s %s\n", ftoa(vn.X), ftoa(vn.Y), ftoa(vn.Z))
	}

	if len(m.Groups) == 0 {
		writeFaces(buf, m.Faces)
	}
	material := ""
	for _, group := range m.Groups {
		if group.Name != "" {
			fmt.Fprintf(buf, "g %s\n", group.Name)
		}
		if group.Material != "" && group.Material != material {
			fmt.Fprintf(buf, "usemtl %s\n", group.Material)
			material = group.Material
		}
		writeFaces(buf, m.Faces[group.Start:group.End])
	}

	return buf.Flush()
}

func writeFaces(w io.Writer, faces []mesh.Face) {
	for _, face := range faces {
		fmt.Fprint(w, "f")
		for i, v := range face.V {
			switch {
			case i < len(face.VT) && i < len(face.VN):
				fmt.Fprintf(w, " %d/%d/%d", v+1, face.VT[i]+1, face.VN[i]+1)
			case i < len(face.VT):
				fmt.Fprintf(w, " %d/%d", v+1, face.VT[i]+1)
			case i < len(face.VN):
				fmt.Fprintf(w, " %d//%d", v+1, face.VN[i]+1)
			default:
				fmt.Fprintf(w, " %d", v+1)
			}
		}
		fmt.Fprintln(w)
	}
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
