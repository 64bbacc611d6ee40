package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/pkg/format"
	"github.com/philipparndt/meshtool/pkg/mesh"
	"github.com/philipparndt/meshtool/version"
)

var rootCmd = &cobra.Command{
	Use:   "meshtool",
	Short: "A CLI for analyzing and scaling 3D meshes",
	Long: `meshtool is a command-line tool for analyzing and manipulating 3D mesh files.

Supported formats:
- STL (binary and ASCII)
- OBJ (Wavefront)

Examples:
  # Get the volume of a mesh
  meshtool volume model.stl

  # Scale a mesh to 100mm diagonal
  meshtool scale input.obj 100 -o output.obj`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads a mesh file, detects its format from content then
// extension, and decodes it.
func load(path string) (*mesh.Mesh, format.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format.Unknown, err
	}

	f := format.Detect(path, data)
	if f == format.Unknown {
		return nil, format.Unknown, format.ErrUnknownFormat
	}

	m, err := f.Decode(data)
	if err != nil {
		return nil, f, err
	}
	return m, f, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
