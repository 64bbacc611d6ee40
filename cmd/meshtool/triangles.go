package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/internal/ui"
)

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Get the triangle count of the mesh",
	Long: `Return the total number of triangles a fan decomposition of all faces
produces. Faces with fewer than 3 vertices count as 0.`,
	Args: cobra.ExactArgs(1),
	Run:  runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)
}

func runTriangles(cmd *cobra.Command, args []string) {
	m, _, err := load(args[0])
	if err != nil {
		fail(err)
	}

	ui.Success(fmt.Sprintf("Parsed %d triangles", m.TriangleCount()))
}
