package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/internal/ui"
	"github.com/philipparndt/meshtool/pkg/analysis"
)

var diagonalCmd = &cobra.Command{
	Use:   "diagonal [file]",
	Short: "Get the bounding box diagonal of the mesh",
	Long: `Calculate the distance between the minimum and maximum corners of the
axis-aligned bounding box.`,
	Args: cobra.ExactArgs(1),
	Run:  runDiagonal,
}

func init() {
	rootCmd.AddCommand(diagonalCmd)
}

func runDiagonal(cmd *cobra.Command, args []string) {
	m, _, err := load(args[0])
	if err != nil {
		fail(err)
	}

	diagonal, err := analysis.Diagonal(m)
	if err != nil {
		fail(err)
	}

	ui.KV("Diagonal", fmt.Sprintf("%.4f", diagonal))
}
