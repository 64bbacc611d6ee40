package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/internal/ui"
	"github.com/philipparndt/meshtool/pkg/analysis"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Get comprehensive statistics (volume, diagonal, triangle count)",
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	m, f, err := load(args[0])
	if err != nil {
		fail(err)
	}

	diagonal, err := analysis.Diagonal(m)
	if err != nil {
		fail(err)
	}
	volume := analysis.Volume(m)

	// Topology needs shared vertices; triangle-soup input (STL) only
	// gets them after welding.
	indexed, err := mesh.Index(m)
	if err != nil {
		fail(err)
	}
	topology := analysis.AnalyzeTopology(indexed.Mesh())

	ui.Section("Statistics")
	ui.KV("File", args[0])
	ui.KV("Format", f)
	ui.KV("Triangles", m.TriangleCount())
	ui.KV("Vertices", len(indexed.Vertices))
	ui.KV("Edges", topology.EdgeCount)
	ui.KV("Diagonal", fmt.Sprintf("%.4f", diagonal))
	ui.KV("Volume", fmt.Sprintf("%.4f", volume))

	ui.WarnTopology(topology)
	ui.WarnUnits(args[0], volume, diagonal)
}
