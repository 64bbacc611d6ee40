package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/internal/ui"
	"github.com/philipparndt/meshtool/pkg/analysis"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [file]",
	Short: "Get the volume of the mesh",
	Long: `Calculate the enclosed volume of the mesh. Assumes the mesh is watertight
and consistently oriented; the unit is cubic units of the input file
(usually mm³).`,
	Args: cobra.ExactArgs(1),
	Run:  runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}

func runVolume(cmd *cobra.Command, args []string) {
	m, _, err := load(args[0])
	if err != nil {
		fail(err)
	}

	ui.KV("Volume", fmt.Sprintf("%.4f", analysis.Volume(m)))
}
