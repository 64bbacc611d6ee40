package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshtool/internal/ui"
	"github.com/philipparndt/meshtool/pkg/analysis"
	"github.com/philipparndt/meshtool/pkg/format"
	"github.com/philipparndt/meshtool/pkg/mesh"
)

var scaleOutput string

var scaleCmd = &cobra.Command{
	Use:   "scale [file] [target-diagonal]",
	Short: "Scale the mesh to a target diagonal length",
	Long: `Uniformly scale the mesh so that its bounding box diagonal equals the
target length. Useful for normalizing object sizes for 3D printing.

If no output path is given, the result is saved as <input>_scaled.<ext>.`,
	Args: cobra.ExactArgs(2),
	Run:  runScale,
}

func init() {
	rootCmd.AddCommand(scaleCmd)

	scaleCmd.Flags().StringVarP(&scaleOutput, "output", "o", "", "output file path")
}

func runScale(cmd *cobra.Command, args []string) {
	target, err := strconv.ParseFloat(args[1], 32)
	if err != nil || target <= 0 {
		fail(fmt.Errorf("target diagonal must be a positive number, got %q", args[1]))
	}

	m, f, err := load(args[0])
	if err != nil {
		fail(err)
	}

	diagonal, err := analysis.Diagonal(m)
	if err != nil {
		fail(err)
	}
	ui.Info("Scaling", fmt.Sprintf("%.4f -> %.4f", diagonal, target))

	if err := analysis.Scale(m, float32(target)); err != nil {
		fail(err)
	}

	output := scaleOutput
	if output == "" {
		ext := filepath.Ext(args[0])
		output = strings.TrimSuffix(args[0], ext) + "_scaled" + ext
	}

	ui.Success("Scaled model processed.")
	ui.Info("Saving to", output)

	if err := save(output, f, m); err != nil {
		fail(err)
	}
	ui.Success("File saved successfully.")
}

func save(path string, f format.Format, m *mesh.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch f {
	case format.OBJ:
		return format.EncodeOBJ(file, m)
	default:
		return format.EncodeSTL(file, m)
	}
}
