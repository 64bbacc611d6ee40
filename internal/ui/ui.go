// Package ui prints results and warnings for the CLI. All presentation
// lives here; the measurement packages only return values and errors.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/philipparndt/meshtool/pkg/analysis"
)

// minPlausibleVolume is the volume below which a model was probably
// exported in meters or inches instead of millimeters.
const minPlausibleVolume = 1.0

var (
	labelColor   = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	sectionColor = color.New(color.FgWhite, color.Bold, color.Underline)
)

// KV prints an aligned, colored key/value line
func KV(key string, value interface{}) {
	fmt.Printf("%s %v\n", labelColor.Sprintf("%-12s", key+":"), value)
}

// Section prints a section heading
func Section(title string) {
	fmt.Println()
	sectionColor.Println(title)
}

// Success prints a confirmation line
func Success(msg string) {
	fmt.Printf("%s %s\n", successColor.Sprint("[OK]"), msg)
}

// Info prints a labeled progress line
func Info(label, msg string) {
	fmt.Printf("%s %s %s\n", labelColor.Sprint("[Info]"), label, msg)
}

// Error prints an error line to stderr
func Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("[Error]"), msg)
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warnColor.Sprint("[Warn]"), fmt.Sprintf(format, args...))
}

// WarnUnits warns when a model is suspiciously small, which usually
// means it was exported in meters or inches, and suggests the rescale
// command.
func WarnUnits(fileName string, volume float64, diagonal float32) {
	if volume > minPlausibleVolume {
		return
	}

	suggested := diagonal * 1000

	fmt.Println()
	warnf("The object from file '%s' is too small, and may be in 'meters' or 'inches'", fileName)
	warnf("Consider scaling it to %.2f mm diagonal using:", suggested)
	fmt.Fprintf(os.Stderr, "       meshtool scale %s %.2f\n", fileName, suggested)
}

// WarnTopology reports open or non-manifold edges that make the volume
// unreliable.
func WarnTopology(topology analysis.Topology) {
	if topology.IsClosedManifold() {
		return
	}

	fmt.Println()
	if n := len(topology.BoundaryEdges); n > 0 {
		warnf("The mesh has %d boundary edge(s): it is not closed and the volume may be wrong", n)
	}
	if n := len(topology.NonManifoldEdges); n > 0 {
		warnf("The mesh has %d non-manifold edge(s): more than two faces share them", n)
	}
}
