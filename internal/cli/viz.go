package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/compile"
	canvio "github.com/matzehuels/canvasort/pkg/io"
	"github.com/matzehuels/canvasort/pkg/viz"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newVizCmd creates the viz command, a debug tool that renders the
// structure the compiler derives from a canvas: containment clusters,
// directional edges, and flow depths.
func newVizCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "viz [file]",
		Short: "Visualize the derived containment and flow structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}
			return runViz(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>, \"-\" for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot (default), svg")

	return cmd
}

func runViz(ctx context.Context, input, output, format string) error {
	logger := loggerFromContext(ctx)

	doc, err := canvio.ImportCanvas(input)
	if err != nil {
		return err
	}
	analysis, err := compile.Analyze(doc)
	if err != nil {
		return err
	}
	logger.Infof("Analyzed %s: %d flow group(s), %d root node(s)",
		input, len(analysis.Flows), len(analysis.Roots))

	dot := viz.ToDOT(doc, analysis)
	data := []byte(dot)
	if format == formatSVG {
		if data, err = viz.RenderSVG(dot); err != nil {
			return err
		}
	}

	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printFile(output)
	return nil
}
