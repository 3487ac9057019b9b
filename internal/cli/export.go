package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/compile"
	canvio "github.com/matzehuels/canvasort/pkg/io"
)

// newExportCmd creates the export command: compile plus pure-data
// projection. The result drops positions and colors, embeds labeled edges
// into their endpoint nodes, and goes to stdout or --output.
func newExportCmd() *cobra.Command {
	var output, config string
	var flow, keepEdges bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a canvas as pure data with embedded labeled edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(settingsPath(config), config != "")
			if err != nil {
				return err
			}
			s.StripMetadata = true
			if cmd.Flags().Changed("flow") {
				s.FlowSortNodes = flow
			}
			if cmd.Flags().Changed("keep-edges") {
				s.StripEdgesWhenFlowSorted = !keepEdges
			}
			return runExport(cmd.Context(), args[0], output, s)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json, \"-\" for stdout)")
	cmd.Flags().StringVar(&config, "config", "", "settings file (default "+DefaultSettingsFile+" if present)")
	cmd.Flags().BoolVar(&flow, "flow", false, "order connected nodes by flow depth along arrows")
	cmd.Flags().BoolVar(&keepEdges, "keep-edges", false, "keep unlabeled edges even when flow-sorted")

	return cmd
}

func runExport(ctx context.Context, input, output string, s compile.Settings) error {
	logger := loggerFromContext(ctx)

	doc, err := canvio.ImportCanvas(input)
	if err != nil {
		return err
	}
	out, err := compile.Compile(doc, s)
	if err != nil {
		return err
	}
	logger.Debugf("projected %d nodes, %d edges", len(out.Nodes), len(out.Edges))

	if output == "-" {
		return canvio.WriteCanvas(out, os.Stdout)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := canvio.ExportCanvas(out, output); err != nil {
		return err
	}
	printFile(output)
	return nil
}
