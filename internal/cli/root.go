// Package cli implements the canvasort command-line interface.
//
// This package provides commands for compiling spatial canvas documents
// into their deterministic order, exporting them as pure data, synthesizing
// new canvases from plain JSON records, and inspecting the structures the
// compiler derives. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compile: Recompile canvas files into deterministic node/edge order
//   - export: Strip a canvas to pure data with embedded labeled edges
//   - ingest: Synthesize a canvas from JSON or JSONL records
//   - viz: Render the derived containment/flow structure as DOT or SVG
//   - settings: Interactively edit the persistent settings file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/canvasort/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/buildinfo"
)

// Execute runs the canvasort CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "canvasort",
		Short:        "canvasort recompiles spatial canvases into a stable order",
		Long:         `canvasort recompiles the unordered node and edge collections of a spatial canvas document into a deterministic linear ordering derived from position, containment, color, and edge direction, so that saves diff cleanly.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newIngestCmd())
	root.AddCommand(newVizCmd())
	root.AddCommand(newSettingsCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
