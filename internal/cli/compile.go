package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/compile"
	canvio "github.com/matzehuels/canvasort/pkg/io"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output string // output file path; only valid with a single input
	config string // settings file path
	check  bool   // verify ordering without writing anything

	settings compile.Settings
}

// newCompileCmd creates the compile command: the main entry point of the
// tool. It recompiles one or more canvas files into their deterministic
// order, in place by default.
func newCompileCmd() *cobra.Command {
	var opts compileOpts
	var flow, semanticOrphans, stripMetadata bool
	var noColorNodes, noColorEdges, keepEdges bool

	cmd := &cobra.Command{
		Use:   "compile [file...]",
		Short: "Recompile canvas files into deterministic order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output is only valid with a single input file")
			}

			s, err := loadSettings(settingsPath(opts.config), opts.config != "")
			if err != nil {
				return err
			}
			// Flags beat the settings file, but only when given.
			if cmd.Flags().Changed("flow") {
				s.FlowSortNodes = flow
			}
			if cmd.Flags().Changed("semantic-orphans") {
				s.SemanticSortOrphans = semanticOrphans
			}
			if cmd.Flags().Changed("strip-metadata") {
				s.StripMetadata = stripMetadata
			}
			if cmd.Flags().Changed("no-color-sort") {
				s.ColorSortNodes = !noColorNodes
				s.ColorSortEdges = !noColorNodes
			}
			if cmd.Flags().Changed("no-color-sort-edges") {
				s.ColorSortEdges = !noColorEdges
			}
			if cmd.Flags().Changed("keep-edges") {
				s.StripEdgesWhenFlowSorted = !keepEdges
			}
			opts.settings = s

			return runCompile(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write result to this path instead of in place")
	cmd.Flags().StringVar(&opts.config, "config", "", "settings file (default "+DefaultSettingsFile+" if present)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit non-zero if any file is not already in compiled order")
	cmd.Flags().BoolVar(&flow, "flow", false, "order connected nodes by flow depth along arrows")
	cmd.Flags().BoolVar(&semanticOrphans, "semantic-orphans", false, "group root orphan nodes semantically instead of spatially")
	cmd.Flags().BoolVar(&stripMetadata, "strip-metadata", false, "emit pure data: drop positions and embed labeled edges")
	cmd.Flags().BoolVar(&noColorNodes, "no-color-sort", false, "disable color as a sort key")
	cmd.Flags().BoolVar(&noColorEdges, "no-color-sort-edges", false, "disable color as an edge sort key")
	cmd.Flags().BoolVar(&keepEdges, "keep-edges", false, "keep unlabeled edges in stripped output even when flow-sorted")

	return cmd
}

// settingsPath resolves the settings file path, defaulting to
// DefaultSettingsFile in the working directory.
func settingsPath(config string) string {
	if config != "" {
		return config
	}
	return DefaultSettingsFile
}

// runCompile compiles every input file. In check mode no file is written;
// the first out-of-order file fails the run after all files were examined.
func runCompile(ctx context.Context, files []string, opts *compileOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spin *Spinner
	if len(files) > 1 {
		spin = newSpinner(ctx, fmt.Sprintf("Compiling %d canvases", len(files)))
		spin.Start()
	}

	dirty := 0
	for _, path := range files {
		changed, err := compileOne(ctx, path, opts)
		if err != nil {
			if spin != nil {
				spin.Stop()
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		if changed {
			dirty++
		}
	}
	if spin != nil {
		spin.Stop()
	}

	if opts.check {
		if dirty > 0 {
			printError("%d of %d file(s) not in compiled order", dirty, len(files))
			return fmt.Errorf("%d file(s) would be reordered", dirty)
		}
		printSuccess("%d file(s) already in compiled order", len(files))
		return nil
	}

	prog.done(fmt.Sprintf("Compiled %d canvas(es)", len(files)))
	return nil
}

// compileOne compiles a single file and reports whether its serialized form
// differs from what is on disk.
func compileOne(ctx context.Context, path string, opts *compileOpts) (changed bool, err error) {
	logger := loggerFromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	doc, err := canvio.ReadCanvas(bytes.NewReader(raw))
	if err != nil {
		return false, err
	}

	compiled, err := compile.Compile(doc, opts.settings)
	if err != nil {
		return false, err
	}
	out, err := canvio.MarshalCanvas(compiled)
	if err != nil {
		return false, err
	}

	changed = !bytes.Equal(raw, out)
	logger.Debugf("%s: %d nodes, %d edges, changed=%t",
		path, len(compiled.Nodes), len(compiled.Edges), changed)

	if opts.check {
		if changed {
			printWarning("%s is not in compiled order", path)
		}
		return changed, nil
	}

	target := path
	if opts.output != "" {
		target = opts.output
	}
	if !changed && target == path {
		return false, nil // nothing to rewrite
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return changed, err
	}
	printFile(target)
	return changed, nil
}
