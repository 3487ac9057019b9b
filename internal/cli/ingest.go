package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/ingest"
	canvio "github.com/matzehuels/canvasort/pkg/io"
)

// ingestOpts holds the command-line flags for the ingest command.
type ingestOpts struct {
	output  string
	key     string // record identity field
	ref     string // record reference field, becomes edges
	groupBy string // record field that clusters records into groups
	columns int
}

// newIngestCmd creates the ingest command: the import direction. It
// synthesizes a new canvas from plain JSON or JSONL records with a grid
// layout heuristic. Best-effort by design; the compile command is what
// carries the ordering guarantees.
func newIngestCmd() *cobra.Command {
	var opts ingestOpts

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Synthesize a canvas from JSON or JSONL records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output canvas file (default: <input>.canvas)")
	cmd.Flags().StringVar(&opts.key, "key", "", "record field used as the record identity")
	cmd.Flags().StringVar(&opts.ref, "ref", "", "record field referencing another record's key; becomes edges")
	cmd.Flags().StringVar(&opts.groupBy, "group-by", "", "record field that clusters records into canvas groups")
	cmd.Flags().IntVar(&opts.columns, "columns", ingest.DefaultColumns, "grid columns for the layout")

	return cmd
}

func runIngest(ctx context.Context, input string, opts *ingestOpts) error {
	logger := loggerFromContext(ctx)

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := ingest.ReadRecords(f)
	if err != nil {
		return err
	}
	logger.Infof("Read %d record(s) from %s", len(records), input)

	doc := ingest.FromRecords(records, ingest.Options{
		KeyField:   opts.key,
		RefField:   opts.ref,
		GroupField: opts.groupBy,
		Columns:    opts.columns,
	})
	logger.Debugf("synthesized %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".canvas"
	}
	if err := canvio.ExportCanvas(doc, output); err != nil {
		return err
	}
	printSuccess("Synthesized %d node(s), %d edge(s)", len(doc.Nodes), len(doc.Edges))
	printFile(output)
	return nil
}
