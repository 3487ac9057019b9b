// Package ingest synthesizes new canvas documents from plain JSON or JSONL
// records: the import direction of the tool.
//
// Unlike the compiler, this is a generative layout heuristic with no hard
// invariants. Records become text nodes laid out on a grid; an optional
// grouping key clusters them into group nodes sized to enclose their
// members, and an optional reference key links records with edges.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/canvasort/pkg/canvas"
	"github.com/matzehuels/canvasort/pkg/errors"
)

// Default grid geometry, chosen to match the node sizes canvas editors
// create by default.
const (
	DefaultColumns = 4
	DefaultCellW   = 250
	DefaultCellH   = 140
	DefaultGutter  = 40
	groupPadding   = 40
)

// Options configures record synthesis. The zero value lays every record on
// one flat grid with generated ids.
type Options struct {
	// KeyField names the record field treated as the record's identity.
	// When set, RefField values resolve against it.
	KeyField string
	// RefField names a record field whose value references another
	// record's key; resolvable references become edges.
	RefField string
	// GroupField names a record field whose value clusters records into
	// group nodes. Records without the field stay at the root.
	GroupField string
	// Columns is the number of grid columns (DefaultColumns when <= 0).
	Columns int
	// NewID overrides node id generation; defaults to random UUIDs.
	// Tests inject a counter here for reproducible documents.
	NewID func() string
}

// ReadRecords decodes records from r, accepting either a JSON array of
// objects or JSONL (one object per line, blank lines skipped).
func ReadRecords(r io.Reader) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records in input")
	}

	if trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode record array")
		}
		return records, nil
	}

	var records []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode line %d", line)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}

// FromRecords builds a canvas document from the given records.
func FromRecords(records []map[string]any, opts Options) canvas.Canvas {
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	b := &builder{opts: opts}
	if opts.GroupField == "" {
		b.placeGrid(records, 0, 0)
	} else {
		b.placeGrouped(records)
	}
	b.linkReferences(records)

	return canvas.Canvas{Nodes: b.nodes, Edges: b.edges}
}

type builder struct {
	opts  Options
	nodes []canvas.Node
	edges []canvas.Edge

	// keyToID resolves a record's key value to its generated node id.
	keyToID map[string]string
	// recordID remembers the node id per record index, for RefField edges.
	recordID []string
}

// placeGrid lays records row-major on a grid anchored at (ox, oy) and
// returns the grid's bounding box.
func (b *builder) placeGrid(records []map[string]any, ox, oy float64) (w, h float64) {
	for i, rec := range records {
		col := i % b.opts.Columns
		row := i / b.opts.Columns
		x := ox + float64(col)*(DefaultCellW+DefaultGutter)
		y := oy + float64(row)*(DefaultCellH+DefaultGutter)
		b.addTextNode(rec, x, y)
	}

	cols := min(len(records), b.opts.Columns)
	rows := (len(records) + b.opts.Columns - 1) / b.opts.Columns
	if cols == 0 {
		return 0, 0
	}
	w = float64(cols)*DefaultCellW + float64(cols-1)*DefaultGutter
	h = float64(rows)*DefaultCellH + float64(rows-1)*DefaultGutter
	return w, h
}

// placeGrouped buckets records by the grouping field and stacks one group
// node per bucket vertically, each enclosing its members' grid. Records
// without the field land on a root-level grid below the groups.
func (b *builder) placeGrouped(records []map[string]any) {
	buckets := make(map[string][]map[string]any)
	var loose []map[string]any

	for _, rec := range records {
		v, ok := rec[b.opts.GroupField]
		if !ok {
			loose = append(loose, rec)
			continue
		}
		key := stringify(v)
		buckets[key] = append(buckets[key], rec)
	}

	y := 0.0
	for _, key := range slices.Sorted(maps.Keys(buckets)) {
		members := buckets[key]
		innerW, innerH := b.measureGrid(len(members))

		label := key
		b.nodes = append(b.nodes, canvas.Node{
			ID:     b.opts.NewID(),
			Type:   canvas.TypeGroup,
			X:      ptr(0.0),
			Y:      ptr(y),
			Width:  ptr(innerW + 2*groupPadding),
			Height: ptr(innerH + 2*groupPadding),
			Label:  &label,
		})
		b.placeGrid(members, groupPadding, y+groupPadding)
		y += innerH + 2*groupPadding + DefaultGutter
	}

	b.placeGrid(loose, 0, y)
}

// measureGrid returns the bounding box a grid of n cells will occupy.
func (b *builder) measureGrid(n int) (w, h float64) {
	if n == 0 {
		return DefaultCellW, DefaultCellH
	}
	cols := min(n, b.opts.Columns)
	rows := (n + b.opts.Columns - 1) / b.opts.Columns
	w = float64(cols)*DefaultCellW + float64(cols-1)*DefaultGutter
	h = float64(rows)*DefaultCellH + float64(rows-1)*DefaultGutter
	return w, h
}

// addTextNode appends a text node rendering the record as sorted key/value
// lines and records the id mappings used for reference edges.
func (b *builder) addTextNode(rec map[string]any, x, y float64) {
	id := b.opts.NewID()

	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(rec)) {
		fmt.Fprintf(&sb, "%s: %s\n", k, stringify(rec[k]))
	}
	text := strings.TrimSuffix(sb.String(), "\n")

	b.nodes = append(b.nodes, canvas.Node{
		ID:     id,
		Type:   canvas.TypeText,
		X:      ptr(x),
		Y:      ptr(y),
		Width:  ptr(float64(DefaultCellW)),
		Height: ptr(float64(DefaultCellH)),
		Text:   &text,
	})

	b.recordID = append(b.recordID, id)
	if b.opts.KeyField != "" {
		if v, ok := rec[b.opts.KeyField]; ok {
			if b.keyToID == nil {
				b.keyToID = make(map[string]string)
			}
			b.keyToID[stringify(v)] = id
		}
	}
}

// linkReferences adds a default-direction edge for every record whose
// reference field resolves to another record's key. Unresolvable references
// are skipped; this direction of the tool is best-effort.
func (b *builder) linkReferences(records []map[string]any) {
	if b.opts.RefField == "" || b.opts.KeyField == "" {
		return
	}
	// recordID was appended grouped-first, so rebuild the index by walking
	// records the same way placement did.
	order := b.placementOrder(records)
	for pos, recIdx := range order {
		rec := records[recIdx]
		v, ok := rec[b.opts.RefField]
		if !ok {
			continue
		}
		target, ok := b.keyToID[stringify(v)]
		if !ok {
			continue
		}
		source := b.recordID[pos]
		if target == source {
			continue
		}
		b.edges = append(b.edges, canvas.Edge{
			ID:       b.opts.NewID(),
			FromNode: source,
			ToNode:   target,
		})
	}
}

// placementOrder reproduces the record order used during placement:
// grouped buckets in sorted key order, then loose records.
func (b *builder) placementOrder(records []map[string]any) []int {
	if b.opts.GroupField == "" {
		order := make([]int, len(records))
		for i := range order {
			order[i] = i
		}
		return order
	}

	bucketIdx := make(map[string][]int)
	var loose []int
	for i, rec := range records {
		v, ok := rec[b.opts.GroupField]
		if !ok {
			loose = append(loose, i)
			continue
		}
		key := stringify(v)
		bucketIdx[key] = append(bucketIdx[key], i)
	}

	var order []int
	for _, key := range slices.Sorted(maps.Keys(bucketIdx)) {
		order = append(order, bucketIdx[key]...)
	}
	return append(order, loose...)
}

// stringify renders a record value for display or identity comparison.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

func ptr[T any](v T) *T { return &v }
