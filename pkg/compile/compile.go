package compile

import "github.com/matzehuels/canvasort/pkg/canvas"

// Settings controls the compilation. The zero value is not the default
// configuration; use DefaultSettings and override from there.
type Settings struct {
	// ColorSortNodes enables color as a node sort key. Default on.
	ColorSortNodes bool
	// ColorSortEdges enables color as an edge sort key. Default on.
	ColorSortEdges bool
	// FlowSortNodes orders connected nodes by topological depth along their
	// directional edges instead of purely by position. Default off.
	FlowSortNodes bool
	// SemanticSortOrphans groups root-level orphan nodes semantically
	// (type, color, content) instead of spatially. Default off.
	SemanticSortOrphans bool
	// StripMetadata runs the pure-data projection after compilation.
	// Default off.
	StripMetadata bool
	// StripEdgesWhenFlowSorted empties the projected edges collection when
	// flow sorting ordered the nodes, since the topology is then implicit
	// in the node sequence. Only meaningful with StripMetadata. Default on.
	StripEdgesWhenFlowSorted bool
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		ColorSortNodes:           true,
		ColorSortEdges:           true,
		StripEdgesWhenFlowSorted: true,
	}
}

// Compile recompiles the document into its deterministic order.
//
// The returned document contains new node and edge slices that are a
// permutation of the input's; no field values change and the input is never
// mutated. With Settings.StripMetadata set, the result additionally passes
// through ProjectPure.
//
// Compile fails closed: any validation error aborts with no output.
func Compile(doc canvas.Canvas, s Settings) (canvas.Canvas, error) {
	d, err := validate(&doc)
	if err != nil {
		return canvas.Canvas{}, err
	}

	h := buildHierarchy(d)

	var flows *flowIndex
	if s.FlowSortNodes {
		flows = analyzeFlow(d, h)
	}

	srt := &sorter{settings: s, flows: flows, doc: d}

	ordered := flatten(d, h, srt)
	nodes := make([]canvas.Node, len(ordered))
	for i, ref := range ordered {
		nodes[i] = *ref.Node
	}

	edgeRefs := make([]edgeRef, len(d.edges))
	copy(edgeRefs, d.edges)
	srt.sortEdges(edgeRefs)
	edges := make([]canvas.Edge, len(edgeRefs))
	for i, ref := range edgeRefs {
		edges[i] = *ref.Edge
	}

	out := canvas.Canvas{Nodes: nodes, Edges: edges, Extra: doc.Extra}
	if s.StripMetadata {
		out = ProjectPure(out, s)
	}
	return out, nil
}
