package compile

import (
	"github.com/matzehuels/canvasort/pkg/canvas"
	"github.com/matzehuels/canvasort/pkg/errors"
)

// nodeRef pairs a node pointer with its normalized id so the rest of the
// pipeline never re-normalizes. The pointer targets the caller's document;
// nothing downstream writes through it.
type nodeRef struct {
	*canvas.Node
	id string
}

// edgeRef pairs an edge pointer with its normalized id and endpoint ids.
type edgeRef struct {
	*canvas.Edge
	id   string
	from string
	to   string
}

// document is the validated view of a canvas: every id normalized, unique,
// and every edge endpoint resolved.
type document struct {
	nodes []nodeRef
	edges []edgeRef
	byID  map[string]nodeRef
}

// validate checks identifier well-formedness and referential integrity.
// It is a pure precondition gate: any failure aborts the whole compile with
// no partial output.
//
// Normalization rules: string ids are trimmed; numeric and boolean ids are
// stringified; anything else normalizes to the empty string and therefore
// fails.
func validate(c *canvas.Canvas) (*document, error) {
	d := &document{
		nodes: make([]nodeRef, 0, len(c.Nodes)),
		edges: make([]edgeRef, 0, len(c.Edges)),
		byID:  make(map[string]nodeRef, len(c.Nodes)),
	}

	for i := range c.Nodes {
		n := &c.Nodes[i]
		id := n.NormID()
		if id == "" {
			return nil, errors.New(errors.ErrCodeMissingNodeID, "node at index %d has no usable id", i)
		}
		if _, exists := d.byID[id]; exists {
			return nil, errors.New(errors.ErrCodeDuplicateNodeID, "duplicate node id %q", id)
		}
		ref := nodeRef{Node: n, id: id}
		d.byID[id] = ref
		d.nodes = append(d.nodes, ref)
	}

	seenEdges := make(map[string]bool, len(c.Edges))
	for i := range c.Edges {
		e := &c.Edges[i]
		id := e.NormID()
		if id == "" {
			return nil, errors.New(errors.ErrCodeMissingEdgeID, "edge at index %d has no usable id", i)
		}
		if seenEdges[id] {
			return nil, errors.New(errors.ErrCodeDuplicateEdgeID, "duplicate edge id %q", id)
		}
		seenEdges[id] = true

		from, to := e.NormFrom(), e.NormTo()
		if from == "" || to == "" {
			return nil, errors.New(errors.ErrCodeEdgeMissingEnd, "edge %q is missing an endpoint id", id)
		}
		if _, ok := d.byID[from]; !ok {
			return nil, errors.New(errors.ErrCodeDanglingEdgeRef, "edge %q references unknown node %q", id, from)
		}
		if _, ok := d.byID[to]; !ok {
			return nil, errors.New(errors.ErrCodeDanglingEdgeRef, "edge %q references unknown node %q", id, to)
		}
		d.edges = append(d.edges, edgeRef{Edge: e, id: id, from: from, to: to})
	}

	return d, nil
}
