package compile

import "github.com/matzehuels/canvasort/pkg/canvas"

// ProjectPure is the metadata projection: a pure-data export of an already
// compiled document.
//
// Labeled edges are embedded into their endpoints: each adds a {node, label}
// entry to the source node's "to" array and the target node's "from" array,
// in compiled edge order. Projected nodes keep only their id (normalized),
// type, the one applicable content field, and the accumulated relation
// arrays; position, dimensions, and color are dropped.
//
// Unlabeled edges survive as {id, fromNode, toNode} triples unless flow
// sorting ordered the nodes and StripEdgesWhenFlowSorted is set, in which
// case the edges collection comes out empty: the topology is already
// implicit in the node sequence.
//
// ProjectPure never mutates doc; it builds new, smaller representations.
func ProjectPure(doc canvas.Canvas, s Settings) canvas.Canvas {
	type rels struct {
		from []canvas.Relation
		to   []canvas.Relation
	}
	byID := make(map[string]*rels)
	rel := func(id string) *rels {
		r, ok := byID[id]
		if !ok {
			r = &rels{}
			byID[id] = r
		}
		return r
	}

	unlabeled := make([]canvas.Edge, 0, len(doc.Edges))
	for i := range doc.Edges {
		e := &doc.Edges[i]
		from, to := e.NormFrom(), e.NormTo()
		if !e.Labeled() {
			unlabeled = append(unlabeled, canvas.Edge{
				ID:       e.NormID(),
				FromNode: from,
				ToNode:   to,
			})
			continue
		}
		label := e.LabelValue()
		rel(from).to = append(rel(from).to, canvas.Relation{Node: to, Label: label})
		rel(to).from = append(rel(to).from, canvas.Relation{Node: from, Label: label})
	}

	nodes := make([]canvas.Node, len(doc.Nodes))
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		id := n.NormID()
		stripped := canvas.Node{ID: id, Type: n.Type}
		switch n.Type {
		case canvas.TypeText:
			stripped.Text = n.Text
		case canvas.TypeFile:
			stripped.File = n.File
		case canvas.TypeLink:
			stripped.URL = n.URL
		case canvas.TypeGroup:
			stripped.Label = n.Label
		}
		if r, ok := byID[id]; ok {
			stripped.From = r.from
			stripped.To = r.to
		}
		nodes[i] = stripped
	}

	edges := unlabeled
	if s.FlowSortNodes && s.StripEdgesWhenFlowSorted {
		edges = []canvas.Edge{}
	}

	return canvas.Canvas{Nodes: nodes, Edges: edges, Extra: doc.Extra}
}
