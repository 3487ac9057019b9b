// Package viz renders a debug view of a canvas document's derived
// structure — containment clusters and flow edges — as Graphviz DOT or SVG.
//
// This is a development aid for inspecting what the compiler inferred; the
// compiler itself never renders anything.
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/canvasort/pkg/canvas"
	"github.com/matzehuels/canvasort/pkg/compile"
)

// ToDOT converts a document's analysis to Graphviz DOT. Containment groups
// become subgraph clusters; flow-group members are annotated with their
// topological depth.
func ToDOT(doc canvas.Canvas, a compile.Analysis) string {
	var buf bytes.Buffer
	buf.WriteString("digraph canvas {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	depth := make(map[string]int)
	inFlow := make(map[string]bool)
	for _, fg := range a.Flows {
		for id, d := range fg.Depth {
			depth[id] = d
			inFlow[id] = true
		}
	}

	// Emit nodes grouped under their containment cluster.
	members := make(map[string][]*canvas.Node)
	var groups []*canvas.Node
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		id := n.NormID()
		if n.IsGroup() {
			groups = append(groups, n)
		}
		if p, ok := a.Parents[id]; ok {
			members[p] = append(members[p], n)
		}
	}

	for _, g := range groups {
		gid := g.NormID()
		fmt.Fprintf(&buf, "  subgraph \"cluster_%s\" {\n", gid)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(g))
		for _, m := range members[gid] {
			if m.IsGroup() {
				continue // nested groups get their own cluster
			}
			writeNode(&buf, "    ", m, depth, inFlow)
		}
		buf.WriteString("  }\n")
	}

	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if n.IsGroup() {
			continue
		}
		if _, contained := a.Parents[n.NormID()]; contained {
			continue
		}
		writeNode(&buf, "  ", n, depth, inFlow)
	}

	buf.WriteString("\n")
	for i := range doc.Edges {
		e := &doc.Edges[i]
		attrs := edgeAttrs(e)
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.NormFrom(), e.NormTo(), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(g *canvas.Node) string {
	if g.Label != nil && *g.Label != "" {
		return *g.Label
	}
	return g.NormID()
}

func writeNode(buf *bytes.Buffer, indent string, n *canvas.Node, depth map[string]int, inFlow map[string]bool) {
	id := n.NormID()
	label := nodeLabel(n)
	if inFlow[id] {
		label = fmt.Sprintf("%s\ndepth: %d", label, depth[id])
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if inFlow[id] {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, id, strings.Join(attrs, ", "))
}

// nodeLabel shows the content key, truncated, with the id as a fallback.
func nodeLabel(n *canvas.Node) string {
	key := n.ContentKey()
	if key == "" {
		key = n.NormID()
	}
	if first, _, found := strings.Cut(key, "\n"); found {
		key = first
	}
	const maxLabel = 40
	if len(key) > maxLabel {
		key = key[:maxLabel] + "…"
	}
	return key
}

// edgeAttrs styles an edge by its decoration: label when present, dashed
// when the edge carries no direction, both-ended arrows for bidirectional.
func edgeAttrs(e *canvas.Edge) string {
	var attrs []string
	if e.Labeled() && e.LabelValue() != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.LabelValue()))
	}

	fromArrow := e.FromEndValue() == canvas.EndArrow
	toArrow := e.ToEndValue() == canvas.EndArrow
	switch {
	case fromArrow && toArrow:
		attrs = append(attrs, "dir=both")
	case fromArrow && e.ToEndValue() != canvas.EndArrow:
		attrs = append(attrs, "dir=back")
	case !fromArrow && e.ToEndValue() == canvas.EndNone:
		attrs = append(attrs, "dir=none, style=dashed")
	}

	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
