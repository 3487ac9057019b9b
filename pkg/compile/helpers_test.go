package compile

import "github.com/matzehuels/canvasort/pkg/canvas"

// Test constructors. Geometry helpers keep the table bodies readable.

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func textNode(id string, x, y float64) canvas.Node {
	text := "node " + id
	return canvas.Node{
		ID: id, Type: canvas.TypeText,
		X: fp(x), Y: fp(y), Width: fp(50), Height: fp(50),
		Text: &text,
	}
}

func groupNode(id string, x, y, w, h float64) canvas.Node {
	label := "group " + id
	return canvas.Node{
		ID: id, Type: canvas.TypeGroup,
		X: fp(x), Y: fp(y), Width: fp(w), Height: fp(h),
		Label: &label,
	}
}

func edge(id, from, to string) canvas.Edge {
	return canvas.Edge{ID: id, FromNode: from, ToNode: to}
}

func nodeIDs(c canvas.Canvas) []string {
	ids := make([]string, len(c.Nodes))
	for i := range c.Nodes {
		ids[i] = c.Nodes[i].NormID()
	}
	return ids
}

func edgeIDs(c canvas.Canvas) []string {
	ids := make([]string, len(c.Edges))
	for i := range c.Edges {
		ids[i] = c.Edges[i].NormID()
	}
	return ids
}
