package compile_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/canvasort/pkg/canvas"
	"github.com/matzehuels/canvasort/pkg/compile"
)

func node(id, typ string, x, y, w, h float64) canvas.Node {
	return canvas.Node{ID: id, Type: typ, X: &x, Y: &y, Width: &w, Height: &h}
}

func ids(c canvas.Canvas) string {
	out := make([]string, len(c.Nodes))
	for i := range c.Nodes {
		out[i] = c.Nodes[i].NormID()
	}
	return strings.Join(out, " ")
}

// Root orphans come first, then each group immediately followed by its
// members, regardless of how the input was ordered.
func ExampleCompile() {
	doc := canvas.Canvas{Nodes: []canvas.Node{
		node("G", canvas.TypeGroup, 0, 0, 100, 100),
		node("N", canvas.TypeText, 10, 10, 50, 50),
		node("O", canvas.TypeText, 200, 200, 50, 50),
	}}

	out, err := compile.Compile(doc, compile.DefaultSettings())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ids(out))
	// Output: O G N
}

// With flow sorting, connected nodes follow their arrows instead of their
// positions.
func ExampleCompile_flowSort() {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			node("c", canvas.TypeText, 0, 0, 50, 50),
			node("a", canvas.TypeText, 900, 900, 50, 50),
			node("b", canvas.TypeText, 400, 100, 50, 50),
		},
		Edges: []canvas.Edge{
			{ID: "e1", FromNode: "a", ToNode: "b"},
			{ID: "e2", FromNode: "b", ToNode: "c"},
		},
	}

	s := compile.DefaultSettings()
	s.FlowSortNodes = true
	out, err := compile.Compile(doc, s)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ids(out))
	// Output: a b c
}
